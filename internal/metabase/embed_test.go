package metabase

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func TestDashboardURL(t *testing.T) {
	const secret = "embedding-secret"

	embed, err := DashboardURL("https://bi.example.com", secret, 8)
	if err != nil {
		t.Fatalf("DashboardURL() error = %v", err)
	}

	if embed.ExpiresIn != 600 {
		t.Errorf("ExpiresIn = %d, want 600", embed.ExpiresIn)
	}
	if !strings.HasPrefix(embed.URL, "https://bi.example.com/embed/dashboard/") {
		t.Fatalf("URL prefix wrong: %s", embed.URL)
	}
	if !strings.HasSuffix(embed.URL, "#bordered=true&titled=true") {
		t.Errorf("URL fragment wrong: %s", embed.URL)
	}

	raw := strings.TrimSuffix(
		strings.TrimPrefix(embed.URL, "https://bi.example.com/embed/dashboard/"),
		"#bordered=true&titled=true")

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		t.Fatalf("token does not verify with secret: %v", err)
	}

	resource, ok := claims["resource"].(map[string]interface{})
	if !ok {
		t.Fatalf("resource claim missing: %v", claims)
	}
	if dash, _ := resource["dashboard"].(float64); int(dash) != 8 {
		t.Errorf("dashboard claim = %v, want 8", resource["dashboard"])
	}

	exp, _ := claims["exp"].(float64)
	remaining := time.Until(time.Unix(int64(exp), 0))
	if remaining <= 9*time.Minute || remaining > 10*time.Minute+time.Second {
		t.Errorf("expiry %v out of expected 10 minute window", remaining)
	}
}

func TestDashboardURLUnconfigured(t *testing.T) {
	if _, err := DashboardURL("", "secret", 1); err == nil {
		t.Error("expected error when site URL empty")
	}
	if _, err := DashboardURL("https://bi.example.com", "", 1); err == nil {
		t.Error("expected error when secret empty")
	}
}
