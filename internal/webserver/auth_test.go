package webserver

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/talkincode/auctiontrack/internal/domain"
	"github.com/talkincode/auctiontrack/pkg/common"
)

func TestVerifyPassword(t *testing.T) {
	stored := common.Sha256HashWithSalt("auctiontrack", common.GetSecretSalt())

	tests := []struct {
		name      string
		stored    string
		candidate string
		want      bool
	}{
		{name: "correct password", stored: stored, candidate: "auctiontrack", want: true},
		{name: "wrong password", stored: stored, candidate: "guess", want: false},
		{name: "empty stored hash never matches", stored: "", candidate: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerifyPassword(tt.stored, tt.candidate); got != tt.want {
				t.Errorf("VerifyPassword() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIssueTokenCarriesOperatorIdentity(t *testing.T) {
	operator := &domain.SysOpr{ID: 42, Username: "admin", Level: "super"}

	raw, err := issueToken("test-secret", operator)
	if err != nil {
		t.Fatalf("issueToken() error = %v", err)
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if usr, _ := claims["usr"].(string); usr != "admin" {
		t.Errorf("usr claim = %v, want admin", claims["usr"])
	}
	if lvl, _ := claims["lvl"].(string); lvl != "super" {
		t.Errorf("lvl claim = %v, want super", claims["lvl"])
	}
	if uid, _ := claims["uid"].(float64); int64(uid) != 42 {
		t.Errorf("uid claim = %v, want 42", claims["uid"])
	}

	if _, err := jwt.ParseWithClaims(raw, jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	}); err == nil {
		t.Error("token verified with wrong secret")
	}
}
