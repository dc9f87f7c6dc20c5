// Package metabase builds signed embedding URLs for the analytics
// dashboard. The token follows Metabase's static embedding scheme: an HS256
// JWT naming the dashboard resource with a short expiry.
package metabase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
)

// TokenTTL is how long an issued embed token stays valid. The SPA renews
// the URL before this elapses.
const TokenTTL = 10 * time.Minute

// EmbedURL is the payload handed to the SPA iframe.
type EmbedURL struct {
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"` // seconds
}

// DashboardURL signs an embed token for dashboardID and returns the
// iframe-able URL on siteURL.
func DashboardURL(siteURL, secretKey string, dashboardID int) (*EmbedURL, error) {
	if siteURL == "" || secretKey == "" {
		return nil, errors.New("metabase embedding is not configured")
	}

	claims := jwt.MapClaims{
		"resource": map[string]interface{}{"dashboard": dashboardID},
		"params":   map[string]interface{}{},
		"exp":      time.Now().Add(TokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secretKey))
	if err != nil {
		return nil, errors.Wrap(err, "sign metabase embed token")
	}

	return &EmbedURL{
		URL:       fmt.Sprintf("%s/embed/dashboard/%s#bordered=true&titled=true", siteURL, token),
		ExpiresIn: int(TokenTTL.Seconds()),
	}, nil
}
