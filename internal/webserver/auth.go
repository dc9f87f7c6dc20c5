package webserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/talkincode/auctiontrack/internal/domain"
	"github.com/talkincode/auctiontrack/pkg/common"
	"go.uber.org/zap"
)

// TokenLifetime is how long an issued session token stays valid.
const TokenLifetime = 8 * time.Hour

type loginPayload struct {
	Username string `json:"username" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=1,max=100"`
}

type loginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Realname string `json:"realname"`
	Level    string `json:"level"`
}

// handleLogin verifies operator credentials against sys_opr and issues a
// signed session token. Credentials are checked server side; there is no
// client-trusted path.
func (s *WebServer) handleLogin(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to parse login request")
	}
	if err := c.Validate(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	var operator domain.SysOpr
	err := s.appCtx.DB().
		Where("username = ?", strings.TrimSpace(payload.Username)).
		First(&operator).Error
	if err != nil || !VerifyPassword(operator.Password, payload.Password) {
		zap.L().Warn("login rejected", zap.String("username", payload.Username))
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
	}
	if !strings.EqualFold(operator.Status, common.ENABLED) {
		return echo.NewHTTPError(http.StatusForbidden, "operator account is disabled")
	}

	token, err := issueToken(s.appCtx.Config().Web.JwtSecret, &operator)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to issue session token")
	}

	now := time.Now()
	s.appCtx.DB().Model(&domain.SysOpr{}).Where("id = ?", operator.ID).
		Update("last_login", now)
	s.appCtx.DB().Create(&domain.SysOprLog{
		ID:        common.UUIDint64(),
		OprName:   operator.Username,
		OprIp:     c.RealIP(),
		OptAction: "login",
		OptDesc:   "operator login",
		OptTime:   now,
	})

	return c.JSON(http.StatusOK, loginResult{
		Token:    token,
		Username: operator.Username,
		Realname: operator.Realname,
		Level:    operator.Level,
	})
}

// VerifyPassword compares a stored salted hash with a cleartext candidate.
func VerifyPassword(storedHash, candidate string) bool {
	return storedHash != "" &&
		storedHash == common.Sha256HashWithSalt(candidate, common.GetSecretSalt())
}

func issueToken(secret string, operator *domain.SysOpr) (string, error) {
	claims := jwt.MapClaims{
		"uid": operator.ID,
		"usr": operator.Username,
		"lvl": operator.Level,
		"exp": time.Now().Add(TokenLifetime).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
