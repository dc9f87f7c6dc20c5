// Package webserver hosts the JSON API: echo bootstrap, authentication,
// request logging and the route registration helpers the tracker API uses.
package webserver

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/talkincode/auctiontrack/internal/app"
	"github.com/talkincode/auctiontrack/pkg/metrics"
	"go.uber.org/zap"
)

// AppContextKey is the echo context key the application handle is stored
// under for handlers.
const AppContextKey = "appctx"

type WebServer struct {
	appCtx app.AppContext
	root   *echo.Echo
	api    *echo.Group
}

var server *WebServer

// jsonSerializer plugs jsoniter in as echo's JSON codec.
type jsonSerializer struct{}

func (jsonSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := jsoniter.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (jsonSerializer) Deserialize(c echo.Context, i interface{}) error {
	if err := jsoniter.NewDecoder(c.Request().Body).Decode(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}

type webValidator struct {
	validate *validator.Validate
}

func (v *webValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// Init builds the web server around the application context. Routes are
// registered afterwards through the Api helpers, then Listen starts
// serving.
func Init(appCtx app.AppContext) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsonSerializer{}
	e.Validator = &webValidator{validate: validator.New()}

	e.Use(middleware.Recover())
	e.Use(injectAppContext(appCtx))
	e.Use(requestLogger())

	s := &WebServer{appCtx: appCtx, root: e}
	s.api = e.Group("/api/v1")
	s.api.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(appCtx.Config().Web.JwtSecret),
	}))

	e.POST("/auth/login", s.handleLogin)
	e.GET("/status", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	server = s
	return s
}

// Listen blocks serving HTTP on the configured address.
func (s *WebServer) Listen() error {
	addr := fmt.Sprintf("%s:%d", s.appCtx.Config().Web.Host, s.appCtx.Config().Web.Port)
	zap.S().Infof("web server listening on %s", addr)
	return s.root.Start(addr)
}

// injectAppContext makes the application handle reachable from handlers.
func injectAppContext(appCtx app.AppContext) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(AppContextKey, appCtx)
			return next(c)
		}
	}
}

// requestLogger logs each request and bumps the request counter.
func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			metrics.IncrCounter("http_requests", 1)
			if v.Status >= http.StatusInternalServerError {
				metrics.IncrCounter("http_errors", 1)
				zap.L().Error("http request",
					zap.String("method", v.Method),
					zap.String("uri", v.URI),
					zap.Int("status", v.Status),
					zap.Error(v.Error))
				return nil
			}
			zap.L().Info("http request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status))
			return nil
		},
	})
}

func apiPath(path string) string {
	return "/" + strings.TrimPrefix(path, "/")
}

// ApiGET registers an authenticated GET route under /api/v1
func ApiGET(path string, h echo.HandlerFunc) {
	server.api.GET(apiPath(path), h)
}

// ApiPOST registers an authenticated POST route under /api/v1
func ApiPOST(path string, h echo.HandlerFunc) {
	server.api.POST(apiPath(path), h)
}

// ApiPUT registers an authenticated PUT route under /api/v1
func ApiPUT(path string, h echo.HandlerFunc) {
	server.api.PUT(apiPath(path), h)
}

// ApiDELETE registers an authenticated DELETE route under /api/v1
func ApiDELETE(path string, h echo.HandlerFunc) {
	server.api.DELETE(apiPath(path), h)
}
