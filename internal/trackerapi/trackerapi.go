// Package trackerapi implements the auction tracker REST surface: CRUD
// for clients, categories, products, auction houses, auction headers and
// line items, plus the summary, metrics and dashboard-embedding endpoints.
package trackerapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/talkincode/auctiontrack/internal/app"
	"github.com/talkincode/auctiontrack/internal/webserver"
	"gorm.io/gorm"
)

// Register wires every tracker route onto the web server.
func Register() {
	registerClientRoutes()
	registerCategoryRoutes()
	registerProductRoutes()
	registerAuctionHouseRoutes()
	registerAuctionHeaderRoutes()
	registerAuctionDetailRoutes()
	registerMetabaseRoutes()
}

// GetAppContext fetches the application handle injected by the middleware
func GetAppContext(c echo.Context) app.AppContext {
	return c.Get(webserver.AppContextKey).(app.AppContext)
}

// GetDB fetches the request database handle
func GetDB(c echo.Context) *gorm.DB {
	return GetAppContext(c).DB()
}

type errorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func fail(c echo.Context, status int, code, message string, details interface{}) error {
	return c.JSON(status, errorResponse{Code: code, Message: message, Details: details})
}

// handleValidationError converts validator failures into the standard
// error envelope, naming the offending fields.
func handleValidationError(c echo.Context, err error) error {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field()+":"+fe.Tag())
		}
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid parameters", fields)
	}
	return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid parameters", err.Error())
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// parseOptionalID reads an optional numeric query parameter, nil when
// absent.
func parseOptionalID(c echo.Context, name string) (*int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
