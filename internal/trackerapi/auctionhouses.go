package trackerapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/auctiontrack/internal/domain"
	"github.com/talkincode/auctiontrack/internal/webserver"
)

type auctionHousePayload struct {
	Name           string  `json:"name" validate:"required,min=1,max=200"`
	CommissionRate float64 `json:"commission_rate" validate:"min=0,max=1"`
}

func registerAuctionHouseRoutes() {
	webserver.ApiGET("/auction-houses", listAuctionHouses)
	webserver.ApiPOST("/auction-houses", createAuctionHouse)
	webserver.ApiPUT("/auction-houses/:id", updateAuctionHouse)
	webserver.ApiDELETE("/auction-houses/:id", deleteAuctionHouse)
}

// listAuctionHouses returns every active house; the set is small enough
// that this endpoint is not paginated.
func listAuctionHouses(c echo.Context) error {
	query := GetDB(c).Model(&domain.AuctionHouse{}).Where("is_active = ?", true)
	if id, err := parseOptionalID(c, "id"); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid auction house ID", nil)
	} else if id != nil {
		query = query.Where("id = ?", *id)
	}

	var rows []domain.AuctionHouse
	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query auction houses", err.Error())
	}
	return ok(c, map[string]interface{}{"auctionHouses": rows})
}

func createAuctionHouse(c echo.Context) error {
	var payload auctionHousePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse auction house", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	now := time.Now()
	house := domain.AuctionHouse{
		Name:           strings.TrimSpace(payload.Name),
		CommissionRate: payload.CommissionRate,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := GetDB(c).Create(&house).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create auction house", err.Error())
	}
	return ok(c, house)
}

func updateAuctionHouse(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid auction house ID", nil)
	}

	var house domain.AuctionHouse
	if err := GetDB(c).Where("id = ? AND is_active = ?", id, true).First(&house).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Auction house not found", nil)
	}

	var payload auctionHousePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse auction house", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	house.Name = strings.TrimSpace(payload.Name)
	house.CommissionRate = payload.CommissionRate
	house.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&house).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update auction house", err.Error())
	}
	return ok(c, house)
}

func deleteAuctionHouse(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid auction house ID", nil)
	}
	err = GetDB(c).Model(&domain.AuctionHouse{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()}).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete auction house", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}
