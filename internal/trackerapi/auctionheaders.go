package trackerapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/auctiontrack/internal/domain"
	"github.com/talkincode/auctiontrack/internal/ledger"
	"github.com/talkincode/auctiontrack/internal/webserver"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type auctionHeaderPayload struct {
	Name           string  `json:"name" validate:"required,min=1,max=200"`
	AuctionHouseId int64   `json:"auction_house_id,string" validate:"omitempty,min=0"`
	NumberOfPeople int     `json:"number_of_people" validate:"omitempty,min=0"`
	Date           string  `json:"date" validate:"required"`
	ExchangeRate   float64 `json:"exchange_rate" validate:"omitempty,gt=0"`
}

// headerRow is a header joined with its house for listings.
type headerRow struct {
	domain.AuctionHeader
	AuctionHouseName string  `json:"auction_house_name"`
	CommissionRate   float64 `json:"commission_rate"`
}

func registerAuctionHeaderRoutes() {
	webserver.ApiGET("/auction-headers", listAuctionHeaders)
	webserver.ApiGET("/auction-headers/next-id", getNextAuctionHeaderId)
	webserver.ApiGET("/auction-headers/metrics", getAuctionMetrics)
	webserver.ApiPOST("/auction-headers", createAuctionHeader)
	webserver.ApiPUT("/auction-headers/:id", updateAuctionHeader)
	webserver.ApiPUT("/auction-headers/:id/close", closeAuctionHeader)
	webserver.ApiPUT("/auction-headers/:id/reopen", reopenAuctionHeader)
	webserver.ApiDELETE("/auction-headers/:id", deleteAuctionHeader)
}

func listAuctionHeaders(c echo.Context) error {
	window, err := parseListWindow(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid pagination parameters", err.Error())
	}

	query := GetDB(c).Table("auction_headers ah").
		Select("ah.*, ahs.name as auction_house_name, ahs.commission_rate").
		Joins("LEFT JOIN auction_houses ahs ON ah.auction_house_id = ahs.id").
		Where("ah.is_deleted = ?", false)

	if id, err := parseOptionalID(c, "id"); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid auction ID", nil)
	} else if id != nil {
		query = query.Where("ah.id = ?", *id)
	}

	var rows []headerRow
	if err := window.apply(query.Order("ah.date DESC, ah.created_at DESC")).Scan(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query auctions", err.Error())
	}
	rows, hasNext := trimProbe(rows, window)

	return ok(c, map[string]interface{}{
		"auctionHeaders": rows,
		"hasNextPage":    hasNext,
	})
}

// getNextAuctionHeaderId reports the id the next created auction will get,
// used by the entry screen to label lots ahead of time.
func getNextAuctionHeaderId(c echo.Context) error {
	var nextId int64
	err := GetDB(c).Model(&domain.AuctionHeader{}).
		Select("COALESCE(MAX(id), 0) + 1").Scan(&nextId).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query next auction id", err.Error())
	}
	return ok(c, map[string]interface{}{"nextId": nextId})
}

func createAuctionHeader(c echo.Context) error {
	var payload auctionHeaderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse auction", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	date, err := parseDate(payload.Date)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid auction date", err.Error())
	}

	rate := payload.ExchangeRate
	if rate <= 0 {
		rate = ledger.DefaultExchangeRate
	}

	now := time.Now()
	header := domain.AuctionHeader{
		Name:           strings.TrimSpace(payload.Name),
		AuctionHouseId: payload.AuctionHouseId,
		NumberOfPeople: payload.NumberOfPeople,
		Date:           date,
		ExchangeRate:   rate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := GetDB(c).Create(&header).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create auction", err.Error())
	}
	return ok(c, header)
}

func updateAuctionHeader(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid auction ID", nil)
	}

	var header domain.AuctionHeader
	if err := GetDB(c).Where("id = ? AND is_deleted = ?", id, false).First(&header).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Auction not found", nil)
	}

	var payload auctionHeaderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse auction", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	date, err := parseDate(payload.Date)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid auction date", err.Error())
	}

	rate := payload.ExchangeRate
	if rate <= 0 {
		rate = ledger.DefaultExchangeRate
	}
	rateChanged := rate != header.ExchangeRate

	header.Name = strings.TrimSpace(payload.Name)
	header.AuctionHouseId = payload.AuctionHouseId
	header.NumberOfPeople = payload.NumberOfPeople
	header.Date = date
	header.ExchangeRate = rate
	header.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&header).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update auction", err.Error())
	}

	// A new rate invalidates every derived USD figure under this auction.
	if rateChanged {
		if err := recomputeDetailPrices(GetDB(c), header.ID, header.ExchangeRate); err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to recompute line item prices", err.Error())
		}
	}
	return ok(c, header)
}

// recomputeDetailPrices refreshes price_sold and price_per_kg of every live
// line item under an auction after an exchange-rate change.
func recomputeDetailPrices(db *gorm.DB, auctionID int64, exchangeRate float64) error {
	var details []domain.AuctionDetail
	if err := db.Where("auction_id = ? AND is_deleted = ?", auctionID, false).
		Find(&details).Error; err != nil {
		return err
	}

	now := time.Now()
	for _, detail := range details {
		priceSold, pricePerKg := ledger.DerivedPrices(detail.HighestBidRmb, detail.Weight, exchangeRate)
		err := db.Model(&domain.AuctionDetail{}).Where("id = ?", detail.ID).
			Updates(map[string]interface{}{
				"price_sold":   priceSold,
				"price_per_kg": pricePerKg,
				"updated_at":   now,
			}).Error
		if err != nil {
			return err
		}
	}

	zap.L().Info("recomputed line item prices",
		zap.Int64("auction_id", auctionID),
		zap.Float64("exchange_rate", exchangeRate),
		zap.Int("items", len(details)))
	return nil
}

func closeAuctionHeader(c echo.Context) error {
	return setAuctionClosed(c, true)
}

func reopenAuctionHeader(c echo.Context) error {
	return setAuctionClosed(c, false)
}

// setAuctionClosed flips the lifecycle gate. Both directions stamp only
// the header; line items are never touched.
func setAuctionClosed(c echo.Context, closed bool) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid auction ID", nil)
	}

	var header domain.AuctionHeader
	if err := GetDB(c).Where("id = ? AND is_deleted = ?", id, false).First(&header).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Auction not found", nil)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"is_closed":  closed,
		"updated_at": now,
	}
	if closed {
		updates["closed_at"] = now
	} else {
		updates["closed_at"] = nil
	}

	if err := GetDB(c).Model(&domain.AuctionHeader{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update auction state", err.Error())
	}

	applyClosedState(&header, closed, now)
	return ok(c, header)
}

// applyClosedState mirrors the persisted lifecycle columns onto the
// in-memory header so the response reflects exactly what was written.
func applyClosedState(header *domain.AuctionHeader, closed bool, now time.Time) {
	header.IsClosed = closed
	header.UpdatedAt = now
	if closed {
		header.ClosedAt = &now
	} else {
		header.ClosedAt = nil
	}
}

func deleteAuctionHeader(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid auction ID", nil)
	}
	err = GetDB(c).Model(&domain.AuctionHeader{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_deleted": true, "updated_at": time.Now()}).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete auction", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}

// getAuctionMetrics rolls revenue and commission up across every live
// auction for the dashboard header.
func getAuctionMetrics(c echo.Context) error {
	var headers []headerRow
	err := GetDB(c).Table("auction_headers ah").
		Select("ah.*, ahs.commission_rate").
		Joins("LEFT JOIN auction_houses ahs ON ah.auction_house_id = ahs.id").
		Where("ah.is_deleted = ?", false).
		Scan(&headers).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query auctions", err.Error())
	}

	var details []domain.AuctionDetail
	if err := GetDB(c).Where("is_deleted = ?", false).Find(&details).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query line items", err.Error())
	}

	itemsByAuction := make(map[int64][]ledger.Item, len(headers))
	for _, detail := range details {
		itemsByAuction[detail.AuctionId] = append(itemsByAuction[detail.AuctionId], ledger.Item{
			DetailID:  detail.ID,
			Weight:    detail.Weight,
			BidRmb:    detail.HighestBidRmb,
			PriceSold: detail.PriceSold,
			IsSold:    detail.IsSold,
		})
	}

	figures := make([]ledger.AuctionFigures, 0, len(headers))
	for _, header := range headers {
		figures = append(figures, ledger.AuctionFigures{
			AuctionID:      header.ID,
			Participants:   header.NumberOfPeople,
			ExchangeRate:   header.ExchangeRate,
			CommissionRate: header.CommissionRate,
			Items:          itemsByAuction[header.ID],
		})
	}

	return ok(c, ledger.FoldMetrics(figures))
}

// parseDate accepts the SPA's date formats: plain date or RFC3339.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
