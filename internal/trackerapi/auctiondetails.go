package trackerapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/auctiontrack/internal/domain"
	"github.com/talkincode/auctiontrack/internal/ledger"
	"github.com/talkincode/auctiontrack/internal/webserver"
)

type auctionDetailPayload struct {
	AuctionId       int64   `json:"auction_id,string" validate:"required,min=1"`
	ProductId       *int64  `json:"product_id,string" validate:"omitempty,min=1"`
	Weight          float64 `json:"weight" validate:"omitempty,min=0"`
	BagNumber       string  `json:"bag_number" validate:"omitempty,max=100"`
	NumberOfPieces  int     `json:"number_of_pieces" validate:"omitempty,min=0"`
	Winner1ClientId *int64  `json:"winner1_client_id,string" validate:"omitempty,min=1"`
	Winner2ClientId *int64  `json:"winner2_client_id,string" validate:"omitempty,min=1"`
	Lot             string  `json:"lot" validate:"omitempty,max=100"`
	Date            string  `json:"date" validate:"omitempty"`
	HighestBidRmb   float64 `json:"highest_bid_rmb" validate:"omitempty,min=0"`
	IsSold          bool    `json:"is_sold"`
}

// detailRow is a line item joined with its display names for listings.
type detailRow struct {
	domain.AuctionDetail
	AuctionName string `json:"auction_name"`
	ProductName string `json:"product_name"`
	Winner1Name string `json:"winner1_name"`
	Winner2Name string `json:"winner2_name"`
}

func registerAuctionDetailRoutes() {
	webserver.ApiGET("/auction-details", listAuctionDetails)
	webserver.ApiGET("/auction-details/summary", getAuctionSummary)
	webserver.ApiPOST("/auction-details", createAuctionDetail)
	webserver.ApiPUT("/auction-details/:id", updateAuctionDetail)
	webserver.ApiPUT("/auction-details/:id/toggle-sold", toggleAuctionDetailSold)
	webserver.ApiDELETE("/auction-details/:id", deleteAuctionDetail)
}

// checkAuctionOpen enforces the lifecycle gate on a loaded header: every
// mutation of a line item requires its auction to exist and be open. On
// rejection the error envelope is written and false is returned; the caller
// must stop without persisting anything.
func checkAuctionOpen(c echo.Context, header *domain.AuctionHeader, loadErr error) bool {
	if loadErr != nil {
		_ = fail(c, http.StatusNotFound, "NOT_FOUND", "Auction not found", nil)
		return false
	}
	if header.IsClosed {
		_ = fail(c, http.StatusConflict, "AUCTION_CLOSED",
			"Auction is closed; reopen it to modify line items", nil)
		return false
	}
	return true
}

// loadOpenAuction fetches a live auction header through the gate. When ok
// is false the rejection response has already been written.
func loadOpenAuction(c echo.Context, auctionID int64) (header *domain.AuctionHeader, ok bool) {
	var h domain.AuctionHeader
	err := GetDB(c).Where("id = ? AND is_deleted = ?", auctionID, false).First(&h).Error
	if !checkAuctionOpen(c, &h, err) {
		return nil, false
	}
	return &h, true
}

func listAuctionDetails(c echo.Context) error {
	window, err := parseListWindow(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid pagination parameters", err.Error())
	}

	query := GetDB(c).Table("auction_details ad").
		Select("ad.*, ah.name as auction_name, p.name as product_name, "+
			"w1.name as winner1_name, w2.name as winner2_name").
		Joins("LEFT JOIN auction_headers ah ON ad.auction_id = ah.id").
		Joins("LEFT JOIN products p ON ad.product_id = p.id").
		Joins("LEFT JOIN clients w1 ON ad.winner1_client_id = w1.id").
		Joins("LEFT JOIN clients w2 ON ad.winner2_client_id = w2.id").
		Where("ad.is_deleted = ?", false)

	if id, err := parseOptionalID(c, "id"); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid line item ID", nil)
	} else if id != nil {
		query = query.Where("ad.id = ?", *id)
	}
	if auctionId, err := parseOptionalID(c, "auctionId"); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid auction ID", nil)
	} else if auctionId != nil {
		query = query.Where("ad.auction_id = ?", *auctionId)
	}

	var rows []detailRow
	if err := window.apply(query.Order("ad.created_at DESC")).Scan(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query line items", err.Error())
	}
	rows, hasNext := trimProbe(rows, window)

	return ok(c, map[string]interface{}{
		"auctionDetails": rows,
		"hasNextPage":    hasNext,
	})
}

// getAuctionSummary groups one auction's line items by product and totals
// the sold ones.
func getAuctionSummary(c echo.Context) error {
	auctionId, err := parseOptionalID(c, "auctionId")
	if err != nil || auctionId == nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid auction ID", nil)
	}

	var header domain.AuctionHeader
	if err := GetDB(c).Where("id = ? AND is_deleted = ?", *auctionId, false).First(&header).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Auction not found", nil)
	}

	var rows []detailRow
	err = GetDB(c).Table("auction_details ad").
		Select("ad.*, p.name as product_name").
		Joins("LEFT JOIN products p ON ad.product_id = p.id").
		Where("ad.auction_id = ? AND ad.is_deleted = ?", *auctionId, false).
		Order("ad.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query line items", err.Error())
	}

	items := make([]ledger.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, ledger.Item{
			DetailID:    row.ID,
			ProductName: row.ProductName,
			Weight:      row.Weight,
			BidRmb:      row.HighestBidRmb,
			PriceSold:   row.PriceSold,
			IsSold:      row.IsSold,
		})
	}

	summary := ledger.Summarize(items)
	return ok(c, map[string]interface{}{
		"auctionId": header.ID,
		"summary":   summary,
	})
}

func createAuctionDetail(c echo.Context) error {
	var payload auctionDetailPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse line item", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	header, open := loadOpenAuction(c, payload.AuctionId)
	if !open {
		return nil
	}

	date := header.Date
	if payload.Date != "" {
		parsed, err := parseDate(payload.Date)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid line item date", err.Error())
		}
		date = parsed
	}

	priceSold, pricePerKg := ledger.DerivedPrices(payload.HighestBidRmb, payload.Weight, header.ExchangeRate)

	now := time.Now()
	detail := domain.AuctionDetail{
		AuctionId:       payload.AuctionId,
		ProductId:       payload.ProductId,
		Weight:          payload.Weight,
		BagNumber:       strings.TrimSpace(payload.BagNumber),
		NumberOfPieces:  payload.NumberOfPieces,
		Winner1ClientId: payload.Winner1ClientId,
		Winner2ClientId: payload.Winner2ClientId,
		Lot:             strings.TrimSpace(payload.Lot),
		Date:            date,
		HighestBidRmb:   payload.HighestBidRmb,
		PriceSold:       priceSold,
		PricePerKg:      pricePerKg,
		IsSold:          payload.IsSold,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := GetDB(c).Create(&detail).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create line item", err.Error())
	}
	return ok(c, detail)
}

func updateAuctionDetail(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid line item ID", nil)
	}

	var detail domain.AuctionDetail
	if err := GetDB(c).Where("id = ? AND is_deleted = ?", id, false).First(&detail).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Line item not found", nil)
	}

	var payload auctionDetailPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse line item", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	// Gate on the current parent; moving an item between auctions also
	// requires the target to be open.
	header, open := loadOpenAuction(c, detail.AuctionId)
	if !open {
		return nil
	}
	if payload.AuctionId != detail.AuctionId {
		if header, open = loadOpenAuction(c, payload.AuctionId); !open {
			return nil
		}
	}

	date := detail.Date
	if payload.Date != "" {
		if date, err = parseDate(payload.Date); err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid line item date", err.Error())
		}
	}

	priceSold, pricePerKg := ledger.DerivedPrices(payload.HighestBidRmb, payload.Weight, header.ExchangeRate)

	detail.AuctionId = payload.AuctionId
	detail.ProductId = payload.ProductId
	detail.Weight = payload.Weight
	detail.BagNumber = strings.TrimSpace(payload.BagNumber)
	detail.NumberOfPieces = payload.NumberOfPieces
	detail.Winner1ClientId = payload.Winner1ClientId
	detail.Winner2ClientId = payload.Winner2ClientId
	detail.Lot = strings.TrimSpace(payload.Lot)
	detail.Date = date
	detail.HighestBidRmb = payload.HighestBidRmb
	detail.PriceSold = priceSold
	detail.PricePerKg = pricePerKg
	detail.IsSold = payload.IsSold
	detail.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&detail).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update line item", err.Error())
	}
	return ok(c, detail)
}

// toggleAuctionDetailSold flips the sold flag of one line item.
func toggleAuctionDetailSold(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid line item ID", nil)
	}

	var detail domain.AuctionDetail
	if err := GetDB(c).Where("id = ? AND is_deleted = ?", id, false).First(&detail).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Line item not found", nil)
	}
	if _, open := loadOpenAuction(c, detail.AuctionId); !open {
		return nil
	}

	detail.IsSold = !detail.IsSold
	detail.UpdatedAt = time.Now()
	err = GetDB(c).Model(&domain.AuctionDetail{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_sold": detail.IsSold, "updated_at": detail.UpdatedAt}).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update line item", err.Error())
	}
	return ok(c, detail)
}

func deleteAuctionDetail(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid line item ID", nil)
	}

	var detail domain.AuctionDetail
	if err := GetDB(c).Where("id = ? AND is_deleted = ?", id, false).First(&detail).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Line item not found", nil)
	}
	if _, open := loadOpenAuction(c, detail.AuctionId); !open {
		return nil
	}

	err = GetDB(c).Model(&domain.AuctionDetail{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_deleted": true, "updated_at": time.Now()}).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete line item", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}
