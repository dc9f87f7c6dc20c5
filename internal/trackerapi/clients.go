package trackerapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/auctiontrack/internal/domain"
	"github.com/talkincode/auctiontrack/internal/webserver"
)

type clientPayload struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Email   string `json:"email" validate:"omitempty,email,max=200"`
	Phone   string `json:"phone" validate:"omitempty,max=50"`
	Company string `json:"company" validate:"omitempty,max=200"`
	Address string `json:"address" validate:"omitempty,max=500"`
}

func registerClientRoutes() {
	webserver.ApiGET("/clients", listClients)
	webserver.ApiPOST("/clients", createClient)
	webserver.ApiPUT("/clients/:id", updateClient)
	webserver.ApiDELETE("/clients/:id", deleteClient)
}

func listClients(c echo.Context) error {
	window, err := parseListWindow(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid pagination parameters", err.Error())
	}

	query := GetDB(c).Model(&domain.Client{}).Where("is_deleted = ?", false)
	if id, err := parseOptionalID(c, "id"); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid client ID", nil)
	} else if id != nil {
		query = query.Where("id = ?", *id)
	}

	var rows []domain.Client
	if err := window.apply(query.Order("created_at DESC")).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query clients", err.Error())
	}
	rows, hasNext := trimProbe(rows, window)

	return ok(c, map[string]interface{}{
		"clients":     rows,
		"hasNextPage": hasNext,
	})
}

func createClient(c echo.Context) error {
	var payload clientPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse client", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	now := time.Now()
	client := domain.Client{
		Name:      strings.TrimSpace(payload.Name),
		Email:     strings.TrimSpace(payload.Email),
		Phone:     strings.TrimSpace(payload.Phone),
		Company:   strings.TrimSpace(payload.Company),
		Address:   strings.TrimSpace(payload.Address),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := GetDB(c).Create(&client).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create client", err.Error())
	}
	return ok(c, client)
}

func updateClient(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid client ID", nil)
	}

	var client domain.Client
	if err := GetDB(c).Where("id = ? AND is_deleted = ?", id, false).First(&client).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Client not found", nil)
	}

	var payload clientPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse client", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	client.Name = strings.TrimSpace(payload.Name)
	client.Email = strings.TrimSpace(payload.Email)
	client.Phone = strings.TrimSpace(payload.Phone)
	client.Company = strings.TrimSpace(payload.Company)
	client.Address = strings.TrimSpace(payload.Address)
	client.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&client).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update client", err.Error())
	}
	return ok(c, client)
}

func deleteClient(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid client ID", nil)
	}
	err = GetDB(c).Model(&domain.Client{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_deleted": true, "updated_at": time.Now()}).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete client", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}
