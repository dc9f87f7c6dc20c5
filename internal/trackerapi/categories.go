package trackerapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/auctiontrack/internal/domain"
	"github.com/talkincode/auctiontrack/internal/webserver"
)

type categoryPayload struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

func registerCategoryRoutes() {
	webserver.ApiGET("/categories", listCategories)
	webserver.ApiPOST("/categories", createCategory)
	webserver.ApiPUT("/categories/:id", updateCategory)
	webserver.ApiDELETE("/categories/:id", deleteCategory)
}

func listCategories(c echo.Context) error {
	window, err := parseListWindow(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid pagination parameters", err.Error())
	}

	query := GetDB(c).Model(&domain.Category{}).Where("is_deleted = ?", false)
	if id, err := parseOptionalID(c, "id"); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	} else if id != nil {
		query = query.Where("id = ?", *id)
	}

	var rows []domain.Category
	if err := window.apply(query.Order("created_at DESC")).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query categories", err.Error())
	}
	rows, hasNext := trimProbe(rows, window)

	return ok(c, map[string]interface{}{
		"categories":  rows,
		"hasNextPage": hasNext,
	})
}

func createCategory(c echo.Context) error {
	var payload categoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	now := time.Now()
	category := domain.Category{
		Name:        strings.TrimSpace(payload.Name),
		Description: strings.TrimSpace(payload.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := GetDB(c).Create(&category).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create category", err.Error())
	}
	return ok(c, category)
}

func updateCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	}

	var category domain.Category
	if err := GetDB(c).Where("id = ? AND is_deleted = ?", id, false).First(&category).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Category not found", nil)
	}

	var payload categoryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	category.Name = strings.TrimSpace(payload.Name)
	category.Description = strings.TrimSpace(payload.Description)
	category.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&category).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update category", err.Error())
	}
	return ok(c, category)
}

func deleteCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	}
	err = GetDB(c).Model(&domain.Category{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_deleted": true, "updated_at": time.Now()}).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete category", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}
