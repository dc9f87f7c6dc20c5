package trackerapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/auctiontrack/internal/domain"
	"github.com/talkincode/auctiontrack/internal/webserver"
)

type productPayload struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	CategoryId  int64   `json:"category_id,string" validate:"omitempty,min=0"`
	Sku         string  `json:"sku" validate:"omitempty,max=100"`
	BasePrice   float64 `json:"base_price" validate:"omitempty,min=0"`
}

// productRow is a product joined with its category name for listings.
type productRow struct {
	domain.Product
	CategoryName string `json:"category_name"`
}

// categoryProductCount is one row of the by-category roll-up.
type categoryProductCount struct {
	CategoryId    int64  `json:"category_id,string"`
	CategoryName  string `json:"category_name"`
	TotalProducts int64  `json:"total_products"`
}

func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/by-category", listProductsByCategory)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
}

func listProducts(c echo.Context) error {
	window, err := parseListWindow(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid pagination parameters", err.Error())
	}

	query := GetDB(c).Table("products p").
		Select("p.*, c.name as category_name").
		Joins("LEFT JOIN categories c ON p.category_id = c.id").
		Where("p.is_deleted = ?", false)

	if id, err := parseOptionalID(c, "id"); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	} else if id != nil {
		query = query.Where("p.id = ?", *id)
	}
	if categoryId, err := parseOptionalID(c, "categoryId"); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	} else if categoryId != nil {
		query = query.Where("p.category_id = ?", *categoryId)
	}

	var rows []productRow
	if err := window.apply(query.Order("p.created_at DESC")).Scan(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	rows, hasNext := trimProbe(rows, window)

	return ok(c, map[string]interface{}{
		"products":    rows,
		"hasNextPage": hasNext,
	})
}

// listProductsByCategory returns live product counts grouped by category.
func listProductsByCategory(c echo.Context) error {
	query := GetDB(c).Table("products p").
		Select("p.category_id, c.name as category_name, count(*) as total_products").
		Joins("INNER JOIN categories c ON p.category_id = c.id").
		Where("p.is_deleted = ?", false).
		Group("p.category_id, c.name").
		Order("c.name ASC")

	if categoryId, err := parseOptionalID(c, "categoryId"); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	} else if categoryId != nil {
		query = query.Where("c.id = ?", *categoryId)
	}

	var rows []categoryProductCount
	if err := query.Scan(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product counts", err.Error())
	}
	return ok(c, map[string]interface{}{"categories": rows})
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	now := time.Now()
	product := domain.Product{
		Name:        strings.TrimSpace(payload.Name),
		Description: strings.TrimSpace(payload.Description),
		CategoryId:  payload.CategoryId,
		Sku:         strings.TrimSpace(payload.Sku),
		BasePrice:   payload.BasePrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := GetDB(c).Create(&product).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", err.Error())
	}
	return ok(c, product)
}

func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	var product domain.Product
	if err := GetDB(c).Where("id = ? AND is_deleted = ?", id, false).First(&product).Error; err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	product.Name = strings.TrimSpace(payload.Name)
	product.Description = strings.TrimSpace(payload.Description)
	product.CategoryId = payload.CategoryId
	product.Sku = strings.TrimSpace(payload.Sku)
	product.BasePrice = payload.BasePrice
	product.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&product).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", err.Error())
	}
	return ok(c, product)
}

func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	err = GetDB(c).Model(&domain.Product{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_deleted": true, "updated_at": time.Now()}).Error
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id})
}
