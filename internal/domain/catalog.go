package domain

import "time"

// Catalog reference entities: categories and the products they group.

type Category struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"index;size:200" json:"name" form:"name"`
	Description string    `gorm:"size:500" json:"description" form:"description"`
	IsDeleted   bool      `gorm:"index;default:false" json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Category) TableName() string {
	return "categories"
}

type Product struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"index;size:200" json:"name" form:"name"`
	Description string    `gorm:"size:500" json:"description" form:"description"`
	CategoryId  int64     `gorm:"index" json:"category_id,string" form:"category_id"`
	Sku         string    `gorm:"size:100" json:"sku" form:"sku"`
	BasePrice   float64   `json:"base_price" form:"base_price"`
	IsDeleted   bool      `gorm:"index;default:false" json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}
