package domain

import "time"

// Client represents a buyer identity referenced by auction line items
// as winner1/winner2.
type Client struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"index;size:200" json:"name" form:"name"`
	Email     string    `gorm:"size:200" json:"email" form:"email"`
	Phone     string    `gorm:"size:50" json:"phone" form:"phone"`
	Company   string    `gorm:"size:200" json:"company" form:"company"`
	Address   string    `gorm:"size:500" json:"address" form:"address"`
	IsDeleted bool      `gorm:"index;default:false" json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Client) TableName() string {
	return "clients"
}
