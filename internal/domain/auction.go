package domain

import "time"

// Auction module models.
//
// AuctionHeader.ExchangeRate is RMB per USD ("¥X = $1"); converting a bid
// to USD always divides by the rate. PriceSold/PricePerKg on AuctionDetail
// are derived from the bid and the header rate and must be recomputed
// whenever the header rate changes.

// AuctionHouse holds the commission terms applied to auctions it hosts.
type AuctionHouse struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string    `gorm:"index;size:200" json:"name" form:"name"`
	CommissionRate float64   `json:"commission_rate" form:"commission_rate"` // 0..1
	IsActive       bool      `gorm:"index;default:true" json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName Specify table name
func (AuctionHouse) TableName() string {
	return "auction_houses"
}

// AuctionHeader is one auction event. Lifecycle: created open, close sets
// IsClosed and stamps ClosedAt, reopen clears both. Closing never touches
// line items.
type AuctionHeader struct {
	ID             int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string     `gorm:"index;size:200" json:"name" form:"name"`
	AuctionHouseId int64      `gorm:"index" json:"auction_house_id,string" form:"auction_house_id"`
	NumberOfPeople int        `json:"number_of_people" form:"number_of_people"`
	Date           time.Time  `gorm:"index" json:"date" form:"date"`
	ExchangeRate   float64    `gorm:"default:7.14" json:"exchange_rate" form:"exchange_rate"`
	IsClosed       bool       `gorm:"default:false" json:"is_closed"`
	ClosedAt       *time.Time `json:"closed_at"`
	IsDeleted      bool       `gorm:"index;default:false" json:"is_deleted"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TableName Specify table name
func (AuctionHeader) TableName() string {
	return "auction_headers"
}

// AuctionDetail is a single lot (line item) inside an auction.
type AuctionDetail struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	AuctionId       int64     `gorm:"index" json:"auction_id,string" form:"auction_id"`
	ProductId       *int64    `gorm:"index" json:"product_id,string" form:"product_id"`
	Weight          float64   `json:"weight" form:"weight"` // kilograms
	BagNumber       string    `gorm:"size:100" json:"bag_number" form:"bag_number"`
	NumberOfPieces  int       `json:"number_of_pieces" form:"number_of_pieces"`
	Winner1ClientId *int64    `gorm:"index" json:"winner1_client_id,string" form:"winner1_client_id"`
	Winner2ClientId *int64    `gorm:"index" json:"winner2_client_id,string" form:"winner2_client_id"`
	Lot             string    `gorm:"size:100" json:"lot" form:"lot"`
	Date            time.Time `gorm:"index" json:"date" form:"date"`
	HighestBidRmb   float64   `json:"highest_bid_rmb" form:"highest_bid_rmb"`
	PricePerKg      float64   `json:"price_per_kg"` // derived: price_sold / weight
	PriceSold       float64   `json:"price_sold"`   // derived: highest_bid_rmb / exchange_rate
	IsSold          bool      `gorm:"index;default:false" json:"is_sold"`
	IsDeleted       bool      `gorm:"index;default:false" json:"is_deleted"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName Specify table name
func (AuctionDetail) TableName() string {
	return "auction_details"
}
