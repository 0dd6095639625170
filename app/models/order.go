package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending = "pending"
)

// Order is a placed purchase. TotalAmount always equals the sum of the
// line totals of its items.
type Order struct {
	gorm.Model
	UserID      uint            `gorm:"not null;index"                             json:"user_id"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"      json:"total_amount"`
	Status      string          `gorm:"size:30;not null;default:pending"           json:"status"`
	Items       []OrderItem     `gorm:"constraint:OnDelete:CASCADE"                json:"items,omitempty"`
	User        *User           `gorm:"constraint:OnDelete:RESTRICT"               json:"-"`
}

// OrderItem records one cart line at the price in effect when the order
// was placed.
type OrderItem struct {
	gorm.Model
	OrderID   uint            `gorm:"not null;index"             json:"order_id"`
	ProductID uint            `gorm:"not null;index"             json:"product_id"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Quantity  int             `gorm:"not null"                   json:"quantity"`
	LineTotal decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"line_total"`
	Product   *Product        `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}
