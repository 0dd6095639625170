package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a product in the catalogue. Stock is the number of
// units still available for sale and never drops below zero.
type Product struct {
	gorm.Model
	Name        string          `gorm:"size:200;not null;index"                   json:"name"`
	Description string          `gorm:"type:text"                                 json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"               json:"price"`
	Stock       int             `gorm:"not null;default:0;check:stock >= 0"       json:"stock"`
	CategoryID  *uint           `gorm:"index"                                     json:"category_id"`
	Category    *Category       `gorm:"constraint:OnDelete:SET NULL"              json:"-"`
}
