package models

import "gorm.io/gorm"

// Category groups products in the catalogue.
type Category struct {
	gorm.Model
	Name string `gorm:"size:100;not null;uniqueIndex" json:"name"`
}
