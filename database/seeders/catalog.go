package seeders

import (
	"io"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/kashvi-shop/app/models"
)

func init() {
	Register("catalog", SeedCatalog)
}

type demoProduct struct {
	name, description, price string
	stock                    int
}

var demoCatalog = map[string][]demoProduct{
	"Electronics": {
		{"USB-C Cable", "1m braided cable", "4.99", 120},
		{"Wireless Mouse", "2.4GHz, silent clicks", "19.90", 40},
		{"Mechanical Keyboard", "Tenkeyless, brown switches", "79.00", 15},
	},
	"Books": {
		{"The Go Programming Language", "Donovan & Kernighan", "34.50", 25},
		{"Designing Data-Intensive Applications", "Kleppmann", "42.00", 10},
	},
	"Home": {
		{"Coffee Mug", "350ml ceramic", "7.25", 60},
		{"Desk Lamp", "LED, adjustable arm", "24.00", 5},
	},
}

var demoCategoryOrder = []string{"Electronics", "Books", "Home"}

// SeedCatalog creates the demo categories and their products. Categories and
// products are matched by name, so existing rows are left alone.
func SeedCatalog(db *gorm.DB, _ io.Writer) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, name := range demoCategoryOrder {
			cat := models.Category{Name: name}
			if err := tx.Where("name = ?", name).FirstOrCreate(&cat).Error; err != nil {
				return err
			}
			for _, d := range demoCatalog[name] {
				p := models.Product{
					Name:        d.name,
					Description: d.description,
					Price:       decimal.RequireFromString(d.price),
					Stock:       d.stock,
					CategoryID:  &cat.ID,
				}
				if err := tx.Where("name = ?", d.name).FirstOrCreate(&p).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
