package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/kashvi-shop/app/models"
	"github.com/shashiranjanraj/kashvi-shop/pkg/migration"
)

func init() {
	migration.Register("20250101000000_create_categories_table", &CreateCategoriesTable{})
	migration.Register("20250101000001_create_products_table", &CreateProductsTable{})
}

type CreateCategoriesTable struct{}

func (m *CreateCategoriesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Category{})
}

func (m *CreateCategoriesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("categories")
}

// CreateProductsTable adds products with a non-negative stock check and a
// nullable reference to categories.
type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}
