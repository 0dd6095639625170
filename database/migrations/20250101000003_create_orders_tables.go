package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/kashvi-shop/app/models"
	"github.com/shashiranjanraj/kashvi-shop/pkg/migration"
)

func init() {
	migration.Register("20250101000003_create_orders_tables", &CreateOrdersTables{})
}

// CreateOrdersTables creates orders and order_items together so the
// cascading foreign key from order_items to orders is created with them.
type CreateOrdersTables struct{}

func (m *CreateOrdersTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.OrderItem{})
}

func (m *CreateOrdersTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("order_items", "orders")
}
