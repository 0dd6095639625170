package repositories

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/kashvi-shop/app/models"
)

// OrderRepository handles database operations for Order and OrderItem.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) WithTx(tx *gorm.DB) *OrderRepository {
	return &OrderRepository{db: tx}
}

// Create inserts the order header; o.ID is populated on return.
func (r *OrderRepository) Create(o *models.Order) error {
	return r.db.Omit("Items", "User").Create(o).Error
}

func (r *OrderRepository) AddItem(item *models.OrderItem) error {
	return r.db.Omit("Product").Create(item).Error
}

func (r *OrderRepository) SetTotal(orderID uint, total decimal.Decimal) error {
	return r.db.Model(&models.Order{}).Where("id = ?", orderID).Update("total_amount", total).Error
}

// FindWithItems loads an order and its items ordered by item id.
func (r *OrderRepository) FindWithItems(ctx context.Context, id uint) (models.Order, error) {
	var o models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&o, id).Error
	return o, err
}
