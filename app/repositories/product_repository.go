package repositories

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/kashvi-shop/app/models"
	"github.com/shashiranjanraj/kashvi-shop/pkg/cache"
	"github.com/shashiranjanraj/kashvi-shop/pkg/orm"
)

// ProductRepository handles database operations for Product. Single-product
// reads go through the cache; everything inside a transaction does not.
type ProductRepository struct {
	db    *gorm.DB
	cache cache.Store
	ttl   time.Duration
}

func NewProductRepository(db *gorm.DB, store cache.Store, ttl time.Duration) *ProductRepository {
	return &ProductRepository{db: db, cache: store, ttl: ttl}
}

// WithTx returns a repository bound to tx with caching disabled.
func (r *ProductRepository) WithTx(tx *gorm.DB) *ProductRepository {
	return &ProductRepository{db: tx}
}

// ProductKey is the cache key of a single product.
func ProductKey(id uint) string {
	return fmt.Sprintf("products:%d", id)
}

// FindByID returns the product with id. Catalogue fields are served from
// cache when possible; stock is always read from the database, because a
// reader that loaded the row before an order committed can write its copy
// back to the cache after the order's Forget.
func (r *ProductRepository) FindByID(ctx context.Context, id uint) (models.Product, error) {
	var p models.Product
	err := orm.Use(r.db.WithContext(ctx), r.cache).
		Model(&models.Product{}).
		Where("id = ?", id).
		Remember(ctx, ProductKey(id), r.ttl, &p)
	if err != nil || r.cache == nil {
		return p, err
	}

	var stock []int
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Pluck("stock", &stock).Error; err != nil {
		return p, err
	}
	if len(stock) == 0 {
		return models.Product{}, gorm.ErrRecordNotFound
	}
	p.Stock = stock[0]
	return p, nil
}

// List returns one page of products ordered by id.
func (r *ProductRepository) List(ctx context.Context, w orm.Window) ([]models.Product, error) {
	products := []models.Product{}
	err := orm.Use(r.db.WithContext(ctx), nil).
		Model(&models.Product{}).
		Order("id").
		Window(w).
		Get(&products)
	return products, err
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// LockForUpdate loads the products with the given ids and holds a row lock
// on each until the surrounding transaction ends. Rows are locked in id order
// so overlapping carts always acquire locks in the same sequence. Missing ids
// are simply absent from the result.
func (r *ProductRepository) LockForUpdate(ids []uint) ([]models.Product, error) {
	var products []models.Product
	err := r.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id").
		Find(&products).Error
	return products, err
}

// DecrementStock removes qty units from a product. It reports false when the
// row no longer has qty units available, leaving stock untouched.
func (r *ProductRepository) DecrementStock(id uint, qty int) (bool, error) {
	res := r.db.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Forget drops the cached copies of the given products.
func (r *ProductRepository) Forget(ctx context.Context, ids ...uint) error {
	if r.cache == nil || len(ids) == 0 {
		return nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = ProductKey(id)
	}
	return r.cache.Del(ctx, keys...)
}
