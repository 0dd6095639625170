package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/kashvi-shop/app/models"
	"github.com/shashiranjanraj/kashvi-shop/pkg/orm"
)

// CategoryRepository handles database operations for Category.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	err := orm.Use(r.db.WithContext(ctx), nil).Model(&models.Category{}).Order("id").Get(&categories)
	return categories, err
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uint) (models.Category, error) {
	var c models.Category
	err := orm.Use(r.db.WithContext(ctx), nil).Where("id = ?", id).First(&c)
	return c, err
}

func (r *CategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Where("name = ?", name).Count(&n).Error
	return n > 0, err
}

func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// NamesByID maps each existing category id among ids to its name.
func (r *CategoryRepository) NamesByID(ctx context.Context, ids []uint) (map[uint]string, error) {
	names := make(map[uint]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var rows []models.Category
	if err := r.db.WithContext(ctx).Select("id", "name").Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, c := range rows {
		names[c.ID] = c.Name
	}
	return names, nil
}
