package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/kashvi-shop/app/models"
	"github.com/shashiranjanraj/kashvi-shop/pkg/orm"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	err := orm.Use(r.db.WithContext(ctx), nil).Where("id = ?", id).First(&user)
	return user, err
}

// UsernameTaken reports whether a user with username exists.
func (r *UserRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username = ?", username)
}

// EmailTaken reports whether a user with email exists.
func (r *UserRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

func (r *UserRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where(query, arg).Count(&n).Error
	return n > 0, err
}

// Create persists a new user record.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}
