package services

import (
	"context"

	"github.com/shashiranjanraj/kashvi-shop/app/models"
	"github.com/shashiranjanraj/kashvi-shop/app/repositories"
)

type CategoryService struct {
	categories *repositories.CategoryRepository
}

func NewCategoryService(categories *repositories.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

// Create adds a category; names are unique.
func (s *CategoryService) Create(ctx context.Context, name string) (models.Category, error) {
	taken, err := s.categories.ExistsByName(ctx, name)
	if err != nil {
		return models.Category{}, err
	}
	if taken {
		return models.Category{}, conflict("category exists")
	}
	c := models.Category{Name: name}
	if err := s.categories.Create(ctx, &c); err != nil {
		return models.Category{}, err
	}
	return c, nil
}
