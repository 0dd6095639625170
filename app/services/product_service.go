package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/kashvi-shop/app/models"
	"github.com/shashiranjanraj/kashvi-shop/app/repositories"
	"github.com/shashiranjanraj/kashvi-shop/pkg/orm"
)

// ProductView is a product together with its category name, if any.
type ProductView struct {
	models.Product
	CategoryName *string
}

// NewProduct is the input of ProductService.Create.
type NewProduct struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	CategoryID  *uint
}

type ProductService struct {
	products   *repositories.ProductRepository
	categories *repositories.CategoryRepository
}

func NewProductService(products *repositories.ProductRepository, categories *repositories.CategoryRepository) *ProductService {
	return &ProductService{products: products, categories: categories}
}

func (s *ProductService) List(ctx context.Context, w orm.Window) ([]ProductView, error) {
	products, err := s.products.List(ctx, w)
	if err != nil {
		return nil, err
	}
	return s.withCategories(ctx, products...)
}

func (s *ProductService) Get(ctx context.Context, id uint) (ProductView, error) {
	p, err := s.products.FindByID(ctx, id)
	if orm.IsNotFound(err) {
		return ProductView{}, notFound("Product not found")
	}
	if err != nil {
		return ProductView{}, err
	}
	views, err := s.withCategories(ctx, p)
	if err != nil {
		return ProductView{}, err
	}
	return views[0], nil
}

func (s *ProductService) Create(ctx context.Context, in NewProduct) (ProductView, error) {
	if in.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *in.CategoryID); err != nil {
			if orm.IsNotFound(err) {
				return ProductView{}, invalid("Category not found")
			}
			return ProductView{}, err
		}
	}

	if !in.Price.Equal(in.Price.Truncate(2)) {
		return ProductView{}, invalid("Price may have at most 2 decimal places")
	}

	p := models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CategoryID:  in.CategoryID,
	}
	if err := s.products.Create(ctx, &p); err != nil {
		return ProductView{}, err
	}
	views, err := s.withCategories(ctx, p)
	if err != nil {
		return ProductView{}, err
	}
	return views[0], nil
}

// withCategories resolves category names with one explicit lookup.
func (s *ProductService) withCategories(ctx context.Context, products ...models.Product) ([]ProductView, error) {
	var ids []uint
	for _, p := range products {
		if p.CategoryID != nil {
			ids = append(ids, *p.CategoryID)
		}
	}
	names, err := s.categories.NamesByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]ProductView, len(products))
	for i, p := range products {
		views[i] = ProductView{Product: p}
		if p.CategoryID != nil {
			if name, ok := names[*p.CategoryID]; ok {
				views[i].CategoryName = &name
			}
		}
	}
	return views, nil
}
