package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/kashvi-shop/app/resources"
	"github.com/shashiranjanraj/kashvi-shop/app/services"
	"github.com/shashiranjanraj/kashvi-shop/pkg/ctx"
	"github.com/shashiranjanraj/kashvi-shop/pkg/orm"
	"github.com/shashiranjanraj/kashvi-shop/pkg/resource"
)

type createProductRequest struct {
	Name        string          `json:"name"        validate:"required,max=200"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"       validate:"required"`
	Stock       int             `json:"stock"       validate:"gte=0"`
	CategoryID  *uint           `json:"category_id" validate:"nullable,gt=0"`
}

func (r createProductRequest) Validate() map[string]string {
	switch {
	case r.Price.IsNegative():
		return map[string]string{"price": "The price must be greater than or equal to 0."}
	case !r.Price.Equal(r.Price.Truncate(2)):
		return map[string]string{"price": "The price may have at most 2 decimal places."}
	}
	return nil
}

type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

// Index lists products. GET /products/?skip=0&limit=50
func (pc *ProductController) Index(c *ctx.Context) {
	skip, err := c.QueryInt("skip", 0)
	if err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return
	}
	limit, err := c.QueryInt("limit", orm.DefaultLimit)
	if err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return
	}

	products, err := pc.products.List(c.Context(), orm.NewWindow(skip, limit))
	if err != nil {
		fail(c, err, "Could not list products")
		return
	}
	c.Success(resource.Many(products, resources.Product))
}

// Show returns one product. GET /products/{id}
func (pc *ProductController) Show(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("Product not found")
		return
	}
	p, err := pc.products.Get(c.Context(), id)
	if err != nil {
		fail(c, err, "Could not load product")
		return
	}
	c.Success(resource.One(p, resources.Product))
}

// Store creates a product. POST /products/
func (pc *ProductController) Store(c *ctx.Context) {
	var in createProductRequest
	if !c.BindJSON(&in) {
		return
	}
	p, err := pc.products.Create(c.Context(), services.NewProduct{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CategoryID:  in.CategoryID,
	})
	if err != nil {
		fail(c, err, "Could not create product")
		return
	}
	c.Created(resource.One(p, resources.Product))
}
