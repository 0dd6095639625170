package controllers

import (
	"github.com/shashiranjanraj/kashvi-shop/app/resources"
	"github.com/shashiranjanraj/kashvi-shop/app/services"
	"github.com/shashiranjanraj/kashvi-shop/pkg/ctx"
	"github.com/shashiranjanraj/kashvi-shop/pkg/resource"
)

type createCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type CategoryController struct {
	categories *services.CategoryService
}

func NewCategoryController(categories *services.CategoryService) *CategoryController {
	return &CategoryController{categories: categories}
}

func (cc *CategoryController) Index(c *ctx.Context) {
	all, err := cc.categories.List(c.Context())
	if err != nil {
		fail(c, err, "Could not list categories")
		return
	}
	c.Success(resource.Many(all, resources.Category))
}

func (cc *CategoryController) Store(c *ctx.Context) {
	var in createCategoryRequest
	if !c.BindJSON(&in) {
		return
	}
	cat, err := cc.categories.Create(c.Context(), in.Name)
	if err != nil {
		fail(c, err, "Could not create category")
		return
	}
	c.Created(resource.One(cat, resources.Category))
}
