// Package routes wires controllers to URLs.
package routes

import (
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/kashvi-shop/app/controllers"
	"github.com/shashiranjanraj/kashvi-shop/app/repositories"
	"github.com/shashiranjanraj/kashvi-shop/app/services"
	"github.com/shashiranjanraj/kashvi-shop/pkg/cache"
	"github.com/shashiranjanraj/kashvi-shop/pkg/ctx"
	"github.com/shashiranjanraj/kashvi-shop/pkg/router"
)

// Deps are the shared resources handlers are built from.
type Deps struct {
	DB           *gorm.DB
	Cache        cache.Store
	CacheTTL     time.Duration
	OrderTimeout time.Duration
}

func RegisterAPI(r *router.Router, d Deps) {
	productRepo := repositories.NewProductRepository(d.DB, d.Cache, d.CacheTTL)
	categoryRepo := repositories.NewCategoryRepository(d.DB)

	health := controllers.NewHealthController(d.DB)
	products := controllers.NewProductController(services.NewProductService(productRepo, categoryRepo))
	categories := controllers.NewCategoryController(services.NewCategoryService(categoryRepo))
	users := controllers.NewUserController(services.NewUserService(repositories.NewUserRepository(d.DB)))
	orders := controllers.NewOrderController(services.NewOrderService(d.DB, productRepo, d.OrderTimeout))

	r.Get("/", "health.root", ctx.Wrap(health.Root))
	r.Get("/dbcheck", "health.db", ctx.Wrap(health.DBCheck))

	p := r.Group("/products")
	p.Get("/", "products.index", ctx.Wrap(products.Index))
	p.Post("/", "products.store", ctx.Wrap(products.Store))
	p.Get("/{id}", "products.show", ctx.Wrap(products.Show))

	c := r.Group("/categories")
	c.Get("/", "categories.index", ctx.Wrap(categories.Index))
	c.Post("/", "categories.store", ctx.Wrap(categories.Store))

	r.Group("/users").Post("/", "users.store", ctx.Wrap(users.Store))

	o := r.Group("/orders")
	o.Post("/", "orders.store", ctx.Wrap(orders.Store))
	o.Get("/{id}", "orders.show", ctx.Wrap(orders.Show))
}
