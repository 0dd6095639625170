package controllers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/kashvi-shop/pkg/ctx"
	"github.com/shashiranjanraj/kashvi-shop/pkg/database"
	"github.com/shashiranjanraj/kashvi-shop/pkg/logger"
	"github.com/shashiranjanraj/kashvi-shop/pkg/resource"
)

type HealthController struct {
	db *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{db: db}
}

// Root is the liveness probe. GET /
func (hc *HealthController) Root(c *ctx.Context) {
	c.Success(resource.Map{"ok": true, "message": "E-commerce API running"})
}

// DBCheck is the readiness probe. GET /dbcheck
func (hc *HealthController) DBCheck(c *ctx.Context) {
	result, err := database.Check(c.Context(), hc.db)
	if err != nil {
		logger.WithCtx(c.Context()).Error("database check failed", "error", err)
		c.Error(http.StatusInternalServerError, "database unavailable")
		return
	}
	c.Success(resource.Map{"db_ok": true, "result": result})
}
