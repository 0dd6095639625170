package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/kashvi-shop/app/services"
	"github.com/shashiranjanraj/kashvi-shop/pkg/ctx"
	"github.com/shashiranjanraj/kashvi-shop/pkg/logger"
)

// fail maps a service error to an HTTP response. Unknown errors are logged
// and answered with internalDetail so nothing from the database leaks.
func fail(c *ctx.Context, err error, internalDetail string) {
	var oerr *services.OrderError
	if errors.As(err, &oerr) {
		if oerr.Client() {
			c.Error(http.StatusBadRequest, oerr.Detail)
		} else {
			c.Error(http.StatusInternalServerError, oerr.Detail)
		}
		return
	}

	var ferr *services.FieldError
	if errors.As(err, &ferr) {
		if errors.Is(ferr, services.ErrNotFound) {
			c.NotFound(ferr.Detail)
		} else {
			c.Error(http.StatusBadRequest, ferr.Detail)
		}
		return
	}

	logger.WithCtx(c.Context()).Error(internalDetail, "error", err)
	c.Error(http.StatusInternalServerError, internalDetail)
}
