// Package ctx provides a request context for handlers.
//
// Instead of accepting (http.ResponseWriter, *http.Request), a handler
// receives a single *Context with helpers for params, binding and
// responses:
//
//	func (pc *ProductController) Show(c *ctx.Context) {
//	    id, ok := c.ParamUint("id")
//	    ...
//	    c.Success(product)
//	}
//
//	router.Get("/products/{id}", "products.show", ctx.Wrap(pc.Show))
package ctx

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/kashvi-shop/pkg/bind"
	"github.com/shashiranjanraj/kashvi-shop/pkg/response"
	"github.com/shashiranjanraj/kashvi-shop/pkg/validate"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// Context wraps a request/response pair.
type Context struct {
	W      http.ResponseWriter
	R      *http.Request
	status int
}

var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W, c.R, c.status = w, r, 0
	return c
}

func release(c *Context) {
	c.W, c.R = nil, nil
	pool.Put(c)
}

// Param returns a URL path parameter (e.g. "/products/{id}" → c.Param("id")).
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// ParamUint parses a positive integer path parameter.
func (c *Context) ParamUint(key string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// Query returns a query-string value, or "" if not present.
func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

// QueryInt parses an integer query parameter, returning def when absent.
func (c *Context) QueryInt(key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def, fmt.Errorf("query parameter %q must be an integer", key)
	}
	return n, nil
}

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// BindJSON decodes the JSON body into dest and runs validation.
// On validation failure it sends a 422 and returns false.
// On a decode error it sends a 400 and returns false.
//
//	var input CreateProductRequest
//	if !c.BindJSON(&input) {
//	    return // response already sent
//	}
func (c *Context) BindJSON(dest any) bool {
	errs, err := bind.JSON(c.R, dest)
	if err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return false
	}
	if validate.HasErrors(errs) {
		c.ValidationError(errs)
		return false
	}
	return true
}

// JSON writes v with the given status code.
func (c *Context) JSON(code int, v any) {
	c.status = code
	response.JSON(c.W, code, v)
}

// Success sends a 200.
func (c *Context) Success(v any) { c.JSON(http.StatusOK, v) }

// Created sends a 201.
func (c *Context) Created(v any) { c.JSON(http.StatusCreated, v) }

// Error sends {"detail": detail} with the given status.
func (c *Context) Error(code int, detail string) {
	c.JSON(code, response.ErrorBody{Detail: detail})
}

// ValidationError sends a 422 with field-level errors.
func (c *Context) ValidationError(errs map[string]string) {
	c.JSON(http.StatusUnprocessableEntity, response.ErrorBody{Detail: "Validation failed", Errors: errs})
}

// NotFound sends a 404.
func (c *Context) NotFound(detail string) {
	c.Error(http.StatusNotFound, detail)
}

// WrittenStatus returns the status written so far, or 0.
func (c *Context) WrittenStatus() int { return c.status }
