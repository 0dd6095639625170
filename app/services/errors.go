package services

import (
	"errors"
	"fmt"
)

// Kinds of order placement failure. Match with errors.Is.
var (
	ErrInvalidRequest    = errors.New("invalid request")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInternal          = errors.New("internal error")
)

// CRUD failures shared by the catalogue and user services.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// OrderError is returned by OrderService.PlaceOrder. Detail is safe to show
// to clients; Err holds the underlying cause for logs only.
type OrderError struct {
	Kind      error
	ProductID uint
	Detail    string
	Err       error
}

func (e *OrderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Detail, e.Err)
	}
	return e.Detail
}

func (e *OrderError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// Client reports whether the failure was caused by the request rather than
// by the server.
func (e *OrderError) Client() bool {
	return e.Kind != ErrInternal
}

func invalidRequest(format string, args ...any) *OrderError {
	return &OrderError{Kind: ErrInvalidRequest, Detail: fmt.Sprintf(format, args...)}
}

func productNotFound(id uint) *OrderError {
	return &OrderError{Kind: ErrProductNotFound, ProductID: id, Detail: fmt.Sprintf("Product %d not found", id)}
}

func insufficientStock(id uint) *OrderError {
	return &OrderError{Kind: ErrInsufficientStock, ProductID: id, Detail: fmt.Sprintf("Insufficient stock for product %d", id)}
}

func internal(err error) *OrderError {
	return &OrderError{Kind: ErrInternal, Detail: "Could not place order", Err: err}
}

// FieldError is a CRUD failure with a client-facing message.
type FieldError struct {
	Kind   error
	Detail string
}

func (e *FieldError) Error() string { return e.Detail }

func (e *FieldError) Unwrap() error { return e.Kind }

func conflict(detail string) error {
	return &FieldError{Kind: ErrConflict, Detail: detail}
}

func invalid(detail string) error {
	return &FieldError{Kind: ErrInvalidRequest, Detail: detail}
}

func notFound(detail string) error {
	return &FieldError{Kind: ErrNotFound, Detail: detail}
}
