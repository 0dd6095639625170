// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/shashiranjanraj/kashvi-shop/pkg/validate"
)

// ErrEmptyBody is returned when the request has no body at all.
var ErrEmptyBody = errors.New("request body is empty")

// JSON decodes r.Body as JSON into dest and runs validation.
// Body size is capped by middleware.BodyLimit upstream.
// Returns (errs, nil) when there are validation failures.
// Returns (nil, err) when the body is malformed JSON or too large.
func JSON(r *http.Request, dest any) (errs map[string]string, err error) {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return nil, fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
		case errors.Is(err, io.EOF):
			return nil, ErrEmptyBody
		default:
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	}

	errs = validate.Struct(dest)
	if validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}
