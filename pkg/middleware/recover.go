package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/shashiranjanraj/kashvi-shop/pkg/logger"
	"github.com/shashiranjanraj/kashvi-shop/pkg/response"
)

// Recovery turns a panic in a downstream handler into a logged stack trace
// and a 500 {"detail": "Internal Server Error"}. Place it after Logger so the
// panic is logged with the request ID.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.WithCtx(r.Context()).Error("panic recovered",
				"error", fmt.Sprintf("%v", rec),
				"stack", string(debug.Stack()),
				"method", r.Method,
				"path", r.URL.Path,
			)
			response.InternalError(w, "")
		}()
		next.ServeHTTP(w, r)
	})
}
