package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/beshgebeya/pos/pkg/logger"
	"github.com/beshgebeya/pos/pkg/response"
)

// Recovery turns a handler panic into a logged 500. It sits after reqid so
// the stack trace carries the request id.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				stack := debug.Stack()
				logger.WithCtx(r.Context()).Error("panic recovered",
					"error", fmt.Sprintf("%v", err),
					"stack", string(stack),
					"method", r.Method,
					"path", r.URL.Path,
				)
				response.InternalError(w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
