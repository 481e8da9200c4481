package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	errors "github.com/frahmantamala/hopecare/internal"
	"github.com/frahmantamala/hopecare/pkg/logger"
)

// RecoveryMiddleware turns a panic into a generic 500. The panic value and
// stack only go to the log.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.From(r.Context()).ErrorContext(r.Context(), "panic recovered",
				"error", rec,
				"method", r.Method,
				"url", r.URL.String(),
				"stack", string(debug.Stack()))

			appErr := errors.NewInternalError("internal server error", fmt.Errorf("panic: %v", rec))
			status, body := appErr.ToHTTPResponse()
			writeJSON(w, status, body)
		}()

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
