package api

import (
	"context"
	"net/http"
	"time"
)

const timeoutBody = `<!DOCTYPE html><html><body><h1>Request timeout</h1><p>The request took too long to process. Please try again.</p></body></html>`

// TimeoutMiddleware adds request timeout to prevent long-running requests
func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		withDeadline := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
		return http.TimeoutHandler(withDeadline, timeout, timeoutBody)
	}
}
