// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Requests slower than this are logged even when verbose is off. The
// service layer adds up to 250ms of simulated latency, so the threshold
// sits well above the normal band.
const slowRequestThreshold = time.Second

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (rw *responseWriter) WriteHeader(status int) {
	rw.status = status
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

// RequestLogger returns a middleware that tags each request with a short
// id and logs failures, slow requests, and (when verbose) everything.
// The query string is included because the dashboard encodes its filter
// state there.
func RequestLogger(verbose bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.New().String()[:8]

			w.Header().Set("X-Request-ID", requestID)

			wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)
			if !verbose && wrapped.status < 400 && duration < slowRequestThreshold {
				return
			}

			target := r.URL.Path
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			log.Printf("[%s] %s %s %s %d %d %v",
				requestID,
				getClientIP(r),
				r.Method,
				target,
				wrapped.status,
				wrapped.size,
				duration,
			)
		})
	}
}
