package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"usermanagement/internal/http/errorhandler"
	"usermanagement/internal/logging"
)

func useBaseMiddlewares(r chi.Router, logger logging.Logger, errs *errorhandler.Handler, timeout time.Duration) {
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// logged outside the recoverer so panics show up with their 500
	r.Use(requestLogger(logger.With("component", "http")))
	r.Use(errs.Recoverer)

	if timeout > 0 {
		r.Use(requestDeadline(timeout))
	}
}

// requestDeadline bounds the request context. It never writes a response;
// a handler that runs out of time returns the context error to the error
// handler like any other failure.
func requestDeadline(timeout time.Duration) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
