package errorhandler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"usermanagement/internal/domain/common"
	"usermanagement/internal/http/responses"
	"usermanagement/internal/logging"
)

const (
	MsgDuplicateEmail = "A user with this email already exists."
	MsgStorageFailure = "A database error occurred while processing your request."
	MsgUnexpected     = "An unexpected error occurred. Please try again later."
)

// HandlerFunc is an HTTP handler that leaves failures to the error handler.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Classify maps a failure to the status and message sent to the client.
func Classify(err error) (int, string) {
	var (
		invalid  common.InvalidArgumentError
		notFound common.NotFoundError
	)

	switch {
	case common.IsUniqueViolation(err):
		return http.StatusConflict, MsgDuplicateEmail
	case common.IsStorageError(err):
		return http.StatusBadRequest, MsgStorageFailure
	case errors.As(err, &invalid):
		return http.StatusBadRequest, invalid.Message
	case errors.As(err, &notFound):
		return http.StatusNotFound, notFound.Error()
	default:
		return http.StatusInternalServerError, MsgUnexpected
	}
}

type Handler struct {
	logger logging.Logger
}

func New(logger logging.Logger) *Handler {
	return &Handler{logger: logger.With("component", "error_handler")}
}

// Wrap adapts fn to net/http, rendering any returned error.
func (h *Handler) Wrap(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			h.Handle(w, r, err)
		}
	}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := Classify(err)

	fields := []any{
		"error", err,
		"status", status,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", fields...)
	} else {
		h.logger.Info("request rejected", fields...)
	}

	responses.WriteError(w, status, msg)
}

// Recoverer turns a panic into the generic 500 body.
func (h *Handler) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			h.Handle(w, r, fmt.Errorf("panic: %v", rec))
		}()

		next.ServeHTTP(w, r)
	})
}
