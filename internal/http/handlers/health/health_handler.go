package health

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"

	"usermanagement/internal/http/responses"
	"usermanagement/internal/logging"
)

const (
	statusOK       = "ok"
	statusDown     = "down"
	statusDisabled = "disabled"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// Response is the body of GET /health.
type Response struct {
	Status  string `json:"status"`
	DB      string `json:"db"`
	Redis   string `json:"redis"`
	TraceID string `json:"traceId,omitempty"`
}

type Handler struct {
	db      Pinger
	redis   Pinger
	timeout time.Duration
	logger  logging.Logger
}

// NewHandler builds the health endpoint. redis may be nil when caching is off.
func NewHandler(db Pinger, redis Pinger, logger logging.Logger) *Handler {
	return &Handler{
		db:      db,
		redis:   redis,
		timeout: 2 * time.Second,
		logger:  logger.With("component", "health_handler"),
	}
}

// Check GET /health
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	res := Response{Status: statusOK, DB: statusOK, Redis: statusDisabled}

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Error("database health check failed", "error", err)
		res.DB = statusDown
		res.Status = statusDown
	}

	if h.redis != nil {
		res.Redis = statusOK
		if err := h.redis.Ping(ctx); err != nil {
			h.logger.Error("redis health check failed", "error", err)
			res.Redis = statusDown
			res.Status = statusDown
		}
	}

	if sc := trace.SpanContextFromContext(r.Context()); sc.HasTraceID() {
		res.TraceID = sc.TraceID().String()
	}

	status := http.StatusOK
	if res.Status != statusOK {
		status = http.StatusServiceUnavailable
	}
	responses.WriteJSON(w, status, res)
}
