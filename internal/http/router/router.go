package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"usermanagement/internal/config"
	"usermanagement/internal/http/apidocs"
	"usermanagement/internal/http/errorhandler"
	"usermanagement/internal/http/handlers/health"
	userhandler "usermanagement/internal/http/handlers/user"
	"usermanagement/internal/http/responses"
	"usermanagement/internal/logging"
)

func NewRouter(
	logger logging.Logger,
	cfg config.HTTPConfig,
	errs *errorhandler.Handler,
	healthHandler *health.Handler,
	userHandler *userhandler.Handler,
) chi.Router {
	r := chi.NewRouter()

	useBaseMiddlewares(r, logger, errs, cfg.RequestTimeout)

	r.Get("/health", healthHandler.Check)
	r.Get("/swagger/*", apidocs.Handler())

	users := func(r chi.Router) {
		r.Get("/", errs.Wrap(userHandler.List))
		r.Post("/", errs.Wrap(userHandler.Create))
		r.Get("/{id:[0-9]+}", errs.Wrap(userHandler.GetByID))
		r.Put("/{id:[0-9]+}", errs.Wrap(userHandler.Update))
	}
	r.Route("/users", users)
	r.Route("/api/users", users)

	r.NotFound(responses.WriteNotFound)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	})

	return r
}
