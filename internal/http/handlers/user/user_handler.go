package user

import (
	"net/http"

	appuser "usermanagement/internal/app/user"
	"usermanagement/internal/http/responses"
	"usermanagement/internal/logging"
)

type Handler struct {
	service appuser.Service
	logger  logging.Logger
}

func NewHandler(service appuser.Service, logger logging.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With("component", "user_http_handler"),
	}
}

// List GET /users
func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	users, err := h.service.GetAll(r.Context())
	if err != nil {
		return err
	}

	responses.WriteJSON(w, http.StatusOK, users)
	return nil
}

// Create POST /users
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	var req appuser.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	dto, err := h.service.Create(r.Context(), req)
	if err != nil {
		return err
	}

	h.logger.Debug("user created", "id", dto.Id)
	responses.WriteJSON(w, http.StatusOK, dto)
	return nil
}

// GetByID GET /users/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) error {
	id, ok := userID(r)
	if !ok {
		responses.WriteNotFound(w, r)
		return nil
	}

	dto, err := h.service.GetById(r.Context(), id)
	if err != nil {
		return err
	}
	if dto == nil {
		responses.WriteNotFound(w, r)
		return nil
	}

	responses.WriteJSON(w, http.StatusOK, dto)
	return nil
}

// Update PUT /users/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) error {
	id, ok := userID(r)
	if !ok {
		responses.WriteNotFound(w, r)
		return nil
	}

	var req appuser.UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	dto, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		return err
	}
	if dto == nil {
		responses.WriteNotFound(w, r)
		return nil
	}

	h.logger.Debug("user updated", "id", id)
	responses.WriteJSON(w, http.StatusOK, dto)
	return nil
}
