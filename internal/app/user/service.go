package user

import (
	"context"
	"encoding/json"
	"fmt"
	"usermanagement/internal/cache"
	dom "usermanagement/internal/domain/user"
	"usermanagement/internal/logging"
)

// Service orchestrates the user use cases. Lookups that find nothing return
// (nil, nil); errors are reserved for failures.
type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error)
	Update(ctx context.Context, id int64, req UpdateUserRequest) (*UserResponse, error)
	GetById(ctx context.Context, id int64) (*UserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
}

type service struct {
	repo   dom.Repository
	cache  cache.UserCache
	events Events
	logger logging.Logger
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, fmt.Errorf("list users: %w", err)
	}

	return toDTOs(users), nil
}

func (s *service) GetById(ctx context.Context, id int64) (*UserResponse, error) {
	// 1) Check cache
	if data, err := s.cache.GetByID(ctx, id); err == nil && data != nil {
		var dto UserResponse
		uerr := json.Unmarshal(data, &dto)
		if uerr == nil {
			return &dto, nil
		}
		s.logger.Error("failed to unmarshal user from cache", "error", uerr, "id", id)
	} else if err != nil {
		s.logger.Error("failed to get user from cache", "error", err, "id", id)
	}

	// 2) Fallback to DB
	u, err := s.repo.GetById(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, nil
	}

	dto := toDTO(u)
	s.fillCache(ctx, dto)

	return dto, nil
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	u := &dom.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}

	created, err := s.repo.Create(ctx, u)
	if err != nil {
		if IsDuplicateEmail(err) {
			s.logger.Info("email already in use", "email", req.Email)
		} else {
			s.logger.Error("failed to create user", "error", err, "email", req.Email)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	dto := toDTO(created)
	s.cacheUser(ctx, dto)

	if err := s.events.UserCreated(ctx, dto); err != nil {
		s.logger.Error("failed to publish UserCreated event", "error", err, "id", dto.Id)
	}

	return dto, nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateUserRequest) (*UserResponse, error) {
	u, err := s.repo.GetById(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return nil, nil
	}

	u.FirstName = req.FirstName
	u.LastName = req.LastName
	u.Email = req.Email

	updated, err := s.repo.Update(ctx, u)
	if err != nil {
		if IsDuplicateEmail(err) {
			s.logger.Info("email already in use", "email", req.Email, "id", id)
		} else {
			s.logger.Error("failed to update user", "error", err, "id", id)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	dto := toDTO(updated)
	s.cacheUser(ctx, dto)

	if err := s.events.UserUpdated(ctx, dto); err != nil {
		s.logger.Error("failed to publish UserUpdated event", "error", err, "id", dto.Id)
	}

	return dto, nil
}

// cacheUser stores the result of a write. Cache writes are best-effort; a
// cache outage never fails the request.
func (s *service) cacheUser(ctx context.Context, dto *UserResponse) {
	data, ok := s.marshalForCache(dto)
	if !ok {
		return
	}
	if err := s.cache.Set(ctx, dto.Id, data); err != nil {
		s.logger.Error("failed to set user cache", "error", err, "id", dto.Id)
	}
}

// fillCache stores a read result unless a write has cached a newer one meanwhile.
func (s *service) fillCache(ctx context.Context, dto *UserResponse) {
	data, ok := s.marshalForCache(dto)
	if !ok {
		return
	}
	if _, err := s.cache.SetIfAbsent(ctx, dto.Id, data); err != nil {
		s.logger.Error("failed to fill user cache", "error", err, "id", dto.Id)
	}
}

func (s *service) marshalForCache(dto *UserResponse) ([]byte, bool) {
	data, err := json.Marshal(dto)
	if err != nil {
		s.logger.Error("failed to marshal user for cache", "error", err, "id", dto.Id)
		return nil, false
	}
	return data, true
}

func NewService(
	repo dom.Repository,
	cache cache.UserCache,
	events Events,
	logger logging.Logger,
) Service {
	return &service{
		repo:   repo,
		cache:  cache,
		events: events,
		logger: logger.With("component", "user_service"),
	}
}
