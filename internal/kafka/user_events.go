package kafka

import (
	"context"
	"fmt"

	appuser "usermanagement/internal/app/user"
	"usermanagement/internal/config"
	"usermanagement/internal/logging"
)

const (
	UserCreatedType = "UserCreated"
	UserUpdatedType = "UserUpdated"
)

func UsersTopic(prefix string) string {
	return prefix + "users"
}

type userEvents struct {
	bus    Bus
	topic  string
	logger logging.Logger
}

func NewUserEvents(bus Bus, cfg config.KafkaConfig, logger logging.Logger) appuser.Events {
	return &userEvents{
		bus:    bus,
		topic:  UsersTopic(cfg.TopicPrefix),
		logger: logger.With("component", "user_events"),
	}
}

func (e *userEvents) UserCreated(ctx context.Context, u *appuser.UserResponse) error {
	if err := e.bus.Publish(ctx, e.topic, UserCreatedType, u); err != nil {
		return fmt.Errorf("publish UserCreated: %w", err)
	}
	return nil
}

func (e *userEvents) UserUpdated(ctx context.Context, u *appuser.UserResponse) error {
	if err := e.bus.Publish(ctx, e.topic, UserUpdatedType, u); err != nil {
		return fmt.Errorf("publish UserUpdated: %w", err)
	}
	return nil
}
