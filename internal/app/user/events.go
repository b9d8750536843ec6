package user

import "context"

type Events interface {
	UserCreated(ctx context.Context, u *UserResponse) error
	UserUpdated(ctx context.Context, u *UserResponse) error
}

// NoopEvents No-op implementation, used when Kafka is disabled and in tests.
type NoopEvents struct{}

func (NoopEvents) UserCreated(ctx context.Context, u *UserResponse) error { return nil }
func (NoopEvents) UserUpdated(ctx context.Context, u *UserResponse) error { return nil }
