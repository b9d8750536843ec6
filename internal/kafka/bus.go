package kafka

import "context"

// Bus publishes a payload wrapped in an Envelope of the given type.
type Bus interface {
	Publish(ctx context.Context, topic string, msgType string, payload any) error
}
