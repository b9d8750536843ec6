package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/ThreeDotsLabs/watermill-kafka/v3/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/garsue/watermillzap"

	"usermanagement/internal/cache"
	"usermanagement/internal/config"
	"usermanagement/internal/logging"
)

type Router struct {
	router *message.Router
}

func NewRouter(
	cfg config.KafkaConfig,
	userCache cache.UserCache,
	baseLogger logging.Logger,
) (*Router, error) {
	if !cfg.Enabled {
		return &Router{router: nil}, nil
	}

	wmlogger := watermillzap.NewLogger(logging.AsZap(baseLogger))

	subCfg := kafka.SubscriberConfig{
		Brokers:       cfg.Brokers,
		Unmarshaler:   kafka.DefaultMarshaler{},
		ConsumerGroup: cfg.GroupID,
		OverwriteSaramaConfig: func() *sarama.Config {
			c := kafka.DefaultSaramaSubscriberConfig()
			c.ClientID = cfg.ClientID
			return c
		}(),
		InitializeTopicDetails: &sarama.TopicDetail{
			NumPartitions:     3,
			ReplicationFactor: 1,
		},
		NackResendSleep:     5 * time.Second,
		ReconnectRetrySleep: 10 * time.Second,
	}

	subscriber, err := kafka.NewSubscriber(subCfg, wmlogger)
	if err != nil {
		return nil, fmt.Errorf("create kafka subscriber: %w", err)
	}

	return newRouter(subscriber, UsersTopic(cfg.TopicPrefix), userCache, baseLogger)
}

func newRouter(
	subscriber message.Subscriber,
	usersTopic string,
	userCache cache.UserCache,
	baseLogger logging.Logger,
) (*Router, error) {
	router, err := message.NewRouter(message.RouterConfig{}, watermillzap.NewLogger(logging.AsZap(baseLogger)))
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	router.AddConsumerHandler(
		"user-cache-invalidation",
		usersTopic,
		subscriber,
		NewCacheInvalidationHandler(userCache, baseLogger),
	)

	return &Router{router: router}, nil
}

func (r *Router) Run(ctx context.Context) error {
	if r.router == nil {
		return nil // Kafka disabled
	}
	return r.router.Run(ctx)
}

// Running is closed once all handlers are subscribed. Nil when disabled.
func (r *Router) Running() chan struct{} {
	if r.router == nil {
		return nil
	}
	return r.router.Running()
}

func (r *Router) Close(ctx context.Context) error {
	if r.router == nil {
		return nil
	}
	return r.router.Close()
}
