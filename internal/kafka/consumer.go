package kafka

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"usermanagement/internal/cache"
	"usermanagement/internal/logging"
)

type userRef struct {
	ID int64 `json:"id"`
}

// NewCacheInvalidationHandler evicts cached users when another instance
// reports an update. Undecodable messages are acked and dropped.
func NewCacheInvalidationHandler(userCache cache.UserCache, logger logging.Logger) message.NoPublishHandlerFunc {
	log := logger.With("component", "user_cache_invalidator")

	return func(msg *message.Message) error {
		env, err := DecodeEnvelope(msg.Payload)
		if err != nil {
			log.Error("dropping malformed message", "uuid", msg.UUID, "error", err)
			return nil
		}

		if env.Type != UserUpdatedType {
			return nil
		}

		var ref userRef
		if err := json.Unmarshal(env.Payload, &ref); err != nil || ref.ID == 0 {
			log.Error("dropping UserUpdated without id", "uuid", msg.UUID, "error", err)
			return nil
		}

		if err := userCache.Delete(msg.Context(), ref.ID); err != nil {
			return fmt.Errorf("evict user %d: %w", ref.ID, err)
		}

		log.Debug("evicted user from cache", "id", ref.ID, "messageId", env.MessageID)
		return nil
	}
}
