package bus

//go:generate go run go.uber.org/mock/mockgen -source=./bus.go -destination=./mocks/bus_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Bus is the ambient event port. The identity webhook publishes
// "became authenticated" events on it; the checkout state machine subscribes.
// Every server instance sharing the Redis deployment receives each event, so a
// magic link opened against another instance still advances the original
// checkout session.
type Bus interface {
	Publish(ctx context.Context, channel string, payload any) error
	Subscribe(ctx context.Context, channel string, handler func(ctx context.Context, payload []byte))
}

type redisBus struct {
	client *redis.Client
}

func NewRedisBus(client *redis.Client) Bus {
	return &redisBus{client: client}
}

func (b *redisBus) Publish(ctx context.Context, channel string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("channel", channel).Msg("failed to marshal bus payload")

		return fmt.Errorf("failed to marshal bus payload: %w", err)
	}

	if err := b.client.Publish(ctx, channel, value).Err(); err != nil {
		log.Error().Err(err).Str("channel", channel).Msg("failed to publish bus event")

		return fmt.Errorf("failed to publish bus event: %w", err)
	}

	return nil
}

func (b *redisBus) Subscribe(ctx context.Context, channel string, handler func(ctx context.Context, payload []byte)) {
	sub := b.client.Subscribe(ctx, channel)

	go func() {
		defer func() {
			if err := sub.Close(); err != nil {
				log.Error().Err(err).Str("channel", channel).Msg("failed to close bus subscription")
			}
		}()

		for {
			select {
			case <-ctx.Done():
				log.Info().Str("channel", channel).Msg("Bus subscription context done.")

				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}

				log.Info().Str("channel", channel).Msg("Received bus event.")

				go handler(ctx, []byte(msg.Payload))
			}
		}
	}()
}
