package main

import (
	"context"
	"os/signal"
	"syscall"
	"trek/config"
	"trek/infras/kafka"
	"trek/internal/domains/booking/model"
	"trek/shared/logger"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Surfaces captured payments whose booking write did not land. Each record is
// keyed by payment reference, so redeliveries collapse onto the same case.
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := kafka.New(cfg)

	log.Info().Str("topic", cfg.Kafka.Topics.Reconciliation).Msg("Reconciliation consumer starting.")

	client.Consume(ctx, cfg.Kafka.ConsumerGroup, cfg.Kafka.Topics.Reconciliation, func(msg kafkaGo.Message) {
		decoded, err := kafka.DecodeKafkaMessage[model.ReconciliationEvent](msg)
		if err != nil {
			log.Error().Err(err).Str("key", string(msg.Key)).Msg("Failed to decode reconciliation record.")

			return
		}

		record, ok := decoded.Value.(model.ReconciliationEvent)
		if !ok {
			log.Error().Str("key", decoded.Key).Msg("Unexpected reconciliation record payload.")

			return
		}

		log.Warn().
			Str("payment_reference", record.PaymentReference).
			Str("session_id", record.SessionID).
			Str("reason", record.Reason).
			Msg("Payment captured without a durable booking, manual reconciliation required.")
	})
}
