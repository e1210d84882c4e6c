package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/educursus/internal/application/service"
	"github.com/khoahotran/educursus/internal/config"
	"github.com/khoahotran/educursus/internal/domain/gamification"
	"github.com/khoahotran/educursus/pkg/logger"
)

const TopicGamificationEvents = "gamification.events"

type KafkaProducerClient struct {
	GamificationEventsWriter *kafka.Writer
	logger                   logger.Logger
}

var _ service.EventPublisher = (*KafkaProducerClient)(nil)

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	// writer 'gamification.events'
	gamificationWriter := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  TopicGamificationEvents,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}

	log.Info("Initialize Kafka Producers successfully.", zap.Strings("brokers", brokers))

	return &KafkaProducerClient{
		GamificationEventsWriter: gamificationWriter,
		logger:                   log,
	}, nil
}

// PublishGamificationEvent writes e keyed by student so one student's events stay ordered.
func (c *KafkaProducerClient) PublishGamificationEvent(ctx context.Context, e gamification.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal gamification event: %w", err)
	}

	err = c.GamificationEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.StudentID.String()),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("failed to write gamification event: %w", err)
	}

	c.logger.Debug("Published gamification event",
		zap.String("event_id", e.ID.String()),
		zap.String("type", string(e.Type)),
	)
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.GamificationEventsWriter != nil {
		if err := c.GamificationEventsWriter.Close(); err != nil {
			c.logger.Error("Failed to close gamification writer", err)
		}
	}
	c.logger.Info("Closed Kafka Producers")
}
