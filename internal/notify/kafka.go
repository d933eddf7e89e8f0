package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"jobboard/internal/domain/event"
	"jobboard/internal/observability"
)

// KafkaPublisher hands notification events to an external worker queue.
// Nil-safe: a nil publisher or writer drops events, and publish errors are
// logged but never returned to the state change that produced the event.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger observability.Logger
}

func NewKafkaPublisher(broker, topic string, logger observability.Logger) *KafkaPublisher {
	if broker == "" {
		return nil
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(broker),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			WriteTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

func (p *KafkaPublisher) Publish(e event.Event) error {
	if p == nil || p.writer == nil {
		return nil
	}
	value, err := json.Marshal(e)
	if err != nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(string(e.SubjectType) + "." + e.Name),
		Value: value,
		Time:  time.Now(),
	}); err != nil && p.logger != nil {
		p.logger.Error("event publish failed: " + err.Error())
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
