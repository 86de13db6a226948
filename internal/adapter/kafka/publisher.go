// Package kafka publishes campaign events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"local-ads/internal/config/configs"
	"local-ads/internal/core/domain"
)

// writer is the part of kafka.Writer the publisher uses.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher implements port.EventPublisher. Events are keyed by campaign id
// so all changes of one campaign land on the same partition in order.
type Publisher struct {
	w writer
}

// NewPublisher creates a publisher writing to cfg.Topic on cfg.Brokers.
func NewPublisher(cfg configs.Kafka) *Publisher {
	return &Publisher{w: &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}}
}

func (p *Publisher) Publish(ctx context.Context, event domain.CampaignEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(strconv.FormatInt(event.CampaignID, 10)),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kafkago.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	})
}

// Close flushes pending messages and releases the writer.
func (p *Publisher) Close() error {
	return p.w.Close()
}
