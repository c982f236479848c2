package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/Astemirdum/restaurant-service/restaurant/internal/model"
	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Kind string

const (
	KindCreated   Kind = "created"
	KindUpdated   Kind = "updated"
	KindCancelled Kind = "cancelled"
)

type Event struct {
	ID          string            `json:"id"`
	Kind        Kind              `json:"kind"`
	Reservation model.Reservation `json:"reservation"`
	OccurredAt  time.Time         `json:"occurredAt"`
}

func New(kind Kind, r model.Reservation) Event {
	return Event{
		ID:          uuid.NewString(),
		Kind:        kind,
		Reservation: r,
		OccurredAt:  time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *zap.Logger
}

func NewKafkaPublisher(producer sarama.SyncProducer, topic string, log *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
		log:      log.Named("events"),
	}
}

// Publish keys messages by reservation id so events of one reservation
// stay ordered within a partition.
func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(e.Reservation.ID, 10)),
		Value: sarama.ByteEncoder(data),
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return err
	}
	p.log.Debug("published", zap.String("kind", string(e.Kind)),
		zap.Int32("partition", partition), zap.Int64("offset", offset))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
