package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Astemirdum/restaurant-service/restaurant/internal/model"
	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestKafkaPublisher_Publish(t *testing.T) {
	t.Parallel()
	producer := mocks.NewSyncProducer(t, nil)
	defer producer.Close()

	r := model.Reservation{ID: 1717266000000, RestaurantID: 1, RestaurantName: "Golden Dragon"}
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "reservations" {
			return errors.New("unexpected topic " + msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "1717266000000" {
			return errors.New("unexpected key " + string(key))
		}
		raw, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		var e Event
		if err := json.Unmarshal(raw, &e); err != nil {
			return err
		}
		if e.Kind != KindCreated || e.Reservation.RestaurantName != "Golden Dragon" {
			return errors.New("unexpected payload")
		}
		return nil
	})

	p := NewKafkaPublisher(producer, "reservations", zap.NewNop())
	require.NoError(t, p.Publish(context.Background(), New(KindCreated, r)))
}

func TestKafkaPublisher_PublishError(t *testing.T) {
	t.Parallel()
	producer := mocks.NewSyncProducer(t, nil)
	defer producer.Close()
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewKafkaPublisher(producer, "reservations", zap.NewNop())
	err := p.Publish(context.Background(), New(KindCancelled, model.Reservation{ID: 1}))
	require.ErrorIs(t, err, sarama.ErrOutOfBrokers)
}

func TestNew(t *testing.T) {
	t.Parallel()
	e := New(KindUpdated, model.Reservation{ID: 3})
	require.NotEmpty(t, e.ID)
	require.Equal(t, KindUpdated, e.Kind)
	require.NoError(t, Nop{}.Publish(context.Background(), e))
}
