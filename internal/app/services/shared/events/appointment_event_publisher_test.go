package events

import (
	"context"
	"errors"
	"testing"
	"time"
	"wellness-availability-service/internal/pkg/constvars"
	"wellness-availability-service/internal/pkg/dto/requests"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeConfirmation struct {
	result chan bool
}

func (c *fakeConfirmation) WaitContext(ctx context.Context) (bool, error) {
	select {
	case ack := <-c.result:
		return ack, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

type fakeChannel struct {
	exchange  string
	key       string
	published []amqp.Publishing
	pending   []*fakeConfirmation
	nacked    map[int]bool
	delayed   map[int]bool
	err       error
}

func (f *fakeChannel) Publish(_ context.Context, exchange, key string, msg amqp.Publishing) (confirmation, error) {
	if f.err != nil {
		return nil, f.err
	}
	n := len(f.published)
	f.exchange, f.key = exchange, key
	f.published = append(f.published, msg)

	c := &fakeConfirmation{result: make(chan bool, 1)}
	f.pending = append(f.pending, c)
	if !f.delayed[n] {
		c.result <- !f.nacked[n]
	}
	return c, nil
}

// confirmLate delivers the broker's answer for publish n after its caller
// stopped waiting.
func (f *fakeChannel) confirmLate(n int) {
	f.pending[n].result <- !f.nacked[n]
}

func newFake() *fakeChannel {
	return &fakeChannel{nacked: map[int]bool{}, delayed: map[int]bool{}}
}

func bookedEvent() *requests.AppointmentEvent {
	return &requests.AppointmentEvent{
		Event:           constvars.EventAppointmentBooked,
		AppointmentID:   "a-1",
		ProfessionalID:  "pro-1",
		Date:            "2024-03-05",
		StartTime:       "10:00",
		DurationMinutes: 60,
		Status:          "pending",
	}
}

func TestPublisher_PublishAppointmentEvent(t *testing.T) {
	ctx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "req-1")

	t.Run("confirmed publish", func(t *testing.T) {
		ch := newFake()
		p := newPublisher(ch, "appointments", zap.NewNop())

		require.NoError(t, p.PublishAppointmentEvent(ctx, bookedEvent()))
		require.Len(t, ch.published, 1)
		assert.Equal(t, "appointments", ch.exchange)
		assert.Equal(t, constvars.EventAppointmentBooked, ch.key)

		msg := ch.published[0]
		assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
		assert.Equal(t, "req-1", msg.CorrelationId)

		var decoded requests.AppointmentEvent
		require.NoError(t, json.Unmarshal(msg.Body, &decoded))
		assert.Equal(t, "a-1", decoded.AppointmentID)
	})

	t.Run("nack from broker", func(t *testing.T) {
		ch := newFake()
		ch.nacked[0] = true
		p := newPublisher(ch, "appointments", zap.NewNop())
		assert.Error(t, p.PublishAppointmentEvent(ctx, bookedEvent()))
	})

	t.Run("publish failure", func(t *testing.T) {
		ch := newFake()
		ch.err = errors.New("channel closed")
		p := newPublisher(ch, "appointments", zap.NewNop())
		assert.Error(t, p.PublishAppointmentEvent(ctx, bookedEvent()))
	})

	t.Run("no confirm before deadline", func(t *testing.T) {
		ch := newFake()
		ch.delayed[0] = true
		p := newPublisher(ch, "appointments", zap.NewNop())

		ctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, p.PublishAppointmentEvent(ctx, bookedEvent()), context.DeadlineExceeded)
	})

	t.Run("late confirm does not answer the next publish", func(t *testing.T) {
		ch := newFake()
		ch.delayed[0] = true
		ch.nacked[1] = true
		p := newPublisher(ch, "appointments", zap.NewNop())

		timeoutCtx, cancel := context.WithTimeout(ctx, 5*time.Millisecond)
		defer cancel()
		require.Error(t, p.PublishAppointmentEvent(timeoutCtx, bookedEvent()))

		ch.confirmLate(0)
		assert.Error(t, p.PublishAppointmentEvent(ctx, bookedEvent()), "second publish was nacked")
		assert.NoError(t, p.PublishAppointmentEvent(ctx, bookedEvent()))
		assert.Len(t, ch.published, 3)
	})
}
