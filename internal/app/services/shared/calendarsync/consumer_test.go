package calendarsync

import (
	"context"
	"errors"
	"testing"
	"wellness-availability-service/internal/app/contracts"
	"wellness-availability-service/internal/pkg/dto/requests"
	"wellness-availability-service/internal/pkg/exceptions"
	"wellness-availability-service/internal/pkg/mocks"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type recordingAcknowledger struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (a *recordingAcknowledger) Ack(uint64, bool) error { a.acked = true; return nil }

func (a *recordingAcknowledger) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacked, a.requeue = true, requeue
	return nil
}

func (a *recordingAcknowledger) Reject(_ uint64, requeue bool) error {
	a.nacked, a.requeue = true, requeue
	return nil
}

const replaceMessage = `{"professional_id":"pro-1","calendar_id":"cal-1","mode":"replace","periods":[{"external_id":"e-1","start":"2024-03-05T12:00","end":"2024-03-05T13:00"}]}`

func delivery(ack amqp.Acknowledger, body string, redelivered bool) amqp.Delivery {
	return amqp.Delivery{Acknowledger: ack, DeliveryTag: 7, Body: []byte(body), Redelivered: redelivered, CorrelationId: "corr-1"}
}

func TestConsumer_Handle(t *testing.T) {
	isReplace := mock.MatchedBy(func(m *requests.CalendarSyncMessage) bool {
		return m.ProfessionalID == "pro-1" && m.Mode == requests.CalendarSyncModeReplace && len(m.Periods) == 1
	})

	tests := []struct {
		name        string
		body        string
		redelivered bool
		result      *contracts.SyncResult
		err         error
		wantAck     bool
		wantRequeue bool
	}{
		{name: "applied", body: replaceMessage, result: &contracts.SyncResult{Upserted: 1}, wantAck: true},
		{name: "transient failure is requeued", body: replaceMessage, err: exceptions.ErrAvailabilityReadFailed(errors.New("timeout"), "blocks"), wantRequeue: true},
		{name: "redelivered failure is dropped", body: replaceMessage, redelivered: true, err: errors.New("mongo down")},
		{name: "invalid message is dropped", body: replaceMessage, err: exceptions.ErrInputValidation(errors.New("mode"))},
		{name: "malformed json is dropped", body: `{"professional_id":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := new(mocks.MockBlockUsecase)
			blocks.On("SyncExternalBlocks", mock.Anything, isReplace).Return(tt.result, tt.err)
			c := newConsumer(blocks, 0, zap.NewNop())

			ack := &recordingAcknowledger{}
			c.handle(context.Background(), delivery(ack, tt.body, tt.redelivered))

			assert.Equal(t, tt.wantAck, ack.acked)
			assert.Equal(t, !tt.wantAck, ack.nacked)
			assert.Equal(t, tt.wantRequeue, ack.requeue)
		})
	}
}

func TestConsumer_RunDrainsDeliveries(t *testing.T) {
	blocks := new(mocks.MockBlockUsecase)
	blocks.On("SyncExternalBlocks", mock.Anything, mock.Anything).Return(&contracts.SyncResult{}, nil)
	c := newConsumer(blocks, 1000, zap.NewNop())

	deliveries := make(chan amqp.Delivery, 3)
	acks := []*recordingAcknowledger{{}, {}, {}}
	for _, a := range acks {
		deliveries <- delivery(a, replaceMessage, false)
	}
	close(deliveries)

	c.run(context.Background(), deliveries)
	<-c.done

	for _, a := range acks {
		assert.True(t, a.acked)
	}
	blocks.AssertNumberOfCalls(t, "SyncExternalBlocks", 3)
}
