package events

import (
	"context"
	"errors"
	"wellness-availability-service/internal/app/config"
	"wellness-availability-service/internal/app/contracts"
	"wellness-availability-service/internal/pkg/constvars"
	"wellness-availability-service/internal/pkg/dto/requests"
	"wellness-availability-service/internal/pkg/exceptions"
	"wellness-availability-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var (
	errNotConfirmed     = errors.New("message not confirmed")
	errNotInConfirmMode = errors.New("channel is not in confirm mode")
)

// confirmation is the broker's answer to exactly one publish.
type confirmation interface {
	WaitContext(ctx context.Context) (bool, error)
}

type publishChannel interface {
	Publish(ctx context.Context, exchange, key string, msg amqp.Publishing) (confirmation, error)
}

// confirmingChannel publishes with a deferred confirmation per message, so
// a confirm that arrives after its caller gave up is never read by a later
// publish.
type confirmingChannel struct {
	ch *amqp.Channel
}

func (c confirmingChannel) Publish(ctx context.Context, exchange, key string, msg amqp.Publishing) (confirmation, error) {
	deferred, err := c.ch.PublishWithDeferredConfirmWithContext(ctx, exchange, key, false, false, msg)
	if err != nil {
		return nil, err
	}
	if deferred == nil {
		return nil, errNotInConfirmMode
	}
	return deferred, nil
}

// Publisher sends appointment lifecycle events to a durable topic exchange,
// routed by event name, and waits for the broker confirm.
type Publisher struct {
	ch       publishChannel
	exchange string
	log      *zap.Logger
}

// NewPublisher declares the exchange and the queue bound to every appointment
// event, then switches the channel into confirm mode.
func NewPublisher(conn *amqp.Connection, cfg config.Events, log *zap.Logger) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	if err := ch.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // kind
		true,         // durable
		false,        // autoDelete
		false,        // internal
		false,        // noWait
		nil,          // args
	); err != nil {
		return nil, err
	}

	if cfg.Queue != "" {
		if _, err := ch.QueueDeclare(cfg.Queue, true, false, false, false, nil); err != nil {
			return nil, err
		}
		if err := ch.QueueBind(cfg.Queue, "appointment.#", cfg.Exchange, false, nil); err != nil {
			return nil, err
		}
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return newPublisher(confirmingChannel{ch: ch}, cfg.Exchange, log), nil
}

func newPublisher(ch publishChannel, exchange string, log *zap.Logger) *Publisher {
	return &Publisher{
		ch:       ch,
		exchange: exchange,
		log:      log,
	}
}

var _ contracts.EventPublisher = (*Publisher)(nil)

func (p *Publisher) PublishAppointmentEvent(ctx context.Context, event *requests.AppointmentEvent) error {
	requestID := utils.GetRequestID(ctx)
	p.log.Info("Publisher.PublishAppointmentEvent called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventKey, event.Event),
		zap.String(constvars.LoggingAppointmentIDKey, event.AppointmentID),
	)

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	msg := amqp.Publishing{
		ContentType:   constvars.MIMEApplicationJSON,
		Body:          body,
		DeliveryMode:  amqp.Persistent,
		MessageId:     utils.GenerateID(),
		CorrelationId: requestID,
		Type:          event.Event,
	}
	confirmed, err := p.ch.Publish(ctx, p.exchange, event.Event, msg)
	if err != nil {
		return exceptions.ErrRabbitMQPublish(err)
	}

	acked, err := confirmed.WaitContext(ctx)
	if err != nil {
		return exceptions.ErrRabbitMQPublish(err)
	}
	if !acked {
		return exceptions.ErrRabbitMQPublish(errNotConfirmed)
	}
	return nil
}
