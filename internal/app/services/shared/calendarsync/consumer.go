package calendarsync

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
	"golang.org/x/time/rate"
)

// Consumer applies calendar sync messages from a durable queue. Deliveries
// are acknowledged only after the blocks are stored; transient failures are
// requeued and malformed messages are dropped.
type Consumer struct {
	ch           *amqp.Channel
	queue        string
	blockUsecase contracts.BlockUsecase
	limiter      *rate.Limiter
	log          *zap.Logger
	done         chan struct{}
}

func NewConsumer(conn *amqp.Connection, cfg config.CalendarSync, blockUsecase contracts.BlockUsecase, log *zap.Logger) (*Consumer, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if _, err := ch.QueueDeclare(cfg.Queue, true, false, false, false, nil); err != nil {
		return nil, err
	}

	prefetch := cfg.Prefetch
	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}

	consumer := newConsumer(blockUsecase, cfg.MessagesPerSecond, log)
	consumer.ch = ch
	consumer.queue = cfg.Queue
	return consumer, nil
}

func newConsumer(blockUsecase contracts.BlockUsecase, messagesPerSecond int, log *zap.Logger) *Consumer {
	limit := rate.Inf
	if messagesPerSecond > 0 {
		limit = rate.Limit(messagesPerSecond)
	}
	return &Consumer{
		blockUsecase: blockUsecase,
		limiter:      rate.NewLimiter(limit, 1),
		log:          log,
		done:         make(chan struct{}),
	}
}

// Start begins consuming in a goroutine. It returns once the broker accepted
// the subscription.
func (c *Consumer) Start(ctx context.Context) error {
	deliveries, err := c.ch.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
	if err != nil {
		close(c.done)
		return exceptions.ErrRabbitMQConsume(err)
	}
	c.log.Info("calendarsync.Consumer started", zap.String(constvars.LoggingQueueKey, c.queue))
	go c.run(ctx, deliveries)
	return nil
}

// Stop closes the channel and waits for the in-flight message.
func (c *Consumer) Stop() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	<-c.done
}

func (c *Consumer) run(ctx context.Context, deliveries <-chan amqp.Delivery) {
	defer close(c.done)
	for d := range deliveries {
		if err := c.limiter.Wait(ctx); err != nil {
			_ = d.Nack(false, true)
			return
		}
		c.handle(ctx, d)
	}
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	requestID := d.CorrelationId
	if requestID == "" {
		requestID = utils.GenerateRequestID()
	}
	ctx = context.WithValue(ctx, constvars.CONTEXT_REQUEST_ID_KEY, requestID)
	logger := c.log.With(
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Uint64(constvars.LoggingDeliveryTagKey, d.DeliveryTag),
	)

	var message requests.CalendarSyncMessage
	if err := json.Unmarshal(d.Body, &message); err != nil {
		logger.Error("calendarsync.Consumer dropping malformed message", zap.Error(err))
		_ = d.Nack(false, false)
		return
	}

	result, err := c.blockUsecase.SyncExternalBlocks(ctx, &message)
	if err != nil {
		requeue := !errors.Is(err, exceptions.ErrInvalidInput)
		logger.Warn("calendarsync.Consumer sync failed",
			zap.Bool("requeue", requeue),
			zap.Error(err),
		)
		// Redelivered messages are dropped to avoid a poison loop.
		_ = d.Nack(false, requeue && !d.Redelivered)
		return
	}

	logger.Info("calendarsync.Consumer sync applied",
		zap.String(constvars.LoggingProfessionalIDKey, message.ProfessionalID),
		zap.String(constvars.LoggingCalendarIDKey, message.CalendarID),
		zap.Int(constvars.LoggingBlocksCountKey, result.Upserted),
		zap.Int64(constvars.LoggingDeletedCountKey, result.Removed),
	)
	_ = d.Ack(false)
}
