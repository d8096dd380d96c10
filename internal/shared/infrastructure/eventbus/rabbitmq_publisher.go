package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/felixgeelhaar/taskflow/pkg/observability"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// ExchangeName is the topic exchange task change events are published to.
	ExchangeName = "taskflow.task.events"

	// AppID identifies TaskFlow as the producer of a message.
	AppID = "taskflow"

	// SchemaVersion is sent in HeaderSchema so consumers can detect payload changes.
	SchemaVersion = "1"

	HeaderSchema    = "x-taskflow-schema"
	HeaderAggregate = "x-taskflow-aggregate"

	defaultConfirmTimeout = 5 * time.Second
)

var (
	// ErrPublisherClosed is returned by Publish after Close.
	ErrPublisherClosed = errors.New("event publisher is closed")
	// ErrNotConfirmed is returned when the broker nacks a message.
	ErrNotConfirmed = errors.New("broker did not confirm message")
)

// RabbitMQPublisher publishes task change events to a durable topic exchange
// and waits for the broker to confirm each one.
type RabbitMQPublisher struct {
	conn           *amqp.Connection
	channel        *amqp.Channel
	exchange       string
	confirmTimeout time.Duration
	logger         *slog.Logger

	mu     sync.Mutex
	closed bool
}

// NewRabbitMQPublisher dials url, declares the task exchange and puts the
// channel into confirm mode.
func NewRabbitMQPublisher(url string, logger *slog.Logger) (*RabbitMQPublisher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(ExchangeName, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", ExchangeName, err)
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	logger.Info("event publisher connected", "exchange", ExchangeName)

	return &RabbitMQPublisher{
		conn:           conn,
		channel:        ch,
		exchange:       ExchangeName,
		confirmTimeout: defaultConfirmTimeout,
		logger:         logger,
	}, nil
}

// NewMessage builds the AMQP message for a task event payload. The routing
// key doubles as the message type; the correlation id comes from ctx.
func NewMessage(ctx context.Context, routingKey string, payload []byte) amqp.Publishing {
	return amqp.Publishing{
		ContentType:   "application/json",
		DeliveryMode:  amqp.Persistent,
		MessageId:     uuid.New().String(),
		CorrelationId: observability.CorrelationIDFromContext(ctx),
		Type:          routingKey,
		AppId:         AppID,
		Timestamp:     time.Now().UTC(),
		Headers: amqp.Table{
			HeaderSchema:    SchemaVersion,
			HeaderAggregate: "Task",
		},
		Body: payload,
	}
}

// Publish sends payload under routingKey and blocks until the broker confirms
// it or the confirm timeout passes.
func (p *RabbitMQPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPublisherClosed
	}

	msg := NewMessage(ctx, routingKey, payload)
	confirm, err := p.channel.PublishWithDeferredConfirmWithContext(ctx, p.exchange, routingKey, false, false, msg)
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", routingKey, err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, p.confirmTimeout)
	defer cancel()
	acked, err := confirm.WaitContext(waitCtx)
	if err != nil {
		return fmt.Errorf("failed to confirm %s: %w", routingKey, err)
	}
	if !acked {
		return fmt.Errorf("%w: %s", ErrNotConfirmed, routingKey)
	}

	p.logger.DebugContext(ctx, "event published",
		"routing_key", routingKey,
		"message_id", msg.MessageId,
		"size", len(payload),
	)
	return nil
}

// Close closes the channel and connection. It is safe to call more than once.
func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	if err := p.channel.Close(); err != nil {
		p.logger.Warn("error closing channel", "error", err)
	}
	return p.conn.Close()
}
