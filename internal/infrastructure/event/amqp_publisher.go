package event

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/flx/storefront/internal/domain/shared"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// DefaultConfirmTimeout bounds how long Publish waits for a broker ack
const DefaultConfirmTimeout = 5 * time.Second

// ErrPublishNacked is returned when the broker refuses a message
var ErrPublishNacked = errors.New("broker nacked the message")

// amqpChannel is the subset of *amqp.Channel the publisher uses
type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	Confirm(noWait bool) error
	NotifyPublish(confirm chan amqp.Confirmation) chan amqp.Confirmation
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes domain events to a durable topic exchange with
// publisher confirms. The routing key is the event type, e.g. "order.placed".
type AMQPPublisher struct {
	conn           io.Closer
	ch             amqpChannel
	confirms       chan amqp.Confirmation
	exchange       string
	serializer     *EventSerializer
	confirmTimeout time.Duration
	logger         *zap.Logger

	mu  sync.Mutex
	tag uint64 // delivery tag of the last publish on this channel
}

// DialAMQPPublisher connects to url and prepares exchange for publishing
func DialAMQPPublisher(url, exchange string, logger *zap.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	p, err := newAMQPPublisher(conn, ch, exchange, logger)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return p, nil
}

func newAMQPPublisher(conn io.Closer, ch amqpChannel, exchange string, logger *zap.Logger) (*AMQPPublisher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	if err := ch.Confirm(false); err != nil {
		return nil, fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	return &AMQPPublisher{
		conn:           conn,
		ch:             ch,
		confirms:       ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
		exchange:       exchange,
		serializer:     NewEventSerializer(),
		confirmTimeout: DefaultConfirmTimeout,
		logger:         logger.Named("amqp"),
	}, nil
}

// Publish sends each event as a persistent JSON message and waits for its confirm.
// It stops at the first event the broker does not accept.
func (p *AMQPPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, ev := range events {
		if err := p.publishOne(ctx, ev); err != nil {
			return fmt.Errorf("publish %s %s: %w", ev.EventType(), ev.EventID(), err)
		}
		p.logger.Debug("Event published",
			zap.String("event_type", ev.EventType()),
			zap.String("event_id", ev.EventID().String()),
		)
	}
	return nil
}

func (p *AMQPPublisher) publishOne(ctx context.Context, ev shared.DomainEvent) error {
	body, err := p.serializer.Serialize(ev)
	if err != nil {
		return err
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, ev.EventType(), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.EventID().String(),
		Type:         ev.EventType(),
		Timestamp:    ev.OccurredAt(),
		Body:         body,
	})
	if err != nil {
		return err
	}
	p.tag++

	timer := time.NewTimer(p.confirmTimeout)
	defer timer.Stop()

	for {
		select {
		case c, ok := <-p.confirms:
			if !ok {
				return errors.New("channel closed before confirm")
			}
			if c.DeliveryTag < p.tag {
				// late confirm for a publish that already timed out
				continue
			}
			if !c.Ack {
				return ErrPublishNacked
			}
			return nil
		case <-timer.C:
			return fmt.Errorf("no confirm within %s", p.confirmTimeout)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close closes the channel and the connection
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	chErr := p.ch.Close()
	var connErr error
	if p.conn != nil {
		connErr = p.conn.Close()
	}
	return errors.Join(chErr, connErr)
}

var _ shared.EventPublisher = (*AMQPPublisher)(nil)
