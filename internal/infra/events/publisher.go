package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

var (
	// ErrConnect возвращается, когда не удалось подключиться к брокеру
	ErrConnect = errors.New("events: failed to connect to broker")

	// ErrPublish возвращается, когда сообщение не удалось опубликовать
	ErrPublish = errors.New("events: failed to publish message")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher публикует события в topic exchange RabbitMQ.
// Соединение открывается лениво и переоткрывается, если брокер его закрыл.
type Publisher struct {
	url      string
	exchange string
	logger   Logger

	mu   sync.Mutex
	conn *amqp.Connection
}

// NewPublisher создает издателя; подключение к брокеру происходит при первой публикации
func NewPublisher(url, exchange string, logger Logger) *Publisher {
	return &Publisher{
		url:      url,
		exchange: exchange,
		logger:   logger,
	}
}

// PublishStatusChanged публикует событие смены статуса бронирования
func (p *Publisher) PublishStatusChanged(ctx context.Context, event StatusChangedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrPublish, err)
	}

	ch, err := p.channel()
	if err != nil {
		p.logger.Error("Events: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.EventID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, p.exchange, RoutingKeyStatusChanged, false, false, msg); err != nil {
		p.logger.Error("Events: publish reservation id=%d %s->%s failed: %v",
			event.ReservationID, event.FromStatus, event.ToStatus, err)
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	p.logger.Info("Events: published %s for reservation id=%d (%s->%s)",
		RoutingKeyStatusChanged, event.ReservationID, event.FromStatus, event.ToStatus)
	return nil
}

// Close закрывает соединение с брокером
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || p.conn.IsClosed() {
		return nil
	}
	err := p.conn.Close()
	p.conn = nil
	return err
}

func (p *Publisher) channel() (*amqp.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqp.Dial(p.url)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConnect, err)
		}
		p.conn = conn
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	// Объявление идемпотентно; durable, чтобы exchange пережил перезапуск брокера
	if err := ch.ExchangeDeclare(p.exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("%w: declare exchange %s: %v", ErrConnect, p.exchange, err)
	}

	return ch, nil
}

// NoopPublisher используется, когда брокер выключен в конфигурации
type NoopPublisher struct{}

func (NoopPublisher) PublishStatusChanged(context.Context, StatusChangedEvent) error {
	return nil
}
