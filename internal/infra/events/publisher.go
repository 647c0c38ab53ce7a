package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Routing keys событий заказа
const (
	KeyOrderCreated   = "order.created"
	KeyOrderStatus    = "order.status_changed"
	KeyOrderCollected = "order.collected"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...any)
	Warn(format string, v ...any)
	Error(format string, v ...any)
}

// Publisher публикует события заказов в topic exchange RabbitMQ
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logs     Logger
}

// NewPublisher подключается к RabbitMQ и объявляет exchange
func NewPublisher(url, exchange string, logs Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("events: NewPublisher - dial: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("events: NewPublisher - open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("events: NewPublisher - declare exchange: %w", err)
	}

	return &Publisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		logs:     logs,
	}, nil
}

// PublishJSON сериализует событие и публикует его с указанным routing key
func (p *Publisher) PublishJSON(ctx context.Context, routingKey string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: PublishJSON - marshal event: %w", err)
	}

	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         payload,
		},
	)
	if err != nil {
		return fmt.Errorf("events: PublishJSON - publish %s: %w", routingKey, err)
	}

	p.logs.Info("[Events] Published %s to %s", routingKey, p.exchange)
	return nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	if err := p.channel.Close(); err != nil {
		return fmt.Errorf("events: Close - close channel: %w", err)
	}
	if err := p.conn.Close(); err != nil {
		return fmt.Errorf("events: Close - close connection: %w", err)
	}
	return nil
}
