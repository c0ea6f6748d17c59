// Package events публикует события о завершённых сессиях квиза.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/letsssgooo/codeduo/internal/domain/models"
	"github.com/rabbitmq/amqp091-go"
)

// RoutingKeySessionCompleted — ключ маршрутизации события о завершении сессии.
const RoutingKeySessionCompleted = "quiz.session.completed"

// DefaultExchange — топик-обменник по умолчанию.
const DefaultExchange = "codeduo.events"

const publishTimeout = 5 * time.Second

// SessionCompleted — событие о завершённой сессии.
type SessionCompleted struct {
	EventID     string                `json:"event_id"`
	Player      string                `json:"player"`
	QuizID      string                `json:"quiz_id"`
	QuizTitle   string                `json:"quiz_title"`
	Score       int                   `json:"score"`
	MaxStreak   int                   `json:"max_streak"`
	Correct     int                   `json:"correct"`
	Total       int                   `json:"total"`
	Percentage  int                   `json:"percentage"`
	Grade       string                `json:"grade"`
	Rank        int64                 `json:"rank"`
	Answers     []models.AnswerRecord `json:"answers"`
	CompletedAt time.Time             `json:"completed_at"`
}

// Publisher отправляет события.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close() error
}

// amqpChannel — часть *amqp091.Channel, которая нужна издателю.
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// AMQPPublisher публикует JSON в топик-обменник RabbitMQ.
type AMQPPublisher struct {
	conn     *amqp091.Connection
	channel  amqpChannel
	exchange string
}

// NewAMQPPublisher подключается к RabbitMQ и объявляет обменник.
func NewAMQPPublisher(uri, exchange string) (*AMQPPublisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp091.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	err = channel.ExchangeDeclare(exchange, "topic", true, false, false, false, nil)
	if err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &AMQPPublisher{conn: conn, channel: channel, exchange: exchange}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(pubCtx, p.exchange, routingKey, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	slog.Debug("published event", "exchange", p.exchange, "routing_key", routingKey)

	return nil
}

func (p *AMQPPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		return err
	}
	if p.conn != nil {
		return p.conn.Close()
	}

	return nil
}

// LogPublisher пишет события в лог. Используется, когда RabbitMQ не настроен.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	slog.Info("event", "routing_key", routingKey, "body", string(body))

	return nil
}

func (LogPublisher) Close() error {
	return nil
}
