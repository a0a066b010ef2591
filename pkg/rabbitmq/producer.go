/**
 * @description
 * This package wraps the RabbitMQ client for publishing account events to a
 * durable topic exchange. The service publishes after each successful state
 * change; consumers (notifications, analytics) bind their own queues.
 *
 * @notes
 * - When the broker is unreachable at startup, main falls back to
 *   EventProducerFallback so the service still starts; events are logged
 *   instead of published.
 */
package rabbitmq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher is the interface implemented by types that can publish events.
type Publisher interface {
	Publish(ctx context.Context, exchange, routingKey string, body interface{}) error
	Close()
}

// EventProducer publishes events to a RabbitMQ topic exchange.
type EventProducer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// EventProducerFallback is a no-op publisher used when RabbitMQ is
// unavailable at startup. It logs events instead of failing hard.
type EventProducerFallback struct{}

func (p *EventProducerFallback) Publish(ctx context.Context, exchange, routingKey string, body interface{}) error {
	log.Printf("[MQ-FALLBACK] Would publish to exchange='%s' routingKey='%s' body=%v", exchange, routingKey, body)
	return nil
}

func (p *EventProducerFallback) Close() {}

// NewEventProducer establishes a connection and channel to RabbitMQ.
func NewEventProducer(amqpURL string) (*EventProducer, error) {
	// Bounded dial timeout so startup does not hang indefinitely.
	conn, err := amqp.DialConfig(amqpURL, amqp.Config{Dial: amqp.DefaultDial(10 * time.Second)})
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &EventProducer{conn: conn, channel: ch}, nil
}

// Publish sends a JSON message to the exchange with the given routing key,
// declaring the exchange (durable topic) if it does not exist yet.
func (p *EventProducer) Publish(ctx context.Context, exchange, routingKey string, body interface{}) error {
	if err := p.channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // autoDelete
		false,    // internal
		false,    // noWait
		nil,      // args
	); err != nil {
		return err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	return p.channel.PublishWithContext(ctx,
		exchange,
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
}

// Close shuts down the channel and connection.
func (p *EventProducer) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
