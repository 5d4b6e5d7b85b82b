package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"catalog/internal/models"

	amqp "github.com/streadway/amqp"
)

// DefaultQueue is used when Config.Queue is empty.
const DefaultQueue = "product_events"

// Channel is the subset of *amqp.Channel used by the client.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel Channel
	queue   string
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL   string
	Queue string
}

// NewClient connects to RabbitMQ and declares the product events queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	c, err := NewClientWithChannel(ch, cfg.Queue)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	c.conn = conn

	log.Printf("RabbitMQ client connected and %s declared.", c.queue)
	return c, nil
}

// NewClientWithChannel builds a client on an already open channel.
func NewClientWithChannel(ch Channel, queue string) (*Client, error) {
	if queue == "" {
		queue = DefaultQueue
	}
	if _, err := declare(ch, queue); err != nil {
		return nil, err
	}
	return &Client{channel: ch, queue: queue}, nil
}

func declare(ch Channel, queue string) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return amqp.Queue{}, fmt.Errorf("failed to declare %s: %w", queue, err)
	}
	return q, nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	return errors.Join(errs...)
}

// PublishProductEvent publishes a product event as JSON to the events queue.
func (c *Client) PublishProductEvent(_ context.Context, event models.ProductEvent) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal product event: %w", err)
	}

	err = c.channel.Publish(
		"",      // default exchange
		c.queue, // routing key: the queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    event.ID,
			Type:         event.Type,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// ConsumeProductEvents decodes deliveries from the events queue and passes
// them to handler in a background goroutine. A delivery is acked when the
// handler returns nil, and nacked without requeue when it cannot be decoded.
func (c *Client) ConsumeProductEvents(handler func(models.ProductEvent) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	queue, err := declare(c.channel, c.queue)
	if err != nil {
		return err
	}

	msgs, err := c.channel.Consume(
		queue.Name,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			handleDelivery(msg, handler)
		}
	}()
	return nil
}

func handleDelivery(msg amqp.Delivery, handler func(models.ProductEvent) error) {
	var event models.ProductEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Printf("Discarding malformed product event %d: %v", msg.DeliveryTag, err)
		if nackErr := msg.Nack(false, false); nackErr != nil {
			log.Printf("Error nacking message %d: %v", msg.DeliveryTag, nackErr)
		}
		return
	}

	if err := handler(event); err != nil {
		log.Printf("Error processing message %d: %v", msg.DeliveryTag, err)
		if nackErr := msg.Nack(false, true); nackErr != nil {
			log.Printf("Error nacking message %d: %v", msg.DeliveryTag, nackErr)
		}
		return
	}
	if ackErr := msg.Ack(false); ackErr != nil {
		log.Printf("Error acking message %d: %v", msg.DeliveryTag, ackErr)
	}
}
