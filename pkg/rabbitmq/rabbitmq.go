package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/streadway/amqp"
	"go.uber.org/zap"
)

// Exchange and queue used for contact-book events.
const (
	Exchange = "kontak.events"
	Queue    = "kontak_audit"
)

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *zap.Logger
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, declares the topic exchange and binds the
// audit queue to every routing key.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declare(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	logger.Info("RabbitMQ client connected", zap.String("exchange", Exchange), zap.String("queue", Queue))

	return &Client{
		conn:    conn,
		channel: ch,
		logger:  logger,
	}, nil
}

func declare(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(
		Exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", Exchange, err)
	}

	if _, err := ch.QueueDeclare(
		Queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", Queue, err)
	}

	if err := ch.QueueBind(Queue, "#", Exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", Queue, err)
	}
	return nil
}

// Close closes the RabbitMQ connection and channel.
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
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// Publish marshals payload to JSON and publishes it as a persistent message
// on the events exchange.
func (c *Client) Publish(ctx context.Context, routingKey string, payload any) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", routingKey, err)
	}

	err = c.channel.Publish(
		Exchange,   // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", routingKey, err)
	}
	return nil
}

// Consume delivers messages of the audit queue to handler until the channel
// closes. A message is acked when handler succeeds and dropped otherwise.
func (c *Client) Consume(handler func(routingKey string, body []byte) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		Queue, // queue
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			if err := handler(msg.RoutingKey, msg.Body); err != nil {
				c.logger.Warn("Error processing event", zap.Uint64("tag", msg.DeliveryTag), zap.Error(err))
				if nackErr := msg.Nack(false, false); nackErr != nil {
					c.logger.Error("Error nacking event", zap.Uint64("tag", msg.DeliveryTag), zap.Error(nackErr))
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				c.logger.Error("Error acking event", zap.Uint64("tag", msg.DeliveryTag), zap.Error(ackErr))
			}
		}
	}()

	return nil
}
