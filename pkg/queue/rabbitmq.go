package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vidtube/pkg/config"
	"vidtube/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	MediaExchange          = "vidtube.media"
	MediaCleanupQueue      = "media_cleanup"
	MediaCleanupRoutingKey = "media.cleanup"
)

// CleanupTask asks a worker to delete an orphaned media asset.
type CleanupTask struct {
	PublicID string    `json:"public_id"`
	Reason   string    `json:"reason"`
	Attempt  int       `json:"attempt"`
	QueuedAt time.Time `json:"queued_at"`
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.RabbitMQURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareTopology(channel); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func declareTopology(channel *amqp.Channel) error {
	if err := channel.ExchangeDeclare(
		MediaExchange, // name
		"direct",      // type
		true,          // durable
		false,         // auto-deleted
		false,         // internal
		false,         // no-wait
		nil,           // arguments
	); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	if _, err := channel.QueueDeclare(
		MediaCleanupQueue, // name
		true,              // durable
		false,             // delete when unused
		false,             // exclusive
		false,             // no-wait
		nil,               // arguments
	); err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := channel.QueueBind(
		MediaCleanupQueue,
		MediaCleanupRoutingKey,
		MediaExchange,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func (c *Client) PublishCleanupTask(ctx context.Context, task CleanupTask) error {
	if task.QueuedAt.IsZero() {
		task.QueuedAt = time.Now().UTC()
	}

	body, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal task: %w", err)
	}

	err = c.channel.PublishWithContext(ctx,
		MediaExchange,          // exchange
		MediaCleanupRoutingKey, // routing key
		false,                  // mandatory
		false,                  // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish cleanup task for %s: %v", task.PublicID, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Info("[RABBITMQ] Published cleanup task: public_id=%s attempt=%d", task.PublicID, task.Attempt)
	return nil
}

// ConsumeCleanupTasks delivers tasks to handler until ctx is cancelled or the
// channel closes. Malformed messages are dropped; handler errors are acked
// because retries are republished by the handler itself.
func (c *Client) ConsumeCleanupTasks(ctx context.Context, handler func(ctx context.Context, task CleanupTask) error) error {
	msgs, err := c.channel.Consume(
		MediaCleanupQueue, // queue
		"",                // consumer
		false,             // auto-ack
		false,             // exclusive
		false,             // no-local
		false,             // no-wait
		nil,               // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("[RABBITMQ] Started consuming from %s", MediaCleanupQueue)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var task CleanupTask
				if err := json.Unmarshal(msg.Body, &task); err != nil {
					c.logger.Error("[RABBITMQ] Dropping malformed cleanup task: %v", err)
					msg.Nack(false, false)
					continue
				}
				if err := handler(ctx, task); err != nil {
					c.logger.Warn("[RABBITMQ] Cleanup task %s failed: %v", task.PublicID, err)
				}
				msg.Ack(false)
			}
		}
	}()

	return nil
}
