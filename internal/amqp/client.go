package amqp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

type Client struct {
	conn          *amqp091.Connection
	channel       *amqp091.Channel
	exchangeName  string
	reminderQueue string
	alertQueue    string
}

func NewClient(url, exchangeName, reminderQueue, alertQueue string) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	client := &Client{
		conn:          conn,
		channel:       channel,
		exchangeName:  exchangeName,
		reminderQueue: reminderQueue,
		alertQueue:    alertQueue,
	}

	if err := client.setup(); err != nil {
		client.Close()
		return nil, fmt.Errorf("setup exchange and queues: %w", err)
	}

	return client, nil
}

func (c *Client) setup() error {
	// Declare exchange
	err := c.channel.ExchangeDeclare(
		c.exchangeName, // name
		"direct",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	for _, queue := range []string{c.reminderQueue, c.alertQueue} {
		// Declare queue
		_, err = c.channel.QueueDeclare(
			queue, // name
			true,  // durable
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // arguments
		)
		if err != nil {
			return fmt.Errorf("declare queue %s: %w", queue, err)
		}

		// Bind queue to exchange, routing key same as queue name
		err = c.channel.QueueBind(
			queue,          // queue name
			queue,          // routing key
			c.exchangeName, // exchange
			false,
			nil,
		)
		if err != nil {
			return fmt.Errorf("bind queue %s: %w", queue, err)
		}
	}

	return nil
}

// PublishBillReminder publishes a reminder for a bill due soon
func (c *Client) PublishBillReminder(ctx context.Context, msg *BillReminderMessage) error {
	if err := c.publish(ctx, c.reminderQueue, msg); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Published bill reminder",
		"bill_id", msg.BillID,
		"due_date", msg.DueDate,
		"queue", c.reminderQueue)
	return nil
}

// PublishBudgetAlert publishes an alert for a budget past its threshold
func (c *Client) PublishBudgetAlert(ctx context.Context, msg *BudgetAlertMessage) error {
	if err := c.publish(ctx, c.alertQueue, msg); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Published budget alert",
		"budget_id", msg.BudgetID,
		"status", msg.Status,
		"queue", c.alertQueue)
	return nil
}

type jsonMessage interface {
	ToJSON() ([]byte, error)
}

func (c *Client) publish(ctx context.Context, routingKey string, msg jsonMessage) error {
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		ctx,
		c.exchangeName, // exchange
		routingKey,     // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	return nil
}

// ConsumeBillReminders consumes reminder messages with manual ack
func (c *Client) ConsumeBillReminders(ctx context.Context, handler func(*BillReminderMessage) error) error {
	return c.consume(ctx, c.reminderQueue, func(body []byte) error {
		msg, err := BillReminderMessageFromJSON(body)
		if err != nil {
			return fmt.Errorf("%w: %v", errBadMessage, err)
		}
		return handler(msg)
	})
}

// ConsumeBudgetAlerts consumes alert messages with manual ack
func (c *Client) ConsumeBudgetAlerts(ctx context.Context, handler func(*BudgetAlertMessage) error) error {
	return c.consume(ctx, c.alertQueue, func(body []byte) error {
		msg, err := BudgetAlertMessageFromJSON(body)
		if err != nil {
			return fmt.Errorf("%w: %v", errBadMessage, err)
		}
		return handler(msg)
	})
}

var errBadMessage = errors.New("malformed message")

func (c *Client) consume(ctx context.Context, queue string, handle func([]byte) error) error {
	msgs, err := c.channel.Consume(
		queue, // queue
		"",    // consumer
		false, // auto-ack (we want manual ack)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	slog.InfoContext(ctx, "Started consuming", "queue", queue)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping message consumption", "queue", queue, "reason", ctx.Err())
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return fmt.Errorf("message channel closed")
			}

			if err := handle(delivery.Body); err != nil {
				// Malformed payloads are dropped, handler failures requeued.
				requeue := !errors.Is(err, errBadMessage)
				slog.ErrorContext(ctx, "Failed to handle message",
					"error", err,
					"queue", queue,
					"requeue", requeue)
				delivery.Nack(false, requeue)
				continue
			}

			delivery.Ack(false)
		}
	}
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
