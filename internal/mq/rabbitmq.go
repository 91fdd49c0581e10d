package mq

import (
	"CloudVault/config"
	"context"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeEvents = "audit.exchange"
	ExchangeRetry  = "audit.retry.exchange"
	ExchangeDLQ    = "audit.dlq.exchange"

	QueueEvents = "audit.queue"
	QueueRetry  = "audit.retry.queue"
	QueueDLQ    = "audit.dlq.queue"

	RoutingEvent = "audit"
	RoutingRetry = "audit.retry"
	RoutingDLQ   = "audit.dlq"
)

type Client struct {
	Conn      *amqp.Connection
	Channel   *amqp.Channel
	publishMu sync.Mutex
}

var publisherMu sync.Mutex
var publisher *Client

func Dial() (*Client, error) {
	conn, err := amqp.Dial(config.AppConfig.RabbitMQURL)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &Client{Conn: conn, Channel: ch}, nil
}

func GetPublisher() (*Client, error) {
	publisherMu.Lock()
	defer publisherMu.Unlock()
	if publisher != nil {
		if !publisher.Conn.IsClosed() && !publisher.Channel.IsClosed() {
			return publisher, nil
		}
		publisher.Close()
		publisher = nil
	}
	client, err := Dial()
	if err != nil {
		return nil, err
	}
	if err := client.DeclareTopology(); err != nil {
		client.Close()
		return nil, err
	}
	publisher = client
	return publisher, nil
}

func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.Channel != nil {
		_ = c.Channel.Close()
	}
	if c.Conn != nil {
		_ = c.Conn.Close()
	}
}

func (c *Client) DeclareTopology() error {
	if err := c.Channel.ExchangeDeclare(
		ExchangeEvents,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return err
	}
	if err := c.Channel.ExchangeDeclare(
		ExchangeRetry,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return err
	}
	if err := c.Channel.ExchangeDeclare(
		ExchangeDLQ,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return err
	}
	if _, err := c.Channel.QueueDeclare(
		QueueEvents,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return err
	}
	if _, err := c.Channel.QueueDeclare(
		QueueRetry,
		true,
		false,
		false,
		false,
		amqp.Table{
			"x-dead-letter-exchange":    ExchangeEvents,
			"x-dead-letter-routing-key": RoutingEvent,
		},
	); err != nil {
		return err
	}
	if _, err := c.Channel.QueueDeclare(
		QueueDLQ,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return err
	}
	if err := c.Channel.QueueBind(
		QueueEvents,
		RoutingEvent,
		ExchangeEvents,
		false,
		nil,
	); err != nil {
		return err
	}
	if err := c.Channel.QueueBind(
		QueueRetry,
		RoutingRetry,
		ExchangeRetry,
		false,
		nil,
	); err != nil {
		return err
	}
	if err := c.Channel.QueueBind(
		QueueDLQ,
		RoutingDLQ,
		ExchangeDLQ,
		false,
		nil,
	); err != nil {
		return err
	}
	return nil
}

func (c *Client) PublishEvent(ctx context.Context, body []byte) error {
	return c.publish(ctx, ExchangeEvents, RoutingEvent, body, "")
}

func (c *Client) PublishRetry(ctx context.Context, body []byte, delay time.Duration) error {
	if delay < 0 {
		delay = 0
	}
	expiration := fmt.Sprintf("%d", delay.Milliseconds())
	return c.publish(ctx, ExchangeRetry, RoutingRetry, body, expiration)
}

func (c *Client) PublishDLQ(ctx context.Context, body []byte) error {
	return c.publish(ctx, ExchangeDLQ, RoutingDLQ, body, "")
}

func (c *Client) publish(ctx context.Context, exchange, key string, body []byte, expiration string) error {
	c.publishMu.Lock()
	defer c.publishMu.Unlock()
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
		Expiration:   expiration,
	}
	return c.Channel.PublishWithContext(ctx, exchange, key, false, false, msg)
}
