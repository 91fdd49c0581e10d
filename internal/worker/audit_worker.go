package worker

import (
	"CloudVault/config"
	"CloudVault/internal/mq"
	"CloudVault/internal/task"
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/time/rate"
)

// RunAuditWorker consumes access events from RabbitMQ and writes the
// share access log. Insert failures go back through the retry queue;
// undecodable messages go straight to the DLQ.
func RunAuditWorker(ctx context.Context) error {
	client, err := mq.Dial()
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.DeclareTopology(); err != nil {
		return err
	}

	prefetch := config.AppConfig.RabbitMQPrefetch
	if prefetch <= 0 {
		prefetch = 1
	}
	if err := client.Channel.Qos(prefetch, 0, false); err != nil {
		return err
	}

	deliveries, err := client.Channel.Consume(
		mq.QueueEvents,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	concurrency := config.AppConfig.AuditWorkerConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	sem := make(chan struct{}, concurrency)

	burst := config.AppConfig.AuditBurst
	if burst <= 0 {
		burst = 1
	}
	var limiter *rate.Limiter
	if config.AppConfig.AuditRate <= 0 {
		limiter = rate.NewLimiter(rate.Inf, burst)
	} else {
		limiter = rate.NewLimiter(rate.Limit(config.AppConfig.AuditRate), burst)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				return errors.New("audit worker: delivery channel closed")
			}
			sem <- struct{}{}
			go func(d amqp.Delivery) {
				defer func() { <-sem }()
				handleAuditMessage(ctx, client, limiter, d)
			}(delivery)
		}
	}
}

func handleAuditMessage(ctx context.Context, client *mq.Client, limiter *rate.Limiter, delivery amqp.Delivery) {
	var event task.AccessEvent
	if err := json.Unmarshal(delivery.Body, &event); err != nil {
		log.Printf("audit worker: invalid message: %v", err)
		_ = client.PublishDLQ(ctx, delivery.Body)
		_ = delivery.Ack(false)
		return
	}

	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			_ = delivery.Nack(false, true)
			return
		}
	}

	if err := task.RecordAccess(ctx, event); err != nil {
		log.Printf("audit worker: record failed: %v", err)
		if err := client.PublishRetry(ctx, delivery.Body, retryDelay(delivery)); err != nil {
			_ = delivery.Nack(false, true)
			return
		}
		_ = delivery.Ack(false)
		return
	}

	_ = delivery.Ack(false)
}

// retryDelay backs off per delivery attempt using the x-death count
// the retry queue accumulates.
func retryDelay(delivery amqp.Delivery) time.Duration {
	attempts := int64(0)
	if deaths, ok := delivery.Headers["x-death"].([]interface{}); ok && len(deaths) > 0 {
		if death, ok := deaths[0].(amqp.Table); ok {
			if count, ok := death["count"].(int64); ok {
				attempts = count
			}
		}
	}
	if attempts > 6 {
		attempts = 6
	}
	return 10 * time.Second << attempts
}
