package queue

import (
	"context"

	"github.com/osint-hub/backend/pkg/logger"

	"github.com/rabbitmq/amqp091-go"
)

// MaxRetries is the number of redeliveries before a message is parked in
// the dead letter queue.
const MaxRetries = 10

const retriesHeader = "x-retries"

// RetryCount reads the retry counter of a delivery. AMQP decodes integers
// with the width they were sent with, so every integer type is accepted.
func RetryCount(headers amqp091.Table) int {
	switch v := headers[retriesHeader].(type) {
	case int:
		return v
	case int8:
		return int(v)
	case int16:
		return int(v)
	case int32:
		return int(v)
	case int64:
		return int(v)
	case uint8:
		return int(v)
	case uint16:
		return int(v)
	case uint32:
		return int(v)
	default:
		return 0
	}
}

// Acknowledger is the part of a delivery the retry routing needs.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

type channelPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// HandleProcessingError routes a failed delivery to the retry queue of
// queueName, or to its dead letter queue once MaxRetries is reached. The
// delivery is requeued when neither publish succeeds.
func HandleProcessingError(ctx context.Context, ch channelPublisher, ack Acknowledger, msg amqp091.Delivery, queueName string) {
	retries := RetryCount(msg.Headers)

	if retries >= MaxRetries {
		dlqName := DeadLetterQueue(queueName)
		logger.Info("Sending message to DLQ", "dlq", dlqName, "retries", retries)
		pubErr := ch.PublishWithContext(ctx,
			"",
			dlqName,
			false,
			false,
			amqp091.Publishing{
				ContentType: msg.ContentType,
				Body:        msg.Body,
				Headers:     msg.Headers,
			},
		)
		if pubErr != nil {
			logger.Error("Failed to publish to DLQ", "dlq", dlqName, "err", pubErr)
			_ = ack.Nack(false, true)
			return
		}
		_ = ack.Ack(false)
		return
	}

	retryName := RetryQueue(queueName)
	headers := amqp091.Table{}
	for k, v := range msg.Headers {
		headers[k] = v
	}
	headers[retriesHeader] = int32(retries + 1)

	pubErr := ch.PublishWithContext(ctx,
		"",
		retryName,
		false,
		false,
		amqp091.Publishing{
			ContentType: msg.ContentType,
			Body:        msg.Body,
			Headers:     headers,
		},
	)
	if pubErr != nil {
		logger.Error("Failed to publish to retry queue", "retry_queue", retryName, "err", pubErr)
		_ = ack.Nack(false, true)
		return
	}
	_ = ack.Ack(false)
}
