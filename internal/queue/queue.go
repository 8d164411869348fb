package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/osint-hub/backend/internal/util"
	"github.com/osint-hub/backend/pkg/logger"

	"github.com/rabbitmq/amqp091-go"
)

// QueueDocumentExtract carries documents whose text still has to be
// extracted.
const QueueDocumentExtract = "document_extract_queue"

// Queues lists every work queue the worker consumes.
var Queues = []string{QueueDocumentExtract}

const defaultRetryDelayMs = 10000

// retryDelayMs is how long a failed message waits in the retry queue. All
// processes declaring the queues must agree on it.
func retryDelayMs() int32 {
	return int32(util.GetEnvNumeric("QUEUE_RETRY_DELAY_MS", defaultRetryDelayMs))
}

func Init() *amqp091.Connection {
	user := util.GetEnv("RABBITMQ_USER")
	pass := util.GetEnv("RABBITMQ_PASSWORD")
	host := util.GetEnv("RABBITMQ_HOST")
	port := util.GetEnvString("RABBITMQ_PORT", "5672")

	connURL := fmt.Sprintf(
		"amqp://%s:%s@%s:%s/",
		user,
		pass,
		host,
		port,
	)

	conn, err := amqp091.Dial(connURL)
	if err != nil {
		logger.Fatal("Failed to connect to RabbitMQ", "err", err)
	}

	return conn
}

// SetupQueues declares every queue in queueNames together with its
// "_retry" queue, which dead-letters back after a delay, and its "_dlq".
func SetupQueues(ch *amqp091.Channel, queueNames []string) error {
	for _, name := range queueNames {
		_, err := ch.QueueDeclare(
			name,
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,   // args
		)
		if err != nil {
			return fmt.Errorf("declare %s: %w", name, err)
		}

		dlqName := DeadLetterQueue(name)
		_, err = ch.QueueDeclare(
			dlqName,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			return fmt.Errorf("declare %s: %w", dlqName, err)
		}

		retryName := RetryQueue(name)
		_, err = ch.QueueDeclare(
			retryName,
			true,
			false,
			false,
			false,
			amqp091.Table{
				"x-message-ttl":             retryDelayMs(),
				"x-dead-letter-exchange":    "",
				"x-dead-letter-routing-key": name,
			},
		)
		if err != nil {
			return fmt.Errorf("declare %s: %w", retryName, err)
		}
	}

	return nil
}

func RetryQueue(name string) string      { return name + "_retry" }
func DeadLetterQueue(name string) string { return name + "_dlq" }

func PublishFIFO(ch *amqp091.Channel, queueName string, data []byte) error {
	q, err := ch.QueueDeclare(
		queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	publishing := amqp091.Publishing{
		ContentType:  "application/json",
		Body:         data,
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now(),
	}

	return ch.Publish(
		"",
		q.Name,
		false,
		false,
		publishing,
	)
}

// Publisher enqueues messages for the worker.
type Publisher interface {
	Publish(ctx context.Context, queueName string, data []byte) error
}

// ChannelPublisher publishes through one AMQP channel.
type ChannelPublisher struct {
	ch *amqp091.Channel
}

func NewChannelPublisher(ch *amqp091.Channel) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

func (p *ChannelPublisher) Publish(ctx context.Context, queueName string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return PublishFIFO(p.ch, queueName, data)
}
