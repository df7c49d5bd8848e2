package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/corray333/backend-labs/pricing/internal/dal/rabbitmq"
	"github.com/corray333/backend-labs/pricing/internal/service/models/auditlog"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"golang.org/x/sync/errgroup"
)

// AuditRabbitMQRepository publishes price correction events to a RabbitMQ
// queue so downstream consumers can track manual corrections.
type AuditRabbitMQRepository struct {
	client *rabbitmq.Client
	queue  amqp.Queue
}

// NewAuditRabbitMQRepository declares the audit queue and returns the repository.
func NewAuditRabbitMQRepository(client *rabbitmq.Client) (*AuditRabbitMQRepository, error) {
	queueName := viper.GetString("rabbitmq.audit.queue")
	if queueName == "" {
		queueName = "oms.detail.price_corrected"
	}

	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:       queueName,
		Durable:    false,
		Exclusive:  false,
		AutoDelete: false,
	})
	if err != nil {
		return nil, err
	}

	return &AuditRabbitMQRepository{
		client: client,
		queue:  queue,
	}, nil
}

// LogPriceCorrections publishes a batch of price correction events with
// bounded concurrency.
func (r *AuditRabbitMQRepository) LogPriceCorrections(ctx context.Context, events []auditlog.PriceCorrection) error {
	auditCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	g, _ := errgroup.WithContext(auditCtx)
	g.SetLimit(3)

	for _, ev := range events {
		ev := ev
		g.Go(func() error {
			body, err := json.Marshal(ev)
			if err != nil {
				return err
			}

			return r.client.Channel().Publish(
				"",
				r.queue.Name,
				false,
				false,
				amqp.Publishing{
					ContentType: "application/json",
					Body:        body,
				},
			)
		})
	}

	return g.Wait()
}
