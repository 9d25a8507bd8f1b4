package audit

import (
	"context"
	"sync"

	"clinicdesk-service/internal/app/contracts"
	"clinicdesk-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// QueueName is the durable queue the audit consumer reads.
const QueueName = "clinicdesk_auth_audit"

type rabbitMQAuditPublisher struct {
	Channel *amqp091.Channel
	Log     *zap.Logger
}

var (
	rabbitMQAuditPublisherInstance contracts.AuditPublisher
	onceRabbitMQAuditPublisher     sync.Once
)

// NewRabbitMQAuditPublisher declares the audit queue once and publishes
// events onto it. Callers treat publish failures as advisory; this type
// reports them but requests proceed regardless.
func NewRabbitMQAuditPublisher(conn *amqp091.Connection, logger *zap.Logger) (contracts.AuditPublisher, error) {
	var initErr error
	onceRabbitMQAuditPublisher.Do(func() {
		channel, err := conn.Channel()
		if err != nil {
			initErr = err
			return
		}
		_, err = channel.QueueDeclare(QueueName, true, false, false, false, nil)
		if err != nil {
			initErr = err
			return
		}
		rabbitMQAuditPublisherInstance = &rabbitMQAuditPublisher{
			Channel: channel,
			Log:     logger,
		}
	})
	if initErr != nil {
		return nil, initErr
	}
	return rabbitMQAuditPublisherInstance, nil
}

func (p *rabbitMQAuditPublisher) Publish(ctx context.Context, event *contracts.AuditEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, QueueName)
	}

	err = p.Channel.PublishWithContext(ctx, "", QueueName, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Body:         body,
	})
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, QueueName)
	}
	return nil
}
