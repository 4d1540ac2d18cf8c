package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chillcharlie357/watermark/internal/models"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

func (q *QueueService) PublishJob(ctx context.Context, job *models.ExportJob) error {
	jobBytes, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal export job: %w", err)
	}

	err = q.channel.Publish(
		"",          // exchange
		q.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         jobBytes,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish export job: %w", err)
	}

	q.logger.Info("Export job published to queue",
		zap.String("job_id", job.ID),
		zap.Int("files", len(job.Paths)))
	return nil
}
