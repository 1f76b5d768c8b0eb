package scheduler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/pokeforge/pokeforge/pkg/models"
)

// SQSScheduler implements the EventScheduler interface using AWS SQS.
type SQSScheduler struct {
	Client   *sqs.Client
	QueueURL string
}

// NewSQSScheduler creates a new SQSScheduler.
func NewSQSScheduler(client *sqs.Client, queueURL string) *SQSScheduler {
	return &SQSScheduler{
		Client:   client,
		QueueURL: queueURL,
	}
}

// Make sure we conform to the interface
var _ EventScheduler = (*SQSScheduler)(nil)

// ScheduleEvent sends the change event to an SQS queue for later fanout.
func (s *SQSScheduler) ScheduleEvent(ctx context.Context, event *models.ChangeEvent) error {
	// Marshal the event to JSON.
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal change event for SQS: %w", err)
	}

	// Send the message to SQS.
	_, err = s.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(s.QueueURL),
		MessageBody: aws.String(string(body)),
	})

	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	return nil
}
