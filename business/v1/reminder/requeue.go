package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// MaxDelay is the longest delivery delay SQS accepts on a message
const MaxDelay = 15 * time.Minute

// SQSSender is the part of *sqs.Client used to requeue
type SQSSender interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// Requeue sends reminders that are not due yet straight back to the queue they were received from,
// delayed by up to MaxDelay. Bodies are raw events, the queue must be read with a raw subscription.
type Requeue struct {
	Client   SQSSender
	QueueURL string
	Timeout  time.Duration
}

func (q Requeue) Requeue(ctx context.Context, r Reminder, delay time.Duration) error {
	if delay > MaxDelay {
		delay = MaxDelay
	}
	if delay < 0 {
		delay = 0
	}

	m, err := message(r)
	if err != nil {
		return fmt.Errorf("error parsing reminder: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), q.Timeout)
	defer cancel()
	_, err = q.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:     aws.String(q.QueueURL),
		MessageBody:  aws.String(string(m.Body)),
		DelaySeconds: int32(delay / time.Second),
		MessageAttributes: map[string]sqstypes.MessageAttributeValue{
			"eventId": {DataType: aws.String("String"), StringValue: aws.String(m.Metadata["eventId"])},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to requeue reminder of note %d: %w", r.NoteId, err)
	}
	return nil
}
