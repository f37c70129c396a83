package reminders

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/ribgsilva/fundoo-notes/business/v1/note"
	"github.com/ribgsilva/fundoo-notes/business/v1/reminder"
	"go.uber.org/zap"
	"gocloud.dev/pubsub"
)

// Reminders tells whether a received reminder is still current, see note.Service.DueReminder
type Reminders interface {
	DueReminder(ctx context.Context, noteID uint64, at time.Time) (note.Note, bool, error)
}

// Requeuer publishes a reminder again, to be delivered after delay, see reminder.Requeue
type Requeuer interface {
	Requeue(ctx context.Context, r reminder.Reminder, delay time.Duration) error
}

// DefaultHorizon stays below the default SQS visibility timeout of 30s
const DefaultHorizon = 20 * time.Second

// Consumer delivers reminders. Reminders due within Horizon are held until due, later ones are handed
// to Requeue and acked. Horizon must stay below the visibility timeout of the subscription, or held
// messages are delivered a second time. MaxWorkers bounds the reminders checked and notified at once,
// waiting for a reminder does not take a worker.
type Consumer struct {
	Log        *zap.SugaredLogger
	Reminders  Reminders
	Notifier   reminder.Notifier
	Requeue    Requeuer
	MaxWorkers int
	Horizon    time.Duration
}

// Consume receives messages until ctx is cancelled. It returns after every received message was handled.
func (c Consumer) Consume(ctx context.Context, sub *pubsub.Subscription) error {
	maxWorkers := c.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	if c.Horizon <= 0 {
		c.Horizon = DefaultHorizon
	}
	workers := make(chan struct{}, maxWorkers)

	var wg sync.WaitGroup
	var err error
	for {
		var m *pubsub.Message
		if m, err = sub.Receive(ctx); err != nil {
			break
		}

		wg.Add(1)
		go func(m *pubsub.Message) {
			defer wg.Done()
			c.handle(ctx, m, workers)
		}(m)
	}
	wg.Wait()

	if !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (c Consumer) handle(ctx context.Context, m *pubsub.Message, workers chan struct{}) {
	c.Log.Infow("message received", "eventId", m.Metadata["eventId"], "body", string(m.Body))

	var e reminder.Event
	if err := json.Unmarshal(m.Body, &e); err != nil {
		c.Log.Errorw("failed to parse body", "eventId", m.Metadata["eventId"], "ERROR", err)
		m.Ack()
		return
	}

	switch e.Type {
	case reminder.TypeReminder:
		var r reminder.Reminder
		marshal, _ := json.Marshal(e.Data)
		if err := json.Unmarshal(marshal, &r); err != nil || r.NoteId == 0 {
			c.Log.Errorw("failed to parse reminder", "data", e.Data, "ERROR", err)
			m.Ack()
			return
		}
		c.remind(ctx, m, r, workers)
	default:
		c.Log.Errorw("unknown event type", "type", e.Type)
		m.Ack()
	}
}

// remind holds the reminder until due, or requeues it when that is past the horizon, then notifies the
// owner if the note still carries it. Messages are nacked for redelivery on failure or when the consumer
// stops first.
func (c Consumer) remind(ctx context.Context, m *pubsub.Message, r reminder.Reminder, workers chan struct{}) {
	wait := time.Until(r.At)
	if wait > c.Horizon {
		c.requeue(ctx, m, r, wait)
		return
	}
	if wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			nack(m)
			return
		case <-timer.C:
		}
	}

	select {
	case <-ctx.Done():
		nack(m)
		return
	case workers <- struct{}{}:
	}
	defer func() { <-workers }()

	n, due, err := c.Reminders.DueReminder(ctx, r.NoteId, r.At)
	if err != nil {
		c.Log.Errorw("failed to check reminder", "noteId", r.NoteId, "ERROR", err)
		nack(m)
		return
	}
	if !due {
		c.Log.Infow("reminder", "status", "skipped, note changed", "noteId", r.NoteId, "at", r.At)
		m.Ack()
		return
	}

	if err := c.Notifier.Notify(ctx, n); err != nil {
		c.Log.Errorw("failed to notify reminder", "noteId", r.NoteId, "ERROR", err)
		nack(m)
		return
	}
	m.Ack()
}

func (c Consumer) requeue(ctx context.Context, m *pubsub.Message, r reminder.Reminder, wait time.Duration) {
	if c.Requeue == nil {
		c.Log.Errorw("reminder", "status", "past horizon, nothing to requeue with", "noteId", r.NoteId, "at", r.At)
		nack(m)
		return
	}
	if err := c.Requeue.Requeue(ctx, r, wait); err != nil {
		c.Log.Errorw("failed to requeue reminder", "noteId", r.NoteId, "ERROR", err)
		nack(m)
		return
	}
	c.Log.Infow("reminder", "status", "requeued", "noteId", r.NoteId, "at", r.At)
	m.Ack()
}

func nack(m *pubsub.Message) {
	if m.Nackable() {
		m.Nack()
	}
}
