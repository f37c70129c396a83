// Package reminder hands notes with a future reminder over to the messaging side, where they are
// delivered once due.
package reminder

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/ribgsilva/fundoo-notes/business/v1/note"
	"go.uber.org/zap"
	"gocloud.dev/pubsub"
)

// Dispatcher queues reminders in memory and publishes them from Run. Schedule never blocks the caller,
// when the queue is full the reminder is logged and dropped.
type Dispatcher struct {
	log            *zap.SugaredLogger
	topic          *pubsub.Topic
	queue          chan Reminder
	publishTimeout time.Duration
}

func NewDispatcher(log *zap.SugaredLogger, topic *pubsub.Topic, queueSize int, publishTimeout time.Duration) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Dispatcher{
		log:            log,
		topic:          topic,
		queue:          make(chan Reminder, queueSize),
		publishTimeout: publishTimeout,
	}
}

func (d *Dispatcher) Schedule(n note.Note) {
	if n.Reminder == nil {
		return
	}
	r := Reminder{NoteId: n.Id, OwnerId: n.OwnerId, Title: n.Title, At: n.Reminder.UTC()}

	select {
	case d.queue <- r:
	default:
		d.log.Errorw("reminder", "status", "dropped, queue is full", "noteId", r.NoteId, "at", r.At)
	}
}

// Run publishes queued reminders until ctx is done, then publishes what is left in the queue and returns
func (d *Dispatcher) Run(ctx context.Context) error {
	d.log.Infow("reminder", "status", "dispatcher started")
	defer d.log.Infow("reminder", "status", "dispatcher stopped")

	for {
		select {
		case r := <-d.queue:
			d.publish(ctx, r)
		case <-ctx.Done():
			d.drain(ctx)
			return nil
		}
	}
}

func (d *Dispatcher) drain(ctx context.Context) {
	for {
		select {
		case r := <-d.queue:
			d.publish(ctx, r)
		default:
			return
		}
	}
}

func (d *Dispatcher) publish(ctx context.Context, r Reminder) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.publishTimeout)
	defer cancel()

	m, err := message(r)
	if err != nil {
		d.log.Errorw("error parsing reminder", "noteId", r.NoteId, "ERROR", err)
		return
	}
	if err := d.topic.Send(ctx, m); err != nil {
		d.log.Errorw("reminder", "status", "publish failed", "eventId", m.Metadata["eventId"], "noteId", r.NoteId, "ERROR", err)
		return
	}
	d.log.Infow("reminder", "status", "published", "eventId", m.Metadata["eventId"], "noteId", r.NoteId, "at", r.At)
}

// message wraps r in an Event with a fresh event id
func message(r Reminder) (*pubsub.Message, error) {
	body, err := json.Marshal(Event{Type: TypeReminder, Data: r})
	if err != nil {
		return nil, err
	}
	return &pubsub.Message{
		Body: body,
		Metadata: map[string]string{
			"eventId": uuid.NewString(),
			"type":    TypeReminder,
		},
	}, nil
}
