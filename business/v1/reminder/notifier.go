package reminder

import (
	"context"

	"github.com/ribgsilva/fundoo-notes/business/v1/note"
	"go.uber.org/zap"
)

// Notifier delivers a due reminder to the note owner
type Notifier interface {
	Notify(ctx context.Context, n note.Note) error
}

// LogNotifier only writes the reminder to the log, it stands in until a mail or push channel exists
type LogNotifier struct {
	Log *zap.SugaredLogger
}

func (l LogNotifier) Notify(_ context.Context, n note.Note) error {
	l.Log.Infow("reminder", "status", "due", "noteId", n.Id, "ownerId", n.OwnerId, "title", n.Title, "at", n.Reminder)
	return nil
}
