package note

import (
	"context"
	"time"
)

// DueReminder reports whether the reminder at is still current for the note: the note exists, is not
// trashed and was not rescheduled since the reminder was enqueued.
func (s *Service) DueReminder(ctx context.Context, noteID uint64, at time.Time) (Note, bool, error) {
	found, err := s.store.FindByID(ctx, noteID)
	if err != nil {
		return Note{}, false, s.storeFailure("find note", err, "noteId", noteID)
	}
	if found.Id == 0 || found.IsTrash || found.Reminder == nil || !found.Reminder.Equal(at) {
		return Note{}, false, nil
	}
	return Note(found), true, nil
}
