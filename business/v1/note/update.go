package note

import (
	"context"

	"github.com/ribgsilva/fundoo-notes/persistence/v1/note"
)

// Update applies a partial update. The owner and the collaborators can edit.
func (s *Service) Update(ctx context.Context, userID, noteID uint64, upd UpdateNote) (Note, error) {
	if err := s.check(upd); err != nil {
		return Note{}, err
	}

	t, err := s.requireEdit(ctx, userID, noteID)
	if err != nil {
		return Note{}, err
	}

	updated, err := s.store.Update(ctx, noteID, note.UpdateNote{
		Title:         upd.Title,
		Description:   upd.Description,
		Color:         upd.Color,
		Image:         upd.Image,
		Reminder:      upd.Reminder.Time,
		ClearReminder: upd.Reminder.cleared(),
	})
	if err != nil {
		return Note{}, s.storeFailure("update note", err, "noteId", noteID, "userId", userID)
	}
	s.invalidate(ctx, t.audience()...)
	if updated.Id == 0 {
		// deleted after it was resolved
		return Note{}, ErrNotFound
	}
	n := Note(updated)

	if upd.Reminder.Time != nil {
		s.schedule(n)
	}

	return n, nil
}

func (s *Service) ToggleArchive(ctx context.Context, userID, noteID uint64) (Note, error) {
	return s.toggle(ctx, userID, noteID, "toggle archive", s.store.ToggleArchive)
}

func (s *Service) ToggleTrash(ctx context.Context, userID, noteID uint64) (Note, error) {
	return s.toggle(ctx, userID, noteID, "toggle trash", s.store.ToggleTrash)
}

// toggle flips a flag in the store and patches the flipped note into the snapshots of its audience.
// Views are filtered from the snapshot, so a patched flag moves the note between them.
func (s *Service) toggle(ctx context.Context, userID, noteID uint64, op string, flip func(context.Context, uint64) (note.Note, error)) (Note, error) {
	t, err := s.requireEdit(ctx, userID, noteID)
	if err != nil {
		return Note{}, err
	}

	flipped, err := flip(ctx, noteID)
	if err != nil {
		return Note{}, s.storeFailure(op, err, "noteId", noteID, "userId", userID)
	}
	if flipped.Id == 0 {
		s.invalidate(ctx, t.audience()...)
		return Note{}, ErrNotFound
	}
	n := Note(flipped)

	s.patch(ctx, n, t.audience()...)

	return n, nil
}
