package note

import (
	"context"

	"github.com/ribgsilva/fundoo-notes/persistence/v1/note"
)

// Create stores a note owned by userID. Only the owner can see a new note, so only its snapshot is dropped.
func (s *Service) Create(ctx context.Context, userID uint64, newN NewNote) (Note, error) {
	if err := s.check(newN); err != nil {
		return Note{}, err
	}

	created, err := s.store.Insert(ctx, note.NewNote{
		Title:       newN.Title,
		Description: newN.Description,
		Color:       newN.Color,
		Image:       newN.Image,
		Reminder:    newN.Reminder,
		OwnerId:     userID,
	})
	if err != nil {
		return Note{}, s.storeFailure("insert note", err, "userId", userID)
	}
	n := Note(created)

	s.invalidate(ctx, userID)
	s.schedule(n)

	return n, nil
}
