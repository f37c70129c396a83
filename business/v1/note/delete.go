package note

import (
	"context"
)

// Destroy removes the note with its collaborators and labels. Only the owner can.
func (s *Service) Destroy(ctx context.Context, userID, noteID uint64) error {
	t, err := s.requireManage(ctx, userID, noteID)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, noteID); err != nil {
		return s.storeFailure("delete note", err, "noteId", noteID, "userId", userID)
	}
	s.invalidate(ctx, t.audience()...)

	return nil
}
