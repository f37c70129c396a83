package note

import (
	"context"
)

// List returns the notes userID can see that are neither archived nor trashed
func (s *Service) List(ctx context.Context, userID uint64) ([]Note, error) {
	return s.view(ctx, userID, defaultView)
}

// Archived returns the archived notes userID can see, trashed ones excluded
func (s *Service) Archived(ctx context.Context, userID uint64) ([]Note, error) {
	return s.view(ctx, userID, archivedView)
}

// Trashed returns the trashed notes userID can see
func (s *Service) Trashed(ctx context.Context, userID uint64) ([]Note, error) {
	return s.view(ctx, userID, trashedView)
}

// Get returns a note userID can see. The cached snapshot is tried first, a note missing from it is
// looked up in the store since the snapshot may predate a share.
func (s *Service) Get(ctx context.Context, userID, noteID uint64) (Note, error) {
	if notes, ok := s.cached(ctx, userID); ok {
		if n, ok := find(notes, noteID); ok {
			return n, nil
		}
	}

	t, err := s.resolve(ctx, userID, noteID)
	if err != nil {
		return Note{}, err
	}
	return t.note, nil
}

func (s *Service) view(ctx context.Context, userID uint64, v view) ([]Note, error) {
	notes, err := s.visible(ctx, userID)
	if err != nil {
		return nil, err
	}
	return v.filter(notes), nil
}

// visible returns the snapshot of userID, loading and caching it on a miss
func (s *Service) visible(ctx context.Context, userID uint64) ([]Note, error) {
	if notes, ok := s.cached(ctx, userID); ok {
		return notes, nil
	}

	found, err := s.store.ListVisible(ctx, userID)
	if err != nil {
		return nil, s.storeFailure("list visible notes", err, "userId", userID)
	}

	notes := make([]Note, len(found))
	for i := range found {
		notes[i] = Note(found[i])
	}
	s.fill(ctx, userID, notes)

	return notes, nil
}
