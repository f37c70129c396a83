package note

import (
	"context"
)

// AddLabels attaches labels owned by requesterID, any other id is skipped
func (s *Service) AddLabels(ctx context.Context, requesterID, noteID uint64, labelIDs []uint64) error {
	if len(labelIDs) == 0 {
		return invalid("labelIds", "required", "labelIds is required")
	}

	t, err := s.requireManage(ctx, requesterID, noteID)
	if err != nil {
		return err
	}

	owned, err := s.store.OwnedLabels(ctx, requesterID, unique(labelIDs))
	if err != nil {
		return s.storeFailure("find labels", err, "userId", requesterID, "labelIds", labelIDs)
	}
	if len(owned) == 0 {
		return nil
	}
	if err := s.store.AddLabels(ctx, noteID, owned); err != nil {
		return s.storeFailure("add labels", err, "noteId", noteID, "labelIds", owned)
	}
	s.invalidate(ctx, t.audience()...)

	return nil
}

// RemoveLabels detaches labels, ids that are not attached are ignored
func (s *Service) RemoveLabels(ctx context.Context, requesterID, noteID uint64, labelIDs []uint64) error {
	if len(labelIDs) == 0 {
		return invalid("labelIds", "required", "labelIds is required")
	}

	t, err := s.requireManage(ctx, requesterID, noteID)
	if err != nil {
		return err
	}

	removed := unique(labelIDs)
	if err := s.store.RemoveLabels(ctx, noteID, removed); err != nil {
		return s.storeFailure("remove labels", err, "noteId", noteID, "labelIds", removed)
	}
	s.invalidate(ctx, t.audience()...)

	return nil
}
