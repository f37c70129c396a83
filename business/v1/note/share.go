package note

import (
	"context"
)

// AddCollaborators shares the note with userIDs. Ids that match no user are reported back in
// ShareResult.Invalid, sharing twice with the same user is a no-op.
func (s *Service) AddCollaborators(ctx context.Context, requesterID, noteID uint64, userIDs []uint64) (ShareResult, error) {
	if len(userIDs) == 0 {
		return ShareResult{}, invalid("userIds", "required", "userIds is required")
	}
	requested := unique(userIDs)
	if contains(requested, requesterID) {
		return ShareResult{}, invalid("userIds", "owner", "the owner cannot be a collaborator of its own note")
	}

	if _, err := s.requireManage(ctx, requesterID, noteID); err != nil {
		return ShareResult{}, err
	}

	existing, err := s.store.ExistingUsers(ctx, requested)
	if err != nil {
		return ShareResult{}, s.storeFailure("find users", err, "userIds", requested)
	}
	res := ShareResult{Added: existing}
	if res.Added == nil {
		res.Added = []uint64{}
	}
	for _, u := range requested {
		if !contains(existing, u) {
			res.Invalid = append(res.Invalid, u)
		}
	}

	if err := s.store.AddCollaborators(ctx, noteID, existing); err != nil {
		return ShareResult{}, s.storeFailure("add collaborators", err, "noteId", noteID, "userIds", existing)
	}
	s.invalidate(ctx, append([]uint64{requesterID}, existing...)...)

	return res, nil
}

// RemoveCollaborators un-shares the note. Users that were not collaborators are ignored.
func (s *Service) RemoveCollaborators(ctx context.Context, requesterID, noteID uint64, userIDs []uint64) error {
	if len(userIDs) == 0 {
		return invalid("userIds", "required", "userIds is required")
	}

	t, err := s.requireManage(ctx, requesterID, noteID)
	if err != nil {
		return err
	}

	removed := unique(userIDs)
	if err := s.store.RemoveCollaborators(ctx, noteID, removed); err != nil {
		return s.storeFailure("remove collaborators", err, "noteId", noteID, "userIds", removed)
	}
	s.invalidate(ctx, append([]uint64{t.note.OwnerId}, removed...)...)

	return nil
}
