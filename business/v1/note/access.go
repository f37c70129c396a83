package note

import (
	"context"
)

type role int

const (
	roleNone role = iota
	roleCollaborator
	roleOwner
)

// target is a note resolved against the caller
type target struct {
	note          Note
	collaborators []uint64
	role          role
}

// canEdit governs content updates and the archive and trash toggles
func (t target) canEdit() bool {
	return t.role >= roleCollaborator
}

// canManage governs delete, sharing and labels
func (t target) canManage() bool {
	return t.role == roleOwner
}

// audience is every user whose snapshot can hold the note
func (t target) audience() []uint64 {
	return append([]uint64{t.note.OwnerId}, t.collaborators...)
}

// resolve loads the note and the role of userID on it.
// A note that does not exist and a note userID cannot see are both ErrNotFound.
func (s *Service) resolve(ctx context.Context, userID, noteID uint64) (target, error) {
	found, err := s.store.FindByID(ctx, noteID)
	if err != nil {
		return target{}, s.storeFailure("find note", err, "noteId", noteID)
	}
	if found.Id == 0 {
		return target{}, ErrNotFound
	}

	collaborators, err := s.store.Collaborators(ctx, noteID)
	if err != nil {
		return target{}, s.storeFailure("find collaborators", err, "noteId", noteID)
	}

	t := target{note: Note(found), collaborators: collaborators}
	switch {
	case found.OwnerId == userID:
		t.role = roleOwner
	case contains(collaborators, userID):
		t.role = roleCollaborator
	default:
		return target{}, ErrNotFound
	}
	return t, nil
}

func (s *Service) requireEdit(ctx context.Context, userID, noteID uint64) (target, error) {
	t, err := s.resolve(ctx, userID, noteID)
	if err != nil {
		return target{}, err
	}
	if !t.canEdit() {
		return target{}, ErrPermissionDenied
	}
	return t, nil
}

func (s *Service) requireManage(ctx context.Context, userID, noteID uint64) (target, error) {
	t, err := s.resolve(ctx, userID, noteID)
	if err != nil {
		return target{}, err
	}
	if !t.canManage() {
		return target{}, ErrPermissionDenied
	}
	return t, nil
}
