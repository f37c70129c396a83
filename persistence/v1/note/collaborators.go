package note

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	collaboratorsQuery      = "SELECT userId FROM collaborators WHERE noteId = ? ORDER BY userId"
	addCollaboratorsQuery   = "INSERT IGNORE INTO collaborators (noteId, userId, access, createdAt) VALUES %s"
	removeCollaboratorQuery = "DELETE FROM collaborators WHERE noteId = ? AND userId IN (%s)"
	existingUsersQuery      = "SELECT id FROM users WHERE id IN (%s) ORDER BY id"
)

// Collaborators returns the ids of the users the note is shared with
func (s *Store) Collaborators(ctx context.Context, noteID uint64) ([]uint64, error) {
	dbCtx, dbCancel := context.WithTimeout(ctx, s.timeout)
	defer dbCancel()

	rows, err := s.db.QueryContext(dbCtx, collaboratorsQuery, noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to query collaborators: %w", err)
	}
	users, err := ids(rows)
	if err != nil {
		return nil, fmt.Errorf("error parsing collaborators: %w", err)
	}
	return users, nil
}

// AddCollaborators shares the note, pairs that already exist are ignored
func (s *Store) AddCollaborators(ctx context.Context, noteID uint64, userIDs []uint64) error {
	if len(userIDs) == 0 {
		return nil
	}

	n := time.Now().UTC()
	values := make([]string, len(userIDs))
	args := make([]any, 0, len(userIDs)*4)
	for i, u := range userIDs {
		values[i] = "(?, ?, ?, ?)"
		args = append(args, noteID, u, AccessReadWrite, n)
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, s.timeout)
	defer dbCancel()
	if _, err := s.db.ExecContext(dbCtx, fmt.Sprintf(addCollaboratorsQuery, strings.Join(values, ", ")), args...); err != nil {
		return fmt.Errorf("failed to insert collaborators: %w", err)
	}
	return nil
}

// RemoveCollaborators un-shares the note, users that were not collaborators are ignored
func (s *Store) RemoveCollaborators(ctx context.Context, noteID uint64, userIDs []uint64) error {
	if len(userIDs) == 0 {
		return nil
	}

	args := make([]any, 0, len(userIDs)+1)
	args = append(args, noteID)
	for _, u := range userIDs {
		args = append(args, u)
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, s.timeout)
	defer dbCancel()
	if _, err := s.db.ExecContext(dbCtx, fmt.Sprintf(removeCollaboratorQuery, placeholders(len(userIDs))), args...); err != nil {
		return fmt.Errorf("failed to delete collaborators: %w", err)
	}
	return nil
}

// ExistingUsers filters userIDs down to the ids that exist
func (s *Store) ExistingUsers(ctx context.Context, userIDs []uint64) ([]uint64, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	args := make([]any, len(userIDs))
	for i, u := range userIDs {
		args[i] = u
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, s.timeout)
	defer dbCancel()
	rows, err := s.db.QueryContext(dbCtx, fmt.Sprintf(existingUsersQuery, placeholders(len(userIDs))), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	found, err := ids(rows)
	if err != nil {
		return nil, fmt.Errorf("error parsing users: %w", err)
	}
	return found, nil
}
