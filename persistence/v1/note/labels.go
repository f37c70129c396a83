package note

import (
	"context"
	"fmt"
	"strings"
)

const (
	ownedLabelsQuery  = "SELECT id FROM labels WHERE ownerId = ? AND id IN (%s) ORDER BY id"
	addLabelsQuery    = "INSERT IGNORE INTO note_labels (noteId, labelId) VALUES %s"
	removeLabelsQuery = "DELETE FROM note_labels WHERE noteId = ? AND labelId IN (%s)"
)

// OwnedLabels filters labelIDs down to the labels owned by ownerID
func (s *Store) OwnedLabels(ctx context.Context, ownerID uint64, labelIDs []uint64) ([]uint64, error) {
	if len(labelIDs) == 0 {
		return nil, nil
	}

	args := make([]any, 0, len(labelIDs)+1)
	args = append(args, ownerID)
	for _, l := range labelIDs {
		args = append(args, l)
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, s.timeout)
	defer dbCancel()
	rows, err := s.db.QueryContext(dbCtx, fmt.Sprintf(ownedLabelsQuery, placeholders(len(labelIDs))), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query labels: %w", err)
	}
	found, err := ids(rows)
	if err != nil {
		return nil, fmt.Errorf("error parsing labels: %w", err)
	}
	return found, nil
}

func (s *Store) AddLabels(ctx context.Context, noteID uint64, labelIDs []uint64) error {
	if len(labelIDs) == 0 {
		return nil
	}

	values := make([]string, len(labelIDs))
	args := make([]any, 0, len(labelIDs)*2)
	for i, l := range labelIDs {
		values[i] = "(?, ?)"
		args = append(args, noteID, l)
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, s.timeout)
	defer dbCancel()
	if _, err := s.db.ExecContext(dbCtx, fmt.Sprintf(addLabelsQuery, strings.Join(values, ", ")), args...); err != nil {
		return fmt.Errorf("failed to insert note labels: %w", err)
	}
	return nil
}

func (s *Store) RemoveLabels(ctx context.Context, noteID uint64, labelIDs []uint64) error {
	if len(labelIDs) == 0 {
		return nil
	}

	args := make([]any, 0, len(labelIDs)+1)
	args = append(args, noteID)
	for _, l := range labelIDs {
		args = append(args, l)
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, s.timeout)
	defer dbCancel()
	if _, err := s.db.ExecContext(dbCtx, fmt.Sprintf(removeLabelsQuery, placeholders(len(labelIDs))), args...); err != nil {
		return fmt.Errorf("failed to delete note labels: %w", err)
	}
	return nil
}
