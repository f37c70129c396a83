package note

import (
	"context"
	"database/sql"
	"fmt"
)

var deleteQueries = []string{
	"DELETE FROM note_labels WHERE noteId = ?",
	"DELETE FROM collaborators WHERE noteId = ?",
	"DELETE FROM notes WHERE id = ?",
}

// Delete removes the note together with its collaborator and label rows
func (s *Store) Delete(ctx context.Context, id uint64) error {
	dbCtx, dbCancel := context.WithTimeout(ctx, s.timeout)
	defer dbCancel()

	return withTx(dbCtx, s.db, func(tx *sql.Tx) error {
		for _, q := range deleteQueries {
			if _, err := tx.ExecContext(dbCtx, q, id); err != nil {
				return fmt.Errorf("failed to exec delete stmt: %w", err)
			}
		}
		return nil
	})
}
