package note

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const (
	findQuery        = "SELECT " + noteColumns + " FROM notes n WHERE n.id = ?"
	listVisibleQuery = "SELECT " + noteColumns + " FROM notes n WHERE n.ownerId = ? OR EXISTS (SELECT 1 FROM collaborators c WHERE c.noteId = n.id AND c.userId = ?) ORDER BY n.id"
	labelsOfQuery    = "SELECT noteId, labelId FROM note_labels WHERE noteId IN (%s) ORDER BY noteId, labelId"
)

// FindByID returns the note with its labels, a zero Note means it does not exist
func (s *Store) FindByID(ctx context.Context, id uint64) (Note, error) {
	dbCtx, dbCancel := context.WithTimeout(ctx, s.timeout)
	defer dbCancel()

	note, err := scanNote(s.db.QueryRowContext(dbCtx, findQuery, id))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return Note{}, nil
	case err != nil:
		return Note{}, fmt.Errorf("failed to query find stmt: %w", err)
	}

	labels, err := s.labelsOf(dbCtx, note.Id)
	if err != nil {
		return Note{}, err
	}
	note.Labels = labels[note.Id]

	return note, nil
}

// ListVisible returns every note the user owns or collaborates on, in any archive or trash state
func (s *Store) ListVisible(ctx context.Context, userID uint64) ([]Note, error) {
	dbCtx, dbCancel := context.WithTimeout(ctx, s.timeout)
	defer dbCancel()

	rows, err := s.db.QueryContext(dbCtx, listVisibleQuery, userID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query visible notes: %w", err)
	}
	defer rows.Close()

	var (
		notes   []Note
		noteIds []uint64
	)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("error parsing db data: %w", err)
		}
		notes = append(notes, note)
		noteIds = append(noteIds, note.Id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate visible notes: %w", err)
	}

	labels, err := s.labelsOf(dbCtx, noteIds...)
	if err != nil {
		return nil, err
	}
	for i := range notes {
		notes[i].Labels = labels[notes[i].Id]
	}

	return notes, nil
}

func (s *Store) labelsOf(ctx context.Context, noteIds ...uint64) (map[uint64][]uint64, error) {
	out := make(map[uint64][]uint64, len(noteIds))
	if len(noteIds) == 0 {
		return out, nil
	}

	args := make([]any, len(noteIds))
	for i, id := range noteIds {
		args[i] = id
	}
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(labelsOfQuery, placeholders(len(noteIds))), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query note labels: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var noteId, labelId uint64
		if err := rows.Scan(&noteId, &labelId); err != nil {
			return nil, fmt.Errorf("error parsing note labels: %w", err)
		}
		out[noteId] = append(out[noteId], labelId)
	}
	return out, rows.Err()
}
