package note

import (
	"context"
	"fmt"
	"time"
)

const insertQuery = "INSERT INTO notes (title, description, color, image, isArchive, isTrash, reminder, ownerId, updatedAt, createdAt) VALUES (?, ?, ?, ?, FALSE, FALSE, ?, ?, ?, ?)"

func (s *Store) Insert(ctx context.Context, newN NewNote) (Note, error) {
	n := time.Now().UTC()

	dbCtx, dbCancel := context.WithTimeout(ctx, s.timeout)
	defer dbCancel()
	stmt, err := s.db.PrepareContext(dbCtx, insertQuery)
	if err != nil {
		return Note{}, fmt.Errorf("failed to prepare insert stmt: %w", err)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(dbCtx, newN.Title, nullString(newN.Description), nullString(newN.Color), nullString(newN.Image),
		nullTime(newN.Reminder), newN.OwnerId, n, n)
	if err != nil {
		return Note{}, fmt.Errorf("failed to exec insert stmt: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Note{}, fmt.Errorf("failed to read inserted id: %w", err)
	}

	return Note{
		Id:          uint64(id),
		Title:       newN.Title,
		Description: newN.Description,
		Color:       newN.Color,
		Image:       newN.Image,
		Reminder:    utc(newN.Reminder),
		OwnerId:     newN.OwnerId,
		UpdatedAt:   n,
		CreatedAt:   n,
	}, nil
}
