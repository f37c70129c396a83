// Package note is the mysql backed store of notes and their collaborator and label associations.
package note

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

const noteColumns = "n.id, n.title, n.description, n.color, n.image, n.isArchive, n.isTrash, n.reminder, n.ownerId, n.updatedAt, n.createdAt"

// Store is the source of truth for notes. Every call runs under its own operation timeout.
type Store struct {
	db      *sql.DB
	timeout time.Duration
}

func NewStore(db *sql.DB, operationTimeout time.Duration) *Store {
	return &Store{
		db:      db,
		timeout: operationTimeout,
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(row scanner) (Note, error) {
	var (
		n                         Note
		description, color, image sql.NullString
		reminder                  sql.NullTime
	)
	if err := row.Scan(&n.Id, &n.Title, &description, &color, &image, &n.IsArchive, &n.IsTrash, &reminder, &n.OwnerId, &n.UpdatedAt, &n.CreatedAt); err != nil {
		return Note{}, err
	}
	n.Description = description.String
	n.Color = color.String
	n.Image = image.String
	if reminder.Valid {
		r := reminder.Time.UTC()
		n.Reminder = &r
	}
	return n, nil
}

// withTx runs fn inside a transaction, committing on success and rolling back on error or panic
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	return fn(tx)
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func ids(rows *sql.Rows) ([]uint64, error) {
	defer rows.Close()
	var out []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
