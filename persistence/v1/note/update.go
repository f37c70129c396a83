package note

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const toggleQuery = "UPDATE notes SET %[1]s = NOT %[1]s, updatedAt = ? WHERE id = ?"

// Update applies the non nil fields and returns the stored note, a zero Note means it does not exist
func (s *Store) Update(ctx context.Context, id uint64, upd UpdateNote) (Note, error) {
	sets := make([]string, 0, 6)
	args := make([]any, 0, 7)
	if upd.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, nullString(*upd.Description))
	}
	if upd.Color != nil {
		sets = append(sets, "color = ?")
		args = append(args, nullString(*upd.Color))
	}
	if upd.Image != nil {
		sets = append(sets, "image = ?")
		args = append(args, nullString(*upd.Image))
	}
	if upd.Reminder != nil || upd.ClearReminder {
		sets = append(sets, "reminder = ?")
		args = append(args, nullTime(upd.Reminder))
	}
	sets = append(sets, "updatedAt = ?")
	args = append(args, time.Now().UTC(), id)

	dbCtx, dbCancel := context.WithTimeout(ctx, s.timeout)
	defer dbCancel()
	if _, err := s.db.ExecContext(dbCtx, "UPDATE notes SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...); err != nil {
		return Note{}, fmt.Errorf("failed to exec update stmt: %w", err)
	}

	return s.FindByID(ctx, id)
}

// ToggleArchive flips isArchive in a single statement
func (s *Store) ToggleArchive(ctx context.Context, id uint64) (Note, error) {
	return s.toggle(ctx, id, "isArchive")
}

// ToggleTrash flips isTrash in a single statement
func (s *Store) ToggleTrash(ctx context.Context, id uint64) (Note, error) {
	return s.toggle(ctx, id, "isTrash")
}

func (s *Store) toggle(ctx context.Context, id uint64, column string) (Note, error) {
	dbCtx, dbCancel := context.WithTimeout(ctx, s.timeout)
	defer dbCancel()
	if _, err := s.db.ExecContext(dbCtx, fmt.Sprintf(toggleQuery, column), time.Now().UTC(), id); err != nil {
		return Note{}, fmt.Errorf("failed to toggle %s: %w", column, err)
	}

	return s.FindByID(ctx, id)
}
