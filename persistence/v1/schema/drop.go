package schema

import (
	"context"
	"database/sql"
	"fmt"
)

func Drop(ctx context.Context, db *sql.DB) error {
	for _, stmt := range dropSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("drop schema: %w", err)
		}
	}

	return nil
}
