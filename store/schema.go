package store

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// EnsureSchema creates the notes table and its due date index when missing.
func EnsureSchema(ctx context.Context, db bun.IDB) error {
	if _, err := db.NewCreateTable().
		Model((*Record)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("create notes table: %w", err)
	}

	if _, err := db.NewCreateIndex().
		Model((*Record)(nil)).
		Index("notes_due_date_idx").
		Column(ColumnDueDate).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("create notes due date index: %w", err)
	}

	return nil
}
