package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mkoda/recipe-collector/internal/types"
)

// GetCheckpoint retrieves the checkpoint stored under name.
// Returns nil when no run has completed yet.
func (db *DB) GetCheckpoint(ctx context.Context, name string) (*types.RunCheckpoint, error) {
	var checkpoint types.RunCheckpoint
	err := db.pool.QueryRow(ctx,
		`SELECT last_message_id, last_run_at, processed_count, success_count, failed_count
		 FROM run_checkpoints WHERE name = $1`,
		name,
	).Scan(
		&checkpoint.LastMessageID,
		&checkpoint.LastRunAt,
		&checkpoint.ProcessedCount,
		&checkpoint.SuccessCount,
		&checkpoint.FailedCount,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get checkpoint %s: %w", name, err)
	}
	return &checkpoint, nil
}

// PutCheckpoint overwrites the checkpoint stored under name wholesale.
// Fields are never merged with the previous value.
func (db *DB) PutCheckpoint(ctx context.Context, name string, checkpoint types.RunCheckpoint) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO run_checkpoints (name, last_message_id, last_run_at, processed_count, success_count, failed_count)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (name) DO UPDATE SET
			last_message_id = $2,
			last_run_at = $3,
			processed_count = $4,
			success_count = $5,
			failed_count = $6`,
		name,
		checkpoint.LastMessageID,
		checkpoint.LastRunAt,
		checkpoint.ProcessedCount,
		checkpoint.SuccessCount,
		checkpoint.FailedCount,
	)
	if err != nil {
		return fmt.Errorf("failed to put checkpoint %s: %w", name, err)
	}
	return nil
}
