package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	ErrSlotNotFound = errors.New("slot not found")
)

// SlotRepository defines access to durable named slots. A slot holds one
// JSON document, written whole on every save.
type SlotRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

type slotRepository struct {
	db *sql.DB
}

// NewSlotRepository creates a SlotRepository backed by the state_slots table
func NewSlotRepository(db *sql.DB) SlotRepository {
	return &slotRepository{db: db}
}

// Get retrieves the raw document stored under key
func (r *slotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM state_slots WHERE key = $1`

	var value []byte
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to get slot %q: %w", key, err)
	}

	return value, nil
}

// Put inserts or replaces the document stored under key
func (r *slotRepository) Put(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO state_slots (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to put slot %q: %w", key, err)
	}

	return nil
}

// Delete removes the slot stored under key
func (r *slotRepository) Delete(ctx context.Context, key string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM state_slots WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("failed to delete slot %q: %w", key, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// Keys lists every slot name in ascending order
func (r *slotRepository) Keys(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key FROM state_slots ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan slot key: %w", err)
		}
		keys = append(keys, key)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating slots: %w", err)
	}

	return keys, nil
}
