package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// SnapshotRepo stores serialized session snapshots, one row per save slot.
type SnapshotRepo struct {
	db *DB
}

func NewSnapshotRepo(db *DB) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

// SnapshotMeta describes one stored snapshot.
type SnapshotMeta struct {
	Slot    string
	SavedAt time.Time
}

// Save upserts the snapshot for a slot.
func (r *SnapshotRepo) Save(ctx context.Context, slot string, data []byte) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO snapshots (slot, data, saved_at)
		VALUES ($1, $2, now())
		ON CONFLICT (slot) DO UPDATE SET data = EXCLUDED.data, saved_at = now()`,
		slot, data)
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", slot, err)
	}
	return nil
}

// Load returns the snapshot bytes for a slot, or nil if the slot has no
// snapshot. Absence is an ordinary outcome, not an error.
func (r *SnapshotRepo) Load(ctx context.Context, slot string) ([]byte, error) {
	var data []byte
	err := r.db.Pool.QueryRow(ctx,
		`SELECT data FROM snapshots WHERE slot = $1`, slot).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", slot, err)
	}
	return data, nil
}

// List returns metadata for every stored snapshot, newest first.
func (r *SnapshotRepo) List(ctx context.Context) ([]SnapshotMeta, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT slot, saved_at FROM snapshots ORDER BY saved_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var out []SnapshotMeta
	for rows.Next() {
		var m SnapshotMeta
		if err := rows.Scan(&m.Slot, &m.SavedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
