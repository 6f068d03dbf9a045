package sessionoverride

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PGStore persists session override records in a tool_overrides table
// (JSONB column), grounded on the teacher's internal/store/pg upsert
// pattern (ON CONFLICT DO UPDATE). A per-key in-process lock
// (SPEC_FULL.md §5) backs the per-row `SELECT ... FOR UPDATE` so
// concurrent updates to the same session_key serialize even when callers
// share one *sql.DB across goroutines.
type PGStore struct {
	db   *sql.DB
	keys keyLock
}

// NewPGStore wraps an already-open *sql.DB (see cmd/toolgate's
// "pgx" driver registration, mirroring the teacher's cmd/migrate.go).
func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

func (p *PGStore) Get(ctx context.Context, sessionKey string) (Record, error) {
	if sessionKey == "" {
		return Record{}, ErrNoActiveSession
	}

	var raw []byte
	err := p.db.QueryRowContext(ctx,
		`SELECT record FROM tool_overrides WHERE session_key = $1`, sessionKey,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return Record{}, nil
	}
	if err != nil {
		return Record{}, fmt.Errorf("sessionoverride: query: %w", err)
	}

	var r Record
	if err := json.Unmarshal(raw, &r); err != nil {
		return Record{}, fmt.Errorf("sessionoverride: decode: %w", err)
	}
	return r, nil
}

func (p *PGStore) Update(ctx context.Context, sessionKey string, mutate func(*Record)) (Record, error) {
	if sessionKey == "" {
		return Record{}, ErrNoActiveSession
	}

	unlock := p.keys.lock(sessionKey)
	defer unlock()

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return Record{}, fmt.Errorf("sessionoverride: begin tx: %w", err)
	}
	defer tx.Rollback()

	var raw []byte
	var current Record
	err = tx.QueryRowContext(ctx,
		`SELECT record FROM tool_overrides WHERE session_key = $1 FOR UPDATE`, sessionKey,
	).Scan(&raw)
	switch {
	case err == sql.ErrNoRows:
		current = Record{}
	case err != nil:
		return Record{}, fmt.Errorf("sessionoverride: query for update: %w", err)
	default:
		if err := json.Unmarshal(raw, &current); err != nil {
			return Record{}, fmt.Errorf("sessionoverride: decode: %w", err)
		}
	}

	mutate(&current)

	encoded, err := json.Marshal(current)
	if err != nil {
		return Record{}, fmt.Errorf("sessionoverride: encode: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO tool_overrides (session_key, record, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (session_key) DO UPDATE SET
		   record = EXCLUDED.record,
		   updated_at = EXCLUDED.updated_at`,
		sessionKey, encoded,
	)
	if err != nil {
		return Record{}, fmt.Errorf("sessionoverride: upsert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Record{}, fmt.Errorf("sessionoverride: commit: %w", err)
	}

	return current, nil
}

func (p *PGStore) Reset(ctx context.Context, sessionKey string) (bool, error) {
	return reset(ctx, p, sessionKey)
}
