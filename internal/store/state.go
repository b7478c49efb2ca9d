package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Mahwas/Cognito/internal/logger"
)

// stateKey names the single app_state row holding the persisted record.
const stateKey = "cognito_state"

type sqliteStateRepo struct {
	db  *sql.DB
	log *logger.Logger
}

func newSQLiteStateRepo(db *sql.DB, log *logger.Logger) *sqliteStateRepo {
	if log == nil {
		log = logger.Nop()
	}
	return &sqliteStateRepo{db: db, log: log.With("repo", "sqlite-state")}
}

func (r *sqliteStateRepo) Load(ctx context.Context) (*PersistedState, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = ?`, stateKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	return decodeState([]byte(raw), r.log), nil
}

func (r *sqliteStateRepo) Save(ctx context.Context, st PersistedState) error {
	data, err := encodeState(st)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		stateKey, string(data), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

func (r *sqliteStateRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM app_state WHERE key = ?`, stateKey); err != nil {
		return fmt.Errorf("clear state: %w", err)
	}
	return nil
}

func encodeState(st PersistedState) ([]byte, error) {
	if st.CompletedModules == nil {
		st.CompletedModules = []string{}
	}
	data, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return data, nil
}

// decodeState treats an unreadable record as absent.
func decodeState(raw []byte, log *logger.Logger) *PersistedState {
	var st PersistedState
	if err := json.Unmarshal(raw, &st); err != nil {
		log.Warn("discarding unreadable state record", "error", err, "bytes", len(raw))
		return nil
	}
	return &st
}
