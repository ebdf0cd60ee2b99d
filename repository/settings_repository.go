package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// SettingsRepository keeps small key/value settings of the contacts book.
type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) get(ctx context.Context, key string) (string, error) {
	var v string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&v)
	return v, err
}

// GetOrInit returns the value stored under key. When there is none it stores
// the result of create. If another writer stored a value first, that value wins.
func (r *SettingsRepository) GetOrInit(ctx context.Context, key string, create func() (string, error)) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	v, err := r.get(ctx, key)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	fresh, err := create()
	if err != nil {
		return "", err
	}
	if _, err := r.db.ExecContext(ctx, `INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`, key, fresh); err != nil {
		return "", err
	}
	return r.get(ctx, key)
}
