package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"myContacts/models"
)

// UserRepository is the record store for the credential table.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, role, password_hash`

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var role string
	if err := row.Scan(&u.ID, &u.Username, &role, &u.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.Role = models.Role(role)
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username))
}

// GetByRole returns the credential row owned by role.
func (r *UserRepository) GetByRole(ctx context.Context, role models.Role) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE role = ?`, string(role)))
}

// UpdatePasswordHash replaces the stored hash for the given user id.
func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, hash, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// SeedIfEmpty inserts users in one transaction when the table holds no rows.
// It reports whether anything was inserted. It is the only insert path for
// credential rows.
func (r *UserRepository) SeedIfEmpty(ctx context.Context, users []*models.User) (bool, error) {
	for _, u := range users {
		if u == nil {
			return false, errors.New("user is nil")
		}
		if !u.Role.Valid() {
			return false, fmt.Errorf("invalid role %q", u.Role)
		}
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	var n int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	for _, u := range users {
		if _, err := tx.ExecContext(ctx, `INSERT INTO users (id, username, role, password_hash) VALUES (?,?,?,?)`,
			u.ID, u.Username, string(u.Role), u.PasswordHash); err != nil {
			return false, fmt.Errorf("seed %s: %w", u.Role, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}
