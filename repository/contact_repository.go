package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"myContacts/models"
)

// ContactRepository is the record store for the contacts table.
type ContactRepository struct {
	db *sql.DB
}

// NewContactRepository creates a new ContactRepository.
func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create inserts a contact and reads the committed row back.
func (r *ContactRepository) Create(ctx context.Context, f models.ContactFields) (*models.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `INSERT INTO contacts (name, job, location, contact) VALUES (?,?,?,?)`,
		f.Name, f.Job, f.Location, f.Contact)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("created contact not found: id=%d", id)
	}
	return c, nil
}

// GetByID fetches a contact by its ID. It returns nil, nil when no row matches.
func (r *ContactRepository) GetByID(ctx context.Context, id int64) (*models.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var c models.Contact
	err := r.db.QueryRowContext(ctx, `SELECT id, name, job, location, contact FROM contacts WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Job, &c.Location, &c.Contact)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// Update overwrites the four editable columns of a contact.
func (r *ContactRepository) Update(ctx context.Context, id int64, f models.ContactFields) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `UPDATE contacts SET name = ?, job = ?, location = ?, contact = ? WHERE id = ?`,
		f.Name, f.Job, f.Location, f.Contact, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Delete removes a contact.
func (r *ContactRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// FindByNumber returns the first contact, in insertion order, whose stored
// number equals number. The row with excludeID is skipped when given.
func (r *ContactRepository) FindByNumber(ctx context.Context, number string, excludeID *int64) (*models.Contact, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	q := `SELECT id, name, job, location, contact FROM contacts WHERE contact = ?`
	args := []any{number}
	if excludeID != nil {
		q += ` AND id != ?`
		args = append(args, *excludeID)
	}
	q += ` ORDER BY id LIMIT 1`

	var c models.Contact
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&c.ID, &c.Name, &c.Job, &c.Location, &c.Contact)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
