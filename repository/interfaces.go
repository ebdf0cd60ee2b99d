package repository

import (
	"context"
	"errors"

	"myContacts/models"
)

// ErrNotFound is returned by mutations that matched no row.
var ErrNotFound = errors.New("record not found")

// ContactStore defines operations on Contact entities.
type ContactStore interface {
	Create(ctx context.Context, f models.ContactFields) (*models.Contact, error)
	GetByID(ctx context.Context, id int64) (*models.Contact, error)
	Update(ctx context.Context, id int64, f models.ContactFields) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter models.ContactFilter) ([]models.Contact, error)
	FindByNumber(ctx context.Context, number string, excludeID *int64) (*models.Contact, error)
}

// UserStore defines operations on credential rows.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByRole(ctx context.Context, role models.Role) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	SeedIfEmpty(ctx context.Context, users []*models.User) (bool, error)
}

// SettingStore keeps named values that belong to one contacts book.
type SettingStore interface {
	GetOrInit(ctx context.Context, key string, create func() (string, error)) (string, error)
}

var (
	_ ContactStore = (*ContactRepository)(nil)
	_ UserStore    = (*UserRepository)(nil)
	_ SettingStore = (*SettingsRepository)(nil)
)
