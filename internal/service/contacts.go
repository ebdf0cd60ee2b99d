package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"myContacts/internal/auth"
	"myContacts/internal/validate"
	"myContacts/models"
	"myContacts/repository"
)

// Contacts runs the contact validation pipeline and the record store operations.
type Contacts struct {
	store repository.ContactStore
	log   *zap.Logger
}

// NewContacts creates a contact service over store.
func NewContacts(store repository.ContactStore, log *zap.Logger) *Contacts {
	if log == nil {
		log = zap.NewNop()
	}
	return &Contacts{store: store, log: log}
}

// normalize trims every field at the edges.
func normalize(f models.ContactFields) models.ContactFields {
	return models.ContactFields{
		Name:     strings.TrimSpace(f.Name),
		Job:      strings.TrimSpace(f.Job),
		Location: strings.TrimSpace(f.Location),
		Contact:  strings.TrimSpace(f.Contact),
	}
}

func checkText(field, value string) *ValidationError {
	if !validate.IsAlphaOrSpace(value) {
		return invalid(field, "%s field accepts only alphabets and space(s)", field)
	}
	if !validate.HasNoRepeatedSpace(value) {
		return invalid(field, "Two or more continuous spaces are not allowed in %s field", field)
	}
	if !validate.MeetsMinLength(validate.Length(value), models.TextMinLen) {
		return invalid(field, "Minimum %d characters required for %s field", models.TextMinLen, field)
	}
	return nil
}

// IsContactNumberUnique reports whether no contact other than excludeID uses
// number. On conflict it returns the name of the first such contact.
func (s *Contacts) IsContactNumberUnique(ctx context.Context, number string, excludeID *int64) (bool, string, error) {
	c, err := s.store.FindByNumber(ctx, number, excludeID)
	if err != nil {
		return false, "", err
	}
	if c == nil {
		return true, "", nil
	}
	return false, c.Name, nil
}

// Validate runs the pipeline over f and returns the values to store: trimmed
// and upper-cased. The first failing check is reported as a *ValidationError;
// excludeID names the contact being updated, if any.
func (s *Contacts) Validate(ctx context.Context, f models.ContactFields, excludeID *int64) (models.ContactFields, error) {
	f = normalize(f)

	var le *validate.LimitError
	if err := validate.Limits(f); errors.As(err, &le) {
		return models.ContactFields{}, &ValidationError{Field: le.Field, Message: le.Error()}
	} else if err != nil {
		return models.ContactFields{}, err
	}

	for _, fv := range []struct{ field, value string }{
		{"Name", f.Name},
		{"Job", f.Job},
		{"Location", f.Location},
	} {
		if verr := checkText(fv.field, fv.value); verr != nil {
			return models.ContactFields{}, verr
		}
	}

	if !validate.MeetsMinLength(validate.Length(f.Contact), models.ContactNumLen) {
		return models.ContactFields{}, invalid("Contact", "Minimum %d characters required for Contact field", models.ContactNumLen)
	}
	unique, owner, err := s.IsContactNumberUnique(ctx, f.Contact, excludeID)
	if err != nil {
		return models.ContactFields{}, err
	}
	if !unique {
		return models.ContactFields{}, invalid("Contact", "Contact number %s used by %s", f.Contact, owner)
	}

	return models.ContactFields{
		Name:     strings.ToUpper(f.Name),
		Job:      strings.ToUpper(f.Job),
		Location: strings.ToUpper(f.Location),
		Contact:  f.Contact,
	}, nil
}

// List returns contacts matching filter, ordered by name.
func (s *Contacts) List(ctx context.Context, filter models.ContactFilter) ([]models.Contact, error) {
	if _, err := auth.RequirePrincipal(ctx); err != nil {
		return nil, err
	}
	if filter.Prefix != "" && !filter.Column.Valid() {
		return nil, invalid("Search", "Unknown search criteria %q", filter.Column)
	}
	list, err := s.store.List(ctx, filter)
	if err != nil {
		s.log.Error("list contacts", zap.String("column", string(filter.Column)), zap.Error(err))
		return nil, failed("list", MsgListFailed, err)
	}
	return list, nil
}

// Get returns one contact.
func (s *Contacts) Get(ctx context.Context, id int64) (*models.Contact, error) {
	if _, err := auth.RequirePrincipal(ctx); err != nil {
		return nil, err
	}
	c, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, failed("get", MsgListFailed, err)
	}
	if c == nil {
		return nil, ErrContactNotFound
	}
	return c, nil
}

// Add validates f and appends one contact.
func (s *Contacts) Add(ctx context.Context, f models.ContactFields) (*models.Contact, error) {
	p, err := auth.RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}
	clean, err := s.Validate(ctx, f, nil)
	if err != nil {
		return nil, s.storageOr("add", MsgAddFailed, err)
	}
	c, err := s.store.Create(ctx, clean)
	if err != nil {
		s.log.Error("add contact", zap.String("name", clean.Name), zap.Error(err))
		return nil, failed("add", MsgAddFailed, err)
	}
	s.log.Info("contact added", zap.Int64("id", c.ID), zap.String("by", p.Username))
	return c, nil
}

// Update validates f and overwrites the four editable fields of contact id.
func (s *Contacts) Update(ctx context.Context, id int64, f models.ContactFields) (*models.Contact, error) {
	p, err := auth.RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, failed("update", MsgUpdateFailed, err)
	}
	if existing == nil {
		return nil, ErrContactNotFound
	}
	clean, err := s.Validate(ctx, f, &id)
	if err != nil {
		return nil, s.storageOr("update", MsgUpdateFailed, err)
	}
	if err := s.store.Update(ctx, id, clean); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContactNotFound
		}
		s.log.Error("update contact", zap.Int64("id", id), zap.Error(err))
		return nil, failed("update", MsgUpdateFailed, err)
	}
	c, err := s.store.GetByID(ctx, id)
	if err != nil || c == nil {
		return nil, failed("update", MsgUpdateFailed, err)
	}
	s.log.Info("contact updated", zap.Int64("id", id), zap.String("by", p.Username))
	return c, nil
}

// Remove deletes contact id and returns the row as it was before removal.
func (s *Contacts) Remove(ctx context.Context, id int64) (*models.Contact, error) {
	p, err := auth.RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}
	existing, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, failed("remove", MsgRemoveFailed, err)
	}
	if existing == nil {
		return nil, ErrContactNotFound
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrContactNotFound
		}
		s.log.Error("remove contact", zap.Int64("id", id), zap.Error(err))
		return nil, failed("remove", MsgRemoveFailed, err)
	}
	s.log.Info("contact removed", zap.Int64("id", id), zap.String("by", p.Username))
	return existing, nil
}

// storageOr passes validation errors through and wraps anything else as a
// storage failure of op.
func (s *Contacts) storageOr(op, msg string, err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return err
	}
	s.log.Error(op+" contact: validation lookup", zap.Error(err))
	return failed(op, msg, err)
}
