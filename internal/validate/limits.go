package validate

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	"myContacts/models"
)

var (
	limitsOnce sync.Once
	limits     *validator.Validate
)

func instance() *validator.Validate {
	limitsOnce.Do(func() {
		limits = validator.New()
		// Registration only fails for an empty tag or a nil func.
		_ = limits.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
			return IsDigits(fl.Field().String())
		})
		// Aliases used by the model tags; the lengths live in package models.
		for alias, tags := range map[string]string{
			"name_len":     fmt.Sprintf("max=%d", models.NameMaxLen),
			"job_len":      fmt.Sprintf("max=%d", models.JobMaxLen),
			"location_len": fmt.Sprintf("max=%d", models.LocationMaxLen),
			"contact_len":  fmt.Sprintf("max=%d,digits", models.ContactNumLen),
			"username_len": fmt.Sprintf("max=%d", models.UsernameMaxLen),
			"password_len": fmt.Sprintf("max=%d", models.PasswordMaxLen),
		} {
			limits.RegisterAlias(alias, tags)
		}
	})
	return limits
}

// LimitError describes the first field that breaks an input restriction.
type LimitError struct {
	Field string
	Tag   string
	Param string
}

func (e *LimitError) Error() string {
	switch e.Tag {
	case "max":
		return fmt.Sprintf("%s field accepts at most %s characters", e.Field, e.Param)
	case "digits":
		return fmt.Sprintf("%s field accepts only digits", e.Field)
	case "required":
		return fmt.Sprintf("%s field is required", e.Field)
	default:
		return fmt.Sprintf("%s field is invalid (%s)", e.Field, e.Tag)
	}
}

// Limits checks the struct-tag restrictions that the input layer of a form
// would enforce (maximum lengths, digits-only). It returns nil or a *LimitError
// for the first offending field in declaration order.
func Limits(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &LimitError{Field: fe.Field(), Tag: fe.ActualTag(), Param: fe.Param()}
	}
	return err
}
