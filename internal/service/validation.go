package service

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	apperr "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

var (
	fullnamePattern = regexp.MustCompile(`^[a-zA-Z0-9 ]+$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]{4,}@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	passwordSymbols = "@$!%*?&"
)

var validate = newValidator()

// Validator returns the shared validator with the storefront rules registered.
func Validator() *validator.Validate {
	return validate
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("fullname", func(fl validator.FieldLevel) bool {
		return fullnamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("storeemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return strongPassword(fl.Field().String())
	})
	return v
}

// strongPassword requires 6-20 characters drawn from letters, digits and
// @$!%*?&, with at least one of each class.
func strongPassword(pw string) bool {
	if len(pw) < 6 || len(pw) > 20 {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range pw {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		default:
			return false
		}
	}
	return upper && lower && digit && symbol
}

func validateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return apperr.NewValidationError(err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkID(id string) error {
	if !model.ValidID(id) {
		return apperr.ErrInvalidID
	}
	return nil
}

// notFound swaps repository.ErrNotFound for the domain error of the caller.
func notFound(err, domain error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return domain
	}
	return err
}
