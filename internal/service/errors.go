package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go-inventory-billing/internal/repository"
	"go-inventory-billing/pkg/logger"
	"go-inventory-billing/pkg/validator"

	"github.com/sirupsen/logrus"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("record already exists")

	ErrStockNotFound    = fmt.Errorf("stock %w", ErrNotFound)
	ErrSupplierNotFound = fmt.Errorf("supplier %w", ErrNotFound)
	ErrBillNotFound     = fmt.Errorf("bill %w", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)
)

// ValidationError carries one message per failed field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func fieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// validate runs the struct tags of v and converts failures into a ValidationError.
func validate(v any) error {
	errs := validator.ValidateStruct(v)
	if len(errs) == 0 {
		return nil
	}
	ve := &ValidationError{Fields: make(map[string]string, len(errs))}
	for _, e := range errs {
		ve.Fields[e.FailedField] = describe(e)
	}
	return ve
}

func describe(e *validator.ErrorResponse) string {
	switch e.Tag {
	case "required":
		return "this field is required"
	case "max":
		return "must be at most " + e.Value + " characters"
	case "min":
		return "must be at least " + e.Value
	case "gt", "gte":
		return "must be greater than " + e.Value
	case "email":
		return "enter a valid email address"
	case "phone":
		return "enter a valid phone number"
	case "gstin":
		return "enter a valid 15 character GSTIN"
	case "eqfield":
		return "must match " + e.Value
	case "dive":
		return "invalid entry"
	default:
		return "failed on '" + e.Tag + "'"
	}
}

// translate maps repository sentinels to service errors. notFound is used for
// repository.ErrNotFound.
func translate(err, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return notFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrDuplicate
	default:
		return err
	}
}

// logUnexpected records errors that are not one of the expected kinds above.
func logUnexpected(log *logrus.Logger, module, funcName string, data any, err error) {
	var ve *ValidationError
	if err == nil || log == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicate) || errors.As(err, &ve) {
		return
	}
	logger.LogError(log, module, funcName, "unexpected failure", data, err)
}
