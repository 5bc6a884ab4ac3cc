package services

import (
	"errors"
	"fmt"
	"strings"

	"attorney_directory_go/db"
)

// Attorney-related errors
var (
	ErrAttorneyNotFound = errors.New("attorney not found")
	ErrInvalidPhone     = errors.New("invalid phone number")
)

// StorageError is raised when the attorney document cannot be read or written
type StorageError = db.StorageError

// ValidationError is a rejected request. MessageKey is the i18n key of the
// user-facing message; Fields lists the offending inputs when known.
type ValidationError struct {
	MessageKey string
	Fields     []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed: " + e.MessageKey
	}
	return fmt.Sprintf("validation failed: %s (%s)", e.MessageKey, strings.Join(e.Fields, ", "))
}

// Message keys shared by the gateway and the form validator
const (
	MsgMissingFields    = "errors.missing_fields"
	MsgIDRequired       = "errors.id_required"
	MsgInvalidID        = "errors.invalid_id"
	MsgInvalidBody      = "errors.invalid_body"
	MsgNegativeCount    = "errors.negative_count"
	MsgNotFound         = "errors.not_found"
	MsgStorage          = "errors.storage"
	MsgMethodNotAllowed = "errors.method_not_allowed"
	MsgFieldsRequired   = "form.fields_required"
	MsgInvalidSpecialty = "form.invalid_specialty"
	MsgInvalidEmail     = "form.invalid_email"
	MsgInvalidPhone     = "form.invalid_phone_number"
	MsgInvalidNumber    = "form.invalid_number"
	MsgWonExceedsTotal  = "form.won_exceeds_total"
)

// IsValidationError reports whether err is (or wraps) a ValidationError
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
