package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountDeactivated  = errors.New("account is deactivated")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrDuplicateSession    = errors.New("an active work session already exists")
	ErrInvalidFileType     = errors.New("invalid file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrAssignmentForbidden = errors.New("student cannot be assigned to this project")
)

// InvalidStateError reports a transition invoked while the entity is in a
// status that does not permit it. The entity is left unmodified.
type InvalidStateError struct {
	Entity     string
	Transition string
	Status     string
}

func (e InvalidStateError) Error() string {
	return fmt.Sprintf("%s: cannot %s while status is '%s'", e.Entity, e.Transition, e.Status)
}

func NewInvalidState(entity, transition, status string) error {
	return InvalidStateError{
		Entity:     entity,
		Transition: transition,
		Status:     status,
	}
}

func IsInvalidState(err error) bool {
	var ise InvalidStateError
	return errors.As(err, &ise)
}

// MissingReferenceError reports that a referenced entity could not be
// resolved when a derived computation needed it. Transitions degrade by
// skipping the computation unless the reference is mandatory for the
// transition's core effect.
type MissingReferenceError struct {
	Entity    string
	Reference string
}

func (e MissingReferenceError) Error() string {
	return fmt.Sprintf("%s: reference '%s' cannot be resolved", e.Entity, e.Reference)
}

type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s' with value '%v': %s",
		e.Field, e.Value, e.Message)
}

func NewValidation(field string, value interface{}, message string) error {
	return ValidationError{Field: field, Value: value, Message: message}
}
