// Package shared contains common domain types, errors, and events that are
// used across all domain packages.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")
	ErrInvalidEntity = errors.New("invalid entity")

	// Validation errors
	ErrValidation    = errors.New("validation error")
	ErrInvalidID     = errors.New("invalid ID")
	ErrInvalidInput  = errors.New("invalid input")
	ErrEmptyValue    = errors.New("value cannot be empty")
	ErrInvalidFormat = errors.New("invalid format")
	ErrInvalidPeriod = errors.New("invalid period")

	// Storage errors
	ErrCorruptData = errors.New("stored data is corrupt")

	// External source errors
	ErrSourceUnavailable = errors.New("data source unavailable")

	// State errors
	ErrInvalidState = errors.New("invalid state")
	ErrImmutable    = errors.New("entity is immutable")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "attendance", "roster", "report"
	Op      string // Operation that failed, e.g., "Create", "Aggregate"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Roster domain errors
var (
	ErrStudentNotFound  = NewDomainError("roster", "Find", ErrNotFound, "student not found")
	ErrRosterEmpty      = NewDomainError("roster", "Load", ErrInvalidEntity, "roster cannot be empty")
	ErrRosterSourceDown = NewDomainError("roster", "Load", ErrSourceUnavailable, "roster source is unreachable or malformed")
)

// Attendance domain errors
var (
	ErrRecordNotFound = NewDomainError("attendance", "Get", ErrNotFound, "no record for date")
	ErrRecordExists   = NewDomainError("attendance", "Create", ErrAlreadyExists, "a record already exists for this date")
	ErrRecordCorrupt  = NewDomainError("attendance", "Get", ErrCorruptData, "stored record cannot be parsed")
	ErrInvalidDate    = NewDomainError("attendance", "Validate", ErrInvalidFormat, "date must be YYYY-MM-DD")
	ErrUnknownStudent = NewDomainError("attendance", "Validate", ErrInvalidID, "entry references a student not in the roster")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if the error is an "already exists" error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrInvalidPeriod)
}

// IsCorrupt checks if the error indicates unreadable stored data.
// Callers treat a corrupt record as absent for that key alone.
func IsCorrupt(err error) bool {
	return errors.Is(err, ErrCorruptData)
}

// IsSourceUnavailable checks if the error is an external source failure.
func IsSourceUnavailable(err error) bool {
	return errors.Is(err, ErrSourceUnavailable)
}
