package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrVersionIsInvalid is the sentinel error for invalid aggregate versions.
	ErrVersionIsInvalid = errors.New("version is invalid")

	// ErrVersionConflict is the sentinel error for optimistic concurrency failures:
	// the aggregate was modified by another actor since it was read. Callers should
	// re-fetch the aggregate and retry or abandon the operation.
	ErrVersionConflict = errors.New("version conflict")
)

// VersionIsInvalidError indicates that an aggregate version value is malformed.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewVersionIsInvalidError creates a VersionIsInvalidError wrapping an underlying cause.
func NewVersionIsInvalidError(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

// NewVersionIsInvalidErrorWithCause creates a VersionIsInvalidError without an underlying cause.
func NewVersionIsInvalidErrorWithCause(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

func (e *VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrVersionIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName))
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// VersionConflictError indicates that a compare-and-swap on an aggregate version
// lost the race against another concurrent mutation.
type VersionConflictError struct {
	ParamName string
	ID        any
	Expected  int64
	Cause     error
}

// NewVersionConflictError creates a VersionConflictError for the given aggregate.
func NewVersionConflictError(paramName string, id any, expected int64) *VersionConflictError {
	return &VersionConflictError{
		ParamName: paramName,
		ID:        id,
		Expected:  expected,
	}
}

// NewVersionConflictErrorWithCause creates a VersionConflictError wrapping an underlying cause.
func NewVersionConflictErrorWithCause(paramName string, id any, expected int64, cause error) *VersionConflictError {
	return &VersionConflictError{
		ParamName: paramName,
		ID:        id,
		Expected:  expected,
		Cause:     cause,
	}
}

func (e *VersionConflictError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %s, expected version is %d (cause: %s)",
			ErrVersionConflict, e.ParamName, e.ID, e.Expected, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %s, expected version is %d",
		ErrVersionConflict, e.ParamName, e.ID, e.Expected))
}

func (e *VersionConflictError) Unwrap() error {
	return ErrVersionConflict
}
