package engine

import (
	"errors"
	"fmt"

	"github.com/roach88/ritual/internal/model"
)

// ErrorCode categorizes engine errors.
type ErrorCode string

const (
	// ErrCodeInvalidTimeFormat indicates a target time that is not "H:MM AM|PM".
	ErrCodeInvalidTimeFormat ErrorCode = "INVALID_TIME_FORMAT"

	// ErrCodeInvalidHabit indicates a habit that cannot be added (empty name).
	ErrCodeInvalidHabit ErrorCode = "INVALID_HABIT"

	// ErrCodeStoreFailure indicates the repository could not read or write.
	ErrCodeStoreFailure ErrorCode = "STORE_FAILURE"
)

// Error is returned by engine operations.
type Error struct {
	Code    ErrorCode
	Message string
	Routine model.RoutineType // empty when not routine specific
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Routine != "" {
		msg = fmt.Sprintf("%s (routine=%s)", msg, e.Routine)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsInvalidTime reports whether err is a rejected target time.
// Uses errors.As to handle wrapped errors.
func IsInvalidTime(err error) bool {
	return hasCode(err, ErrCodeInvalidTimeFormat)
}

// IsInvalidHabit reports whether err is a rejected habit.
func IsInvalidHabit(err error) bool {
	return hasCode(err, ErrCodeInvalidHabit)
}

// IsStoreFailure reports whether err came from the repository.
func IsStoreFailure(err error) bool {
	return hasCode(err, ErrCodeStoreFailure)
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

func storeFailure(t model.RoutineType, msg string, err error) *Error {
	return &Error{Code: ErrCodeStoreFailure, Message: msg, Routine: t, Err: err}
}
