package model

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes model errors.
type ErrorCode string

const (
	// ErrCodeInvalidBounds indicates a lower bound above the upper bound.
	ErrCodeInvalidBounds ErrorCode = "INVALID_BOUNDS"

	// ErrCodeForeignReaction indicates a reaction already owned by another model.
	ErrCodeForeignReaction ErrorCode = "FOREIGN_REACTION"

	// ErrCodeNilEntity indicates a nil reaction or metabolite was passed in.
	ErrCodeNilEntity ErrorCode = "NIL_ENTITY"
)

// Error is returned by model operations that reject their input.
type Error struct {
	Code    ErrorCode
	Message string
	ID      string // reaction or metabolite ID, when known
}

func (e *Error) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s: %s (id=%s)", e.Code, e.Message, e.ID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsBoundsError reports whether err is an invalid-bounds error.
func IsBoundsError(err error) bool {
	return hasCode(err, ErrCodeInvalidBounds)
}

// IsForeignReaction reports whether err is a foreign-reaction error.
func IsForeignReaction(err error) bool {
	return hasCode(err, ErrCodeForeignReaction)
}

func hasCode(err error, code ErrorCode) bool {
	var me *Error
	if errors.As(err, &me) {
		return me.Code == code
	}
	return false
}
