package engine

import (
	"errors"
	"fmt"
)

// Error is an input-shape error: the caller handed the engine data it can
// never compute on. Code is machine-readable, Message is for humans.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newError(code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

const (
	CodeInvalidBet      = "INVALID_BET"
	CodeUnknownGameType = "UNKNOWN_GAME_TYPE"
	CodeInvalidPress    = "INVALID_PRESS"
	CodeDuplicateHole   = "DUPLICATE_HOLE"
)

// ErrNegativeFlow signals a computed settlement with a negative amount.
// That is an internal bug, never a data problem, and is surfaced as-is.
var ErrNegativeFlow = errors.New("settlement flow with negative amount")
