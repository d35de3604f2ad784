// Package errors defines the sentinel error values the search engine can
// return and a small wrapper type that attaches a coarse-grained ErrorKind
// and a human-readable message to one of those sentinels.
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidID        = errors.New("invalid document id")
	ErrDuplicateID      = errors.New("document id already indexed")
	ErrInvalidCharacter = errors.New("invalid control character")
	ErrEmptyMinusWord   = errors.New("empty minus-word in query")
	ErrDoubleMinus      = errors.New("double minus in query")
)

// ErrorKind classifies a SearchError for callers that want to branch on the
// failure category without comparing against every sentinel individually.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInvalidID
	KindDuplicateID
	KindInvalidCharacter
	KindEmptyMinusWord
	KindDoubleMinus
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidID:
		return "invalid_id"
	case KindDuplicateID:
		return "duplicate_id"
	case KindInvalidCharacter:
		return "invalid_character"
	case KindEmptyMinusWord:
		return "empty_minus_word"
	case KindDoubleMinus:
		return "double_minus"
	default:
		return "unknown"
	}
}

// SearchError wraps a sentinel error with a message and an ErrorKind.
type SearchError struct {
	Err     error
	Message string
}

func (e *SearchError) Error() string {
	if e.Message == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

// Kind reports the ErrorKind of e, or KindUnknown if e is nil or wraps none
// of the sentinels this package defines.
func (e *SearchError) Kind() ErrorKind {
	if e == nil {
		return KindUnknown
	}
	switch {
	case errors.Is(e.Err, ErrInvalidID):
		return KindInvalidID
	case errors.Is(e.Err, ErrDuplicateID):
		return KindDuplicateID
	case errors.Is(e.Err, ErrInvalidCharacter):
		return KindInvalidCharacter
	case errors.Is(e.Err, ErrEmptyMinusWord):
		return KindEmptyMinusWord
	case errors.Is(e.Err, ErrDoubleMinus):
		return KindDoubleMinus
	default:
		return KindUnknown
	}
}

// New wraps sentinel with message, producing a *SearchError.
func New(sentinel error, message string) *SearchError {
	return &SearchError{Err: sentinel, Message: message}
}

// Newf is like New but formats the message with fmt.Sprintf.
func Newf(sentinel error, format string, args ...any) *SearchError {
	return &SearchError{Err: sentinel, Message: fmt.Sprintf(format, args...)}
}

// Kind classifies err by checking it against every sentinel this package
// defines, unwrapping through *SearchError and plain wrapped errors alike.
func Kind(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	var se *SearchError
	if errors.As(err, &se) {
		return se.Kind()
	}
	switch {
	case errors.Is(err, ErrInvalidID):
		return KindInvalidID
	case errors.Is(err, ErrDuplicateID):
		return KindDuplicateID
	case errors.Is(err, ErrInvalidCharacter):
		return KindInvalidCharacter
	case errors.Is(err, ErrEmptyMinusWord):
		return KindEmptyMinusWord
	case errors.Is(err, ErrDoubleMinus):
		return KindDoubleMinus
	default:
		return KindUnknown
	}
}
