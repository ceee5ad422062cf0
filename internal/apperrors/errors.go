package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can react without string matching.
type Kind int8

const (
	KindUnknown Kind = iota
	KindNotFound
	KindConflict
	KindInsufficientFunds
	KindInvalidReference
	KindInvalidArgument
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInsufficientFunds:
		return "insufficient_funds"
	case KindInvalidReference:
		return "invalid_reference"
	case KindInvalidArgument:
		return "invalid_argument"
	default:
		return "unknown"
	}
}

// Error is the error type returned by stores, actions and services.
type Error struct {
	Kind    Kind
	Entity  string
	ID      any
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Entity != "" && e.ID != nil {
		msg = fmt.Sprintf("%s %v: %s", e.Entity, e.ID, msg)
	} else if e.Entity != "" {
		msg = fmt.Sprintf("%s: %s", e.Entity, msg)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(entity string, id any) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, ID: id, Message: "not found"}
}

func Conflict(entity string, message string) *Error {
	return &Error{Kind: KindConflict, Entity: entity, Message: message}
}

// InsufficientFunds reports that accountID cannot cover amount.
func InsufficientFunds(accountID int64, balance, amount fmt.Stringer) *Error {
	return &Error{
		Kind:    KindInsufficientFunds,
		Entity:  "account",
		ID:      accountID,
		Message: fmt.Sprintf("insufficient funds: balance %s, requested %s", balance, amount),
	}
}

// InvalidReference reports that a write referenced an entity that does not
// exist. cause is kept in the chain so IsKind(err, KindNotFound) also holds.
func InvalidReference(entity string, id any, cause error) *Error {
	return &Error{
		Kind:    KindInvalidReference,
		Entity:  entity,
		ID:      id,
		Message: "invalid reference",
		Err:     cause,
	}
}

func InvalidArgument(field string, message string) *Error {
	return &Error{Kind: KindInvalidArgument, Entity: field, Message: message}
}

// KindOf returns the kind of the outermost *Error in err's chain.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// IsKind reports whether any *Error in err's chain has the given kind.
func IsKind(err error, kind Kind) bool {
	for err != nil {
		var appErr *Error
		if !errors.As(err, &appErr) {
			return false
		}
		if appErr.Kind == kind {
			return true
		}
		err = appErr.Err
	}
	return false
}
