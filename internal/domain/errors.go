package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so callers can decide how to report them.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindValidation: rejected before any mutation (stake bounds, malformed ids).
	KindValidation
	// KindStateConflict: the current state forbids the operation (market closed, duplicate bet).
	KindStateConflict
	// KindNotFound: unknown market, user or player.
	KindNotFound
	// KindProvider: the match-data provider failed with something other than not-found.
	KindProvider
	// KindPersistence: the document store could not be read or written.
	KindPersistence
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindStateConflict:
		return "state_conflict"
	case KindNotFound:
		return "not_found"
	case KindProvider:
		return "provider"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

// Error is a user-facing domain failure with a stable code.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is matches errors by code so wrapped copies still compare equal.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// WithMessage returns a copy of e carrying a more specific message.
func (e *Error) WithMessage(format string, args ...any) *Error {
	return &Error{Kind: e.Kind, Code: e.Code, Message: fmt.Sprintf(format, args...)}
}

var (
	ErrMarketNotFound      = &Error{KindNotFound, "MARKET_NOT_FOUND", "market not found"}
	ErrMarketClosed        = &Error{KindStateConflict, "MARKET_CLOSED", "betting is closed for this match"}
	ErrStakeTooLow         = &Error{KindValidation, "STAKE_TOO_LOW", "stake below minimum"}
	ErrStakeTooHigh        = &Error{KindValidation, "STAKE_TOO_HIGH", "stake above maximum"}
	ErrInvalidSide         = &Error{KindValidation, "INVALID_SIDE", "side must be blue or red"}
	ErrInvalidUser         = &Error{KindValidation, "INVALID_USER", "user id is empty"}
	ErrInvalidAmount       = &Error{KindValidation, "INVALID_AMOUNT", "amount must be positive"}
	ErrDuplicateBet        = &Error{KindStateConflict, "DUPLICATE_BET", "you already have a bet on this match"}
	ErrInsufficientBalance = &Error{KindStateConflict, "INSUFFICIENT_BALANCE", "insufficient balance"}
	ErrAlreadyResolved     = &Error{KindStateConflict, "ALREADY_RESOLVED", "market already resolved"}
	ErrInvalidRiotID       = &Error{KindValidation, "INVALID_RIOT_ID", "riot id must look like Name#TAG"}
	ErrPlayerNotFound      = &Error{KindNotFound, "PLAYER_NOT_FOUND", "player not found"}
	ErrPlayerNotInMatch    = &Error{KindValidation, "PLAYER_NOT_IN_MATCH", "tracked player is not part of the match"}
	ErrAccountLinked       = &Error{KindStateConflict, "ACCOUNT_ALREADY_LINKED", "riot account already linked to another user"}
)

// ProviderError wraps a non-404 failure from the match-data provider.
type ProviderError struct {
	Op     string
	Status int
	Err    error
}

func (e *ProviderError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("provider %s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("provider %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// PersistenceError wraps a document store failure. It signals possible
// storage corruption and must not be confused with a validation failure.
type PersistenceError struct {
	Doc string
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s %q: %v", e.Op, e.Doc, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// KindOf returns the kind of the first classified error in err's chain.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return KindPersistence
	}
	var pr *ProviderError
	if errors.As(err, &pr) {
		return KindProvider
	}
	return KindUnknown
}

// CodeOf returns the stable code of a domain error, or "" when err is not one.
func CodeOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
