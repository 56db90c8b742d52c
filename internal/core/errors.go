package core

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/JonMunkholm/lister/internal/store"
)

// Kind classifies an operation failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindConflict
	KindValidation
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. Every *Error matches exactly one of them.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
	ErrStorage    = errors.New("storage failure")
)

// Error is the failure returned by every Service operation.
type Error struct {
	Kind   Kind
	Op     string // operation, e.g. "category.rename"
	Entity string // "list", "item", "category" or "name"
	Value  string // offending id or value, when there is one
	Msg    string // human-readable reason, safe to show to users
	Err    error  // underlying cause, if any
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the kind sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrConflict:
		return e.Kind == KindConflict
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrStorage:
		return e.Kind == KindStorage
	}
	return false
}

// KindOf returns the kind of err, or KindUnknown when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func notFound(op, entity string, id int64) *Error {
	return &Error{
		Kind:   KindNotFound,
		Op:     op,
		Entity: entity,
		Value:  strconv.FormatInt(id, 10),
		Msg:    fmt.Sprintf("%s %d not found", entity, id),
	}
}

func alreadyExists(op, entity, value string, err error) *Error {
	return &Error{
		Kind:   KindConflict,
		Op:     op,
		Entity: entity,
		Value:  value,
		Msg:    fmt.Sprintf("%s %q already exists", entity, value),
		Err:    err,
	}
}

func invalid(op, field, msg string) *Error {
	return &Error{Kind: KindValidation, Op: op, Value: field, Msg: msg}
}

// classify turns a store error into an *Error. entity and value describe the
// row being written, for the Conflict message. Errors that already carry a
// kind pass through unchanged.
func classify(op, entity, value string, err error) error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return err
	}

	switch {
	case errors.Is(err, store.ErrUniqueViolation):
		return alreadyExists(op, entity, value, err)
	case errors.Is(err, store.ErrForeignKeyViolation):
		return &Error{
			Kind:   KindConflict,
			Op:     op,
			Entity: entity,
			Value:  value,
			Msg:    fmt.Sprintf("%s %q references a missing row", entity, value),
			Err:    err,
		}
	default:
		return &Error{Kind: KindStorage, Op: op, Entity: entity, Msg: "storage failure", Err: err}
	}
}

// lookup classifies the result of a single-row read or write by id.
func lookup(op, entity string, id int64, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrNoRows) {
		return notFound(op, entity, id)
	}
	return classify(op, entity, strconv.FormatInt(id, 10), err)
}
