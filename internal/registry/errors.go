package registry

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every error returned by a Registry wraps exactly one of these,
// so callers match with errors.Is.
var (
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidEntry    = errors.New("invalid entry")
	ErrDuplicateEntry  = errors.New("entry already registered")
	ErrNotFound        = errors.New("entry not found")
	ErrFrozen          = errors.New("registry is frozen")
	ErrWrongType       = errors.New("entry has unexpected type")
)

// Error describes a failed registry operation on a single category/id slot.
type Error struct {
	Op       string // "register", "replace", "unregister", "supersede", "get"
	Category Category
	ID       string
	Err      error
}

func (e *Error) Error() string {
	switch {
	case e.Category == "" && e.ID == "":
		return fmt.Sprintf("registry: %s: %v", e.Op, e.Err)
	case e.ID == "":
		return fmt.Sprintf("registry: %s %q: %v", e.Op, e.Category, e.Err)
	default:
		return fmt.Sprintf("registry: %s %s/%s: %v", e.Op, e.Category, e.ID, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func opError(op string, cat Category, id string, err error) error {
	return &Error{Op: op, Category: cat, ID: id, Err: err}
}
