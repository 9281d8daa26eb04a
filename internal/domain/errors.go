package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFeed marks a purchase-order feed that cannot be loaded.
	ErrInvalidFeed = errors.New("invalid purchase order feed")
	// ErrInvalidInput marks a malformed receipt or invoice.
	ErrInvalidInput = errors.New("invalid input")
)

// FeedError describes the feed row that made a load fail.
type FeedError struct {
	Line   int
	Field  string
	Reason string
}

func (e *FeedError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("feed line %d: %s: %s", e.Line, e.Field, e.Reason)
	}
	return fmt.Sprintf("feed: %s: %s", e.Field, e.Reason)
}

func (e *FeedError) Unwrap() error { return ErrInvalidFeed }

// InputError describes the field of a receipt or invoice that failed
// validation. Field is a JSON-style path such as "line_items[2].quantity".
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }
