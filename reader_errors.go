package ocsv

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by [Reader]. These are compatible with
// [encoding/csv]'s own sentinels of the same name.
var (
	ErrBareQuote     = errors.New("bare \" in non-quoted-field")
	ErrQuote         = errors.New("extraneous or missing \" in quoted-field")
	ErrFieldCount    = errors.New("wrong number of fields")
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
)

// DefaultMaxInputSize is the default maximum input size (2GB) a [Reader]
// will accept before returning ErrInputTooLarge.
const DefaultMaxInputSize = 2 * 1024 * 1024 * 1024 // 2GB

// ParseError represents a [Reader] parsing error with location information.
type ParseError struct {
	StartLine int // Record start line
	Line      int // Error line
	Column    int // Error column
	Err       error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error on line %d, column %d: %v", e.Line, e.Column, e.Err)
}

// Unwrap returns the underlying error for use with [errors.Is] and [errors.Unwrap].
func (e *ParseError) Unwrap() error {
	return e.Err
}
