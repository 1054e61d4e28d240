package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for values that fall outside the closed enumerations.
// The concrete error types below wrap them so callers can use errors.Is
// while still seeing the rejected value in the message.
var (
	// ErrUnknownRole is returned when a string is not a valid Role.
	ErrUnknownRole = errors.New("unknown role")

	// ErrUnsupportedFormat is returned when a string or Format is not CSV or HTML.
	ErrUnsupportedFormat = errors.New("unsupported report format")
)

// UnknownRoleError reports the rejected role string.
type UnknownRoleError struct {
	Value string
}

func (e *UnknownRoleError) Error() string {
	return fmt.Sprintf("%s %q: must be one of %v", ErrUnknownRole, e.Value, Roles())
}

// Unwrap returns ErrUnknownRole.
func (e *UnknownRoleError) Unwrap() error {
	return ErrUnknownRole
}

// UnsupportedFormatError reports the rejected format string.
type UnsupportedFormatError struct {
	Value string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s %q: must be one of %v", ErrUnsupportedFormat, e.Value, Formats())
}

// Unwrap returns ErrUnsupportedFormat.
func (e *UnsupportedFormatError) Unwrap() error {
	return ErrUnsupportedFormat
}
