// SPDX-License-Identifier: MPL-2.0

package fqname

import (
	"errors"
	"fmt"
)

const (
	// SchemeVersioned is the legacy grammar carrying an explicit major.minor
	// version (name@major.minor::Interface/instance).
	SchemeVersioned Scheme = "versioned"
	// SchemeUnversioned is the dotted grammar without a version field
	// (dotted.name.Interface/instance).
	SchemeUnversioned Scheme = "unversioned"
)

// ErrInvalidScheme is returned when a Scheme value is not recognized.
var ErrInvalidScheme = errors.New("invalid identifier scheme")

type (
	// Scheme identifies which identifier grammar produced a Record.
	Scheme string

	// InvalidSchemeError is returned when a Scheme value is not recognized.
	// It wraps ErrInvalidScheme for errors.Is() compatibility.
	InvalidSchemeError struct {
		Value Scheme
	}
)

// Error implements the error interface.
func (e *InvalidSchemeError) Error() string {
	return fmt.Sprintf("invalid identifier scheme %q (valid: %s, %s)", e.Value, SchemeVersioned, SchemeUnversioned)
}

// Unwrap returns ErrInvalidScheme so callers can use errors.Is for programmatic detection.
func (e *InvalidSchemeError) Unwrap() error { return ErrInvalidScheme }

// IsValid returns whether the Scheme is one of the defined schemes,
// and a list of validation errors if it is not.
func (s Scheme) IsValid() (bool, []error) {
	switch s {
	case SchemeVersioned, SchemeUnversioned:
		return true, nil
	default:
		return false, []error{&InvalidSchemeError{Value: s}}
	}
}

// String returns the string representation of the Scheme.
func (s Scheme) String() string { return string(s) }

// Format returns the compatibility-matrix hal format attribute for the scheme.
func (s Scheme) Format() string {
	if s == SchemeVersioned {
		return "hidl"
	}
	return "aidl"
}
