// SPDX-License-Identifier: MPL-2.0

package fqname

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	versionSep   = "@"
	interfaceSep = "::"
	instanceSep  = "/"
	packageSep   = "."
)

// ErrMalformedIdentifier is the sentinel error wrapped by MalformedIdentifierError.
var ErrMalformedIdentifier = errors.New("malformed identifier")

// pinSuffix matches a single trailing revision pin such as " @5".
var pinSuffix = regexp.MustCompile(` @[0-9]+$`)

type (
	// Record is the normalized form of one identifier.
	Record struct {
		// Name is the component name (package without the interface).
		Name string
		// Scheme is the grammar the identifier was written in.
		Scheme Scheme
		// Major and Minor are only meaningful for SchemeVersioned.
		Major int
		Minor int
		// Interface is the interface name, e.g. "IFoo".
		Interface string
		// Instance is the instance name; it may contain slashes.
		Instance string
	}

	// MalformedIdentifierError is returned when an identifier matches neither
	// grammar. It wraps ErrMalformedIdentifier for errors.Is() compatibility.
	MalformedIdentifierError struct {
		Identifier string
		Reason     string
	}
)

// Error implements the error interface.
func (e *MalformedIdentifierError) Error() string {
	return fmt.Sprintf("malformed identifier %q: %s", e.Identifier, e.Reason)
}

// Unwrap returns ErrMalformedIdentifier so callers can use errors.Is for programmatic detection.
func (e *MalformedIdentifierError) Unwrap() error { return ErrMalformedIdentifier }

// StripPinSuffix removes one trailing " @<digits>" revision pin, if present.
// Occurrences anywhere but the end of the string are left alone.
func StripPinSuffix(raw string) string {
	loc := pinSuffix.FindStringIndex(raw)
	if loc == nil {
		return raw
	}
	return raw[:loc[0]]
}

// Parse converts one identifier into a Record. The input is expected to be
// trimmed and to not be a comment; the pin suffix is stripped here as well so
// Parse accepts raw input lines verbatim.
func Parse(raw string) (Record, error) {
	id := StripPinSuffix(raw)
	if strings.Contains(id, versionSep) {
		return parseVersioned(raw, id)
	}
	return parseUnversioned(raw, id)
}

// parseVersioned handles name@major.minor::Interface/instance.
func parseVersioned(raw, id string) (Record, error) {
	pkg, iface, ok := strings.Cut(id, interfaceSep)
	if !ok {
		return Record{}, malformed(raw, "missing %q separator", interfaceSep)
	}

	name, version, _ := strings.Cut(pkg, versionSep)
	if strings.Contains(version, versionSep) {
		return Record{}, malformed(raw, "more than one %q in package", versionSep)
	}
	majorStr, minorStr, ok := strings.Cut(version, packageSep)
	if !ok {
		return Record{}, malformed(raw, "version %q is not major.minor", version)
	}
	major, err := parseVersionPart(majorStr)
	if err != nil {
		return Record{}, malformed(raw, "major version: %v", err)
	}
	minor, err := parseVersionPart(minorStr)
	if err != nil {
		return Record{}, malformed(raw, "minor version: %v", err)
	}

	ifaceName, instance, ok := strings.Cut(iface, instanceSep)
	if !ok {
		return Record{}, malformed(raw, "missing %q before instance", instanceSep)
	}

	rec := Record{
		Name:      name,
		Scheme:    SchemeVersioned,
		Major:     major,
		Minor:     minor,
		Interface: ifaceName,
		Instance:  instance,
	}
	return rec, checkFields(raw, rec)
}

// parseUnversioned handles dotted.name.Interface/instance. The component name
// ends at the last dot; the rest splits on the first slash.
func parseUnversioned(raw, id string) (Record, error) {
	idx := strings.LastIndex(id, packageSep)
	if idx < 0 {
		return Record{}, malformed(raw, "missing %q between package and interface", packageSep)
	}
	name, iface := id[:idx], id[idx+len(packageSep):]

	ifaceName, instance, ok := strings.Cut(iface, instanceSep)
	if !ok {
		return Record{}, malformed(raw, "missing %q before instance", instanceSep)
	}

	rec := Record{
		Name:      name,
		Scheme:    SchemeUnversioned,
		Interface: ifaceName,
		Instance:  instance,
	}
	return rec, checkFields(raw, rec)
}

func parseVersionPart(s string) (int, error) {
	if s == "" || strings.ContainsFunc(s, func(r rune) bool { return r < '0' || r > '9' }) {
		return 0, fmt.Errorf("%q is not a non-negative integer", s)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func checkFields(raw string, rec Record) error {
	switch {
	case rec.Name == "":
		return malformed(raw, "empty component name")
	case rec.Interface == "":
		return malformed(raw, "empty interface name")
	case rec.Instance == "":
		return malformed(raw, "empty instance name")
	}
	return nil
}

func malformed(raw, format string, args ...any) error {
	return &MalformedIdentifierError{Identifier: raw, Reason: fmt.Sprintf(format, args...)}
}
