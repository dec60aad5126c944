// SPDX-License-Identifier: MPL-2.0

package matrix

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/halmatrix/fcmgen/pkg/fqname"
)

// ErrIdentityMismatch is the sentinel error wrapped by IdentityMismatchError.
var ErrIdentityMismatch = errors.New("entry identity mismatch")

type (
	// Key identifies an Entry. Entries merge only when their keys are equal,
	// so the same component name under both schemes yields two entries.
	Key struct {
		Scheme fqname.Scheme
		Name   string
	}

	// Entry is the merged view of every identifier sharing one Key.
	Entry struct {
		Name       string
		Scheme     fqname.Scheme
		versions   map[int]*Version
		interfaces map[string]*Interface
	}

	// IdentityMismatchError is returned when two entries with different keys
	// are merged. It indicates a bug in key computation, never bad input.
	IdentityMismatchError struct {
		Want Key
		Got  Key
	}
)

// String returns the key as "format:name", e.g. "hidl:android.hardware.foo".
func (k Key) String() string {
	return k.Scheme.Format() + ":" + k.Name
}

// Error implements the error interface.
func (e *IdentityMismatchError) Error() string {
	return fmt.Sprintf("cannot merge entry %s into %s", e.Got, e.Want)
}

// Unwrap returns ErrIdentityMismatch so callers can use errors.Is for programmatic detection.
func (e *IdentityMismatchError) Unwrap() error { return ErrIdentityMismatch }

// NewEntry builds an Entry from a single parsed identifier.
func NewEntry(rec fqname.Record) *Entry {
	e := &Entry{
		Name:       rec.Name,
		Scheme:     rec.Scheme,
		versions:   make(map[int]*Version),
		interfaces: make(map[string]*Interface),
	}
	if rec.Scheme == fqname.SchemeVersioned {
		e.versions[rec.Major] = &Version{Major: rec.Major, Minor: rec.Minor}
	}
	e.interfaces[rec.Interface] = NewInterface(rec.Interface, rec.Instance)
	return e
}

// Key returns the identity key of the entry.
func (e *Entry) Key() Key {
	return Key{Scheme: e.Scheme, Name: e.Name}
}

// Merge folds other into e. Versions sharing a major keep the higher minor,
// interfaces sharing a name take the union of instances, and anything new is
// copied in. Nothing recorded in e is ever dropped.
func (e *Entry) Merge(other *Entry) error {
	if e.Key() != other.Key() {
		return &IdentityMismatchError{Want: e.Key(), Got: other.Key()}
	}

	for major, v := range other.versions {
		if cur, ok := e.versions[major]; ok {
			cur.Merge(*v)
			continue
		}
		vc := *v
		e.versions[major] = &vc
	}

	for name, iface := range other.interfaces {
		if cur, ok := e.interfaces[name]; ok {
			cur.Merge(iface)
			continue
		}
		e.interfaces[name] = iface.clone()
	}
	return nil
}

// Versions returns copies of the entry's versions ordered by major.
func (e *Entry) Versions() []Version {
	out := make([]Version, 0, len(e.versions))
	for _, v := range e.versions {
		out = append(out, *v)
	}
	slices.SortFunc(out, func(a, b Version) int { return cmp.Compare(a.Major, b.Major) })
	return out
}

// Interfaces returns the entry's interfaces ordered by name.
// The returned interfaces must not be modified.
func (e *Entry) Interfaces() []*Interface {
	names := slices.Sorted(maps.Keys(e.interfaces))
	out := make([]*Interface, 0, len(names))
	for _, name := range names {
		out = append(out, e.interfaces[name])
	}
	return out
}

// Interface returns the named interface, or nil.
func (e *Entry) Interface(name string) *Interface {
	return e.interfaces[name]
}
