// SPDX-License-Identifier: MPL-2.0

package matrix

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/halmatrix/fcmgen/pkg/fqname"
)

const commentPrefix = "#"

type (
	// Builder accumulates entries keyed by (scheme, name). A Builder is not
	// safe for concurrent use.
	Builder struct {
		entries map[Key]*Entry
	}

	// LineError attaches a 1-based input line number to a failure.
	LineError struct {
		Line int
		Err  error
	}
)

// Error implements the error interface.
func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e *LineError) Unwrap() error { return e.Err }

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{entries: make(map[Key]*Entry)}
}

// Add merges one parsed identifier into the matrix, creating the entry on
// first sight of its key.
func (b *Builder) Add(rec fqname.Record) error {
	entry := NewEntry(rec)
	key := entry.Key()
	if cur, ok := b.entries[key]; ok {
		return cur.Merge(entry)
	}
	b.entries[key] = entry
	return nil
}

// AddLine processes one raw input line. Surrounding whitespace is ignored and
// blank or "#" comment lines are skipped without reaching the parser; the
// returned bool reports whether the line contributed an identifier.
func (b *Builder) AddLine(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if IsSkippable(line) {
		return false, nil
	}
	rec, err := fqname.Parse(line)
	if err != nil {
		return false, err
	}
	return true, b.Add(rec)
}

// Len returns the number of distinct entries.
func (b *Builder) Len() int {
	return len(b.entries)
}

// Lookup returns the entry for key, or nil.
func (b *Builder) Lookup(key Key) *Entry {
	return b.entries[key]
}

// Entries returns all entries ordered by name, with the format as tie-breaker
// so a name present under both schemes still has a fixed position.
func (b *Builder) Entries() []*Entry {
	out := make([]*Entry, 0, len(b.entries))
	for _, e := range b.entries {
		out = append(out, e)
	}
	slices.SortFunc(out, func(x, y *Entry) int {
		return cmp.Or(
			cmp.Compare(x.Name, y.Name),
			cmp.Compare(x.Scheme.Format(), y.Scheme.Format()),
		)
	})
	return out
}

// IsSkippable reports whether a trimmed line is blank or a comment.
func IsSkippable(line string) bool {
	return line == "" || strings.HasPrefix(line, commentPrefix)
}

// Build feeds every line through a fresh Builder. The first failing line
// aborts the run; the error is a *LineError carrying its position.
func Build(lines []string) (*Builder, error) {
	b := NewBuilder()
	for i, line := range lines {
		if _, err := b.AddLine(line); err != nil {
			return nil, &LineError{Line: i + 1, Err: err}
		}
	}
	return b, nil
}

// Generate is the whole transform from input lines to the rendered document.
// No document is returned when any line fails.
func Generate(lines []string) (string, error) {
	b, err := Build(lines)
	if err != nil {
		return "", err
	}
	return b.Render(), nil
}
