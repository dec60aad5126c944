// SPDX-License-Identifier: MPL-2.0

package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Stdio is the path that selects standard input or output.
const Stdio = "-"

// maxLineSize bounds a single input line. Identifiers are short; anything
// larger is almost certainly the wrong file.
const maxLineSize = 1024 * 1024

// ErrInputNotFound is returned when the input file does not exist.
var ErrInputNotFound = errors.New("input file not found")

// ReadLines returns every line of r without line terminators.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	return lines, nil
}

// ReadFile reads the lines of path. Stdio reads from stdin.
func ReadFile(path string, stdin io.Reader) ([]string, error) {
	if path == Stdio {
		return ReadLines(stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only handle

	return ReadLines(f)
}

// WriteFile replaces path with content atomically: the document is written
// to a temporary file in the same directory and renamed over the target, so
// readers never observe a partially written matrix.
func WriteFile(path, content string) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName) // Best-effort cleanup.
		}
	}()

	if _, err = io.WriteString(tmp, content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

// Write sends content to path, or to stdout when path is empty or Stdio.
func Write(path, content string, stdout io.Writer) error {
	if path == "" || path == Stdio {
		if _, err := io.WriteString(stdout, content); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}
	return WriteFile(path, content)
}
