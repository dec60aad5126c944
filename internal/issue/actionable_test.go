// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "generate matrix"},
			expected: "failed to generate matrix",
		},
		{
			name:     "operation with resource",
			err:      &ActionableError{Operation: "read identifier list", Resource: "fqnames.txt"},
			expected: "failed to read identifier list: fqnames.txt",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "read identifier list",
				Resource:  "fqnames.txt",
				Cause:     errors.New("permission denied"),
			},
			expected: "failed to read identifier list: fqnames.txt: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Format(t *testing.T) {
	base := errors.New("line 3: bad")
	err := &ActionableError{
		Operation:   "generate matrix",
		Resource:    "fqnames.txt",
		Suggestions: []string{"Fix the line", "Comment it out"},
		Cause:       fmt.Errorf("build: %w", base),
	}

	plain := err.Format(false)
	if !strings.Contains(plain, "  • Fix the line") || !strings.Contains(plain, "  • Comment it out") {
		t.Errorf("Format(false) missing suggestions:\n%s", plain)
	}
	if strings.Contains(plain, "Error chain") {
		t.Errorf("Format(false) should not include the error chain:\n%s", plain)
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") {
		t.Fatalf("Format(true) missing error chain:\n%s", verbose)
	}
	if !strings.Contains(verbose, "1. build: line 3: bad") || !strings.Contains(verbose, "2. line 3: bad") {
		t.Errorf("Format(true) chain incomplete:\n%s", verbose)
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	sentinel := errors.New("sentinel")
	err := WrapWithOperation(fmt.Errorf("wrapped: %w", sentinel), "write matrix")
	if !errors.Is(err, sentinel) {
		t.Error("errors.Is should find the sentinel through ActionableError")
	}
	if WrapWithOperation(nil, "noop") != nil {
		t.Error("WrapWithOperation(nil) should return nil")
	}
}

func TestErrorContext_Build(t *testing.T) {
	ae := NewErrorContext().
		WithOperation("write matrix").
		WithResource("out.xml").
		WithSuggestion("Check permissions").
		WithIssue(OutputWriteFailedId).
		Wrap(errors.New("EACCES")).
		Build()
	if ae == nil {
		t.Fatal("Build() returned nil")
	}
	if ae.Operation != "write matrix" || ae.Resource != "out.xml" || ae.IssueID != OutputWriteFailedId {
		t.Errorf("Build() = %+v", ae)
	}
	if !ae.HasSuggestions() {
		t.Error("HasSuggestions() = false, want true")
	}

	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("Build() without operation should return nil")
	}
	if NewErrorContext().BuildError() != nil {
		t.Error("BuildError() without operation should return nil error")
	}
}
