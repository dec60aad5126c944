// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/halmatrix/fcmgen/internal/issue"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Input != DefaultInput {
		t.Errorf("default input = %q, want %q", cfg.Input, DefaultInput)
	}
	if cfg.Output != "" {
		t.Errorf("default output = %q, want empty", cfg.Output)
	}
	if cfg.UI.Verbose {
		t.Error("expected default verbose to be false")
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("default color scheme = %q, want auto", cfg.UI.ColorScheme)
	}
	if got := cfg.Watch.Debounce.Duration(); got != 500*time.Millisecond {
		t.Errorf("default debounce = %v, want 500ms", got)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	t.Parallel()

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("loadWithOptions() error: %v", err)
	}
	if path != "" {
		t.Errorf("resolved path = %q, want empty", path)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("loadWithOptions() = %+v, want defaults", cfg)
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	want := writeConfig(t, dir, `
input: "vendor/fqnames.txt"
output: "out/matrix.xml"
ui: color_scheme: "dark"
watch: debounce: "2s"
`)

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("loadWithOptions() error: %v", err)
	}
	if path != want {
		t.Errorf("resolved path = %q, want %q", path, want)
	}
	if cfg.Input != "vendor/fqnames.txt" || cfg.Output != "out/matrix.xml" {
		t.Errorf("input/output = %q/%q", cfg.Input, cfg.Output)
	}
	if cfg.UI.ColorScheme != ColorSchemeDark {
		t.Errorf("color scheme = %q, want dark", cfg.UI.ColorScheme)
	}
	if cfg.UI.Verbose {
		t.Error("unset verbose should keep its default")
	}
	if got := cfg.Watch.Debounce.Duration(); got != 2*time.Second {
		t.Errorf("debounce = %v, want 2s", got)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), `ui: verbose: true`)
	cfg, resolved, err := loadWithOptions(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("loadWithOptions() error: %v", err)
	}
	if resolved != path || !cfg.UI.Verbose {
		t.Errorf("loadWithOptions() = %+v from %q", cfg, resolved)
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	t.Parallel()

	_, _, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigFilePath: filepath.Join(t.TempDir(), "missing.cue"),
	})
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("error = %v, want *issue.ActionableError", err)
	}
	if ae.IssueID != issue.ConfigLoadFailedId || !ae.HasSuggestions() {
		t.Errorf("ActionableError = %+v", ae)
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantIn  string
	}{
		{"unknown field", `inptu: "x"`, "inptu"},
		{"bad color scheme", `ui: color_scheme: "purple"`, "color_scheme"},
		{"wrong type", `ui: verbose: "yes"`, "verbose"},
		{"bad debounce", `watch: debounce: "soon"`, "debounce"},
		{"empty input", `input: ""`, "input"},
		{"syntax error", `input: "x`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)
			_, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantIn) {
				t.Errorf("error %q should mention %q", err, tt.wantIn)
			}
		})
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	// Not parallel: t.Setenv.
	t.Setenv("FCMGEN_OUTPUT", "env.xml")
	t.Setenv("FCMGEN_UI_VERBOSE", "true")

	dir := t.TempDir()
	writeConfig(t, dir, `output: "file.xml"`)

	cfg, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("loadWithOptions() error: %v", err)
	}
	if cfg.Output != "env.xml" {
		t.Errorf("output = %q, want env override", cfg.Output)
	}
	if !cfg.UI.Verbose {
		t.Error("verbose should be enabled by FCMGEN_UI_VERBOSE")
	}
}

func TestLoad_EnvOverrideValidated(t *testing.T) {
	t.Setenv("FCMGEN_UI_COLOR_SCHEME", "neon")

	_, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if !errors.Is(err, ErrInvalidColorScheme) {
		t.Errorf("error = %v, want ErrInvalidColorScheme", err)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := loadWithOptions(ctx, LoadOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestGenerateCUE_RoundTrip(t *testing.T) {
	t.Parallel()

	want := DefaultConfig()
	want.Output = "matrix.xml"
	want.UI.ColorScheme = ColorSchemeLight
	want.Watch.Debounce = "1s"

	dir := t.TempDir()
	writeConfig(t, dir, GenerateCUE(want))

	got, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("generated CUE does not load: %v\n%s", err, GenerateCUE(want))
	}
	if *got != *want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG lookup is Linux-specific")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-xdg-config")

	dir, err := ConfigDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/test-xdg-config", AppName); dir != want {
		t.Errorf("ConfigDir() = %q, want %q", dir, want)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	// Not parallel: mutates the package-level config dir override.
	SetConfigDirOverride(filepath.Join(t.TempDir(), "fcmgen"))
	t.Cleanup(Reset)

	path, err := CreateDefaultConfig(false)
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error: %v", err)
	}
	if !fileExists(path) {
		t.Fatalf("config file not created at %s", path)
	}

	if _, err := CreateDefaultConfig(false); !errors.Is(err, ErrConfigExists) {
		t.Errorf("second CreateDefaultConfig() error = %v, want ErrConfigExists", err)
	}
	if _, err := CreateDefaultConfig(true); err != nil {
		t.Errorf("CreateDefaultConfig(force) error: %v", err)
	}
}
