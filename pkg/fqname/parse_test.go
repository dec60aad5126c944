// SPDX-License-Identifier: MPL-2.0

package fqname_test

import (
	"errors"
	"testing"

	"github.com/halmatrix/fcmgen/pkg/fqname"
)

func TestStripPinSuffix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no suffix", "com.example.Bar/default", "com.example.Bar/default"},
		{"single digit pin", "com.example.Bar/default @5", "com.example.Bar/default"},
		{"multi digit pin", "com.example.Bar/default @123", "com.example.Bar/default"},
		{"only last pin stripped", "com.example.Bar/default @1 @2", "com.example.Bar/default @1"},
		{"mid-string pin kept", "com.example.Bar @5/default", "com.example.Bar @5/default"},
		{"versioned identifier untouched", "foo@1.0::IFoo/default", "foo@1.0::IFoo/default"},
		{"no space before at", "com.example.Bar/default@5", "com.example.Bar/default@5"},
		{"non-digit pin kept", "com.example.Bar/default @v5", "com.example.Bar/default @v5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := fqname.StripPinSuffix(tt.in); got != tt.want {
				t.Errorf("StripPinSuffix(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want fqname.Record
	}{
		{
			name: "versioned",
			in:   "android.hardware.foo@1.2::IFoo/default",
			want: fqname.Record{
				Name: "android.hardware.foo", Scheme: fqname.SchemeVersioned,
				Major: 1, Minor: 2, Interface: "IFoo", Instance: "default",
			},
		},
		{
			name: "versioned instance with slashes",
			in:   "foo@2.0::IFoo/vendor/slot/0",
			want: fqname.Record{
				Name: "foo", Scheme: fqname.SchemeVersioned,
				Major: 2, Minor: 0, Interface: "IFoo", Instance: "vendor/slot/0",
			},
		},
		{
			name: "versioned multi digit",
			in:   "foo@10.12::IFoo/default",
			want: fqname.Record{
				Name: "foo", Scheme: fqname.SchemeVersioned,
				Major: 10, Minor: 12, Interface: "IFoo", Instance: "default",
			},
		},
		{
			name: "unversioned",
			in:   "android.hardware.power.IPower/default",
			want: fqname.Record{
				Name: "android.hardware.power", Scheme: fqname.SchemeUnversioned,
				Interface: "IPower", Instance: "default",
			},
		},
		{
			name: "unversioned with pin",
			in:   "com.example.Bar/default @5",
			want: fqname.Record{
				Name: "com.example", Scheme: fqname.SchemeUnversioned,
				Interface: "Bar", Instance: "default",
			},
		},
		{
			name: "unversioned instance with slashes",
			in:   "a.b.IThing/x/y",
			want: fqname.Record{
				Name: "a.b", Scheme: fqname.SchemeUnversioned,
				Interface: "IThing", Instance: "x/y",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := fqname.Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
	}{
		{"versioned missing double colon", "foo@1.0:IFoo/default"},
		{"versioned missing instance", "foo@1.0::IFoo"},
		{"versioned missing minor", "foo@1::IFoo/default"},
		{"versioned non-numeric major", "foo@a.0::IFoo/default"},
		{"versioned negative minor", "foo@1.-1::IFoo/default"},
		{"versioned three part version", "foo@1.2.3::IFoo/default"},
		{"versioned double at", "foo@1@2.0::IFoo/default"},
		{"versioned empty name", "@1.0::IFoo/default"},
		{"versioned empty interface", "foo@1.0::/default"},
		{"versioned empty instance", "foo@1.0::IFoo/"},
		{"unversioned missing dot", "IFoo/default"},
		{"unversioned missing slash", "com.example.Bar"},
		{"unversioned slash before last dot", "com.example/default.x"},
		{"unversioned empty interface", "com.example./default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := fqname.Parse(tt.in)
			if err == nil {
				t.Fatalf("Parse(%q) expected error, got nil", tt.in)
			}
			if !errors.Is(err, fqname.ErrMalformedIdentifier) {
				t.Errorf("Parse(%q) error should wrap ErrMalformedIdentifier, got: %v", tt.in, err)
			}
			var mErr *fqname.MalformedIdentifierError
			if !errors.As(err, &mErr) {
				t.Fatalf("Parse(%q) error should be *MalformedIdentifierError, got %T", tt.in, err)
			}
			if mErr.Identifier != tt.in {
				t.Errorf("MalformedIdentifierError.Identifier = %q, want %q", mErr.Identifier, tt.in)
			}
		})
	}
}

func TestScheme_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		scheme fqname.Scheme
		want   bool
	}{
		{fqname.SchemeVersioned, true},
		{fqname.SchemeUnversioned, true},
		{"", false},
		{"hidl", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.scheme), func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.scheme.IsValid()
			if isValid != tt.want {
				t.Errorf("Scheme(%q).IsValid() = %v, want %v", tt.scheme, isValid, tt.want)
			}
			if !tt.want {
				if len(errs) == 0 || !errors.Is(errs[0], fqname.ErrInvalidScheme) {
					t.Errorf("Scheme(%q).IsValid() errors should wrap ErrInvalidScheme, got %v", tt.scheme, errs)
				}
			}
		})
	}
}

func TestScheme_Format(t *testing.T) {
	t.Parallel()

	if got := fqname.SchemeVersioned.Format(); got != "hidl" {
		t.Errorf("SchemeVersioned.Format() = %q, want %q", got, "hidl")
	}
	if got := fqname.SchemeUnversioned.Format(); got != "aidl" {
		t.Errorf("SchemeUnversioned.Format() = %q, want %q", got, "aidl")
	}
}
