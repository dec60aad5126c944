// SPDX-License-Identifier: MPL-2.0

// Package fqname parses fully-qualified HAL interface identifiers.
//
// Two grammars are recognized:
//
//	android.hardware.foo@1.2::IFoo/default       versioned (HIDL)
//	android.hardware.foo.IFoo/default            unversioned (AIDL)
//
// A trailing " @<digits>" revision pin is removed before either grammar is
// applied (see StripPinSuffix).
package fqname
