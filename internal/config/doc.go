// SPDX-License-Identifier: MPL-2.0

// Package config handles fcmgen configuration using Viper with CUE as the file format.
//
// Configuration is loaded from $XDG_CONFIG_HOME/fcmgen/config.cue on Linux
// (~/Library/Application Support/fcmgen on macOS, %APPDATA%\fcmgen on Windows),
// falling back to ./config.cue and then to built-in defaults. Files are
// validated against the embedded #Config schema; FCMGEN_* environment
// variables override file values (e.g. FCMGEN_UI_VERBOSE=true).
package config
