// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for fcmgen.
//
// The App type is the composition root: command handlers receive it and use
// its config provider, logger and I/O streams, so tests can drive the whole
// command tree with in-memory buffers.
package cmd
