// SPDX-License-Identifier: MPL-2.0

// Package source reads identifier lists and writes generated matrices.
package source
