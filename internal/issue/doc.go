// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable, user-facing errors and a catalog of
// markdown help texts rendered for known failure modes.
package issue
