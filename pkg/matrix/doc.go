// SPDX-License-Identifier: MPL-2.0

// Package matrix aggregates parsed HAL identifiers into a framework
// compatibility matrix.
//
// Identifiers that refer to the same component (same scheme and name) are
// merged rather than duplicated: versions keep the highest minor per major
// and interfaces accumulate the union of their instances. Rendering sorts at
// every level so the same set of identifiers always yields the same bytes,
// regardless of input order.
//
//	b := matrix.NewBuilder()
//	for _, line := range lines {
//	    if _, err := b.AddLine(line); err != nil {
//	        return err
//	    }
//	}
//	doc := b.Render()
package matrix
