// SPDX-License-Identifier: MPL-2.0

package matrix

import "strconv"

// Version is a major.minor pair of a versioned HAL.
type Version struct {
	Major int
	Minor int
}

// Merge keeps the higher minor of v and other. Both must share the same major;
// callers guarantee this by keying versions on Major.
func (v *Version) Merge(other Version) {
	v.Minor = max(v.Minor, other.Minor)
}

// String renders the version the way compatibility matrices spell version
// ranges: "MAJOR.0-MINOR", or "MAJOR.0" when MINOR is zero.
func (v Version) String() string {
	s := strconv.Itoa(v.Major) + ".0"
	if v.Minor > 0 {
		s += "-" + strconv.Itoa(v.Minor)
	}
	return s
}
