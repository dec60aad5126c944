// SPDX-License-Identifier: MPL-2.0

package matrix

import (
	"maps"
	"slices"
)

// Interface is one HAL interface together with the instances bound to it.
type Interface struct {
	Name      string
	instances map[string]struct{}
}

// NewInterface creates an Interface holding the given instances.
func NewInterface(name string, instances ...string) *Interface {
	iface := &Interface{
		Name:      name,
		instances: make(map[string]struct{}, len(instances)),
	}
	for _, inst := range instances {
		iface.instances[inst] = struct{}{}
	}
	return iface
}

// Merge adds every instance of other that iface does not already hold.
// Both must share the same name; callers guarantee this by keying on Name.
func (iface *Interface) Merge(other *Interface) {
	for inst := range other.instances {
		iface.instances[inst] = struct{}{}
	}
}

// Has reports whether instance is bound to the interface.
func (iface *Interface) Has(instance string) bool {
	_, ok := iface.instances[instance]
	return ok
}

// Instances returns the instance names in lexicographic order.
func (iface *Interface) Instances() []string {
	return slices.Sorted(maps.Keys(iface.instances))
}

// Len returns the number of distinct instances.
func (iface *Interface) Len() int {
	return len(iface.instances)
}

func (iface *Interface) clone() *Interface {
	return &Interface{
		Name:      iface.Name,
		instances: maps.Clone(iface.instances),
	}
}
