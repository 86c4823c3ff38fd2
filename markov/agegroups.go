// SPDX-License-Identifier: MIT
// Package: epinet/markov
//
// agegroups.go - ordered age-boundary lookup.
//
// Contract:
//   - Bounds are exclusive upper limits, strictly increasing.
//   - Group(age) is the first i with age < Bounds[i]; older ages fall into the
//     last group. With no bounds there is exactly one group (index 0).

package markov

import (
	"fmt"
	"sort"
)

// AgeGroups maps a real-valued age onto a discrete age-group index.
type AgeGroups struct {
	bounds []float64
}

// NewAgeGroups validates and copies the upper bounds.
// Complexity: O(len(bounds)).
func NewAgeGroups(bounds []float64) (AgeGroups, error) {
	var i int
	for i = 1; i < len(bounds); i++ {
		if bounds[i] <= bounds[i-1] {
			return AgeGroups{}, fmt.Errorf("NewAgeGroups: bound[%d]=%g <= bound[%d]=%g: %w",
				i, bounds[i], i-1, bounds[i-1], ErrAgeBounds)
		}
	}
	cp := make([]float64, len(bounds))
	copy(cp, bounds)

	return AgeGroups{bounds: cp}, nil
}

// Count returns the number of age groups (at least 1).
func (a AgeGroups) Count() int {
	if len(a.bounds) == 0 {
		return 1
	}

	return len(a.bounds)
}

// Group returns the age-group index for age.
// Complexity: O(log G) via binary search.
func (a AgeGroups) Group(age float64) int {
	if len(a.bounds) == 0 {
		return 0
	}
	i := sort.Search(len(a.bounds), func(k int) bool { return age < a.bounds[k] })
	if i == len(a.bounds) {
		return len(a.bounds) - 1
	}

	return i
}

// Bounds returns a copy of the configured upper bounds.
func (a AgeGroups) Bounds() []float64 {
	cp := make([]float64, len(a.bounds))
	copy(cp, a.bounds)

	return cp
}
