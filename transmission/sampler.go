package transmission

import (
	"fmt"
	"sort"
)

// CumulativeSampler maps a uniform draw in [0, Total) to the owner of that
// unit of weight, using running sums and binary search.
type CumulativeSampler struct {
	cum []int
}

// NewCumulativeSampler builds the running sums of weights. Zero weights are
// allowed and never selected.
// Complexity: O(len(weights)).
func NewCumulativeSampler(weights []int) (*CumulativeSampler, error) {
	cum := make([]int, len(weights))
	total := 0
	for i, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("transmission: weight[%d]=%d: %w", i, w, ErrNegativeWeight)
		}
		total += w
		cum[i] = total
	}

	return &CumulativeSampler{cum: cum}, nil
}

// Len returns the number of weights.
func (s *CumulativeSampler) Len() int { return len(s.cum) }

// Total returns the sum of all weights.
func (s *CumulativeSampler) Total() int {
	if len(s.cum) == 0 {
		return 0
	}
	return s.cum[len(s.cum)-1]
}

// Locate returns the index owning unit u and u's offset within that owner's
// weight. Draws outside [0, Total) return (-1, -1).
// Complexity: O(log n).
func (s *CumulativeSampler) Locate(u int) (int, int) {
	if u < 0 || u >= s.Total() {
		return -1, -1
	}
	i := sort.Search(len(s.cum), func(i int) bool { return s.cum[i] > u })
	if i == 0 {
		return 0, u
	}

	return i, u - s.cum[i-1]
}
