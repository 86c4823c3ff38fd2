// SPDX-License-Identifier: MIT
// Package: epinet/builder
//
// impl_random_sparse.go - RandomSparse(p) constructor.
//
// Model: Erdős-Rényi over ordered member pairs. Every (i,j), i ≠ j, is linked
// independently with probability p. Existing links are kept.
//
// Contract:
//   - 0 ≤ p ≤ 1 (else ErrInvalidProbability).
//   - N ≥ 2 (else ErrTooFewVertices).
//   - rng required only when 0 < p < 1.
//
// Determinism: trials run i asc, j asc over the roster.

package builder

import (
	"fmt"

	"github.com/katalvlaran/epinet/network"
)

// RandomSparse returns a Constructor that adds each ordered pair of members as
// a link with probability p.
// Complexity: O(N²) trials, each link insert O(out(i)).
func RandomSparse[K comparable](p float64) Constructor[K] {
	return func(net *network.Network[K], cfg builderConfig) error {
		if !(p >= probMin && p <= probMax) {
			return fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w",
				MethodRandomSparse, p, probMin, probMax, ErrInvalidProbability)
		}
		members := net.Members()
		if len(members) < minRandomVertices {
			return fmt.Errorf("%s: N=%d < min=%d: %w",
				MethodRandomSparse, len(members), minRandomVertices, ErrTooFewVertices)
		}
		rng := cfg.rng
		if rng == nil && p > probMin && p < probMax {
			return fmt.Errorf("%s: rng is required: %w", MethodRandomSparse, ErrNeedRandSource)
		}
		if p == probMin {
			return nil
		}

		for i, a := range members {
			for j, b := range members {
				if i == j {
					continue
				}
				// p == 1 needs no draw.
				if rng != nil && p < probMax && rng.Float64() >= p {
					continue
				}
				if _, err := net.CreateLinkTo(a, b); err != nil {
					return fmt.Errorf("%s: %w", MethodRandomSparse, err)
				}
			}
		}

		return nil
	}
}
