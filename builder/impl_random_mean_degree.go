// SPDX-License-Identifier: MIT
// Package: epinet/builder
//
// impl_random_mean_degree.go - RandomMeanDegree(d) constructor.
//
// Model:
//   - Clear all existing links (members stay enrolled).
//   - target = round(d·N) directed links, with N the member count.
//   - Draw ordered member pairs (a,b) uniformly; reject a == b and pairs that
//     are already linked; stop once target links exist.
//
// Contract:
//   - d finite and ≥ 0 (else ErrInvalidDegree).
//   - N < 2 leaves the network without links and returns nil.
//   - target ≤ N(N−1) (else ErrInvalidDegree); a simple directed graph holds
//     no more.
//   - cfg.rng required when target > 0 (else ErrNeedRandSource).
//   - More distinct-endpoint draws than the attempt budget yields
//     ErrConstructFailed; a == b rejections are free.
//
// Determinism: pairs are drawn against the roster snapshot taken after
// clearing, so a fixed seed and enrollment order give the same links.

package builder

import (
	"fmt"
	"math"

	"github.com/katalvlaran/epinet/network"
)

// RandomMeanDegree returns a Constructor that rebuilds net's links so that the
// mean out-degree is d (up to rounding).
// Complexity: expected O(target) draws when target ≪ N²; each draw O(out(a)).
func RandomMeanDegree[K comparable](d float64) Constructor[K] {
	return func(net *network.Network[K], cfg builderConfig) error {
		if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
			return fmt.Errorf("%s: d=%v: %w", MethodRandomMeanDegree, d, ErrInvalidDegree)
		}

		net.ClearLinks()
		members := net.Members()
		size := len(members)
		if size < minRandomVertices {
			return nil
		}

		target := int(d*float64(size) + 0.5)
		pairs := size * (size - 1)
		if target > pairs {
			return fmt.Errorf("%s: d=%v needs %d links, N=%d holds at most %d: %w",
				MethodRandomMeanDegree, d, target, size, pairs, ErrInvalidDegree)
		}
		if target == 0 {
			return nil
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: rng is required: %w", MethodRandomMeanDegree, ErrNeedRandSource)
		}

		budget := cfg.attemptBudget(pairs)
		rng := cfg.rng
		for links, draws := 0, 0; links < target; {
			a := rng.Intn(size)
			b := rng.Intn(size)
			if a == b {
				continue
			}
			if draws >= budget {
				return fmt.Errorf("%s: %d of %d links after %d draws: %w",
					MethodRandomMeanDegree, links, target, draws, ErrConstructFailed)
			}
			draws++
			added, err := net.CreateLinkTo(members[a], members[b])
			if err != nil {
				return fmt.Errorf("%s: %w", MethodRandomMeanDegree, err)
			}
			if added {
				links++
			}
		}

		return nil
	}
}
