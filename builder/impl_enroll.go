// SPDX-License-Identifier: MIT
// Package: epinet/builder
//
// impl_enroll.go - EnrollWhere(keys, pred, fraction) constructor.
//
// Contract:
//   - 0 ≤ fraction ≤ 1 (else ErrInvalidProbability).
//   - rng required only when 0 < fraction < 1.
//   - Keys are visited in slice order; a Bernoulli trial is drawn only for keys
//     accepted by pred (nil pred accepts all), so the draw sequence depends on
//     the accepted subsequence alone.
//   - Already enrolled keys are skipped, not reported.

package builder

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/epinet/network"
)

// EnrollWhere enrolls each key accepted by pred with probability fraction.
// Complexity: O(len(keys)).
func EnrollWhere[K comparable](keys []K, pred func(K) bool, fraction float64) Constructor[K] {
	return func(net *network.Network[K], cfg builderConfig) error {
		if !(fraction >= probMin && fraction <= probMax) {
			return fmt.Errorf("%s: fraction=%.6f not in [%.1f,%.1f]: %w",
				MethodEnrollWhere, fraction, probMin, probMax, ErrInvalidProbability)
		}
		stochastic := fraction > probMin && fraction < probMax
		if stochastic && cfg.rng == nil {
			return fmt.Errorf("%s: rng is required: %w", MethodEnrollWhere, ErrNeedRandSource)
		}
		if fraction == probMin {
			return nil
		}

		for _, k := range keys {
			if pred != nil && !pred(k) {
				continue
			}
			if stochastic && cfg.rng.Float64() >= fraction {
				continue
			}
			if _, err := net.Enroll(k); err != nil && !errors.Is(err, network.ErrAlreadyEnrolled) {
				return fmt.Errorf("%s: %w", MethodEnrollWhere, err)
			}
		}

		return nil
	}
}
