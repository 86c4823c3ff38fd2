// SPDX-License-Identifier: MIT
// Package: epinet/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Defaults:
//   - rng         = nil (stochastic constructors fail with ErrNeedRandSource)
//   - maxAttempts = 0   (derived from the coupon-collector bound per call)

package builder

import (
	"math"
	"math/rand"
)

// builderConfig aggregates all knobs used by constructors.
// It is passed by value to constructors.
type builderConfig struct {
	rng         *rand.Rand
	maxAttempts int
}

// newBuilderConfig applies options in order; later options override earlier.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	var cfg builderConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// attemptBudget returns how many distinct-endpoint draws may be spent collecting
// target distinct links out of pairs candidates.
//
// Without an explicit cap it is eight times the expected draws for collecting
// every pair, pairs·(ln pairs + 1), which bounds any target ≤ pairs.
func (c builderConfig) attemptBudget(pairs int) int {
	if c.maxAttempts > 0 {
		return c.maxAttempts
	}
	p := float64(pairs)
	budget := 8*p*(math.Log(p)+1) + 16
	if budget > math.MaxInt32 {
		return math.MaxInt32
	}

	return int(budget)
}
