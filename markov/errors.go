// SPDX-License-Identifier: MIT
// Package: epinet/markov
//
// errors.go - sentinel errors for the transition model.
//
// Error policy:
//   - Only package-level sentinels are exposed; match them with errors.Is.
//   - Setup errors are wrapped with disease/age-group/row context via %w.
//   - A Model that passed New never produces setup errors at run time.

package markov

import (
	"errors"
	"fmt"
)

var (
	// ErrNoStates indicates a model configured with zero states.
	ErrNoStates = errors.New("markov: at least one state is required")

	// ErrStateNames indicates the number of state names differs from the state count.
	ErrStateNames = errors.New("markov: state name count mismatch")

	// ErrAgeBounds indicates age-group upper bounds that are not strictly increasing.
	ErrAgeBounds = errors.New("markov: age bounds must be strictly increasing")

	// ErrGroupCount indicates per-group tables whose count differs from the number of age groups.
	ErrGroupCount = errors.New("markov: age group table count mismatch")

	// ErrShape indicates an initial-percent vector or hazard matrix of the wrong size.
	ErrShape = errors.New("markov: table shape mismatch")

	// ErrNegativeValue indicates a negative hazard or initial percentage.
	ErrNegativeValue = errors.New("markov: negative value")

	// ErrRowSumExceeded indicates a hazard row whose off-diagonal sum exceeds 1.
	ErrRowSumExceeded = errors.New("markov: off-diagonal hazard sum exceeds 1")

	// ErrInitialPercent indicates initial percentages of states 1..N-1 above 100.
	ErrInitialPercent = errors.New("markov: initial percentages exceed 100")

	// ErrPeriod indicates a non-positive time-unit constant.
	ErrPeriod = errors.New("markov: period must be > 0")

	// ErrDistribution indicates the cumulative initial distribution did not reach the draw.
	ErrDistribution = errors.New("markov: cumulative initial distribution did not reach draw")

	// ErrUnknownState indicates a state name or index outside the model.
	ErrUnknownState = errors.New("markov: unknown state")
)

// modelErrorf prefixes err with the disease name and a formatted location.
func modelErrorf(disease, format string, args ...interface{}) error {
	return fmt.Errorf("markov(%s): "+format, append([]interface{}{disease}, args...)...)
}
