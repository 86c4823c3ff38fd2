// SPDX-License-Identifier: MIT
// Package: epinet/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   - Only sentinel variables are exposed; callers use errors.Is.
//   - Constructors attach context with %w; they never panic.
//   - Option constructors (WithX) panic on meaningless values.

package builder

import "errors"

// ErrTooFewVertices indicates a network too small for the requested topology.
var ErrTooFewVertices = errors.New("builder: too few vertices")

// ErrInvalidProbability indicates a probability or fraction outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrInvalidDegree indicates a negative or non-finite mean degree, or one that
// needs more links than a simple directed graph on N members can hold.
var ErrInvalidDegree = errors.New("builder: invalid mean degree")

// ErrNeedRandSource indicates a stochastic constructor ran without WithSeed/WithRand.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates a nil network or constructor, or an exhausted
// attempt budget.
var ErrConstructFailed = errors.New("builder: construction failed")
