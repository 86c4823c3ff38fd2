// SPDX-License-Identifier: MIT
// Package: epinet/builder
//
// Package builder constructs contact topologies on a network.Network.
//
// A Constructor is a closure over its parameters; Build resolves functional
// options into an immutable builderConfig and applies constructors in order:
//
//	err := builder.Build(net, []builder.BuilderOption{builder.WithSeed(7)},
//		builder.EnrollWhere(people, adult, 0.01),
//		builder.RandomMeanDegree[*population.Person](2.0),
//	)
//
// Constructors:
//
//	EnrollWhere(keys, pred, fraction) - enroll keys accepted by pred with probability fraction.
//	RandomMeanDegree(d)               - clear links, then draw round(d·N) distinct directed links.
//	RandomSparse(p)                   - add every ordered pair independently with probability p.
//
// Determinism: for a fixed seed, key order and constructor order the resulting
// topology is identical across runs. Stochastic constructors need WithSeed or
// WithRand and otherwise fail with ErrNeedRandSource.
//
// Errors are sentinels (ErrTooFewVertices, ErrInvalidProbability,
// ErrInvalidDegree, ErrNeedRandSource, ErrConstructFailed) wrapped with the
// constructor name; branch on them with errors.Is.
package builder
