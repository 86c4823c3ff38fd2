// SPDX-License-Identifier: MIT
// Package: epinet/builder
//
// api.go - the Build orchestrator and the Constructor type.
//
// Contract:
//   - Build resolves options once and runs constructors in order.
//   - Same inputs, seed and constructor order give identical topologies.
//   - Never panics; constructor errors are wrapped as "Build: %w".

package builder

import (
	"fmt"

	"github.com/katalvlaran/epinet/network"
)

// Constructor applies one topology mutation to net using the resolved config.
// Constructors validate parameters first and return sentinel errors.
type Constructor[K comparable] func(net *network.Network[K], cfg builderConfig) error

// Build resolves bopts and applies every constructor to net in order.
// The first failure is returned; earlier mutations are not rolled back.
//
// Complexity: O(len(bopts)) + Σ cost of constructors.
func Build[K comparable](net *network.Network[K], bopts []BuilderOption, cons ...Constructor[K]) error {
	if net == nil {
		return fmt.Errorf("Build: nil network: %w", ErrConstructFailed)
	}
	cfg := newBuilderConfig(bopts...)
	for i, fn := range cons {
		if fn == nil {
			return fmt.Errorf("Build: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(net, cfg); err != nil {
			return fmt.Errorf("Build: %w", err)
		}
	}

	return nil
}
