// SPDX-License-Identifier: MIT
// Package: epinet/natural
//
// history.go - natural-history variants behind one fixed capability set.
//
// Variants:
//   - Markov  - per-state infectivity, symptoms and fatality tables.
//   - Generic - per-state infectivity and symptoms tables; never fatal.
//   - HIV     - every state > 0 is infectious and symptomatic for life; never fatal.
//
// States outside [0, States()) (including the untracked sentinel) report
// zero infectivity, zero symptoms and non-fatal.

package natural

import (
	"errors"
	"fmt"
	"strings"
)

// Kind selects a natural-history variant at setup.
type Kind int

const (
	// Generic is table driven without case fatality.
	Generic Kind = iota
	// Markov is fully table driven.
	Markov
	// HIV is a lifelong infection.
	HIV
)

var (
	// ErrUnknownKind indicates an unrecognized variant name.
	ErrUnknownKind = errors.New("natural: unknown natural history kind")

	// ErrTableSize indicates a per-state table whose length differs from the state count.
	ErrTableSize = errors.New("natural: per-state table length mismatch")

	// ErrNegative indicates a negative infectivity or symptom level.
	ErrNegative = errors.New("natural: negative level")
)

// String returns the configuration name of k.
func (k Kind) String() string {
	switch k {
	case Generic:
		return "generic"
	case Markov:
		return "markov"
	case HIV:
		return "hiv"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Parse resolves a configuration name (case-insensitive). Empty means Markov.
func Parse(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "markov":
		return Markov, nil
	case "generic":
		return Generic, nil
	case "hiv":
		return HIV, nil
	default:
		return 0, fmt.Errorf("Parse(%q): %w", s, ErrUnknownKind)
	}
}

// State carries the per-state levels for the table-driven variants.
type State struct {
	Infectivity float64
	Symptoms    float64
	Fatal       bool
}

// History answers natural-history queries for one disease.
type History struct {
	kind   Kind
	states []State
}

// New builds a History of kind over the given per-state levels. For HIV the
// levels are ignored except for their count.
func New(kind Kind, states []State) (*History, error) {
	if kind != Generic && kind != Markov && kind != HIV {
		return nil, fmt.Errorf("New(%v): %w", kind, ErrUnknownKind)
	}
	if len(states) == 0 {
		return nil, fmt.Errorf("New(%v): zero states: %w", kind, ErrTableSize)
	}
	var i int
	for i = range states {
		if states[i].Infectivity < 0 || states[i].Symptoms < 0 {
			return nil, fmt.Errorf("New(%v): state %d: %w", kind, i, ErrNegative)
		}
	}
	cp := make([]State, len(states))
	copy(cp, states)

	return &History{kind: kind, states: cp}, nil
}

// Kind returns the variant tag.
func (h *History) Kind() Kind { return h.kind }

// States returns the number of states the history covers.
func (h *History) States() int { return len(h.states) }

func (h *History) valid(s int) bool { return s >= 0 && s < len(h.states) }

// Infectivity returns the infectivity level of state s.
func (h *History) Infectivity(s int) float64 {
	if !h.valid(s) {
		return 0
	}
	switch h.kind {
	case HIV:
		if s > 0 {
			return 1
		}
		return 0
	default:
		return h.states[s].Infectivity
	}
}

// Symptoms returns the symptom level of state s.
func (h *History) Symptoms(s int) float64 {
	if !h.valid(s) {
		return 0
	}
	switch h.kind {
	case HIV:
		if s > 0 {
			return 1
		}
		return 0
	default:
		return h.states[s].Symptoms
	}
}

// IsFatal reports whether entering state s is a case fatality.
func (h *History) IsFatal(s int) bool {
	if !h.valid(s) || h.kind != Markov {
		return false
	}

	return h.states[s].Fatal
}
