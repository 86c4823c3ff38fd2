// SPDX-License-Identifier: MIT
// Package: epinet/markov
//
// model.go - age-stratified transition model.
//
// Canonical model:
//   - Each age group owns an N×N hazard matrix. Off-diagonal entries are
//     configured per-day hazards; the diagonal is forced to 1 − Σ(off-diagonal).
//   - Each age group owns an initial distribution in percent; state 0 absorbs
//     the remainder so the vector always sums to 100.
//   - Next transitions race competing exponentials: every reachable j ≠ old draws
//     t_j = day + 1 + round(Exp(1)/λ_j × period); the smallest t_j wins.
//
// Determinism:
//   - Candidates are visited in ascending state index and replaced only on a
//     strictly smaller day, so exact ties resolve to the lowest state index.
//   - All randomness comes from the caller's *rand.Rand.
//
// Lifecycle: built once by New and immutable afterwards; safe for concurrent reads.

package markov

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/epinet/matrix"
)

// NoDay is the "no next transition" sentinel returned by NextStateAndTime.
const NoDay = -1

const (
	percentTotal = 100.0
	rowTolerance = 1e-9
	// maxOffset caps sampled waiting times so rounding never overflows int.
	maxOffset = float64(math.MaxInt32)
)

// Params is the explicit configuration object for one disease's model.
type Params struct {
	// Disease names the model in errors and dumps.
	Disease string
	// StateNames has one entry per state; its length is the state count.
	StateNames []string
	// States, when non-zero, must equal len(StateNames).
	States int
	// AgeBounds are exclusive upper bounds of the age groups.
	AgeBounds []float64
	// InitialPercent[group][state]; entry 0 is recomputed as the remainder.
	InitialPercent [][]float64
	// Hazards[group][from][to]; diagonal entries are ignored and recomputed.
	Hazards [][][]float64
	// Period scales sampled waiting times into days.
	Period float64
}

// Model answers "which state does this age start in" and "when and where does
// this age transition next".
type Model struct {
	name    string
	names   []string
	index   map[string]int
	ages    AgeGroups
	initial [][]float64     // [group][state], sums to 100
	trans   []*matrix.Dense // one per group, rows sum to 1
	period  float64
}

// New validates p and builds an immutable Model.
//
// Steps:
//  1. Validate state count against names.
//  2. Build age groups and check per-group table counts.
//  3. Copy initial percentages, recompute state 0 as the remainder.
//  4. Copy hazards into matrices, check non-negativity, force the diagonal.
//
// Errors name the disease, age group and row of the first violation.
// Complexity: O(G·N²).
func New(p Params) (*Model, error) {
	n := len(p.StateNames)
	if n == 0 {
		return nil, modelErrorf(p.Disease, "%w", ErrNoStates)
	}
	if p.States != 0 && p.States != n {
		return nil, modelErrorf(p.Disease, "states=%d names=%d: %w", p.States, n, ErrStateNames)
	}
	if !(p.Period > 0) {
		return nil, modelErrorf(p.Disease, "period=%g: %w", p.Period, ErrPeriod)
	}

	ages, err := NewAgeGroups(p.AgeBounds)
	if err != nil {
		return nil, modelErrorf(p.Disease, "%w", err)
	}
	groups := ages.Count()
	if len(p.InitialPercent) != groups {
		return nil, modelErrorf(p.Disease, "initial percent groups=%d, want %d: %w",
			len(p.InitialPercent), groups, ErrGroupCount)
	}
	if len(p.Hazards) != groups {
		return nil, modelErrorf(p.Disease, "hazard groups=%d, want %d: %w",
			len(p.Hazards), groups, ErrGroupCount)
	}

	m := &Model{
		name:    p.Disease,
		names:   append([]string(nil), p.StateNames...),
		index:   make(map[string]int, n),
		ages:    ages,
		initial: make([][]float64, groups),
		trans:   make([]*matrix.Dense, groups),
		period:  p.Period,
	}
	var i int
	for i = range m.names {
		m.index[m.names[i]] = i
	}

	var g int
	for g = 0; g < groups; g++ {
		if m.initial[g], err = buildInitial(p.Disease, g, n, p.InitialPercent[g]); err != nil {
			return nil, err
		}
		if m.trans[g], err = buildTransition(p.Disease, g, n, p.Hazards[g]); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// buildInitial copies one group's percentages and lets state 0 absorb the remainder.
func buildInitial(disease string, group, n int, pct []float64) ([]float64, error) {
	if len(pct) != n {
		return nil, modelErrorf(disease, "group %d initial percent len=%d, want %d: %w",
			group, len(pct), n, ErrShape)
	}
	out := make([]float64, n)
	var (
		i     int
		total float64
	)
	for i = 1; i < n; i++ {
		if pct[i] < 0 {
			return nil, modelErrorf(disease, "group %d initial_percent[%d]=%g: %w", group, i, pct[i], ErrNegativeValue)
		}
		out[i] = pct[i]
		total += pct[i]
	}
	if total > percentTotal {
		return nil, modelErrorf(disease, "group %d initial percent total=%g: %w", group, total, ErrInitialPercent)
	}
	out[0] = percentTotal - total

	return out, nil
}

// buildTransition fills a hazard matrix and forces its diagonal.
func buildTransition(disease string, group, n int, rows [][]float64) (*matrix.Dense, error) {
	if len(rows) != n {
		return nil, modelErrorf(disease, "group %d hazard rows=%d, want %d: %w", group, len(rows), n, ErrShape)
	}
	var i int
	for i = range rows {
		if len(rows[i]) != n {
			return nil, modelErrorf(disease, "group %d hazard row %d len=%d, want %d: %w",
				group, i, len(rows[i]), n, ErrShape)
		}
	}
	t, err := matrix.NewDenseFromRows(rows)
	if err != nil {
		return nil, modelErrorf(disease, "group %d: %w", group, err)
	}
	// Diagonals are recomputed below, so zero them before the sign check.
	for i = 0; i < n; i++ {
		_ = t.Set(i, i, 0)
	}
	if err = matrix.ValidateNonNegative(t); err != nil {
		return nil, modelErrorf(disease, "group %d: %v: %w", group, err, ErrNegativeValue)
	}

	var sum float64
	for i = 0; i < n; i++ {
		sum, _ = matrix.OffDiagonalRowSum(t, i)
		if sum > 1.0+rowTolerance {
			return nil, modelErrorf(disease, "group %d row %d off-diagonal sum=%g: %w",
				group, i, sum, ErrRowSumExceeded)
		}
		_ = t.Set(i, i, math.Max(0, 1.0-sum))
	}
	if err = matrix.ValidateRowSums(t, 1.0, rowTolerance); err != nil {
		return nil, modelErrorf(disease, "group %d: %w", group, err)
	}

	return t, nil
}

// Name returns the disease name of the model.
func (m *Model) Name() string { return m.name }

// States returns the number of states.
func (m *Model) States() int { return len(m.names) }

// StateName returns the name of state i or "" if out of range.
func (m *Model) StateName(i int) string {
	if i < 0 || i >= len(m.names) {
		return ""
	}

	return m.names[i]
}

// StateIndex resolves a state name.
func (m *Model) StateIndex(name string) (int, error) {
	i, ok := m.index[name]
	if !ok {
		return -1, modelErrorf(m.name, "state %q: %w", name, ErrUnknownState)
	}

	return i, nil
}

// Groups returns the number of age groups.
func (m *Model) Groups() int { return m.ages.Count() }

// AgeGroup maps an age to its group index.
func (m *Model) AgeGroup(age float64) int { return m.ages.Group(age) }

// Period returns the waiting-time scaling constant.
func (m *Model) Period() float64 { return m.period }

// Hazard returns the (possibly diagonal-completed) entry of group's matrix.
func (m *Model) Hazard(group, from, to int) (float64, error) {
	if group < 0 || group >= len(m.trans) {
		return 0, modelErrorf(m.name, "group %d: %w", group, matrix.ErrOutOfRange)
	}

	return m.trans[group].At(from, to)
}

// Transition returns a copy of group's transition matrix.
func (m *Model) Transition(group int) (*matrix.Dense, error) {
	if group < 0 || group >= len(m.trans) {
		return nil, modelErrorf(m.name, "group %d: %w", group, matrix.ErrOutOfRange)
	}

	return m.trans[group].Clone(), nil
}

// InitialPercent returns the initial percentage of state i in group.
func (m *Model) InitialPercent(group, i int) float64 {
	if group < 0 || group >= len(m.initial) || i < 0 || i >= len(m.names) {
		return 0
	}

	return m.initial[group][i]
}

// InitialState draws a starting state for age.
// r is uniform in [0,100); the first state whose cumulative percentage exceeds
// r is returned.
// Complexity: O(N).
func (m *Model) InitialState(age float64, rng *rand.Rand) (int, error) {
	group := m.ages.Group(age)
	r := percentTotal * rng.Float64()
	var (
		i   int
		sum float64
	)
	for i = range m.initial[group] {
		sum += m.initial[group][i]
		if r < sum {
			return i, nil
		}
	}

	return -1, modelErrorf(m.name, "group %d draw=%g cumulative=%g: %w", group, r, sum, ErrDistribution)
}

// NextStateAndTime samples the next state and absolute day for a person of
// age currently in old at day. When no state is reachable it returns (old, NoDay).
// Complexity: O(N).
func (m *Model) NextStateAndTime(day int, age float64, old int, rng *rand.Rand) (int, int) {
	if old < 0 || old >= len(m.names) {
		return old, NoDay
	}
	t := m.trans[m.ages.Group(age)]
	next, nextDay := old, NoDay

	var (
		j      int
		lambda float64
		wait   float64
		cand   int
	)
	for j = 0; j < len(m.names); j++ {
		if j == old {
			continue
		}
		lambda, _ = t.At(old, j)
		if lambda == 0 {
			continue
		}
		wait = math.Round(rng.ExpFloat64() / lambda * m.period)
		if wait > maxOffset {
			wait = maxOffset
		}
		cand = day + 1 + int(wait)
		if nextDay == NoDay || cand < nextDay {
			next, nextDay = j, cand
		}
	}

	return next, nextDay
}

// Describe renders the model as one line per parameter, in the same key
// layout the parameter store uses.
func (m *Model) Describe() []string {
	out := make([]string, 0, len(m.names)*(1+len(m.trans)*(1+len(m.names))))
	var (
		g, i, j int
		h       float64
	)
	for i = range m.names {
		out = append(out, fmt.Sprintf("%s[%d].name = %s", m.name, i, m.names[i]))
	}
	for g = range m.trans {
		for i = range m.names {
			out = append(out, fmt.Sprintf("%s.group[%d].initial_percent[%d] = %g", m.name, g, i, m.initial[g][i]))
		}
		for i = range m.names {
			for j = range m.names {
				h, _ = m.trans[g].At(i, j)
				out = append(out, fmt.Sprintf("%s.group[%d].trans[%d][%d] = %g", m.name, g, i, j, h))
			}
		}
	}

	return out
}
