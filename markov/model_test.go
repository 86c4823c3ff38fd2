package markov_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/epinet/markov"
	"github.com/katalvlaran/epinet/matrix"
)

// seirParams returns a two-age-group S/E/I/R model used across tests.
func seirParams() markov.Params {
	return markov.Params{
		Disease:    "flu",
		StateNames: []string{"S", "E", "I", "R"},
		AgeBounds:  []float64{18, 120},
		InitialPercent: [][]float64{
			{0, 0, 5, 0},
			{0, 1, 1, 10},
		},
		Hazards: [][][]float64{
			{
				{0, 0, 0, 0},
				{0, 0, 0.5, 0},
				{0, 0, 0, 0.2},
				{0, 0, 0, 0},
			},
			{
				{0, 0, 0, 0},
				{0, 0, 0.3, 0.1},
				{0, 0, 0, 0.25},
				{0.01, 0, 0, 0},
			},
		},
		Period: 1,
	}
}

func TestNew_DiagonalCompletesRows(t *testing.T) {
	m, err := markov.New(seirParams())
	require.NoError(t, err)
	require.Equal(t, 4, m.States())
	require.Equal(t, 2, m.Groups())

	var g int
	for g = 0; g < m.Groups(); g++ {
		tr, err := m.Transition(g)
		require.NoError(t, err)
		require.NoError(t, matrix.ValidateRowSums(tr, 1.0, 1e-9), "group %d", g)
	}
	d, err := m.Hazard(1, 1, 1)
	require.NoError(t, err)
	require.InDelta(t, 0.6, d, 1e-12)

	require.InDelta(t, 95.0, m.InitialPercent(0, 0), 1e-12)
	require.InDelta(t, 88.0, m.InitialPercent(1, 0), 1e-12)
}

func TestNew_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *markov.Params)
		want   error
	}{
		{"no states", func(p *markov.Params) { p.StateNames = nil }, markov.ErrNoStates},
		{"name mismatch", func(p *markov.Params) { p.States = 3 }, markov.ErrStateNames},
		{"bad period", func(p *markov.Params) { p.Period = 0 }, markov.ErrPeriod},
		{"bounds order", func(p *markov.Params) { p.AgeBounds = []float64{50, 20} }, markov.ErrAgeBounds},
		{"group count", func(p *markov.Params) { p.Hazards = p.Hazards[:1] }, markov.ErrGroupCount},
		{"initial shape", func(p *markov.Params) { p.InitialPercent[0] = []float64{1, 2} }, markov.ErrShape},
		{"initial total", func(p *markov.Params) { p.InitialPercent[1] = []float64{0, 60, 30, 20} }, markov.ErrInitialPercent},
		{"negative hazard", func(p *markov.Params) { p.Hazards[0][2][3] = -0.1 }, markov.ErrNegativeValue},
		{"row sum", func(p *markov.Params) { p.Hazards[1][1] = []float64{0.5, 0, 0.4, 0.3} }, markov.ErrRowSumExceeded},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := seirParams()
			tc.mutate(&p)
			_, err := markov.New(p)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestNew_RowSumErrorNamesLocation(t *testing.T) {
	p := seirParams()
	p.Hazards[1][2] = []float64{0.6, 0.6, 0, 0}
	_, err := markov.New(p)
	require.ErrorIs(t, err, markov.ErrRowSumExceeded)
	require.Contains(t, err.Error(), "markov(flu)")
	require.Contains(t, err.Error(), "group 1 row 2")
}

func TestInitialState_Distribution(t *testing.T) {
	m, err := markov.New(seirParams())
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(7))

	const draws = 20000
	counts := make([]int, m.States())
	var i int
	for i = 0; i < draws; i++ {
		s, err := m.InitialState(40, rng)
		require.NoError(t, err)
		counts[s]++
	}
	require.InDelta(t, 0.88, float64(counts[0])/draws, 0.01)
	require.InDelta(t, 0.10, float64(counts[3])/draws, 0.01)

	for i = 0; i < 1000; i++ {
		s, err := m.InitialState(5, rng)
		require.NoError(t, err)
		require.Contains(t, []int{0, 2}, s, "children start only in S or I")
	}
}

func TestNextStateAndTime_NoCandidate(t *testing.T) {
	m, err := markov.New(seirParams())
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(1))

	next, day := m.NextStateAndTime(10, 5, 3, rng)
	require.Equal(t, 3, next)
	require.Equal(t, markov.NoDay, day)

	next, day = m.NextStateAndTime(10, 5, -1, rng)
	require.Equal(t, -1, next)
	require.Equal(t, markov.NoDay, day)
}

func TestNextStateAndTime_TieBreaksToLowestIndex(t *testing.T) {
	p := markov.Params{
		Disease:        "tie",
		StateNames:     []string{"A", "B", "C"},
		InitialPercent: [][]float64{{0, 0, 0}},
		Hazards: [][][]float64{{
			{0, 0.4, 0.4},
			{0, 0, 0},
			{0, 0, 0},
		}},
		// Waiting times collapse to zero, so every draw is an exact tie.
		Period: 1e-12,
	}
	m, err := markov.New(p)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(3))
	var i int
	for i = 0; i < 100; i++ {
		next, day := m.NextStateAndTime(4, 30, 0, rng)
		require.Equal(t, 1, next)
		require.Equal(t, 5, day)
	}
}

func TestNextStateAndTime_ExponentialMean(t *testing.T) {
	p := markov.Params{
		Disease:        "si",
		StateNames:     []string{"S", "I"},
		InitialPercent: [][]float64{{0, 0}},
		Hazards:        [][][]float64{{{0, 0.1}, {0, 0}}},
		Period:         1,
	}
	m, err := markov.New(p)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(11))

	const draws = 20000
	var (
		i   int
		sum float64
	)
	for i = 0; i < draws; i++ {
		next, day := m.NextStateAndTime(0, 20, 0, rng)
		require.Equal(t, 1, next)
		require.GreaterOrEqual(t, day, 1)
		sum += float64(day - 1)
	}
	// round(Exp) has mean ≈ 1/λ.
	require.InDelta(t, 10.0, sum/draws, 0.3)
}

func TestStateLookupAndDescribe(t *testing.T) {
	m, err := markov.New(seirParams())
	require.NoError(t, err)

	i, err := m.StateIndex("I")
	require.NoError(t, err)
	require.Equal(t, 2, i)
	_, err = m.StateIndex("Z")
	require.ErrorIs(t, err, markov.ErrUnknownState)
	require.Equal(t, "", m.StateName(9))

	lines := m.Describe()
	require.Contains(t, lines, "flu[0].name = S")
	require.Contains(t, lines, "flu.group[1].trans[3][0] = 0.01")
	require.False(t, math.IsNaN(m.Period()))
}
