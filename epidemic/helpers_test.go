package epidemic_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/epinet/markov"
	"github.com/katalvlaran/epinet/natural"
	"github.com/katalvlaran/epinet/population"
)

// siModel is Susceptible/Infected with hazard h from S to I and I absorbing.
func siModel(t testing.TB, h float64) (*markov.Model, *natural.History) {
	t.Helper()
	m, err := markov.New(markov.Params{
		Disease:        "si",
		StateNames:     []string{"S", "I"},
		InitialPercent: [][]float64{{0, 0}},
		Hazards:        [][][]float64{{{0, h}, {0, 0}}},
		Period:         1,
	})
	require.NoError(t, err)
	nh, err := natural.New(natural.Markov, []natural.State{{}, {Infectivity: 1}})
	require.NoError(t, err)

	return m, nh
}

// chainModel starts everyone in E and walks E -> I1 -> I2 -> R, where both I
// states are infectious and only I2 is symptomatic.
func chainModel(t testing.TB) (*markov.Model, *natural.History) {
	t.Helper()
	m, err := markov.New(markov.Params{
		Disease:        "chain",
		StateNames:     []string{"S", "E", "I1", "I2", "R"},
		InitialPercent: [][]float64{{0, 100, 0, 0, 0}},
		Hazards: [][][]float64{{
			{0, 0, 0, 0, 0},
			{0, 0, 0.5, 0, 0},
			{0, 0, 0, 0.5, 0},
			{0, 0, 0, 0, 0.5},
			{0, 0, 0, 0, 0},
		}},
		Period: 1,
	})
	require.NoError(t, err)
	nh, err := natural.New(natural.Markov, []natural.State{
		{}, {}, {Infectivity: 1}, {Infectivity: 0.5, Symptoms: 1}, {},
	})
	require.NoError(t, err)

	return m, nh
}

func people(t testing.TB, n int) *population.Population {
	t.Helper()
	pop, err := population.Generate(n, 90, 1, rand.New(rand.NewSource(11)))
	require.NoError(t, err)

	return pop
}
