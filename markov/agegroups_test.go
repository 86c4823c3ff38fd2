package markov_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/epinet/markov"
)

func TestAgeGroups_Group(t *testing.T) {
	a, err := markov.NewAgeGroups([]float64{5, 18, 65})
	require.NoError(t, err)
	require.Equal(t, 3, a.Count())

	tests := []struct {
		age  float64
		want int
	}{
		{0, 0}, {4.99, 0}, {5, 1}, {17.5, 1}, {18, 2}, {64, 2}, {65, 2}, {101, 2},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, a.Group(tc.age), "age %g", tc.age)
	}
}

func TestAgeGroups_EmptyIsSingleGroup(t *testing.T) {
	a, err := markov.NewAgeGroups(nil)
	require.NoError(t, err)
	require.Equal(t, 1, a.Count())
	require.Equal(t, 0, a.Group(80))
	require.Empty(t, a.Bounds())
}

func TestAgeGroups_RejectsUnordered(t *testing.T) {
	_, err := markov.NewAgeGroups([]float64{10, 10})
	require.ErrorIs(t, err, markov.ErrAgeBounds)
}
