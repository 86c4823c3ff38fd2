// File: builder_impl_test.go
// Package builder_test verifies the network constructors: link counts,
// absence of self-links and duplicates, validation and determinism.
package builder_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/epinet/builder"
	"github.com/katalvlaran/epinet/network"
)

// enrolled returns a network with members 0..n-1.
func enrolled(t testing.TB, n int) *network.Network[int] {
	t.Helper()
	net := network.New[int]("test", network.WithCapacity(n))
	for i := 0; i < n; i++ {
		_, err := net.Enroll(i)
		require.NoError(t, err)
	}

	return net
}

// requireSimple asserts no self-links and no duplicate links.
func requireSimple(t *testing.T, net *network.Network[int]) {
	t.Helper()
	total := 0
	for _, k := range net.Members() {
		to, err := net.LinksTo(k)
		require.NoError(t, err)
		seen := make(map[int]bool, len(to))
		for _, d := range to {
			require.NotEqual(t, k, d, "self-link on %d", k)
			require.False(t, seen[d], "duplicate link %d→%d", k, d)
			seen[d] = true
			require.True(t, net.IsConnectedFrom(d, k), "mirror of %d→%d missing", k, d)
		}
		total += len(to)
	}
	require.Equal(t, net.EdgeCount(), total)
}

func TestRandomMeanDegree_EdgeCount(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		n    int
		d    float64
		want int
	}{
		{n: 1000, d: 2.0, want: 2000},
		{n: 333, d: 1.5, want: 500}, // 499.5 rounds up
		{n: 10, d: 9.0, want: 90},   // complete directed graph
		{n: 50, d: 0, want: 0},
	} {
		net := enrolled(t, tc.n)
		err := builder.Build(net, []builder.BuilderOption{builder.WithSeed(42)},
			builder.RandomMeanDegree[int](tc.d))
		require.NoError(t, err)
		assert.Equal(t, tc.want, net.EdgeCount(), "n=%d d=%v", tc.n, tc.d)
		requireSimple(t, net)
	}
}

func TestRandomMeanDegree_ClearsExistingLinks(t *testing.T) {
	net := enrolled(t, 20)
	for i := 1; i < 20; i++ {
		_, _ = net.CreateLinkTo(0, i)
	}
	require.NoError(t, builder.Build(net, []builder.BuilderOption{builder.WithSeed(1)},
		builder.RandomMeanDegree[int](0.5)))
	require.Equal(t, 10, net.EdgeCount())
}

func TestRandomMeanDegree_TooFewMembers(t *testing.T) {
	for _, n := range []int{0, 1} {
		net := enrolled(t, n)
		require.NoError(t, builder.Build(net, nil, builder.RandomMeanDegree[int](3)))
		require.Zero(t, net.EdgeCount())
	}
}

func TestRandomMeanDegree_Errors(t *testing.T) {
	net := enrolled(t, 4)
	err := builder.Build(net, []builder.BuilderOption{builder.WithSeed(1)}, builder.RandomMeanDegree[int](3.5))
	require.ErrorIs(t, err, builder.ErrInvalidDegree)

	err = builder.Build(net, []builder.BuilderOption{builder.WithSeed(1)}, builder.RandomMeanDegree[int](-1))
	require.ErrorIs(t, err, builder.ErrInvalidDegree)

	err = builder.Build(net, nil, builder.RandomMeanDegree[int](1))
	require.ErrorIs(t, err, builder.ErrNeedRandSource)

	err = builder.Build(net, []builder.BuilderOption{builder.WithSeed(1), builder.WithMaxAttempts(2)},
		builder.RandomMeanDegree[int](3))
	require.ErrorIs(t, err, builder.ErrConstructFailed)
}

func TestRandomMeanDegree_Deterministic(t *testing.T) {
	a, b := enrolled(t, 200), enrolled(t, 200)
	opts := []builder.BuilderOption{builder.WithRand(rand.New(rand.NewSource(9)))}
	require.NoError(t, builder.Build(a, opts, builder.RandomMeanDegree[int](2)))
	opts = []builder.BuilderOption{builder.WithSeed(9)}
	require.NoError(t, builder.Build(b, opts, builder.RandomMeanDegree[int](2)))
	require.Equal(t, a.Describe(), b.Describe())
}

// Complete targets on tiny networks spend most draws on a == b; those must
// not eat into the attempt budget.
func TestRandomMeanDegree_CompleteTinyNetworks(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		n int
		d float64
	}{
		{n: 2, d: 1},
		{n: 3, d: 2},
	} {
		for seed := int64(0); seed < 5000; seed++ {
			net := enrolled(t, tc.n)
			err := builder.Build(net, []builder.BuilderOption{builder.WithSeed(seed)},
				builder.RandomMeanDegree[int](tc.d))
			require.NoError(t, err, "n=%d d=%v seed=%d", tc.n, tc.d, seed)
			require.Equal(t, tc.n*(tc.n-1), net.EdgeCount())
		}
	}
}

func TestRandomSparse(t *testing.T) {
	net := enrolled(t, 6)
	require.NoError(t, builder.Build(net, nil, builder.RandomSparse[int](1)))
	require.Equal(t, 30, net.EdgeCount())
	requireSimple(t, net)

	net = enrolled(t, 6)
	require.NoError(t, builder.Build(net, nil, builder.RandomSparse[int](0)))
	require.Zero(t, net.EdgeCount())

	net = enrolled(t, 100)
	require.NoError(t, builder.Build(net, []builder.BuilderOption{builder.WithSeed(3)},
		builder.RandomSparse[int](0.1)))
	assert.InDelta(t, 990, net.EdgeCount(), 150)
	requireSimple(t, net)

	err := builder.Build(net, nil, builder.RandomSparse[int](0.5))
	require.ErrorIs(t, err, builder.ErrNeedRandSource)
	err = builder.Build(net, nil, builder.RandomSparse[int](1.5))
	require.ErrorIs(t, err, builder.ErrInvalidProbability)
	err = builder.Build(enrolled(t, 1), nil, builder.RandomSparse[int](1))
	require.ErrorIs(t, err, builder.ErrTooFewVertices)
}

func TestEnrollWhere(t *testing.T) {
	keys := make([]int, 100)
	for i := range keys {
		keys[i] = i
	}
	even := func(k int) bool { return k%2 == 0 }

	net := network.New[int]("even")
	require.NoError(t, builder.Build(net, nil, builder.EnrollWhere(keys, even, 1)))
	require.Equal(t, 50, net.Size())
	require.False(t, net.IsEnrolled(3))

	// repeat enrollment is skipped
	require.NoError(t, builder.Build(net, nil, builder.EnrollWhere(keys, even, 1)))
	require.Equal(t, 50, net.Size())

	net = network.New[int]("sample")
	require.NoError(t, builder.Build(net, []builder.BuilderOption{builder.WithSeed(5)},
		builder.EnrollWhere(keys, nil, 0.3)))
	assert.InDelta(t, 30, net.Size(), 15)

	err := builder.Build(net, nil, builder.EnrollWhere(keys, nil, 0.3))
	require.ErrorIs(t, err, builder.ErrNeedRandSource)
	err = builder.Build(net, nil, builder.EnrollWhere(keys, nil, -0.1))
	require.ErrorIs(t, err, builder.ErrInvalidProbability)
}

func TestBuild_Errors(t *testing.T) {
	require.ErrorIs(t, builder.Build[int](nil, nil), builder.ErrConstructFailed)
	require.ErrorIs(t, builder.Build(enrolled(t, 2), nil, nil), builder.ErrConstructFailed)
}

func TestOptionPanics(t *testing.T) {
	require.Panics(t, func() { builder.WithRand(nil) })
	require.Panics(t, func() { builder.WithMaxAttempts(0) })
}
