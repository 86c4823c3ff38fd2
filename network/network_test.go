package network_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/epinet/network"
)

type NetworkSuite struct {
	suite.Suite
	n *network.Network[string]
}

func (s *NetworkSuite) SetupTest() {
	s.n = network.New[string]("contacts", network.WithCapacity(8))
	for _, k := range []string{"A", "B", "C", "D"} {
		_, err := s.n.Enroll(k)
		s.Require().NoError(err)
	}
}

func (s *NetworkSuite) TestEnrollTwiceFails() {
	_, err := s.n.Enroll("A")
	s.Require().ErrorIs(err, network.ErrAlreadyEnrolled)
	s.Require().Equal(4, s.n.Size())
	s.Require().Equal([]string{"A", "B", "C", "D"}, s.n.Members())
}

func (s *NetworkSuite) TestLinkSymmetry() {
	require := require.New(s.T())
	added, err := s.n.CreateLinkTo("A", "B")
	require.NoError(err)
	require.True(added)

	require.True(s.n.IsConnectedTo("A", "B"))
	require.True(s.n.IsConnectedFrom("B", "A"))
	require.False(s.n.IsConnectedTo("B", "A"), "links are directed")
	require.Equal(1, s.n.OutDegree("A"))
	require.Equal(1, s.n.InDegree("B"))
	require.Equal(0, s.n.InDegree("A"))

	// idempotent
	added, err = s.n.CreateLinkTo("A", "B")
	require.NoError(err)
	require.False(added)
	require.Equal(1, s.n.EdgeCount())

	ok, err := s.n.DestroyLinkTo("A", "B")
	require.NoError(err)
	require.True(ok)
	require.Equal(0, s.n.OutDegree("A"))
	require.Equal(0, s.n.InDegree("B"))
	require.Equal(0, s.n.EdgeCount())

	ok, err = s.n.DestroyLinkTo("A", "B")
	require.NoError(err)
	require.False(ok)
}

func (s *NetworkSuite) TestCreateLinkFromMirrors() {
	require := require.New(s.T())
	_, err := s.n.CreateLinkFrom("A", "C") // C→A
	require.NoError(err)
	require.True(s.n.IsConnectedTo("C", "A"))
	require.True(s.n.IsConnectedFrom("A", "C"))

	from, err := s.n.LinksFrom("A")
	require.NoError(err)
	require.Equal([]string{"C"}, from)

	ok, err := s.n.DestroyLinkFrom("A", "C")
	require.NoError(err)
	require.True(ok)
	require.False(s.n.IsConnectedTo("C", "A"))
}

func (s *NetworkSuite) TestLinkErrors() {
	require := require.New(s.T())
	_, err := s.n.CreateLinkTo("A", "A")
	require.ErrorIs(err, network.ErrSelfLink)
	_, err = s.n.CreateLinkTo("A", "Z")
	require.ErrorIs(err, network.ErrNotEnrolled)
	_, err = s.n.LinksTo("Z")
	require.ErrorIs(err, network.ErrNotEnrolled)
	_, err = s.n.EndOfLink("A", 0)
	require.ErrorIs(err, network.ErrLinkOutOfRange)
	_, err = s.n.Member(4)
	require.ErrorIs(err, network.ErrLinkOutOfRange)
	require.Equal(0, s.n.OutDegree("Z"))
	require.False(s.n.IsConnectedTo("Z", "A"))
}

func (s *NetworkSuite) TestEndOfLinkKeepsInsertionOrder() {
	require := require.New(s.T())
	for _, dst := range []string{"D", "B", "C"} {
		_, err := s.n.CreateLinkTo("A", dst)
		require.NoError(err)
	}
	for i, want := range []string{"D", "B", "C"} {
		got, err := s.n.EndOfLink("A", i)
		require.NoError(err)
		require.Equal(want, got)
	}

	_, err := s.n.DestroyLinkTo("A", "B")
	require.NoError(err)
	to, err := s.n.LinksTo("A")
	require.NoError(err)
	require.Equal([]string{"D", "C"}, to, "removal preserves order")
}

func (s *NetworkSuite) TestUnenrollRemovesMirrors() {
	require := require.New(s.T())
	_, _ = s.n.CreateLinkTo("A", "B")
	_, _ = s.n.CreateLinkTo("B", "C")
	_, _ = s.n.CreateLinkTo("C", "B")
	_, _ = s.n.CreateLinkTo("D", "A")
	require.Equal(4, s.n.EdgeCount())

	h, ok := s.n.HandleOf("B")
	require.True(ok)
	require.NoError(s.n.Unenroll("B"))

	require.False(s.n.IsEnrolled("B"))
	require.Equal(1, s.n.EdgeCount())
	require.Equal(0, s.n.OutDegree("A"))
	require.Equal(0, s.n.InDegree("C"))
	require.Equal(0, s.n.OutDegree("C"))
	require.True(s.n.IsConnectedTo("D", "A"))

	// last member moved into B's roster position
	require.Equal([]string{"A", "D", "C"}, s.n.Members())

	_, err := s.n.Resolve(h)
	require.ErrorIs(err, network.ErrStaleHandle)
	require.ErrorIs(s.n.Unenroll("B"), network.ErrNotEnrolled)
}

func (s *NetworkSuite) TestStaleHandleAfterSlotReuse() {
	require := require.New(s.T())
	old, _ := s.n.HandleOf("C")
	require.NoError(s.n.Unenroll("C"))

	fresh, err := s.n.Enroll("E")
	require.NoError(err)
	require.NotEqual(old, fresh)

	k, err := s.n.Resolve(fresh)
	require.NoError(err)
	require.Equal("E", k)

	_, err = s.n.Resolve(old)
	require.ErrorIs(err, network.ErrStaleHandle)
	_, err = s.n.Resolve(network.Handle{})
	require.ErrorIs(err, network.ErrStaleHandle)
}

func (s *NetworkSuite) TestClearLinksAndMeanDegree() {
	require := require.New(s.T())
	_, _ = s.n.CreateLinkTo("A", "B")
	_, _ = s.n.CreateLinkTo("A", "C")
	require.InDelta(0.5, s.n.MeanDegree(), 1e-12)

	s.n.ClearLinks()
	require.Equal(0, s.n.EdgeCount())
	require.Equal(4, s.n.Size())
	require.Zero(s.n.MeanDegree())
	require.Zero(network.New[int]("empty").MeanDegree())
}

func (s *NetworkSuite) TestDescribe() {
	_, _ = s.n.CreateLinkTo("A", "B")
	_, _ = s.n.CreateLinkTo("A", "D")
	s.Require().Equal([]string{"A . B D", "B .", "C .", "D ."}, s.n.Describe())
}

func TestNetworkSuite(t *testing.T) {
	suite.Run(t, new(NetworkSuite))
}
