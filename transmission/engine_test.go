package transmission_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/epinet/epidemic"
	"github.com/katalvlaran/epinet/markov"
	"github.com/katalvlaran/epinet/natural"
	"github.com/katalvlaran/epinet/network"
	"github.com/katalvlaran/epinet/population"
	"github.com/katalvlaran/epinet/transmission"
)

type EngineSuite struct {
	suite.Suite
	pop     *population.Population
	net     *network.Network[*population.Person]
	history *natural.History
	sched   *epidemic.Scheduler
	people  []*population.Person
}

// SetupTest builds 11 susceptible persons on an S/I disease without
// spontaneous transitions, all enrolled and unlinked.
func (s *EngineSuite) SetupTest() {
	require := s.Require()
	m, err := markov.New(markov.Params{
		Disease:        "sti",
		StateNames:     []string{"S", "I"},
		InitialPercent: [][]float64{{0, 0}},
		Hazards:        [][][]float64{{{0, 0}, {0, 0}}},
		Period:         1,
	})
	require.NoError(err)
	s.history, err = natural.New(natural.Markov, []natural.State{{}, {Infectivity: 1}})
	require.NoError(err)
	s.sched, err = epidemic.New(0, m, s.history)
	require.NoError(err)

	s.pop = population.New(1)
	s.net = network.New[*population.Person]("partners")
	for i := 0; i < 11; i++ {
		p, err := s.pop.Add(float64(20+i), population.Male)
		require.NoError(err)
		_, err = s.net.Enroll(p)
		require.NoError(err)
	}
	s.people = s.pop.People()
	require.NoError(s.sched.Prepare(s.pop))
}

func (s *EngineSuite) engine(contacts, trans float64) *transmission.Engine {
	e, err := transmission.New(0, s.net, s.history, s.sched, transmission.Params{
		ContactsPerLinkPerDay:  contacts,
		TransmissionPerContact: trans,
	}, transmission.WithSeed(4))
	s.Require().NoError(err)
	return e
}

func (s *EngineSuite) infect(p *population.Person) {
	ok, err := s.sched.Expose(p, 0)
	s.Require().NoError(err)
	s.Require().True(ok)
}

func (s *EngineSuite) TestZeroLinksZeroAttempts() {
	s.infect(s.people[0])
	res, err := s.engine(1, 1).Spread(1)
	s.Require().NoError(err)
	s.Equal(transmission.Result{Day: 1}, res)
	s.Equal(1, s.sched.Counters().CumulativeIncidence)
}

func (s *EngineSuite) TestNoInfectiousHosts() {
	_, err := s.net.CreateLinkTo(s.people[0], s.people[1])
	s.Require().NoError(err)
	res, err := s.engine(1, 1).Spread(1)
	s.Require().NoError(err)
	s.Zero(res.Attempts)
	s.Zero(res.Hosts)
}

func (s *EngineSuite) TestCertainTransmission() {
	a, b := s.people[0], s.people[1]
	_, err := s.net.CreateLinkTo(a, b)
	s.Require().NoError(err)
	s.infect(a)

	res, err := s.engine(1, 1).Spread(1)
	s.Require().NoError(err)
	s.Equal(transmission.Result{Day: 1, Hosts: 1, Links: 1, Attempts: 1, Contacts: 1, Infections: 1}, res)
	s.Equal(1, b.State(0))
	s.Equal(1, b.Health(0).ExposureDay)
	s.Equal(1, a.Health(0).Infections)

	// b is no longer susceptible; a's next attempt finds no contact
	res, err = s.engine(1, 1).Spread(2)
	s.Require().NoError(err)
	s.Equal(1, res.Hosts, "b is infectious now but has no links")
	s.Equal(1, res.Links)
	s.Zero(res.Contacts)
}

func (s *EngineSuite) TestStarHubAttemptsAndTargets() {
	hub := s.people[0]
	for _, p := range s.people[1:] {
		_, err := s.net.CreateLinkTo(hub, p)
		s.Require().NoError(err)
	}
	s.infect(hub)

	res, err := s.engine(0.5, 1).Spread(1)
	s.Require().NoError(err)
	s.Equal(10, res.Links)
	s.Equal(5, res.Attempts)
	s.LessOrEqual(res.Infections, res.Contacts)
	s.GreaterOrEqual(res.Infections, 1)
	s.Equal(1+res.Infections, s.sched.Counters().CumulativeIncidence)
	for _, p := range s.people[1:] {
		if p.State(0) == 1 {
			s.True(s.net.IsConnectedFrom(p, hub))
		}
	}
}

func (s *EngineSuite) TestZeroSusceptibilityBlocks() {
	a, b := s.people[0], s.people[1]
	_, _ = s.net.CreateLinkTo(a, b)
	b.SetSusceptibility(0, 0)
	s.infect(a)

	res, err := s.engine(5, 1).Spread(1)
	s.Require().NoError(err)
	s.Equal(5, res.Attempts)
	s.Equal(5, res.Contacts, "draws with replacement")
	s.Zero(res.Infections)
	s.Equal(0, b.State(0))
}

type failingExposer struct{}

func (failingExposer) Expose(*population.Person, int) (bool, error) {
	return false, errors.New("boom")
}

func (s *EngineSuite) TestExposerErrorStopsSpread() {
	a, b := s.people[0], s.people[1]
	_, _ = s.net.CreateLinkTo(a, b)
	s.infect(a)
	e, err := transmission.New(0, s.net, s.history, failingExposer{},
		transmission.Params{ContactsPerLinkPerDay: 1, TransmissionPerContact: 1})
	s.Require().NoError(err)
	_, err = e.Spread(1)
	s.Require().ErrorContains(err, "boom")
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func TestParamsAndWiring(t *testing.T) {
	require.NoError(t, transmission.Params{}.Validate())
	err := transmission.Params{ContactsPerLinkPerDay: -1}.Validate()
	require.ErrorIs(t, err, transmission.ErrParams)
	assert.Contains(t, err.Error(), "contacts_per_link_per_day")

	_, err = transmission.New(0, nil, nil, nil, transmission.Params{})
	require.ErrorIs(t, err, transmission.ErrWiring)
	require.Panics(t, func() { transmission.WithRand(nil) })
}
