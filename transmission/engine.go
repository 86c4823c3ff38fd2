// File: engine.go
// Role: Degree-weighted transmission sampling for one disease on one network.
// Determinism:
//   - Hosts are taken in network roster order; draws come from one RNG in a
//     fixed order (link, then Bernoulli only for susceptible destinations).
// Concurrency:
//   - Not safe for concurrent use; the network's own locking covers readers
//     elsewhere.

package transmission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/katalvlaran/epinet/logging"
	"github.com/katalvlaran/epinet/natural"
	"github.com/katalvlaran/epinet/network"
	"github.com/katalvlaran/epinet/population"
)

var (
	// ErrParams indicates negative or non-finite transmission parameters.
	ErrParams = errors.New("transmission: invalid parameters")

	// ErrNegativeWeight indicates a negative sampler weight.
	ErrNegativeWeight = errors.New("transmission: negative weight")

	// ErrWiring indicates a nil network, history or exposer.
	ErrWiring = errors.New("transmission: missing collaborator")
)

// Params are the per-network contact rates.
type Params struct {
	ContactsPerLinkPerDay  float64 `json:"contacts_per_link_per_day" yaml:"contacts_per_link_per_day"`
	TransmissionPerContact float64 `json:"transmission_per_contact" yaml:"transmission_per_contact"`
}

// Validate rejects negative and non-finite values.
func (p Params) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"contacts_per_link_per_day", p.ContactsPerLinkPerDay},
		{"transmission_per_contact", p.TransmissionPerContact},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) || f.v < 0 {
			return fmt.Errorf("transmission: %s=%v: %w", f.name, f.v, ErrParams)
		}
	}
	return nil
}

// Exposer moves a susceptible person into the exposure state.
// *epidemic.Scheduler satisfies it.
type Exposer interface {
	Expose(p *population.Person, day int) (bool, error)
}

// Result summarizes one day's spread.
type Result struct {
	Day        int `json:"day"`
	Hosts      int `json:"hosts"`      // infectious members with outgoing links
	Links      int `json:"links"`      // outgoing links of those hosts
	Attempts   int `json:"attempts"`   // links drawn
	Contacts   int `json:"contacts"`   // draws that reached a susceptible person
	Infections int `json:"infections"` // successful exposures
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes engine logging to log. Panics on nil.
func WithLogger(log *slog.Logger) Option {
	if log == nil {
		panic("transmission: WithLogger(nil)")
	}
	return func(e *Engine) { e.log = log }
}

// WithRand sets the sampling RNG. Panics on nil.
func WithRand(rng *rand.Rand) Option {
	if rng == nil {
		panic("transmission: WithRand(nil)")
	}
	return func(e *Engine) { e.rng = rng }
}

// WithSeed seeds a fresh sampling RNG.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

// Engine spreads one disease over one contact network.
type Engine struct {
	disease int
	net     *network.Network[*population.Person]
	history *natural.History
	exposer Exposer
	params  Params
	rng     *rand.Rand
	log     *slog.Logger
}

// New wires an Engine for disease index disease. Without WithRand/WithSeed
// the RNG is seeded with 1.
func New(disease int, net *network.Network[*population.Person], history *natural.History,
	exposer Exposer, params Params, opts ...Option) (*Engine, error) {
	if net == nil || history == nil || exposer == nil {
		return nil, fmt.Errorf("transmission: New(%d): %w", disease, ErrWiring)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		disease: disease,
		net:     net,
		history: history,
		exposer: exposer,
		params:  params,
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(1))
	}
	e.log = e.log.With("network", net.Label(), "disease", disease)

	return e, nil
}

// Params returns the engine's contact rates.
func (e *Engine) Params() Params { return e.params }

// Infectivity returns p's current infectivity for the engine's disease.
func (e *Engine) Infectivity(p *population.Person) float64 {
	return e.history.Infectivity(p.State(e.disease))
}

// hosts returns the infectious members with outgoing links and their degrees.
func (e *Engine) hosts() ([]*population.Person, []int) {
	var hosts []*population.Person
	var degrees []int
	for _, p := range e.net.Members() {
		if !p.IsInfectious(e.disease) {
			continue
		}
		if d := e.net.OutDegree(p); d > 0 {
			hosts = append(hosts, p)
			degrees = append(degrees, d)
		}
	}
	return hosts, degrees
}

// Spread runs one day of network transmission.
//
// Steps:
//  1. Collect infectious hosts with out-degree > 0 and their cumulative degrees.
//  2. attempts = round(links × contacts × transmission).
//  3. Per attempt: draw a link uniformly, locate its owner and local index,
//     resolve the destination; if susceptible, Bernoulli with
//     infectivity × susceptibility; on success call the Exposer.
//
// Complexity: O(V + attempts·log H).
func (e *Engine) Spread(day int) (Result, error) {
	res := Result{Day: day}
	hosts, degrees := e.hosts()
	sampler, err := NewCumulativeSampler(degrees)
	if err != nil {
		return res, err
	}
	res.Hosts = len(hosts)
	res.Links = sampler.Total()
	if res.Hosts == 0 || res.Links == 0 {
		return res, nil
	}

	expected := float64(res.Links) * e.params.ContactsPerLinkPerDay * e.params.TransmissionPerContact
	res.Attempts = int(math.Round(expected))
	e.log.Debug("spread", "day", day, "hosts", res.Hosts, "links", res.Links, "attempts", res.Attempts)

	for a := 0; a < res.Attempts; a++ {
		owner, link := sampler.Locate(e.rng.Intn(res.Links))
		infector := hosts[owner]
		infectee, err := e.net.EndOfLink(infector, link)
		if err != nil {
			return res, fmt.Errorf("transmission: day %d attempt %d: %w", day, a, err)
		}
		if !infectee.IsSusceptible(e.disease) {
			continue
		}
		res.Contacts++

		prob := e.Infectivity(infector) * infectee.Susceptibility(e.disease)
		if e.rng.Float64() >= prob {
			continue
		}
		ok, err := e.exposer.Expose(infectee, day)
		if err != nil {
			return res, fmt.Errorf("transmission: day %d: %w", day, err)
		}
		if ok {
			res.Infections++
			infector.Health(e.disease).Infections++
			if e.log.Enabled(context.Background(), logging.LevelTrace) {
				e.log.Log(context.Background(), logging.LevelTrace, "transmission",
					"day", day, "infector", infector.ID(), "infectee", infectee.ID(), "prob", prob)
			}
		}
	}

	return res, nil
}
