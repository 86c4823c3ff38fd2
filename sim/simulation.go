package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/katalvlaran/epinet/builder"
	"github.com/katalvlaran/epinet/config"
	"github.com/katalvlaran/epinet/epidemic"
	"github.com/katalvlaran/epinet/logging"
	"github.com/katalvlaran/epinet/markov"
	"github.com/katalvlaran/epinet/natural"
	"github.com/katalvlaran/epinet/network"
	"github.com/katalvlaran/epinet/population"
	"github.com/katalvlaran/epinet/report"
	"github.com/katalvlaran/epinet/transmission"
)

// ErrPhase indicates a lifecycle call out of order.
var ErrPhase = errors.New("sim: wrong phase")

// Phase is shared with the schedulers the simulation drives.
type Phase = epidemic.Phase

// disease bundles one configured disease with its built components.
type disease struct {
	cfg     *config.DiseaseConfig
	model   *markov.Model
	history *natural.History
	sched   *epidemic.Scheduler
}

// contactNet is one network and the engines spreading over it.
type contactNet struct {
	cfg     *config.NetworkConfig
	net     *network.Network[*population.Person]
	engines []spreader
}

type spreader struct {
	disease int
	engine  *transmission.Engine
}

// Simulation runs one configured scenario.
type Simulation struct {
	cfg   *config.Config
	log   *slog.Logger
	rng   *rand.Rand
	runID string

	pop      *population.Population
	diseases []*disease
	networks []*contactNet

	series    *report.Series
	recorders []report.Recorder
	recorder  report.Recorder
	events    *logging.EventLogger
	hooks     []epidemic.Hook

	phase Phase
	day   int
	dying []*population.Person
}

// New validates cfg and returns an unconfigured Simulation.
func New(cfg *config.Config, opts ...Option) (*Simulation, error) {
	if cfg == nil {
		return nil, fmt.Errorf("sim: New: nil config: %w", config.ErrInvalid)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Simulation{
		cfg:    cfg,
		log:    logging.Discard(),
		rng:    rand.New(rand.NewSource(cfg.Run.Seed)),
		runID:  report.NewRunID(),
		series: report.NewSeries(),
		phase:  epidemic.PhaseUninitialized,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.recorder = report.Tee(append([]report.Recorder{s.series}, s.recorders...)...)
	s.log = s.log.With("run", s.runID)

	return s, nil
}

// seed draws a child seed so each component owns an independent stream.
func (s *Simulation) seed() int64 { return s.rng.Int63() }

// Setup builds the population, every disease's model and scheduler, and
// every network with its engines.
func (s *Simulation) Setup() error {
	if s.phase != epidemic.PhaseUninitialized {
		return fmt.Errorf("sim: Setup in %s: %w", s.phase, ErrPhase)
	}
	nd := len(s.cfg.Diseases)

	if s.pop == nil {
		pop, err := population.Generate(s.cfg.Population.Size, s.cfg.Population.MaxAge, nd, rand.New(rand.NewSource(s.seed())))
		if err != nil {
			return fmt.Errorf("sim: Setup: %w", err)
		}
		s.pop = pop
	} else if s.pop.Diseases() != nd {
		return fmt.Errorf("sim: Setup: population tracks %d diseases, config has %d: %w",
			s.pop.Diseases(), nd, epidemic.ErrDisease)
	}

	for i := range s.cfg.Diseases {
		d, err := s.setupDisease(i)
		if err != nil {
			return err
		}
		s.diseases = append(s.diseases, d)
	}

	people := s.pop.People()
	for i := range s.cfg.Networks {
		n, err := s.setupNetwork(&s.cfg.Networks[i], people)
		if err != nil {
			return err
		}
		s.networks = append(s.networks, n)
	}

	s.phase = epidemic.PhaseSetup
	s.log.Info("setup", "population", s.pop.Size(), "diseases", nd, "networks", len(s.networks))

	return nil
}

func (s *Simulation) setupDisease(i int) (*disease, error) {
	dc := &s.cfg.Diseases[i]
	model, err := dc.Model()
	if err != nil {
		return nil, err
	}
	history, err := dc.History()
	if err != nil {
		return nil, err
	}
	exposure, err := dc.ExposureIndex()
	if err != nil {
		return nil, err
	}

	opts := []epidemic.Option{
		epidemic.WithLogger(s.log),
		epidemic.WithSeed(s.seed()),
		epidemic.WithHorizon(s.cfg.Run.Horizon),
		epidemic.WithExposureState(exposure),
		epidemic.WithHook(s.observe),
	}
	sched, err := epidemic.New(i, model, history, opts...)
	if err != nil {
		return nil, err
	}
	for _, line := range model.Describe() {
		s.log.Debug("model", "line", line)
	}

	return &disease{cfg: dc, model: model, history: history, sched: sched}, nil
}

func (s *Simulation) setupNetwork(nc *config.NetworkConfig, people []*population.Person) (*contactNet, error) {
	eligible, err := nc.Enroll.Eligible()
	if err != nil {
		return nil, err
	}
	net := network.New[*population.Person](nc.Label, network.WithCapacity(len(people)))
	rng := rand.New(rand.NewSource(s.seed()))
	err = builder.Build(net, []builder.BuilderOption{builder.WithRand(rng)},
		builder.EnrollWhere(people, eligible, nc.Enroll.Fraction))
	if err == nil {
		err = link(net, nc, rng)
	}
	if err != nil {
		return nil, fmt.Errorf("sim: network %s: %w", nc.Label, err)
	}

	cn := &contactNet{cfg: nc, net: net}
	for i, d := range s.diseases {
		if !nc.Carries(d.cfg.Name) {
			continue
		}
		e, err := transmission.New(i, net, d.history, d.sched, nc.Params,
			transmission.WithLogger(s.log), transmission.WithSeed(s.seed()))
		if err != nil {
			return nil, fmt.Errorf("sim: network %s: %w", nc.Label, err)
		}
		cn.engines = append(cn.engines, spreader{disease: i, engine: e})
	}
	s.log.Info("network", "label", nc.Label, "members", net.Size(), "links", net.EdgeCount(),
		"mean_degree", net.MeanDegree(), "diseases", len(cn.engines))

	return cn, nil
}

// link replaces net's links with a fresh draw of nc's topology.
func link(net *network.Network[*population.Person], nc *config.NetworkConfig, rng *rand.Rand) error {
	bopts := []builder.BuilderOption{builder.WithRand(rng)}
	if !nc.Sparse() {
		return builder.Build(net, bopts, builder.RandomMeanDegree[*population.Person](nc.MeanDegree))
	}
	net.ClearLinks()
	if net.Size() < 2 {
		return nil
	}
	return builder.Build(net, bopts, builder.RandomSparse[*population.Person](nc.LinkProbability))
}

// observe fans health events out to the event log and user hooks, and
// collects case-fatal persons for removal after the day's updates.
func (s *Simulation) observe(e epidemic.Event) {
	if e.Kind == epidemic.EventCaseFatal {
		s.dying = append(s.dying, e.Person)
	}
	s.events.Log(e)
	for _, h := range s.hooks {
		h(e)
	}
}

// Prepare draws initial states on day 0, starts the recorder and records day 0.
func (s *Simulation) Prepare(ctx context.Context) error {
	if s.phase != epidemic.PhaseSetup {
		return fmt.Errorf("sim: Prepare in %s: %w", s.phase, ErrPhase)
	}
	for _, d := range s.diseases {
		if err := d.sched.Prepare(s.pop); err != nil {
			return err
		}
	}
	if err := s.bury(0); err != nil {
		return err
	}

	rendered, err := s.cfg.Marshal()
	if err != nil {
		return fmt.Errorf("sim: Prepare: %w", err)
	}
	run := report.Run{
		ID:         s.runID,
		Started:    time.Now(),
		Seed:       s.cfg.Run.Seed,
		Days:       s.cfg.Run.Days,
		Population: s.pop.Size(),
		Config:     string(rendered),
	}
	if err := s.recorder.Begin(ctx, run); err != nil {
		return fmt.Errorf("sim: Prepare: %w", err)
	}
	s.phase = epidemic.PhasePrepared
	s.day = 0

	return s.recorder.Record(ctx, s.snapshot(0, nil))
}

// Finish ends every scheduler, closes the run in the recorder and closes the
// event log.
func (s *Simulation) Finish(ctx context.Context) error {
	if s.phase != epidemic.PhasePrepared && s.phase != epidemic.PhaseRunning {
		return fmt.Errorf("sim: Finish in %s: %w", s.phase, ErrPhase)
	}
	var errs []error
	for _, d := range s.diseases {
		errs = append(errs, d.sched.Finish())
	}
	errs = append(errs, s.recorder.End(ctx, s.day), s.events.Close())
	s.phase = epidemic.PhaseFinished
	s.log.Info("finished", "day", s.day, "population", s.pop.Size())

	return errors.Join(errs...)
}

// Close releases the recorders and the event log. Call it once, after Finish
// or on an aborted run.
func (s *Simulation) Close() error {
	return errors.Join(s.recorder.Close(), s.events.Close())
}

// Phase returns the lifecycle stage.
func (s *Simulation) Phase() Phase { return s.phase }

// Day returns the last simulated day; 0 after Prepare.
func (s *Simulation) Day() int { return s.day }

// RunID returns the identifier the run is recorded under.
func (s *Simulation) RunID() string { return s.runID }

// Population returns the simulated population.
func (s *Simulation) Population() *population.Population { return s.pop }

// Series returns the in-memory record of every simulated day.
func (s *Simulation) Series() *report.Series { return s.series }

// Scheduler returns the named disease's scheduler.
func (s *Simulation) Scheduler(name string) (*epidemic.Scheduler, bool) {
	for _, d := range s.diseases {
		if d.cfg.Name == name {
			return d.sched, true
		}
	}
	return nil, false
}

// Network returns the labelled network.
func (s *Simulation) Network(label string) (*network.Network[*population.Person], bool) {
	for _, n := range s.networks {
		if n.cfg.Label == label {
			return n.net, true
		}
	}
	return nil, false
}
