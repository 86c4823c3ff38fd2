// File: scheduler.go
// Role: Scheduler construction, lifecycle (Prepare/Update/Finish) and queries.
// Determinism:
//   - Prepare visits the roster in its own order; Update drains states in
//     index order. Order within one day's slot is unspecified.

package epidemic

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/katalvlaran/epinet/events"
	"github.com/katalvlaran/epinet/logging"
	"github.com/katalvlaran/epinet/markov"
	"github.com/katalvlaran/epinet/natural"
	"github.com/katalvlaran/epinet/population"
)

// Phase is a Scheduler lifecycle stage.
type Phase uint8

const (
	PhaseUninitialized Phase = iota
	PhaseSetup
	PhasePrepared
	PhaseRunning
	PhaseFinished
)

var phaseNames = [...]string{"uninitialized", "setup", "prepared", "running", "finished"}

// String returns the phase name.
func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Roster supplies the persons to place in their initial states.
// *population.Population satisfies it.
type Roster interface {
	Each(func(*population.Person))
}

// Hook observes health events as they happen.
type Hook func(Event)

// Event is one edge-triggered health change.
type Event struct {
	Kind    EventKind          `json:"kind"`
	Disease string             `json:"disease"`
	ID      population.ID      `json:"person"`
	Day     int                `json:"day"`
	From    int                `json:"from"`
	To      int                `json:"to"`
	Person  *population.Person `json:"-"`
}

// Scheduler is the Markov engine for one disease.
type Scheduler struct {
	id      int // disease index into each person's Health records
	model   *markov.Model
	history *natural.History

	queues   []*events.Queue[*population.Person]
	counts   []int
	counters Counters

	phase    Phase
	lastDay  int
	exposure int

	log   *slog.Logger
	rng   *rand.Rand
	hooks []Hook
}

// New builds a Scheduler for disease id with one queue per model state.
// Without WithRand/WithSeed the RNG is seeded with 1.
func New(id int, model *markov.Model, history *natural.History, opts ...Option) (*Scheduler, error) {
	if model == nil || history == nil {
		return nil, fmt.Errorf("epidemic: New(%d): nil model or history: %w", id, ErrStateMismatch)
	}
	if id < 0 {
		return nil, fmt.Errorf("epidemic: New(%d): %w", id, ErrDisease)
	}
	n := model.States()
	if history.States() != n {
		return nil, fmt.Errorf("epidemic(%s): model has %d states, history %d: %w",
			model.Name(), n, history.States(), ErrStateMismatch)
	}

	o := options{log: logging.Discard(), exposure: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(1))
	}
	if o.exposure < 1 || o.exposure >= n {
		return nil, fmt.Errorf("epidemic(%s): exposure state %d not in [1,%d): %w",
			model.Name(), o.exposure, n, ErrExposureState)
	}

	log := o.log.With("disease", model.Name())
	s := &Scheduler{
		id:       id,
		model:    model,
		history:  history,
		queues:   make([]*events.Queue[*population.Person], n),
		counts:   make([]int, n),
		phase:    PhaseSetup,
		lastDay:  -1,
		exposure: o.exposure,
		log:      log,
		rng:      o.rng,
		hooks:    o.hooks,
	}
	for i := range s.queues {
		s.queues[i] = events.New[*population.Person](o.horizon,
			events.WithLogger(log), events.WithName("to-"+model.StateName(i)))
	}
	log.Debug("scheduler setup", "states", n, "horizon", s.queues[0].Horizon())

	return s, nil
}

// Prepare draws every person's initial state and performs a full transition
// into it on day 0.
func (s *Scheduler) Prepare(roster Roster) error {
	if s.phase != PhaseSetup {
		return fmt.Errorf("epidemic(%s): Prepare in %s: %w", s.model.Name(), s.phase, ErrPhase)
	}
	for i := range s.counts {
		s.counts[i] = 0
	}
	s.counters = Counters{}

	var err error
	roster.Each(func(p *population.Person) {
		if err != nil {
			return
		}
		if s.id >= p.Diseases() {
			err = fmt.Errorf("epidemic(%s): Prepare %s: %w", s.model.Name(), p, ErrDisease)
			return
		}
		var st int
		if st, err = s.model.InitialState(p.Age(), s.rng); err != nil {
			return
		}
		s.transition(p, 0, st)
	})
	if err != nil {
		return err
	}

	s.phase = PhasePrepared
	s.lastDay = 0
	for i, c := range s.counts {
		s.log.Info("prepared", "state", s.model.StateName(i), "count", c)
	}

	return nil
}

// Update dispatches every event queued for day, state by state in index order.
// Days skipped since the previous Update are drained first, oldest first, so
// no queued transition is left behind. Each drained person's pending record is
// consumed before the transition runs.
func (s *Scheduler) Update(day int) error {
	if s.phase != PhasePrepared && s.phase != PhaseRunning {
		return fmt.Errorf("epidemic(%s): Update in %s: %w", s.model.Name(), s.phase, ErrPhase)
	}
	if day <= s.lastDay {
		return fmt.Errorf("epidemic(%s): Update(%d) after day %d: %w", s.model.Name(), day, s.lastDay, ErrDayOrder)
	}
	s.phase = PhaseRunning
	s.counters.resetDaily()
	if gap := day - s.lastDay - 1; gap > 0 {
		s.log.Debug("markov catch-up", "from", s.lastDay+1, "to", day-1, "days", gap)
	}
	for d := s.lastDay + 1; d <= day; d++ {
		s.lastDay = d
		s.dispatch(d)
	}

	return nil
}

// dispatch runs the transitions queued for one day.
func (s *Scheduler) dispatch(day int) {
	for st, q := range s.queues {
		due := q.Drain(day)
		if len(due) > 0 {
			s.log.Debug("markov update", "day", day, "to", s.model.StateName(st), "size", len(due))
		}
		for _, p := range due {
			p.Health(s.id).ClearPending()
			s.transition(p, day, st)
		}
	}
}

// Finish ends the run. No further Update, Expose or transitions are accepted.
func (s *Scheduler) Finish() error {
	if s.phase != PhasePrepared && s.phase != PhaseRunning {
		return fmt.Errorf("epidemic(%s): Finish in %s: %w", s.model.Name(), s.phase, ErrPhase)
	}
	s.phase = PhaseFinished
	s.log.Info("finished", "day", s.lastDay, "incidence", s.counters.CumulativeIncidence,
		"recovered", s.counters.Recovered, "fatalities", s.counters.CaseFatalities)

	return nil
}

// Phase returns the lifecycle stage.
func (s *Scheduler) Phase() Phase { return s.phase }

// Disease returns the disease index this scheduler drives.
func (s *Scheduler) Disease() int { return s.id }

// Name returns the disease name.
func (s *Scheduler) Name() string { return s.model.Name() }

// Model returns the transition model.
func (s *Scheduler) Model() *markov.Model { return s.model }

// History returns the natural history.
func (s *Scheduler) History() *natural.History { return s.history }

// ExposureState returns the state Expose moves persons into.
func (s *Scheduler) ExposureState() int { return s.exposure }

// Count returns the number of persons in state st (0 when out of range).
func (s *Scheduler) Count(st int) int {
	if st < 0 || st >= len(s.counts) {
		return 0
	}
	return s.counts[st]
}

// Counts returns a copy of all per-state counts.
func (s *Scheduler) Counts() []int {
	out := make([]int, len(s.counts))
	copy(out, s.counts)
	return out
}

// Counters returns the epidemic counters.
func (s *Scheduler) Counters() Counters { return s.counters }

// Pending returns the number of queued transitions across all states.
func (s *Scheduler) Pending() int {
	total := 0
	for _, q := range s.queues {
		total += q.Pending()
	}
	return total
}

// Queued reports whether p's transition into st is queued on day.
func (s *Scheduler) Queued(st, day int, p *population.Person) bool {
	if st < 0 || st >= len(s.queues) {
		return false
	}
	return s.queues[st].Contains(day, p)
}
