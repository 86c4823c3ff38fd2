// File: transition.go
// Role: TransitionPerson and its callers (Expose, Recheck, TerminatePerson),
//       plus the edge-triggered health effects.
// Invariant:
//   - A pending record exists only while its event sits in queues[NextState]
//     at NextDay. Cancelling uses the single rule day <= NextDay.

package epidemic

import (
	"context"
	"fmt"

	"github.com/katalvlaran/epinet/logging"
	"github.com/katalvlaran/epinet/markov"
	"github.com/katalvlaran/epinet/population"
)

// active reports whether per-person operations are allowed, naming method otherwise.
func (s *Scheduler) active(method string) error {
	if s.phase != PhasePrepared && s.phase != PhaseRunning {
		return fmt.Errorf("epidemic(%s): %s in %s: %w", s.model.Name(), method, s.phase, ErrPhase)
	}
	return nil
}

// carries checks that p has a Health record for this disease.
func (s *Scheduler) carries(method string, p *population.Person) error {
	if p == nil || s.id >= p.Diseases() {
		return fmt.Errorf("epidemic(%s): %s: %w", s.model.Name(), method, ErrDisease)
	}
	return nil
}

// TransitionPerson moves p into state st on day.
//
// Steps, performed as one unit:
//  1. Same state and same age group as at the last transition: no-op.
//  2. Cancel the pending transition if day <= its day.
//  3. Move p between per-state counts.
//  4. Record state, day and age group.
//  5. Draw and queue the next transition; record it as pending only if the
//     queue accepted it (inside the horizon).
//  6. Fire the health effects whose property toggled between old and new state.
func (s *Scheduler) TransitionPerson(p *population.Person, day, st int) error {
	if err := s.active("TransitionPerson"); err != nil {
		return err
	}
	if err := s.carries("TransitionPerson", p); err != nil {
		return err
	}
	if st < 0 || st >= len(s.queues) {
		return fmt.Errorf("epidemic(%s): TransitionPerson to %d: %w", s.model.Name(), st, ErrState)
	}
	s.transition(p, day, st)

	return nil
}

func (s *Scheduler) transition(p *population.Person, day, st int) {
	h := p.Health(s.id)
	old := h.State
	group := s.model.AgeGroup(p.Age())

	if st == old && group == h.AgeGroup {
		return
	}

	s.cancel(p, h, day)

	if old != st {
		if old >= 0 {
			s.counts[old]--
		}
		s.counts[st]++
		h.State = st
		h.Day = day
	}
	h.AgeGroup = group

	next, nextDay := s.model.NextStateAndTime(day, p.Age(), st, s.rng)
	if nextDay != markov.NoDay && s.queues[next].Add(nextDay, p) {
		h.SetPending(next, nextDay)
	}

	if s.log.Enabled(context.Background(), logging.LevelTrace) {
		s.log.Log(context.Background(), logging.LevelTrace, "transition",
			"day", day, "person", p.ID(), "age", p.Age(), "from", old, "to", st,
			"next", next, "next_day", nextDay)
	}

	s.effects(p, day, old, st)
}

// cancel removes p's pending event if it is still ahead of (or on) day and
// forgets the pending record either way.
func (s *Scheduler) cancel(p *population.Person, h *population.Health, day int) {
	if h.Pending && day <= h.NextDay {
		s.queues[h.NextState].Delete(h.NextDay, p)
	}
	h.ClearPending()
}

// effects fires the edge-triggered health changes for a move old -> st
// through p's per-disease API.
// Order: exposed, symptomatic, infectious, symptoms resolved, noninfectious,
// recovered, case-fatal.
func (s *Scheduler) effects(p *population.Person, day, old, st int) {
	d := s.id
	h := p.Health(d)
	c := &s.counters
	infectivity := s.history.Infectivity(st)
	symptoms := s.history.Symptoms(st)

	if old <= 0 && st != 0 {
		p.BecomeExposed(d, day)
		c.Exposed++
		c.NewExposures++
		c.CumulativeIncidence++
		s.emit(EventExposed, p, day, old, st)
	}
	if symptoms > 0 && !p.IsSymptomatic(d) {
		p.BecomeSymptomatic(d, day)
		c.Symptomatic++
		c.NewSymptomatic++
		s.emit(EventSymptomatic, p, day, old, st)
	}
	if infectivity > 0 && !p.IsInfectious(d) {
		if h.Exposed && !h.WasInfectious() {
			c.Exposed--
		}
		p.BecomeInfectious(d, day)
		c.Infectious++
		c.NewInfectious++
		s.emit(EventInfectious, p, day, old, st)
	}
	if symptoms == 0 && p.IsSymptomatic(d) {
		p.ResolveSymptoms(d)
		c.Symptomatic--
		s.emit(EventSymptomsResolved, p, day, old, st)
	}
	if infectivity == 0 && p.IsInfectious(d) {
		p.BecomeNoninfectious(d)
		c.Infectious--
		s.emit(EventNoninfectious, p, day, old, st)
	}
	if old > 0 && st == 0 {
		s.release(h)
		p.Recover(d, day)
		c.Recovered++
		c.NewRecoveries++
		s.emit(EventRecovered, p, day, old, st)
	}
	if s.history.IsFatal(st) && !h.CaseFatal {
		p.BecomeCaseFatal(d)
		c.CaseFatalities++
		s.emit(EventCaseFatal, p, day, old, st)
	}
}

// release takes p's active flags out of the counters before they are cleared.
func (s *Scheduler) release(h *population.Health) {
	c := &s.counters
	if h.Exposed && !h.WasInfectious() {
		c.Exposed--
	}
	if h.Infectious {
		c.Infectious--
	}
	if h.Symptomatic {
		c.Symptomatic--
	}
}

func (s *Scheduler) emit(kind EventKind, p *population.Person, day, from, to int) {
	if len(s.hooks) == 0 {
		return
	}
	e := Event{Kind: kind, Disease: s.model.Name(), ID: p.ID(), Day: day, From: from, To: to, Person: p}
	for _, fn := range s.hooks {
		fn(e)
	}
}

// Expose moves a susceptible p (state 0) into the exposure state on day and
// reports whether it did. Persons in any other state are left untouched.
func (s *Scheduler) Expose(p *population.Person, day int) (bool, error) {
	if err := s.active("Expose"); err != nil {
		return false, err
	}
	if err := s.carries("Expose", p); err != nil {
		return false, err
	}
	if !p.IsSusceptible(s.id) {
		return false, nil
	}
	s.transition(p, day, s.exposure)

	return true, nil
}

// Recheck re-evaluates p in its current state after an age change. It only
// reschedules when p's age group differs from the one at its last transition.
func (s *Scheduler) Recheck(p *population.Person, day int) error {
	if err := s.active("Recheck"); err != nil {
		return err
	}
	if err := s.carries("Recheck", p); err != nil {
		return err
	}
	if st := p.State(s.id); st >= 0 {
		s.transition(p, day, st)
	}

	return nil
}

// TerminatePerson removes p from tracking on day: its state count drops, its
// pending transition is cancelled and its state becomes population.Untracked.
func (s *Scheduler) TerminatePerson(p *population.Person, day int) error {
	if err := s.active("TerminatePerson"); err != nil {
		return err
	}
	if err := s.carries("TerminatePerson", p); err != nil {
		return err
	}
	h := p.Health(s.id)
	old := h.State
	if old < 0 {
		return nil
	}

	s.counts[old]--
	s.cancel(p, h, day)
	s.release(h)
	h.Exposed, h.Infectious, h.Symptomatic = false, false, false
	h.State = population.Untracked
	h.Day = day
	s.emit(EventTerminated, p, day, old, population.Untracked)
	s.log.Debug("terminate", "day", day, "person", p.ID(), "state", s.model.StateName(old))

	return nil
}
