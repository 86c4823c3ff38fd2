package sim

import (
	"context"
	"fmt"

	"github.com/katalvlaran/epinet/epidemic"
	"github.com/katalvlaran/epinet/population"
	"github.com/katalvlaran/epinet/report"
)

// Step simulates the next day and returns what was recorded for it.
//
// Steps:
//  1. Dispatch every scheduler's events due today, disease by disease.
//  2. Remove persons who became case-fatal.
//  3. Age everyone on aging days and let schedulers recheck them.
//  4. Rewire networks whose rewire interval divides the day.
//  5. Spread every disease over every network that carries it.
//  6. Record the day.
func (s *Simulation) Step(ctx context.Context) (report.Day, error) {
	if s.phase != epidemic.PhasePrepared && s.phase != epidemic.PhaseRunning {
		return report.Day{}, fmt.Errorf("sim: Step in %s: %w", s.phase, ErrPhase)
	}
	if err := ctx.Err(); err != nil {
		return report.Day{}, err
	}
	s.phase = epidemic.PhaseRunning
	s.day++
	day := s.day

	for _, d := range s.diseases {
		if err := d.sched.Update(day); err != nil {
			return report.Day{}, err
		}
	}
	if err := s.bury(day); err != nil {
		return report.Day{}, err
	}
	if iv := s.cfg.Run.AgingInterval; iv > 0 && day%iv == 0 {
		if err := s.age(day); err != nil {
			return report.Day{}, err
		}
	}
	if err := s.rewire(day); err != nil {
		return report.Day{}, err
	}

	var spread []report.SpreadDay
	for _, n := range s.networks {
		for _, sp := range n.engines {
			res, err := sp.engine.Spread(day)
			if err != nil {
				return report.Day{}, fmt.Errorf("sim: day %d network %s: %w", day, n.cfg.Label, err)
			}
			spread = append(spread, report.SpreadDay{
				Network: n.cfg.Label,
				Disease: s.diseases[sp.disease].cfg.Name,
				Result:  res,
			})
		}
	}

	rec := s.snapshot(day, spread)
	if err := s.recorder.Record(ctx, rec); err != nil {
		return report.Day{}, fmt.Errorf("sim: day %d: %w", day, err)
	}
	s.log.Debug("day", "day", day, "population", s.pop.Size())

	return rec, nil
}

// Run steps through days more days, stopping early when ctx is cancelled.
func (s *Simulation) Run(ctx context.Context, days int) error {
	for i := 0; i < days; i++ {
		if _, err := s.Step(ctx); err != nil {
			return err
		}
	}
	return nil
}

// bury removes the day's case-fatal persons from every disease, network and
// the population.
func (s *Simulation) bury(day int) error {
	if len(s.dying) == 0 {
		return nil
	}
	dying := s.dying
	s.dying = nil

	for _, p := range dying {
		if _, err := s.pop.Get(p.ID()); err != nil {
			continue // already removed
		}
		for _, d := range s.diseases {
			if err := d.sched.TerminatePerson(p, day); err != nil {
				return err
			}
		}
		for _, n := range s.networks {
			if n.net.IsEnrolled(p) {
				if err := n.net.Unenroll(p); err != nil {
					return err
				}
			}
		}
		if err := s.pop.Remove(p.ID()); err != nil {
			return err
		}
	}
	// Terminations emit no case-fatal events, so nothing new can be queued here.
	s.log.Debug("removed case fatalities", "day", day, "count", len(dying))

	return nil
}

// age advances every person by a year and rechecks their schedules.
func (s *Simulation) age(day int) error {
	var err error
	s.pop.Each(func(p *population.Person) {
		if err != nil {
			return
		}
		p.Birthday()
		for _, d := range s.diseases {
			if err = d.sched.Recheck(p, day); err != nil {
				return
			}
		}
	})
	if err == nil {
		s.log.Debug("aged population", "day", day)
	}
	return err
}

// rewire rebuilds the links of networks due today, keeping their members.
func (s *Simulation) rewire(day int) error {
	for _, n := range s.networks {
		iv := n.cfg.RewireInterval
		if iv <= 0 || day%iv != 0 {
			continue
		}
		if err := link(n.net, n.cfg, s.rng); err != nil {
			return fmt.Errorf("sim: day %d rewire %s: %w", day, n.cfg.Label, err)
		}
		s.log.Debug("rewired", "day", day, "network", n.cfg.Label, "links", n.net.EdgeCount())
	}
	return nil
}

// snapshot captures every disease's counts at the end of day.
func (s *Simulation) snapshot(day int, spread []report.SpreadDay) report.Day {
	out := report.Day{Day: day, Spread: spread}
	out.Diseases = make([]report.DiseaseDay, len(s.diseases))
	for i, d := range s.diseases {
		names := make([]string, d.model.States())
		for j := range names {
			names[j] = d.model.StateName(j)
		}
		out.Diseases[i] = report.DiseaseDay{
			Disease:  d.cfg.Name,
			States:   names,
			Counts:   d.sched.Counts(),
			Counters: d.sched.Counters(),
		}
	}
	return out
}
