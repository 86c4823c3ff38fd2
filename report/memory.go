package report

import (
	"context"
	"fmt"
	"sync"
)

// Series keeps a run's days in memory. It is safe for concurrent use, so a
// reader may poll while the day loop records.
type Series struct {
	mu      sync.RWMutex
	run     *Run
	days    []Day
	lastDay int
	ended   bool
}

// NewSeries returns an empty Series.
func NewSeries() *Series {
	return &Series{days: make([]Day, 0)}
}

// Begin starts a run, discarding any previous one.
func (s *Series) Begin(ctx context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := run
	s.run = &r
	s.days = s.days[:0]
	s.ended = false
	return nil
}

// Record appends a copy of day.
func (s *Series) Record(ctx context.Context, day Day) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.run == nil {
		return fmt.Errorf("record day %d: %w", day.Day, ErrNoRun)
	}
	s.days = append(s.days, cloneDay(day))
	return nil
}

// End marks the run finished at lastDay.
func (s *Series) End(ctx context.Context, lastDay int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.run == nil {
		return fmt.Errorf("end run: %w", ErrNoRun)
	}
	s.lastDay = lastDay
	s.ended = true
	return nil
}

// Close is a no-op.
func (s *Series) Close() error { return nil }

// Run returns the current run header, if any.
func (s *Series) Run() (Run, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.run == nil {
		return Run{}, false
	}
	return *s.run, true
}

// Ended reports whether End was called, and with which day.
func (s *Series) Ended() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastDay, s.ended
}

// Len returns the number of recorded days.
func (s *Series) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.days)
}

// Days returns a copy of the recorded days.
func (s *Series) Days() []Day {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Day, len(s.days))
	for i, d := range s.days {
		out[i] = cloneDay(d)
	}
	return out
}

// Last returns the most recent day.
func (s *Series) Last() (Day, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.days) == 0 {
		return Day{}, false
	}
	return cloneDay(s.days[len(s.days)-1]), true
}

// StateSeries returns the named state's count for every recorded day.
func (s *Series) StateSeries(disease, state string) []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]int, 0, len(s.days))
	for _, d := range s.days {
		dd, _ := d.Disease(disease)
		out = append(out, dd.Count(state))
	}
	return out
}

// Peak returns the day and value of the named state's maximum count. Ties
// keep the earliest day; an empty series returns (-1, 0).
func (s *Series) Peak(disease, state string) (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	day, peak := -1, 0
	for _, d := range s.days {
		dd, _ := d.Disease(disease)
		if c := dd.Count(state); day < 0 || c > peak {
			day, peak = d.Day, c
		}
	}
	return day, peak
}

// Infections returns the total successful exposures recorded for disease
// across all networks.
func (s *Series) Infections(disease string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total int
	for _, d := range s.days {
		for _, sp := range d.Spread {
			if sp.Disease == disease {
				total += sp.Result.Infections
			}
		}
	}
	return total
}

func cloneDay(d Day) Day {
	out := Day{Day: d.Day}
	out.Diseases = make([]DiseaseDay, len(d.Diseases))
	for i, dd := range d.Diseases {
		dd.States = append([]string(nil), dd.States...)
		dd.Counts = append([]int(nil), dd.Counts...)
		out.Diseases[i] = dd
	}
	if len(d.Spread) > 0 {
		out.Spread = append([]SpreadDay(nil), d.Spread...)
	}
	return out
}
