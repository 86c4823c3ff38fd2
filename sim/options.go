package sim

import (
	"log/slog"

	"github.com/katalvlaran/epinet/epidemic"
	"github.com/katalvlaran/epinet/logging"
	"github.com/katalvlaran/epinet/population"
	"github.com/katalvlaran/epinet/report"
)

// Option configures a Simulation.
type Option func(*Simulation)

// WithLogger routes operational logging to log. Panics on nil.
func WithLogger(log *slog.Logger) Option {
	if log == nil {
		panic("sim: WithLogger(nil)")
	}
	return func(s *Simulation) { s.log = log }
}

// WithRecorder adds r to the recorders receiving each day. Panics on nil.
func WithRecorder(r report.Recorder) Option {
	if r == nil {
		panic("sim: WithRecorder(nil)")
	}
	return func(s *Simulation) { s.recorders = append(s.recorders, r) }
}

// WithEventLogger writes every health event to el. A nil el is ignored, so
// the result of logging.NewEventLogger can be passed directly.
func WithEventLogger(el *logging.EventLogger) Option {
	return func(s *Simulation) { s.events = el }
}

// WithHook registers fn to observe every health event of every disease. Panics on nil.
func WithHook(fn epidemic.Hook) Option {
	if fn == nil {
		panic("sim: WithHook(nil)")
	}
	return func(s *Simulation) { s.hooks = append(s.hooks, fn) }
}

// WithPopulation uses pop instead of generating one. pop must track every
// configured disease. Panics on nil.
func WithPopulation(pop *population.Population) Option {
	if pop == nil {
		panic("sim: WithPopulation(nil)")
	}
	return func(s *Simulation) { s.pop = pop }
}
