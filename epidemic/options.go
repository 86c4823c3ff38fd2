package epidemic

import (
	"log/slog"
	"math/rand"
)

// Option configures a Scheduler.
type Option func(*options)

type options struct {
	log      *slog.Logger
	rng      *rand.Rand
	horizon  int
	exposure int
	hooks    []Hook
}

// WithLogger routes scheduler logging to log. Panics on nil.
func WithLogger(log *slog.Logger) Option {
	if log == nil {
		panic("epidemic: WithLogger(nil)")
	}
	return func(o *options) { o.log = log }
}

// WithRand sets the RNG used for initial states and waiting times. Panics on nil.
func WithRand(rng *rand.Rand) Option {
	if rng == nil {
		panic("epidemic: WithRand(nil)")
	}
	return func(o *options) { o.rng = rng }
}

// WithSeed seeds a fresh RNG.
func WithSeed(seed int64) Option {
	return func(o *options) { o.rng = rand.New(rand.NewSource(seed)) }
}

// WithHorizon sets the number of day slots per queue; events beyond it are
// never scheduled. Non-positive selects events.DefaultHorizon.
func WithHorizon(days int) Option {
	return func(o *options) { o.horizon = days }
}

// WithExposureState sets the state Expose moves susceptible persons into.
func WithExposureState(s int) Option {
	return func(o *options) { o.exposure = s }
}

// WithHook registers fn to observe every health Event. Panics on nil.
func WithHook(fn Hook) Option {
	if fn == nil {
		panic("epidemic: WithHook(nil)")
	}
	return func(o *options) { o.hooks = append(o.hooks, fn) }
}
