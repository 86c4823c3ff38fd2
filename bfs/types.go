// Package bfs provides tunable options and error definitions
// for breadth-first contact tracing over a network.Network.
package bfs

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for BFS execution.
var (
	// ErrNoSources is returned when no enrolled source was given.
	ErrNoSources = errors.New("bfs: no enrolled source")

	// ErrNetworkNil is returned if a nil network pointer is passed.
	ErrNetworkNil = errors.New("bfs: network is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")
)

// Direction selects which links a walk follows.
type Direction uint8

const (
	// Forward follows links to: everyone a source could reach.
	Forward Direction = iota
	// Backward follows links from: everyone who could reach a source.
	Backward
)

// Option configures BFS behavior via functional arguments.
// If an Option is invalid (e.g. negative depth), it will be recorded
// internally and surfaced as ErrOptionViolation when Walk is invoked.
type Option[K comparable] func(*Options[K])

// Options holds parameters and callbacks to customize a walk.
type Options[K comparable] struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// Direction picks outgoing (Forward) or incoming (Backward) links.
	Direction Direction

	// OnVisit is called when visiting a member. If it returns an error,
	// the walk aborts and propagates that error.
	OnVisit func(k K, depth int) error

	// MaxDepth, if > 0, stops exploring beyond this depth.
	// A value of 0 explicitly disables any depth limit.
	MaxDepth int

	// FilterNeighbor can skip links by returning false.
	// Called for each link curr→neighbor in walk direction.
	FilterNeighbor func(curr, neighbor K) bool

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with defaults:
//   - Context.Background()
//   - Forward direction
//   - no depth limit (MaxDepth == 0)
//   - no filtering
//   - no-op OnVisit
func DefaultOptions[K comparable]() Options[K] {
	return Options[K]{
		Ctx:            context.Background(),
		Direction:      Forward,
		OnVisit:        func(K, int) error { return nil },
		FilterNeighbor: func(_, _ K) bool { return true },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext[K comparable](ctx context.Context) Option[K] {
	return func(o *Options[K]) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithDirection selects the links to follow.
func WithDirection[K comparable](d Direction) Option[K] {
	return func(o *Options[K]) {
		if d != Forward && d != Backward {
			o.err = fmt.Errorf("%w: unknown direction %d", ErrOptionViolation, d)
			return
		}
		o.Direction = d
	}
}

// WithOnVisit registers a callback to run on visit; returning an error
// from this callback stops the walk.
func WithOnVisit[K comparable](fn func(k K, depth int) error) Option[K] {
	return func(o *Options[K]) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth stops the walk at the given depth (inclusive).
//
//	d > 0: limit to depth d
//	d == 0: explicit no depth limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth[K comparable](d int) Option[K] {
	return func(o *Options[K]) {
		switch {
		case d < 0:
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
		default:
			o.MaxDepth = d
		}
	}
}

// WithFilterNeighbor skips neighbors when fn returns false.
func WithFilterNeighbor[K comparable](fn func(curr, neighbor K) bool) Option[K] {
	return func(o *Options[K]) {
		if fn != nil {
			o.FilterNeighbor = fn
		}
	}
}

// Result holds the outcome of a walk:
//   - Order: members visited, in visit sequence.
//   - Depth: map from member to its distance (in links) from the nearest source.
//   - Parent: map from member to its predecessor in the BFS tree; sources have none.
type Result[K comparable] struct {
	Order  []K
	Depth  map[K]int
	Parent map[K]K
}

// Reached reports whether k was visited.
func (r *Result[K]) Reached(k K) bool {
	_, ok := r.Depth[k]
	return ok
}

// AtDepth returns the visited members at exactly depth d, in visit order.
func (r *Result[K]) AtDepth(d int) []K {
	var out []K
	for _, k := range r.Order {
		if r.Depth[k] == d {
			out = append(out, k)
		}
	}
	return out
}

// PathTo reconstructs the chain from a source to dest, in walk direction.
// Returns an error if dest was not reached.
func (r *Result[K]) PathTo(dest K) ([]K, error) {
	if _, ok := r.Depth[dest]; !ok {
		return nil, fmt.Errorf("bfs: no path to %v", dest)
	}
	// build reversed path
	path := []K{}
	for cur := dest; ; {
		path = append(path, cur)
		prev, ok := r.Parent[cur]
		if !ok {
			break
		}
		cur = prev
	}
	// reverse to get source → dest
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}
