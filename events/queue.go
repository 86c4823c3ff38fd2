// SPDX-License-Identifier: MIT
// Package: epinet/events
//
// queue.go - fixed-horizon, day-indexed event queue.
//
// Contract:
//   - Days outside [0, horizon) are a known boundary: Add drops them silently.
//   - Delete of an absent item logs a warning and is a no-op; callers only
//     delete items whose presence their own invariants guarantee.
//   - Drain hands the whole slot to the caller exactly once and leaves it empty.
//   - Order within a slot is unspecified (Delete swaps with the last element).
//
// Concurrency: not safe for concurrent use; the day loop is single-threaded.

package events

import (
	"io"
	"log/slog"
)

// DefaultHorizon is the number of day slots allocated when no horizon is given
// (one hundred 366-day years).
const DefaultHorizon = 100 * 366

// Option customizes a Queue.
type Option func(*options)

type options struct {
	log  *slog.Logger
	name string
}

// WithLogger routes warnings (missing deletes) to log. Panics on nil.
func WithLogger(log *slog.Logger) Option {
	if log == nil {
		panic("events: WithLogger(nil)")
	}
	return func(o *options) { o.log = log }
}

// WithName labels the queue in log records.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// Queue holds pending items keyed by absolute simulation day.
type Queue[T comparable] struct {
	slots   [][]T
	pending int
	log     *slog.Logger
	name    string
}

// New returns a queue with horizon day slots. A non-positive horizon selects
// DefaultHorizon. Slots are allocated lazily on first Add.
func New[T comparable](horizon int, opts ...Option) *Queue[T] {
	if horizon <= 0 {
		horizon = DefaultHorizon
	}
	o := options{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}

	return &Queue[T]{slots: make([][]T, horizon), log: o.log, name: o.name}
}

// Horizon returns the number of day slots.
func (q *Queue[T]) Horizon() int { return len(q.slots) }

// inHorizon reports whether day addresses a slot.
func (q *Queue[T]) inHorizon(day int) bool { return day >= 0 && day < len(q.slots) }

// Add appends item to day's slot and reports whether it was stored.
// Complexity: O(1) amortized.
func (q *Queue[T]) Add(day int, item T) bool {
	if !q.inHorizon(day) {
		return false
	}
	q.slots[day] = append(q.slots[day], item)
	q.pending++

	return true
}

// Delete removes one occurrence of item from day's slot.
// Complexity: O(size of slot).
func (q *Queue[T]) Delete(day int, item T) bool {
	if q.inHorizon(day) {
		slot := q.slots[day]
		var pos int
		for pos = range slot {
			if slot[pos] == item {
				last := len(slot) - 1
				slot[pos] = slot[last]
				var zero T
				slot[last] = zero
				q.slots[day] = slot[:last]
				q.pending--
				return true
			}
		}
	}
	q.log.Warn("event not found", "queue", q.name, "day", day)

	return false
}

// Drain returns day's items and clears the slot. The returned slice is owned by
// the caller. Out-of-horizon days drain nothing.
// Complexity: O(1).
func (q *Queue[T]) Drain(day int) []T {
	if !q.inHorizon(day) {
		return nil
	}
	items := q.slots[day]
	q.slots[day] = nil
	q.pending -= len(items)

	return items
}

// Size returns the number of items pending on day.
func (q *Queue[T]) Size(day int) int {
	if !q.inHorizon(day) {
		return 0
	}

	return len(q.slots[day])
}

// Pending returns the number of items across all days.
func (q *Queue[T]) Pending() int { return q.pending }

// Contains reports whether item is pending on day.
// Complexity: O(size of slot).
func (q *Queue[T]) Contains(day int, item T) bool {
	if !q.inHorizon(day) {
		return false
	}
	for _, it := range q.slots[day] {
		if it == item {
			return true
		}
	}

	return false
}
