// Package events provides the day-indexed event queue that drives scheduled
// state transitions.
//
// A Queue[T] is a fixed-horizon array of day slots. Each slot holds pending
// items (typically persons due to enter some state on that day):
//
//	Add(day, item) bool    // O(1); out-of-horizon days are dropped silently
//	Delete(day, item) bool // O(slot); missing items log a warning
//	Drain(day) []T         // O(1); returns and clears the slot
//	Size(day) int          // O(1)
//	Pending() int          // O(1); total across all slots
//
// Items within a day carry no ordering guarantee.
package events
