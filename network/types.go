// File: types.go
// Role: Network storage, stable member Handles, construction options and the
//       sentinel errors shared by all network operations.
// Concurrency:
//   - A single sync.RWMutex guards roster and adjacency, so queries from
//     reporting goroutines may run alongside a mutating day loop.
// Errors:
//   - ErrAlreadyEnrolled - key is already a member.
//   - ErrNotEnrolled     - key is not a member.
//   - ErrStaleHandle     - handle refers to a slot that was unenrolled or reused.
//   - ErrSelfLink        - link from a member to itself.
//   - ErrLinkOutOfRange  - link or roster position outside the current bounds.

package network

import (
	"errors"
	"sync"
)

// Sentinel errors for network operations.
var (
	// ErrAlreadyEnrolled indicates Enroll on an existing member.
	ErrAlreadyEnrolled = errors.New("network: already enrolled")

	// ErrNotEnrolled indicates an operation referenced a non-member.
	ErrNotEnrolled = errors.New("network: not enrolled")

	// ErrStaleHandle indicates a handle whose slot generation no longer matches.
	ErrStaleHandle = errors.New("network: stale handle")

	// ErrSelfLink indicates an attempt to link a member to itself.
	ErrSelfLink = errors.New("network: self-link not allowed")

	// ErrLinkOutOfRange indicates a link index or roster position outside bounds.
	ErrLinkOutOfRange = errors.New("network: index out of range")
)

// Handle is a stable reference to an enrolled member.
//
// A Handle stays valid until its member is unenrolled; afterwards the slot's
// generation moves on and Resolve reports ErrStaleHandle, even when the slot is
// reused by a later enrollment. The zero Handle is never valid.
type Handle struct {
	slot int32
	gen  uint32
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool { return h.gen == 0 }

// member is one arena slot.
//
// out and in hold slot indices of live members; they are only ever mutated
// together with the mirror entry on the other endpoint.
type member[K comparable] struct {
	key  K
	gen  uint32
	live bool
	pos  int     // index into Network.roster
	out  []int32 // links to
	in   []int32 // links from
}

// Option configures a Network before use.
type Option func(*config)

type config struct {
	capacity int
}

// WithCapacity pre-sizes the arena for n members.
func WithCapacity(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// Network is a directed graph over enrolled members of key type K.
//
// Storage:
//   - slots is an arena of members addressed by Handle.slot; free lists the
//     slots available for reuse.
//   - index maps a key to its current Handle.
//   - roster lists live slots in enrollment order; unenrolling swaps the last
//     roster entry into the vacated position, so positions are not stable.
type Network[K comparable] struct {
	mu sync.RWMutex

	label  string
	slots  []member[K]
	free   []int32
	index  map[K]Handle
	roster []int32
	links  int // number of directed links
}

// New creates an empty Network labelled label.
// Complexity: O(capacity).
func New[K comparable](label string, opts ...Option) *Network[K] {
	var c config
	for _, opt := range opts {
		opt(&c)
	}

	return &Network[K]{
		label:  label,
		slots:  make([]member[K], 0, c.capacity),
		index:  make(map[K]Handle, c.capacity),
		roster: make([]int32, 0, c.capacity),
	}
}

// Label returns the network's label.
func (n *Network[K]) Label() string { return n.label }
