// File: methods_members.go
// Role: Member lifecycle & roster queries: Enroll/Unenroll/HandleOf/Resolve,
//       Size/Members/Member.
// Determinism:
//   - Members() returns keys in roster order: enrollment order, except that
//     Unenroll moves the last member into the vacated position.
// Concurrency:
//   - Mutations under mu write lock; queries under mu read lock.

package network

import "fmt"

// Enroll adds k to the network and returns its stable Handle.
//
// Steps:
//  1. Reject keys that are already members (ErrAlreadyEnrolled).
//  2. Reuse a free slot (bumping nothing; the generation moved on at unenroll)
//     or grow the arena.
//  3. Append the slot to the roster and index the key.
//
// Complexity: O(1) amortized.
func (n *Network[K]) Enroll(k K) (Handle, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.index[k]; ok {
		return Handle{}, fmt.Errorf("Enroll(%v): %w", k, ErrAlreadyEnrolled)
	}

	var slot int32
	if last := len(n.free) - 1; last >= 0 {
		slot = n.free[last]
		n.free = n.free[:last]
	} else {
		slot = int32(len(n.slots))
		n.slots = append(n.slots, member[K]{gen: 0})
	}
	m := &n.slots[slot]
	m.key = k
	m.gen++
	m.live = true
	m.pos = len(n.roster)
	m.out = m.out[:0]
	m.in = m.in[:0]
	n.roster = append(n.roster, slot)

	h := Handle{slot: slot, gen: m.gen}
	n.index[k] = h

	return h, nil
}

// Unenroll removes k and every link incident to it, mirrored on the other
// endpoints. Handles to k become stale.
//
// Complexity: O(deg(k) · avg deg of neighbours) for link removal, O(1) roster swap.
func (n *Network[K]) Unenroll(k K) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	h, ok := n.index[k]
	if !ok {
		return fmt.Errorf("Unenroll(%v): %w", k, ErrNotEnrolled)
	}
	m := &n.slots[h.slot]

	// Remove links to other members and their mirrors.
	for _, dst := range m.out {
		n.slots[dst].in = removeSlot(n.slots[dst].in, h.slot)
		n.links--
	}
	// Remove links from other members and their mirrors.
	for _, src := range m.in {
		n.slots[src].out = removeSlot(n.slots[src].out, h.slot)
		n.links--
	}
	m.out = m.out[:0]
	m.in = m.in[:0]

	// Swap-remove from the roster and fix the moved member's position.
	last := len(n.roster) - 1
	moved := n.roster[last]
	n.roster[m.pos] = moved
	n.slots[moved].pos = m.pos
	n.roster = n.roster[:last]

	var zero K
	m.key = zero
	m.live = false
	m.gen++ // invalidate outstanding handles
	m.pos = -1
	n.free = append(n.free, h.slot)
	delete(n.index, k)

	return nil
}

// IsEnrolled reports whether k is a member.
// Complexity: O(1).
func (n *Network[K]) IsEnrolled(k K) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	_, ok := n.index[k]

	return ok
}

// HandleOf returns k's current Handle.
// Complexity: O(1).
func (n *Network[K]) HandleOf(k K) (Handle, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	h, ok := n.index[k]

	return h, ok
}

// Resolve returns the key behind h, or ErrStaleHandle if the member it named
// has since been unenrolled.
// Complexity: O(1).
func (n *Network[K]) Resolve(h Handle) (K, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	var zero K
	if h.IsZero() || h.slot < 0 || int(h.slot) >= len(n.slots) {
		return zero, fmt.Errorf("Resolve(%d/%d): %w", h.slot, h.gen, ErrStaleHandle)
	}
	m := &n.slots[h.slot]
	if !m.live || m.gen != h.gen {
		return zero, fmt.Errorf("Resolve(%d/%d): %w", h.slot, h.gen, ErrStaleHandle)
	}

	return m.key, nil
}

// Size returns the number of enrolled members.
// Complexity: O(1).
func (n *Network[K]) Size() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return len(n.roster)
}

// Members returns member keys in roster order.
// Complexity: O(V).
func (n *Network[K]) Members() []K {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]K, len(n.roster))
	for i, slot := range n.roster {
		out[i] = n.slots[slot].key
	}

	return out
}

// Member returns the member at roster position i. Positions shift when members
// are unenrolled; do not keep them across mutations.
// Complexity: O(1).
func (n *Network[K]) Member(i int) (K, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if i < 0 || i >= len(n.roster) {
		var zero K
		return zero, fmt.Errorf("Member(%d): size=%d: %w", i, len(n.roster), ErrLinkOutOfRange)
	}

	return n.slots[n.roster[i]].key, nil
}

// removeSlot deletes the first occurrence of s from list, preserving order.
func removeSlot(list []int32, s int32) []int32 {
	for i, v := range list {
		if v == s {
			copy(list[i:], list[i+1:])
			return list[:len(list)-1]
		}
	}

	return list
}
