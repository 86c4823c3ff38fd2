// File: methods_links.go
// Role: Link lifecycle & queries: CreateLinkTo/From, DestroyLinkTo/From,
//       IsConnectedTo/From, OutDegree/InDegree, EndOfLink, LinksTo/From,
//       EdgeCount, MeanDegree, ClearLinks, Describe.
// Invariant:
//   - a→b is in a's out list iff it is in b's in list. Every mutation edits
//     both lists under the same write lock.
// Determinism:
//   - Out/in lists keep insertion order; removal preserves the order of the rest.
// Concurrency:
//   - Mutations under mu write lock; queries under mu read lock.

package network

import (
	"fmt"
	"strings"
)

// lookup returns k's slot; callers hold mu.
func (n *Network[K]) lookup(method string, k K) (int32, error) {
	h, ok := n.index[k]
	if !ok {
		return -1, fmt.Errorf("%s(%v): %w", method, k, ErrNotEnrolled)
	}

	return h.slot, nil
}

// pair resolves both endpoints and rejects self-links; callers hold mu.
func (n *Network[K]) pair(method string, a, b K) (int32, int32, error) {
	sa, err := n.lookup(method, a)
	if err != nil {
		return -1, -1, err
	}
	sb, err := n.lookup(method, b)
	if err != nil {
		return -1, -1, err
	}
	if sa == sb {
		return -1, -1, fmt.Errorf("%s(%v,%v): %w", method, a, b, ErrSelfLink)
	}

	return sa, sb, nil
}

func containsSlot(list []int32, s int32) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}

	return false
}

// addLink records src→dst on both endpoints unless present; callers hold mu.
func (n *Network[K]) addLink(src, dst int32) bool {
	if containsSlot(n.slots[src].out, dst) {
		return false
	}
	n.slots[src].out = append(n.slots[src].out, dst)
	n.slots[dst].in = append(n.slots[dst].in, src)
	n.links++

	return true
}

// dropLink removes src→dst from both endpoints; callers hold mu.
func (n *Network[K]) dropLink(src, dst int32) bool {
	if !containsSlot(n.slots[src].out, dst) {
		return false
	}
	n.slots[src].out = removeSlot(n.slots[src].out, dst)
	n.slots[dst].in = removeSlot(n.slots[dst].in, src)
	n.links--

	return true
}

// CreateLinkTo adds the directed link a→b and reports whether it was new.
// Duplicates are rejected by a linear scan of a's out list, so the call is
// idempotent.
// Complexity: O(out(a)).
func (n *Network[K]) CreateLinkTo(a, b K) (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	sa, sb, err := n.pair("CreateLinkTo", a, b)
	if err != nil {
		return false, err
	}

	return n.addLink(sa, sb), nil
}

// CreateLinkFrom adds the directed link b→a (a gains an incoming link from b).
// Complexity: O(out(b)).
func (n *Network[K]) CreateLinkFrom(a, b K) (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	sa, sb, err := n.pair("CreateLinkFrom", a, b)
	if err != nil {
		return false, err
	}

	return n.addLink(sb, sa), nil
}

// DestroyLinkTo removes a→b from both endpoints and reports whether it existed.
// Complexity: O(out(a) + in(b)).
func (n *Network[K]) DestroyLinkTo(a, b K) (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	sa, sb, err := n.pair("DestroyLinkTo", a, b)
	if err != nil {
		return false, err
	}

	return n.dropLink(sa, sb), nil
}

// DestroyLinkFrom removes b→a from both endpoints and reports whether it existed.
// Complexity: O(out(b) + in(a)).
func (n *Network[K]) DestroyLinkFrom(a, b K) (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	sa, sb, err := n.pair("DestroyLinkFrom", a, b)
	if err != nil {
		return false, err
	}

	return n.dropLink(sb, sa), nil
}

// IsConnectedTo reports whether a→b exists. Non-members are never connected.
// Complexity: O(out(a)).
func (n *Network[K]) IsConnectedTo(a, b K) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	sa, sb, err := n.pair("IsConnectedTo", a, b)
	if err != nil {
		return false
	}

	return containsSlot(n.slots[sa].out, sb)
}

// IsConnectedFrom reports whether b→a exists, checked on a's in list.
// Complexity: O(in(a)).
func (n *Network[K]) IsConnectedFrom(a, b K) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	sa, sb, err := n.pair("IsConnectedFrom", a, b)
	if err != nil {
		return false
	}

	return containsSlot(n.slots[sa].in, sb)
}

// OutDegree returns the number of links from k (0 for non-members).
// Complexity: O(1).
func (n *Network[K]) OutDegree(k K) int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	s, err := n.lookup("OutDegree", k)
	if err != nil {
		return 0
	}

	return len(n.slots[s].out)
}

// InDegree returns the number of links into k (0 for non-members).
// Complexity: O(1).
func (n *Network[K]) InDegree(k K) int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	s, err := n.lookup("InDegree", k)
	if err != nil {
		return 0
	}

	return len(n.slots[s].in)
}

// EndOfLink returns the destination of k's i-th outgoing link.
// Complexity: O(1).
func (n *Network[K]) EndOfLink(k K, i int) (K, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	var zero K
	s, err := n.lookup("EndOfLink", k)
	if err != nil {
		return zero, err
	}
	out := n.slots[s].out
	if i < 0 || i >= len(out) {
		return zero, fmt.Errorf("EndOfLink(%v,%d): out=%d: %w", k, i, len(out), ErrLinkOutOfRange)
	}

	return n.slots[out[i]].key, nil
}

// keys maps slot indices to keys; callers hold mu.
func (n *Network[K]) keys(list []int32) []K {
	out := make([]K, len(list))
	for i, s := range list {
		out[i] = n.slots[s].key
	}

	return out
}

// LinksTo returns k's link destinations in insertion order.
// Complexity: O(out(k)).
func (n *Network[K]) LinksTo(k K) ([]K, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	s, err := n.lookup("LinksTo", k)
	if err != nil {
		return nil, err
	}

	return n.keys(n.slots[s].out), nil
}

// LinksFrom returns the sources of k's incoming links in insertion order.
// Complexity: O(in(k)).
func (n *Network[K]) LinksFrom(k K) ([]K, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	s, err := n.lookup("LinksFrom", k)
	if err != nil {
		return nil, err
	}

	return n.keys(n.slots[s].in), nil
}

// EdgeCount returns the number of directed links.
// Complexity: O(1).
func (n *Network[K]) EdgeCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.links
}

// MeanDegree returns the mean out-degree over members (0 when empty).
// Complexity: O(1).
func (n *Network[K]) MeanDegree() float64 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if len(n.roster) == 0 {
		return 0
	}

	return float64(n.links) / float64(len(n.roster))
}

// ClearLinks removes every link while keeping all members enrolled.
// Complexity: O(V).
func (n *Network[K]) ClearLinks() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, s := range n.roster {
		n.slots[s].out = n.slots[s].out[:0]
		n.slots[s].in = n.slots[s].in[:0]
	}
	n.links = 0
}

// Describe renders one line per member in roster order: "<key> . <dst> <dst> ...".
// Complexity: O(V+E).
func (n *Network[K]) Describe() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]string, 0, len(n.roster))
	var sb strings.Builder
	for _, s := range n.roster {
		sb.Reset()
		fmt.Fprintf(&sb, "%v .", n.slots[s].key)
		for _, d := range n.slots[s].out {
			fmt.Fprintf(&sb, " %v", n.slots[d].key)
		}
		out = append(out, sb.String())
	}

	return out
}
