// Package network provides the directed contact graph over which disease
// transmission is sampled.
//
// The Network[K] keeps, per enrolled member, an ordered list of outgoing links
// ("links to") and incoming links ("links from"). There is no shared edge
// object: a→b is recorded once in a's out list and once in b's in list, and
// every mutation updates both.
//
// Membership:
//
//	Enroll(k) (Handle, error)   // O(1) amortized
//	Unenroll(k) error           // drops all incident links, invalidates handles
//	Resolve(h) (K, error)       // ErrStaleHandle after Unenroll
//	Member(i) (K, error)        // roster position; shifts on Unenroll
//
// Links:
//
//	CreateLinkTo(a,b)  / CreateLinkFrom(a,b)   // a→b / b→a, idempotent
//	DestroyLinkTo(a,b) / DestroyLinkFrom(a,b)
//	IsConnectedTo(a,b) / IsConnectedFrom(a,b)
//	OutDegree(k), InDegree(k), EndOfLink(k, i)
//
// Handles are arena slots with a generation counter. A Handle outlives roster
// reshuffles and fails loudly once its member leaves, unlike a raw roster index.
//
// Random topologies are built by package builder.
package network
