// Package bfs provides breadth-first contact tracing over a network.Network,
// returning hop distances, parent links, and visit order.
//
// What
//
//   - Explore members in non-decreasing hop count from one or more index
//     members, following links forward (who they reach) or backward (who
//     reaches them).
//   - Returns a Result containing:
//   - Order: visit sequence
//   - Depth: map from member to distance (links) from the nearest source
//   - Parent: map from member to its predecessor in the BFS tree
//   - OnVisit hook, which may abort the walk with an error.
//   - Neighbor filtering via WithFilterNeighbor.
//   - MaxDepth limit (d>0) or explicit "no limit" (d==0).
//
// Determinism
//
//	Sources are seeded in the order given and each member's links are
//	followed in insertion order, so the visit sequence is reproducible.
//
// Complexity (V = members, E = links)
//
//   - Time:   O(V + E)
//   - Memory: O(V) for queue, visited set, depth and parent maps.
//
// Concurrency
//
//	The walk takes a snapshot of each member's links as it visits them; a
//	concurrent mutation of the network is not an error, but the result then
//	mixes the before and after topologies.
package bfs
