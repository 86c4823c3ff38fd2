// Package bfs provides breadth-first contact tracing over a network.Network,
// returning hop distances, parent links, and visit order.
package bfs

import (
	"fmt"

	"github.com/katalvlaran/epinet/network"
)

// queueItem pairs a member with its depth.
type queueItem[K comparable] struct {
	key   K
	depth int
}

// walker encapsulates mutable walk state.
type walker[K comparable] struct {
	net     *network.Network[K]
	opts    Options[K]
	queue   []queueItem[K]
	visited map[K]bool
	res     *Result[K]
}

// Walk runs breadth-first search on net from every enrolled member of
// sources, applying any number of functional Options. Sources that are not
// members are skipped; duplicates are seeded once.
// Returns ErrNetworkNil, ErrNoSources, ErrOptionViolation, the context's
// error on cancellation, or any OnVisit error.
func Walk[K comparable](net *network.Network[K], sources []K, opts ...Option[K]) (*Result[K], error) {
	if net == nil {
		return nil, ErrNetworkNil
	}
	// Build options and catch any invalid ones immediately
	o := DefaultOptions[K]()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	n := net.Size()
	w := &walker[K]{
		net:     net,
		opts:    o,
		queue:   make([]queueItem[K], 0, n),
		visited: make(map[K]bool, n),
		res: &Result[K]{
			Order:  make([]K, 0, n),
			Depth:  make(map[K]int, n),
			Parent: make(map[K]K, n),
		},
	}

	// Seed queue with every enrolled source (no parent)
	for _, s := range sources {
		if !w.visited[s] && net.IsEnrolled(s) {
			w.enqueue(s, 0)
		}
	}
	if len(w.queue) == 0 {
		return nil, ErrNoSources
	}

	return w.res, w.loop()
}

// enqueue marks k visited at depth d and adds it to the queue.
func (w *walker[K]) enqueue(k K, d int) {
	w.visited[k] = true
	w.res.Depth[k] = d
	w.queue = append(w.queue, queueItem[K]{key: k, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker[K]) loop() error {
	for len(w.queue) > 0 {
		// cancellation check (once per loop)
		select {
		case <-w.opts.Ctx.Done():
			return w.opts.Ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, item.key)
		if err := w.opts.OnVisit(item.key, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %v: %w", item.key, err)
		}
		w.enqueueNeighbors(item)
	}
	return nil
}

// enqueueNeighbors applies filtering and MaxDepth and enqueues each unseen
// neighbor. A member unenrolled mid-walk simply has no neighbors.
func (w *walker[K]) enqueueNeighbors(item queueItem[K]) {
	nextDepth := item.depth + 1
	if w.opts.MaxDepth > 0 && nextDepth > w.opts.MaxDepth {
		return
	}

	var neighbors []K
	if w.opts.Direction == Backward {
		neighbors, _ = w.net.LinksFrom(item.key)
	} else {
		neighbors, _ = w.net.LinksTo(item.key)
	}
	for _, nbr := range neighbors {
		if w.visited[nbr] || !w.opts.FilterNeighbor(item.key, nbr) {
			continue
		}
		w.res.Parent[nbr] = item.key
		w.enqueue(nbr, nextDepth)
	}
}
