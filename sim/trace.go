package sim

import (
	"context"
	"fmt"

	"github.com/katalvlaran/epinet/bfs"
	"github.com/katalvlaran/epinet/population"
)

// Trace walks the labelled network from the given index cases up to depth
// links (0 for unlimited). Forward finds who they could have exposed;
// Backward finds who could have exposed them. When susceptibleOnly names a
// disease, the walk stops at persons who are not susceptible to it.
func (s *Simulation) Trace(ctx context.Context, label string, cases []*population.Person,
	depth int, dir bfs.Direction, susceptibleOnly string) (*bfs.Result[*population.Person], error) {
	net, ok := s.Network(label)
	if !ok {
		return nil, fmt.Errorf("sim: Trace: unknown network %q", label)
	}
	opts := []bfs.Option[*population.Person]{
		bfs.WithContext[*population.Person](ctx),
		bfs.WithDirection[*population.Person](dir),
		bfs.WithMaxDepth[*population.Person](depth),
	}
	if susceptibleOnly != "" {
		d := s.cfg.DiseaseIndex(susceptibleOnly)
		if d < 0 {
			return nil, fmt.Errorf("sim: Trace: unknown disease %q", susceptibleOnly)
		}
		opts = append(opts, bfs.WithFilterNeighbor(func(_, nbr *population.Person) bool {
			return nbr.IsSusceptible(d)
		}))
	}

	return bfs.Walk(net, cases, opts...)
}

// Infectious returns the persons currently infectious with the named disease.
func (s *Simulation) Infectious(disease string) []*population.Person {
	d := s.cfg.DiseaseIndex(disease)
	if d < 0 {
		return nil
	}
	var out []*population.Person
	s.pop.Each(func(p *population.Person) {
		if p.IsInfectious(d) {
			out = append(out, p)
		}
	})
	return out
}
