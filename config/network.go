package config

import (
	"fmt"

	"github.com/katalvlaran/epinet/population"
	"github.com/katalvlaran/epinet/transmission"
)

// Network topologies.
const (
	// TopologyMeanDegree draws round(mean_degree·N) distinct links. It is the default.
	TopologyMeanDegree = "mean_degree"
	// TopologyRandomSparse links every ordered member pair with link_probability.
	TopologyRandomSparse = "random_sparse"
)

// NetworkConfig describes one contact network and its contact rates.
type NetworkConfig struct {
	// Label names the network in logs and reports.
	Label string `json:"label" yaml:"label"`
	// Topology selects the random graph model; empty means mean_degree.
	Topology string `json:"topology,omitempty" yaml:"topology,omitempty"`
	// MeanDegree is the target mean out-degree of the mean_degree topology.
	MeanDegree float64 `json:"mean_degree" yaml:"mean_degree"`
	// LinkProbability is the per-pair link probability of the random_sparse topology.
	LinkProbability float64 `json:"link_probability,omitempty" yaml:"link_probability,omitempty"`
	// Params are the contact and per-contact transmission rates.
	transmission.Params `yaml:",inline"`
	// Enroll selects the members.
	Enroll EnrollConfig `json:"enroll" yaml:"enroll"`
	// Diseases lists the diseases spreading here; empty means all.
	Diseases []string `json:"diseases,omitempty" yaml:"diseases,omitempty"`
	// RewireInterval rebuilds the topology every this many days; 0 keeps it fixed.
	RewireInterval int `json:"rewire_interval,omitempty" yaml:"rewire_interval,omitempty"`
}

// EnrollConfig selects network members by age and sex, then samples them.
type EnrollConfig struct {
	// MinAge and MaxAge bound eligible ages, inclusive. MaxAge 0 means no bound.
	MinAge float64 `json:"min_age" yaml:"min_age"`
	MaxAge float64 `json:"max_age" yaml:"max_age"`
	// Sex restricts eligibility to "M" or "F"; empty allows both.
	Sex string `json:"sex,omitempty" yaml:"sex,omitempty"`
	// Fraction is the probability an eligible person is enrolled.
	Fraction float64 `json:"fraction" yaml:"fraction"`
}

// Eligible returns the enrollment predicate.
func (e EnrollConfig) Eligible() (func(*population.Person) bool, error) {
	anySex := e.Sex == ""
	var sex population.Sex
	if !anySex {
		var err error
		if sex, err = population.ParseSex(e.Sex); err != nil {
			return nil, fmt.Errorf("enroll.sex: %w: %w", err, ErrInvalid)
		}
	}
	lo, hi := e.MinAge, e.MaxAge
	return func(p *population.Person) bool {
		if !anySex && p.Sex() != sex {
			return false
		}
		age := p.Age()
		return age >= lo && (hi == 0 || age <= hi)
	}, nil
}

// Carries reports whether disease spreads on this network.
func (n *NetworkConfig) Carries(disease string) bool {
	if len(n.Diseases) == 0 {
		return true
	}
	for _, d := range n.Diseases {
		if d == disease {
			return true
		}
	}
	return false
}

// Sparse reports whether the network uses the random_sparse topology.
func (n *NetworkConfig) Sparse() bool { return n.Topology == TopologyRandomSparse }

// Validate checks rates, enrollment and disease references against known.
func (n *NetworkConfig) Validate(known map[string]bool) error {
	switch n.Topology {
	case "", TopologyMeanDegree, TopologyRandomSparse:
	default:
		return fmt.Errorf("networks[%s]: unknown topology %q (valid: %s, %s): %w",
			n.Label, n.Topology, TopologyMeanDegree, TopologyRandomSparse, ErrInvalid)
	}
	if !(n.LinkProbability >= 0 && n.LinkProbability <= 1) {
		return fmt.Errorf("networks[%s]: link_probability must be between 0 and 1, got %v: %w",
			n.Label, n.LinkProbability, ErrInvalid)
	}
	if n.MeanDegree < 0 {
		return fmt.Errorf("networks[%s]: mean_degree must be non-negative, got %v: %w", n.Label, n.MeanDegree, ErrInvalid)
	}
	if err := n.Params.Validate(); err != nil {
		return fmt.Errorf("networks[%s]: %w: %w", n.Label, err, ErrInvalid)
	}
	if n.Enroll.Fraction < 0 || n.Enroll.Fraction > 1 {
		return fmt.Errorf("networks[%s]: enroll.fraction must be between 0 and 1, got %v: %w",
			n.Label, n.Enroll.Fraction, ErrInvalid)
	}
	if n.Enroll.MaxAge != 0 && n.Enroll.MaxAge < n.Enroll.MinAge {
		return fmt.Errorf("networks[%s]: enroll.max_age %v below min_age %v: %w",
			n.Label, n.Enroll.MaxAge, n.Enroll.MinAge, ErrInvalid)
	}
	if _, err := n.Enroll.Eligible(); err != nil {
		return fmt.Errorf("networks[%s]: %w", n.Label, err)
	}
	if n.RewireInterval < 0 {
		return fmt.Errorf("networks[%s]: rewire_interval must be non-negative: %w", n.Label, ErrInvalid)
	}
	for _, d := range n.Diseases {
		if !known[d] {
			return fmt.Errorf("networks[%s]: unknown disease %q: %w", n.Label, d, ErrInvalid)
		}
	}
	return nil
}
