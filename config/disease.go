package config

import (
	"fmt"

	"github.com/katalvlaran/epinet/markov"
	"github.com/katalvlaran/epinet/natural"
)

// DiseaseConfig describes one disease's state machine.
type DiseaseConfig struct {
	// Name identifies the disease in logs and reports.
	Name string `json:"name" yaml:"name"`
	// NaturalHistory is "markov" (default), "generic" or "hiv".
	NaturalHistory string `json:"natural_history" yaml:"natural_history"`
	// States lists the states in index order; state 0 is susceptible.
	States []StateConfig `json:"states" yaml:"states"`
	// AgeBounds are exclusive upper bounds of the age groups; empty means one group.
	AgeBounds []float64 `json:"age_bounds,omitempty" yaml:"age_bounds,omitempty"`
	// Groups holds one initial distribution and hazard table per age group.
	Groups []GroupConfig `json:"groups" yaml:"groups"`
	// Period scales sampled waiting times into days.
	Period float64 `json:"period" yaml:"period"`
	// ExposureState names the state transmission moves persons into; empty
	// selects state 1.
	ExposureState string `json:"exposure_state,omitempty" yaml:"exposure_state,omitempty"`
}

// StateConfig carries a state's name and natural-history properties.
type StateConfig struct {
	Name        string  `json:"name" yaml:"name"`
	Infectivity float64 `json:"infectivity,omitempty" yaml:"infectivity,omitempty"`
	Symptoms    float64 `json:"symptoms,omitempty" yaml:"symptoms,omitempty"`
	Fatal       bool    `json:"fatal,omitempty" yaml:"fatal,omitempty"`
}

// GroupConfig is one age group's tables.
type GroupConfig struct {
	// InitialPercent has one entry per state; entry 0 is the remainder.
	InitialPercent []float64 `json:"initial_percent" yaml:"initial_percent"`
	// Hazards[from][to] are per-day rates; the diagonal is ignored.
	Hazards [][]float64 `json:"hazards" yaml:"hazards"`
}

// ModelParams converts the disease into markov.Params.
func (d *DiseaseConfig) ModelParams() markov.Params {
	p := markov.Params{
		Disease:        d.Name,
		StateNames:     make([]string, len(d.States)),
		AgeBounds:      d.AgeBounds,
		InitialPercent: make([][]float64, len(d.Groups)),
		Hazards:        make([][][]float64, len(d.Groups)),
		Period:         d.Period,
	}
	for i, s := range d.States {
		p.StateNames[i] = s.Name
	}
	for g, grp := range d.Groups {
		p.InitialPercent[g] = grp.InitialPercent
		p.Hazards[g] = grp.Hazards
	}
	return p
}

// Model builds the disease's transition model.
func (d *DiseaseConfig) Model() (*markov.Model, error) {
	return markov.New(d.ModelParams())
}

// History builds the disease's natural history.
func (d *DiseaseConfig) History() (*natural.History, error) {
	kind, err := natural.Parse(d.NaturalHistory)
	if err != nil {
		return nil, fmt.Errorf("diseases[%s]: %w", d.Name, err)
	}
	states := make([]natural.State, len(d.States))
	for i, s := range d.States {
		states[i] = natural.State{Infectivity: s.Infectivity, Symptoms: s.Symptoms, Fatal: s.Fatal}
	}
	h, err := natural.New(kind, states)
	if err != nil {
		return nil, fmt.Errorf("diseases[%s]: %w", d.Name, err)
	}
	return h, nil
}

// ExposureIndex resolves ExposureState against the state names.
func (d *DiseaseConfig) ExposureIndex() (int, error) {
	if d.ExposureState == "" {
		return 1, nil
	}
	for i, s := range d.States {
		if s.Name == d.ExposureState {
			return i, nil
		}
	}
	return -1, fmt.Errorf("diseases[%s]: unknown exposure state %q: %w", d.Name, d.ExposureState, ErrInvalid)
}

// Validate builds the model and history once to surface configuration errors.
func (d *DiseaseConfig) Validate() error {
	if len(d.States) < 2 {
		return fmt.Errorf("diseases[%s]: need at least 2 states, got %d: %w", d.Name, len(d.States), ErrInvalid)
	}
	if _, err := d.Model(); err != nil {
		return err
	}
	if _, err := d.History(); err != nil {
		return err
	}
	idx, err := d.ExposureIndex()
	if err != nil {
		return err
	}
	if idx < 1 {
		return fmt.Errorf("diseases[%s]: exposure state cannot be the susceptible state: %w", d.Name, ErrInvalid)
	}
	return nil
}
