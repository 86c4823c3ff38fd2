// Package config provides configuration loading for epinet.
// It supports loading from YAML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/epinet/events"
	"github.com/katalvlaran/epinet/transmission"
)

// ErrInvalid marks every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config contains all epinet settings.
type Config struct {
	// Run controls the day loop.
	Run RunConfig `json:"run" yaml:"run"`
	// Population controls the synthetic population.
	Population PopulationConfig `json:"population" yaml:"population"`
	// Diseases lists the tracked diseases; a person carries one Health record each.
	Diseases []DiseaseConfig `json:"diseases" yaml:"diseases"`
	// Networks lists the contact networks transmission runs over.
	Networks []NetworkConfig `json:"networks" yaml:"networks"`
	// Logging contains settings for operational and event logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
	// Report contains settings for per-day result storage.
	Report ReportConfig `json:"report" yaml:"report"`
}

// RunConfig controls the simulation loop.
type RunConfig struct {
	// Days is the number of simulated days after preparation.
	Days int `json:"days" yaml:"days"`
	// Seed seeds every RNG in the run.
	Seed int64 `json:"seed" yaml:"seed"`
	// Horizon is the number of day slots per event queue; 0 selects
	// events.DefaultHorizon.
	Horizon int `json:"horizon,omitempty" yaml:"horizon,omitempty"`
	// AgingInterval ages everyone by a year every this many days; 0 disables aging.
	AgingInterval int `json:"aging_interval" yaml:"aging_interval"`
}

// EffectiveHorizon returns the queue horizon the run will actually use.
func (r RunConfig) EffectiveHorizon() int {
	if r.Horizon > 0 {
		return r.Horizon
	}
	return events.DefaultHorizon
}

// PopulationConfig controls the synthetic population.
type PopulationConfig struct {
	// Size is the number of persons generated.
	Size int `json:"size" yaml:"size"`
	// MaxAge bounds the uniform age draw, exclusive.
	MaxAge float64 `json:"max_age" yaml:"max_age"`
}

// LoggingConfig configures epinet's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "warn", "info" (default), "debug", or "trace".
	Level string `json:"level" yaml:"level"`
	// Events, when set and the level is debug or trace, receives a JSONL
	// trace of every health event.
	Events string `json:"events,omitempty" yaml:"events,omitempty"`
}

// ReportConfig configures result storage.
type ReportConfig struct {
	// Database is a SQLite file path; empty keeps results in memory only.
	// Supports ${VAR} syntax for env vars.
	Database string `json:"database,omitempty" yaml:"database,omitempty"`
}

// Default returns a configuration with one SEIRS disease spreading over a
// partner network of adult males.
func Default() *Config {
	return &Config{
		Run: RunConfig{
			Days:          365,
			Seed:          1,
			AgingInterval: 365,
		},
		Population: PopulationConfig{
			Size:   10000,
			MaxAge: 90,
		},
		Diseases: []DiseaseConfig{{
			Name:           "sti",
			NaturalHistory: "markov",
			States: []StateConfig{
				{Name: "S"},
				{Name: "E"},
				{Name: "I", Infectivity: 1, Symptoms: 1},
				{Name: "R"},
			},
			Groups: []GroupConfig{{
				InitialPercent: []float64{0, 0, 1, 0},
				Hazards: [][]float64{
					{0, 0, 0, 0},
					{0, 0, 0.2, 0},
					{0, 0, 0, 0.05},
					{0.01, 0, 0, 0},
				},
			}},
			Period: 1,
		}},
		Networks: []NetworkConfig{{
			Label:      "sexual",
			MeanDegree: 2,
			Params: transmission.Params{
				ContactsPerLinkPerDay:  0.5,
				TransmissionPerContact: 0.1,
			},
			Enroll: EnrollConfig{MinAge: 18, MaxAge: 60, Sex: "M", Fraction: 0.2},
		}},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFromFile loads configuration from a specific YAML file over Default
// and applies environment overrides.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	config.Report.Database = expandEnvVars(config.Report.Database)
	config.Logging.Events = expandEnvVars(config.Logging.Events)
	applyEnvOverrides(config)

	return config, nil
}

// Load returns LoadFromFile(path), or Default with environment overrides when
// path is empty.
func Load(path string) (*Config, error) {
	if path == "" {
		config := Default()
		applyEnvOverrides(config)
		return config, nil
	}
	return LoadFromFile(path)
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks that the configuration is valid, including that every
// disease builds a consistent model.
func (c *Config) Validate() error {
	if c.Run.Days < 1 {
		return fmt.Errorf("run.days must be positive, got %d: %w", c.Run.Days, ErrInvalid)
	}
	if c.Run.Horizon < 0 {
		return fmt.Errorf("run.horizon must be non-negative, got %d: %w", c.Run.Horizon, ErrInvalid)
	}
	if h := c.Run.EffectiveHorizon(); h <= c.Run.Days {
		return fmt.Errorf("run.horizon %d must exceed run.days %d: %w", h, c.Run.Days, ErrInvalid)
	}
	if c.Run.AgingInterval < 0 {
		return fmt.Errorf("run.aging_interval must be non-negative, got %d: %w", c.Run.AgingInterval, ErrInvalid)
	}
	if c.Population.Size < 0 {
		return fmt.Errorf("population.size must be non-negative, got %d: %w", c.Population.Size, ErrInvalid)
	}
	if !(c.Population.MaxAge > 0) {
		return fmt.Errorf("population.max_age must be positive, got %v: %w", c.Population.MaxAge, ErrInvalid)
	}

	if len(c.Diseases) == 0 {
		return fmt.Errorf("at least one disease is required: %w", ErrInvalid)
	}
	names := make(map[string]bool, len(c.Diseases))
	for i := range c.Diseases {
		d := &c.Diseases[i]
		if d.Name == "" {
			return fmt.Errorf("diseases[%d]: name is required: %w", i, ErrInvalid)
		}
		if names[d.Name] {
			return fmt.Errorf("diseases[%d]: duplicate name %q: %w", i, d.Name, ErrInvalid)
		}
		names[d.Name] = true
		if err := d.Validate(); err != nil {
			return err
		}
	}

	labels := make(map[string]bool, len(c.Networks))
	for i := range c.Networks {
		n := &c.Networks[i]
		if n.Label == "" {
			return fmt.Errorf("networks[%d]: label is required: %w", i, ErrInvalid)
		}
		if labels[n.Label] {
			return fmt.Errorf("networks[%d]: duplicate label %q: %w", i, n.Label, ErrInvalid)
		}
		labels[n.Label] = true
		if err := n.Validate(names); err != nil {
			return err
		}
	}

	validLevels := map[string]bool{"warn": true, "info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: warn, info, debug, trace, or empty for default): %w",
			c.Logging.Level, ErrInvalid)
	}

	return nil
}

// DiseaseIndex returns the position of the named disease, or -1.
func (c *Config) DiseaseIndex(name string) int {
	for i := range c.Diseases {
		if c.Diseases[i].Name == name {
			return i
		}
	}
	return -1
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("EPINET_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}

	if v := os.Getenv("EPINET_DB"); v != "" {
		config.Report.Database = v
	}

	if v := os.Getenv("EPINET_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Run.Seed = n
		}
	}

	if v := os.Getenv("EPINET_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Run.Days = n
		}
	}
}

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
func expandEnvVars(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return os.Expand(s, os.Getenv)
}
