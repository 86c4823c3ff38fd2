// Package report records per-day simulation results.
//
// A Recorder receives one Run header, one Day per simulated day and a final
// End. Series keeps everything in memory; SQLiteStore persists it. Tee fans
// out to several recorders.
package report

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/epinet/epidemic"
	"github.com/katalvlaran/epinet/transmission"
)

// ErrNoRun indicates Record or End before Begin.
var ErrNoRun = errors.New("report: no run in progress")

// Run describes one simulation run.
type Run struct {
	ID         string    `json:"id"`
	Started    time.Time `json:"started"`
	Seed       int64     `json:"seed"`
	Days       int       `json:"days"`
	Population int       `json:"population"`
	// Config is the run's configuration rendered as YAML.
	Config string `json:"config,omitempty"`
}

// NewRunID returns a fresh random run identifier.
func NewRunID() string { return uuid.NewString() }

// DiseaseDay is one disease's state at the end of a day.
type DiseaseDay struct {
	Disease  string            `json:"disease"`
	States   []string          `json:"states"`
	Counts   []int             `json:"counts"`
	Counters epidemic.Counters `json:"counters"`
}

// Count returns the count of the named state, or 0.
func (d DiseaseDay) Count(state string) int {
	for i, s := range d.States {
		if s == state && i < len(d.Counts) {
			return d.Counts[i]
		}
	}
	return 0
}

// SpreadDay is one network's transmission result for one disease.
type SpreadDay struct {
	Network string              `json:"network"`
	Disease string              `json:"disease"`
	Result  transmission.Result `json:"result"`
}

// Day bundles everything recorded for one simulated day.
type Day struct {
	Day      int          `json:"day"`
	Diseases []DiseaseDay `json:"diseases"`
	Spread   []SpreadDay  `json:"spread,omitempty"`
}

// Disease returns the named disease's entry.
func (d Day) Disease(name string) (DiseaseDay, bool) {
	for _, dd := range d.Diseases {
		if dd.Disease == name {
			return dd, true
		}
	}
	return DiseaseDay{}, false
}

// Recorder consumes a run's results.
type Recorder interface {
	Begin(ctx context.Context, run Run) error
	Record(ctx context.Context, day Day) error
	End(ctx context.Context, lastDay int) error
	Close() error
}

// tee forwards every call to all recorders.
type tee []Recorder

// Tee returns a Recorder that forwards to each of rs in order. Errors from
// all recorders are joined; a failing recorder does not stop the others.
func Tee(rs ...Recorder) Recorder {
	out := make(tee, 0, len(rs))
	for _, r := range rs {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

func (t tee) Begin(ctx context.Context, run Run) error {
	var errs []error
	for _, r := range t {
		errs = append(errs, r.Begin(ctx, run))
	}
	return errors.Join(errs...)
}

func (t tee) Record(ctx context.Context, day Day) error {
	var errs []error
	for _, r := range t {
		errs = append(errs, r.Record(ctx, day))
	}
	return errors.Join(errs...)
}

func (t tee) End(ctx context.Context, lastDay int) error {
	var errs []error
	for _, r := range t {
		errs = append(errs, r.End(ctx, lastDay))
	}
	return errors.Join(errs...)
}

func (t tee) Close() error {
	var errs []error
	for _, r := range t {
		errs = append(errs, r.Close())
	}
	return errors.Join(errs...)
}
