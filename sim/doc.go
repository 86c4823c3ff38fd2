// Package sim drives a complete epinet run.
//
// A Simulation owns the synthetic population, one epidemic.Scheduler per
// disease, the contact networks and one transmission.Engine per network and
// disease that spreads on it. Its lifecycle mirrors the scheduler's:
//
//	New(cfg)      -> PhaseUninitialized
//	Setup()       -> PhaseSetup     population, models, networks, engines
//	Prepare(ctx)  -> PhasePrepared  initial states drawn on day 0
//	Step/Run(ctx) -> PhaseRunning   one call per day
//	Finish(ctx)   -> PhaseFinished
//
// Each day runs, in order: every scheduler's Update, case-fatal removals,
// aging, network rewiring, transmission on every network, and finally one
// report.Day handed to the recorder.
//
// A Simulation is not safe for concurrent use. Its report.Series may be read
// from other goroutines while it runs.
package sim
