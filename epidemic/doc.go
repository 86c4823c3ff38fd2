// Package epidemic drives every tracked person's disease state forward.
//
// A Scheduler owns one events.Queue per disease state. Each queued item means
// "this person enters state S on day D". Every state change goes through
// TransitionPerson, which cancels the person's pending event, updates the
// per-state counts, draws the next transition from the markov.Model and
// queues it, then fires the edge-triggered health effects (exposed,
// infectious, symptomatic, recovered, case-fatal) by comparing the
// natural-history properties of the old and new states.
//
// Lifecycle:
//
//	New      -> PhaseSetup
//	Prepare  -> PhasePrepared   (initial states drawn, first events queued)
//	Update   -> PhaseRunning    (one call per day, in day order)
//	Finish   -> PhaseFinished
//
// Calls out of order fail with ErrPhase.
//
// Invariant: a person has at most one pending transition per disease, and a
// recorded pending transition is always still present in its queue.
//
// A Scheduler is not safe for concurrent use.
package epidemic
