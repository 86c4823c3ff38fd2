// Package epinet simulates disease spread through a synthetic population
// connected by directed contact networks.
//
// What is epinet?
//
//	A deterministic, seedable day-loop simulator built from small packages:
//		- matrix:       dense row-major matrices with row-sum validators
//		- markov:       age-stratified transition models (initial mix, hazards)
//		- events:       fixed-horizon day-indexed event queues
//		- natural:      natural-history variants (generic, Markov, HIV)
//		- population:   persons, per-disease health records, generator
//		- network:      directed contact graphs with stable member handles
//		- builder:      random topologies (mean degree, Erdős-Rényi) and enrollment
//		- bfs:          contact tracing walks over a network
//		- epidemic:     the per-disease state scheduler and epidemic counters
//		- transmission: degree-weighted transmission sampling over a network
//		- config:       YAML scenarios with environment overrides
//		- report:       in-memory and SQLite day-by-day recording
//		- sim:          the lifecycle that wires everything together
//
// Each simulated day, every disease's scheduler dispatches the transitions
// due that day, then every network samples contacts from its infectious
// members and exposes the susceptible persons they reach.
//
// Data flow:
//
//	markov.Model ──► epidemic.Scheduler ──► population.Person
//	                        ▲                      │
//	                        │ Expose               ▼
//	              transmission.Engine ◄── network.Network
//
// The command-line front end lives in cmd/epinet:
//
//	epinet config default > scenario.yaml
//	epinet validate -c scenario.yaml
//	epinet run -c scenario.yaml --db runs.db --days 365
package epinet
