// Package transmission samples contact-driven infections over a contact network.
//
// Each day the Engine collects the infectious enrolled persons with at least
// one outgoing link, weights them by out-degree, and spends a deterministic
// budget of attempts
//
//	attempts = round(links × contacts per link per day × transmission per contact)
//
// on links drawn uniformly with replacement. A drawn link whose destination is
// susceptible transmits with probability infectivity(infector) ×
// susceptibility(infectee); successes are handed to an Exposer, normally the
// disease's epidemic.Scheduler.
//
// Zero infectious hosts or zero links is an ordinary zero-attempt day.
package transmission
