// Package population holds the simulated persons: their demographics, one
// Health record per tracked disease, and the Population arena that owns them.
//
// Health records carry the disease state machine's bookkeeping (current state,
// last transition day and age group, the single pending transition) together
// with the edge-triggered flags the epidemic layer toggles (exposed,
// infectious, symptomatic, case-fatal).
//
// Persons are addressed by ID, a slot index plus generation, so an ID kept
// after Remove fails with ErrUnknownPerson rather than aliasing a newcomer.
package population
