// File: health.go
// Role: Per-disease Health record and its flag transitions.
// Invariant:
//   - Pending implies NextState/NextDay name an event that is still queued.
//   - Flags change only through the Become*/Resolve*/Recover methods.

package population

// Untracked is the state of a person not followed by a disease's state machine.
const Untracked = -1

// Health is one person's record for one disease.
type Health struct {
	State    int // Untracked until the scheduler first places the person
	Day      int // day of the last transition
	AgeGroup int // age group at the last transition

	// Pending transition, recorded only once its event is queued.
	NextState int
	NextDay   int
	Pending   bool

	Exposed     bool
	Infectious  bool
	Symptomatic bool
	CaseFatal   bool

	Susceptibility float64 // multiplier on transmission probability
	ExposureDay    int
	InfectiousDay  int // first day infectious in the current infection
	SymptomsDay    int
	RecoveryDay    int
	Infections     int // onward infections caused
}

// NewHealth returns an untracked, fully susceptible record.
func NewHealth() Health {
	return Health{
		State:          Untracked,
		Day:            -1,
		AgeGroup:       -1,
		NextState:      Untracked,
		NextDay:        -1,
		Susceptibility: 1,
		ExposureDay:    -1,
		InfectiousDay:  -1,
		SymptomsDay:    -1,
		RecoveryDay:    -1,
	}
}

// SetPending records the queued transition.
func (h *Health) SetPending(state, day int) {
	h.NextState, h.NextDay, h.Pending = state, day, true
}

// ClearPending forgets the queued transition.
func (h *Health) ClearPending() {
	h.NextState, h.NextDay, h.Pending = Untracked, -1, false
}

// IsSusceptible reports whether the person sits in state 0.
func (h *Health) IsSusceptible() bool { return h.State == 0 }

// BecomeExposed marks the start of an infection on day.
func (h *Health) BecomeExposed(day int) {
	h.Exposed = true
	h.ExposureDay = day
	h.InfectiousDay = -1
	h.SymptomsDay = -1
}

// WasInfectious reports whether the current infection reached an infectious state.
func (h *Health) WasInfectious() bool { return h.InfectiousDay >= 0 }

// BecomeInfectious sets the infectious flag on day.
func (h *Health) BecomeInfectious(day int) {
	h.Infectious = true
	if h.InfectiousDay < 0 {
		h.InfectiousDay = day
	}
}

// BecomeNoninfectious clears the infectious flag.
func (h *Health) BecomeNoninfectious() { h.Infectious = false }

// BecomeSymptomatic sets the symptomatic flag on day.
func (h *Health) BecomeSymptomatic(day int) {
	h.Symptomatic = true
	if h.SymptomsDay < 0 {
		h.SymptomsDay = day
	}
}

// ResolveSymptoms clears the symptomatic flag.
func (h *Health) ResolveSymptoms() { h.Symptomatic = false }

// BecomeCaseFatal marks the infection as fatal.
func (h *Health) BecomeCaseFatal() { h.CaseFatal = true }

// Recover ends the infection on day.
func (h *Health) Recover(day int) {
	h.Exposed = false
	h.Infectious = false
	h.Symptomatic = false
	h.RecoveryDay = day
}
