package epidemic

// Counters summarizes the epidemic for one disease. Fields named New* cover
// the current day and reset at the start of each Update.
type Counters struct {
	Exposed     int // infected, not yet infectious
	Infectious  int
	Symptomatic int

	NewExposures   int
	NewInfectious  int
	NewSymptomatic int
	NewRecoveries  int

	Recovered           int
	CaseFatalities      int
	CumulativeIncidence int // exposures since Prepare
}

func (c *Counters) resetDaily() {
	c.NewExposures = 0
	c.NewInfectious = 0
	c.NewSymptomatic = 0
	c.NewRecoveries = 0
}

// EventKind names an edge-triggered change in a person's health.
type EventKind uint8

const (
	EventExposed EventKind = iota
	EventInfectious
	EventSymptomatic
	EventSymptomsResolved
	EventNoninfectious
	EventRecovered
	EventCaseFatal
	EventTerminated
)

var eventNames = [...]string{
	EventExposed:          "exposed",
	EventInfectious:       "infectious",
	EventSymptomatic:      "symptomatic",
	EventSymptomsResolved: "symptoms-resolved",
	EventNoninfectious:    "noninfectious",
	EventRecovered:        "recovered",
	EventCaseFatal:        "case-fatal",
	EventTerminated:       "terminated",
}

// String returns the event's lower-case name.
func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// MarshalText renders the name, so events encode readably as JSON.
func (k EventKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
