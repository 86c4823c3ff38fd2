// File: person.go
// Role: Person entity: demographics and per-disease Health records.

package population

import (
	"fmt"
	"strings"
)

// Sex of a person.
type Sex uint8

const (
	Female Sex = iota
	Male
)

// String returns "F" or "M".
func (s Sex) String() string {
	if s == Male {
		return "M"
	}

	return "F"
}

// ParseSex accepts "F"/"female" and "M"/"male", case-insensitively.
func ParseSex(s string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "f", "female":
		return Female, nil
	case "m", "male":
		return Male, nil
	}

	return Female, fmt.Errorf("population: sex %q: %w", s, ErrBadDemographics)
}

// Person is one simulated individual. Disease indexes run 0..Diseases()-1;
// out-of-range indexes panic like any slice access.
type Person struct {
	id     ID
	age    float64
	sex    Sex
	health []Health
}

// NewPerson returns a detached person tracked for diseases diseases.
func NewPerson(age float64, sex Sex, diseases int) *Person {
	p := &Person{age: age, sex: sex, health: make([]Health, diseases)}
	for d := range p.health {
		p.health[d] = NewHealth()
	}

	return p
}

// ID returns the arena handle, zero for detached persons.
func (p *Person) ID() ID { return p.id }

// Age returns the age in years.
func (p *Person) Age() float64 { return p.age }

// Birthday adds one year and returns the new age.
func (p *Person) Birthday() float64 {
	p.age++
	return p.age
}

// Sex returns the person's sex.
func (p *Person) Sex() Sex { return p.sex }

// Diseases returns the number of Health records.
func (p *Person) Diseases() int { return len(p.health) }

// Health returns the mutable record for disease d.
func (p *Person) Health(d int) *Health { return &p.health[d] }

// State returns the current state for disease d.
func (p *Person) State(d int) int { return p.health[d].State }

// IsSusceptible reports whether p is in state 0 of disease d.
func (p *Person) IsSusceptible(d int) bool { return p.health[d].IsSusceptible() }

// IsInfectious reports the infectious flag for disease d.
func (p *Person) IsInfectious(d int) bool { return p.health[d].Infectious }

// IsSymptomatic reports the symptomatic flag for disease d.
func (p *Person) IsSymptomatic(d int) bool { return p.health[d].Symptomatic }

// Susceptibility returns the transmission multiplier for disease d.
func (p *Person) Susceptibility(d int) float64 { return p.health[d].Susceptibility }

// SetSusceptibility overrides the transmission multiplier for disease d.
func (p *Person) SetSusceptibility(d int, v float64) { p.health[d].Susceptibility = v }

// BecomeExposed marks p exposed to disease d on day.
func (p *Person) BecomeExposed(d, day int) { p.health[d].BecomeExposed(day) }

// BecomeInfectious sets the infectious flag for disease d on day.
func (p *Person) BecomeInfectious(d, day int) { p.health[d].BecomeInfectious(day) }

// BecomeNoninfectious clears the infectious flag for disease d.
func (p *Person) BecomeNoninfectious(d int) { p.health[d].BecomeNoninfectious() }

// BecomeSymptomatic sets the symptomatic flag for disease d on day.
func (p *Person) BecomeSymptomatic(d, day int) { p.health[d].BecomeSymptomatic(day) }

// ResolveSymptoms clears the symptomatic flag for disease d.
func (p *Person) ResolveSymptoms(d int) { p.health[d].ResolveSymptoms() }

// BecomeCaseFatal marks disease d as fatal for p.
func (p *Person) BecomeCaseFatal(d int) { p.health[d].BecomeCaseFatal() }

// Recover ends p's infection with disease d on day.
func (p *Person) Recover(d, day int) { p.health[d].Recover(day) }

// String renders "person <id> age=<age> sex=<sex>".
func (p *Person) String() string {
	return fmt.Sprintf("person %s age=%.0f sex=%s", p.id, p.age, p.sex)
}
