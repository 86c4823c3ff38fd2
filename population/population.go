// File: population.go
// Role: Population arena with generation-checked IDs and the synthetic generator.
// Determinism:
//   - Each visits live persons in slot order; Generate draws age then sex per person.
// Concurrency:
//   - Not safe for concurrent mutation; the day loop owns it.

package population

import (
	"errors"
	"fmt"
	"math/rand"
)

var (
	// ErrUnknownPerson indicates an ID that is zero, out of range or stale.
	ErrUnknownPerson = errors.New("population: unknown person")

	// ErrBadDemographics indicates invalid generator or demographic input.
	ErrBadDemographics = errors.New("population: bad demographics")
)

// ID addresses a person in a Population. The zero ID is never valid.
type ID struct {
	slot int32
	gen  uint32
}

// IsZero reports whether id is the zero ID.
func (id ID) IsZero() bool { return id.gen == 0 }

// String renders "slot.gen".
func (id ID) String() string { return fmt.Sprintf("%d.%d", id.slot, id.gen) }

// MarshalText renders the ID as String does, for JSON and YAML output.
func (id ID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

type slot struct {
	p   *Person
	gen uint32
}

// Population owns persons and hands out stable IDs.
type Population struct {
	diseases int
	slots    []slot
	free     []int32
	size     int
}

// New returns an empty population whose persons track diseases diseases.
func New(diseases int) *Population {
	return &Population{diseases: diseases}
}

// Diseases returns the number of Health records each person carries.
func (pop *Population) Diseases() int { return pop.diseases }

// Add creates a person and returns it with its ID assigned.
// Complexity: O(diseases) amortized.
func (pop *Population) Add(age float64, sex Sex) (*Person, error) {
	if age < 0 {
		return nil, fmt.Errorf("population: Add(age=%v): %w", age, ErrBadDemographics)
	}
	p := NewPerson(age, sex, pop.diseases)

	var s int32
	if last := len(pop.free) - 1; last >= 0 {
		s = pop.free[last]
		pop.free = pop.free[:last]
	} else {
		s = int32(len(pop.slots))
		pop.slots = append(pop.slots, slot{})
	}
	pop.slots[s].gen++
	pop.slots[s].p = p
	p.id = ID{slot: s, gen: pop.slots[s].gen}
	pop.size++

	return p, nil
}

// Get resolves id.
// Complexity: O(1).
func (pop *Population) Get(id ID) (*Person, error) {
	if id.IsZero() || id.slot < 0 || int(id.slot) >= len(pop.slots) {
		return nil, fmt.Errorf("population: Get(%s): %w", id, ErrUnknownPerson)
	}
	s := pop.slots[id.slot]
	if s.p == nil || s.gen != id.gen {
		return nil, fmt.Errorf("population: Get(%s): %w", id, ErrUnknownPerson)
	}

	return s.p, nil
}

// Remove drops the person behind id; its ID becomes stale.
// Complexity: O(1).
func (pop *Population) Remove(id ID) error {
	if _, err := pop.Get(id); err != nil {
		return err
	}
	pop.slots[id.slot].p = nil
	pop.slots[id.slot].gen++
	pop.free = append(pop.free, id.slot)
	pop.size--

	return nil
}

// Each calls fn for every live person in slot order.
// Complexity: O(slots).
func (pop *Population) Each(fn func(*Person)) {
	for _, s := range pop.slots {
		if s.p != nil {
			fn(s.p)
		}
	}
}

// People returns live persons in slot order.
func (pop *Population) People() []*Person {
	out := make([]*Person, 0, pop.size)
	pop.Each(func(p *Person) { out = append(out, p) })

	return out
}

// Size returns the number of live persons.
func (pop *Population) Size() int { return pop.size }

// Generate builds a synthetic population of n persons with ages uniform on
// [0, maxAge) and sexes drawn with equal probability.
// Complexity: O(n·diseases).
func Generate(n int, maxAge float64, diseases int, rng *rand.Rand) (*Population, error) {
	switch {
	case n < 0:
		return nil, fmt.Errorf("population: Generate(n=%d): %w", n, ErrBadDemographics)
	case !(maxAge > 0):
		return nil, fmt.Errorf("population: Generate(maxAge=%v): %w", maxAge, ErrBadDemographics)
	case diseases < 0:
		return nil, fmt.Errorf("population: Generate(diseases=%d): %w", diseases, ErrBadDemographics)
	case rng == nil:
		return nil, fmt.Errorf("population: Generate: nil rng: %w", ErrBadDemographics)
	}

	pop := New(diseases)
	pop.slots = make([]slot, 0, n)
	for i := 0; i < n; i++ {
		age := float64(int(rng.Float64() * maxAge))
		sex := Female
		if rng.Intn(2) == 1 {
			sex = Male
		}
		if _, err := pop.Add(age, sex); err != nil {
			return nil, err
		}
	}

	return pop, nil
}
