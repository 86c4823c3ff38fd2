package epidemic

import "errors"

var (
	// ErrPhase indicates a lifecycle call made in the wrong phase.
	ErrPhase = errors.New("epidemic: wrong phase")

	// ErrStateMismatch indicates a natural history whose state count differs
	// from the model's.
	ErrStateMismatch = errors.New("epidemic: model and natural history disagree on states")

	// ErrExposureState indicates an exposure state outside 1..States-1.
	ErrExposureState = errors.New("epidemic: invalid exposure state")

	// ErrDisease indicates a disease index the person does not carry.
	ErrDisease = errors.New("epidemic: person does not carry disease")

	// ErrState indicates a target state outside the model.
	ErrState = errors.New("epidemic: state out of range")
)

// ErrDayOrder indicates an Update for a day not after the last updated day.
var ErrDayOrder = errors.New("epidemic: days must increase")
