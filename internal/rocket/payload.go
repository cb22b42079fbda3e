package rocket

import (
	"fmt"
	"math"
)

// Payload is dead weight: a component that contributes mass but no
// locomotion. Immutable after construction.
type Payload struct {
	mass float64
}

// NewPayload constructs a payload of the given mass in kilograms. The
// mass must be positive and finite.
func NewPayload(mass float64) (*Payload, error) {
	if math.IsNaN(mass) || math.IsInf(mass, 0) || mass <= 0 {
		return nil, fmt.Errorf("%w: payload mass must be positive and finite, got %v", ErrInvalidArgument, mass)
	}
	return &Payload{mass: mass}, nil
}

// Mass returns the payload mass in kilograms.
func (p *Payload) Mass() float64 { return p.mass }

func (p *Payload) String() string {
	return fmt.Sprintf("Payload mass is %.2fkg.", p.mass)
}
