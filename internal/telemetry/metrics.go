// Package telemetry provides metrics accumulated over the frames of a
// flight: peak altitude, peak speed, peak dynamic pressure, and
// propellant accounting.
package telemetry

import "github.com/san-kum/launchsim/internal/flight"

// Apogee tracks the highest altitude reached.
type Apogee struct {
	max float64
	any bool
}

func NewApogee() *Apogee { return &Apogee{} }

func (a *Apogee) Name() string { return "apogee" }

func (a *Apogee) Observe(f flight.Frame) {
	if !a.any || f.Altitude() > a.max {
		a.max = f.Altitude()
		a.any = true
	}
}

func (a *Apogee) Value() float64 { return a.max }

func (a *Apogee) Reset() {
	a.max = 0
	a.any = false
}

// MaxSpeed tracks the highest speed reached.
type MaxSpeed struct {
	max float64
}

func NewMaxSpeed() *MaxSpeed { return &MaxSpeed{} }

func (m *MaxSpeed) Name() string { return "max_speed" }

func (m *MaxSpeed) Observe(f flight.Frame) {
	if f.Speed() > m.max {
		m.max = f.Speed()
	}
}

func (m *MaxSpeed) Value() float64 { return m.max }

func (m *MaxSpeed) Reset() { m.max = 0 }

// MaxQ tracks the peak dynamic pressure, the structural load reference
// point of an ascent.
type MaxQ struct {
	max float64
}

func NewMaxQ() *MaxQ { return &MaxQ{} }

func (m *MaxQ) Name() string { return "max_q" }

func (m *MaxQ) Observe(f flight.Frame) {
	if f.DynamicPressure > m.max {
		m.max = f.DynamicPressure
	}
}

func (m *MaxQ) Value() float64 { return m.max }

func (m *MaxQ) Reset() { m.max = 0 }

// PropellantUsed reports the drop in carried fuel since the first
// observed frame. Fuel leaving with a separated stage counts toward the
// drop alongside fuel actually burned.
type PropellantUsed struct {
	initial float64
	final   float64
	samples int
}

func NewPropellantUsed() *PropellantUsed { return &PropellantUsed{} }

func (p *PropellantUsed) Name() string { return "propellant_used" }

func (p *PropellantUsed) Observe(f flight.Frame) {
	if p.samples == 0 {
		p.initial = f.FuelMass
	}
	p.final = f.FuelMass
	p.samples++
}

func (p *PropellantUsed) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.initial - p.final
}

func (p *PropellantUsed) Reset() {
	p.initial = 0
	p.final = 0
	p.samples = 0
}

// BurnTime accumulates the time during which the vehicle produced
// thrust.
type BurnTime struct {
	total    float64
	lastTime float64
	samples  int
}

func NewBurnTime() *BurnTime { return &BurnTime{} }

func (b *BurnTime) Name() string { return "burn_time" }

func (b *BurnTime) Observe(f flight.Frame) {
	if b.samples > 0 && !f.Thrust.IsZero() {
		b.total += f.Time - b.lastTime
	}
	b.lastTime = f.Time
	b.samples++
}

func (b *BurnTime) Value() float64 { return b.total }

func (b *BurnTime) Reset() {
	b.total = 0
	b.lastTime = 0
	b.samples = 0
}

// Standard returns the metric set the CLI attaches to every run.
func Standard() []flight.Metric {
	return []flight.Metric{
		NewApogee(),
		NewMaxSpeed(),
		NewMaxQ(),
		NewPropellantUsed(),
		NewBurnTime(),
	}
}
