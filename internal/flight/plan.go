package flight

import (
	"fmt"
	"sort"
)

// Action names a control input the flight plan can issue.
type Action string

const (
	// ActionIgniteSRBs commands every booster to full throttle.
	ActionIgniteSRBs Action = "ignite_srbs"
	// ActionSetThrottle throttles the active stage to Value percent.
	ActionSetThrottle Action = "set_throttle"
	// ActionSetRollRate sets the attitude rotation rate to Value rad/s.
	ActionSetRollRate Action = "set_roll_rate"
	// ActionSeparateStage jettisons the active stage.
	ActionSeparateStage Action = "separate_stage"
	// ActionJettisonSRBs drops the booster group.
	ActionJettisonSRBs Action = "jettison_srbs"
)

// Event is a timed control input.
type Event struct {
	Time   float64
	Action Action
	Value  float64
}

// Plan is an ordered sequence of timed control inputs applied by the
// simulator as flight time passes each event's timestamp. Staging the
// vehicle on fuel depletion is handled separately by the simulator's
// auto-stage options; the plan covers everything externally decided.
type Plan struct {
	events  []Event
	applied int
}

// NewPlan builds a plan from events, ordered by time. Events with
// unknown actions or negative timestamps are rejected.
func NewPlan(events []Event) (*Plan, error) {
	for _, ev := range events {
		switch ev.Action {
		case ActionIgniteSRBs, ActionSetThrottle, ActionSetRollRate,
			ActionSeparateStage, ActionJettisonSRBs:
		default:
			return nil, fmt.Errorf("flight: unknown plan action %q", ev.Action)
		}
		if ev.Time < 0 {
			return nil, fmt.Errorf("flight: plan event %q has negative time %v", ev.Action, ev.Time)
		}
	}
	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })
	return &Plan{events: sorted}, nil
}

// Due returns the events whose time has been reached and marks them
// applied. Each event fires exactly once.
func (p *Plan) Due(t float64) []Event {
	if p == nil {
		return nil
	}
	start := p.applied
	for p.applied < len(p.events) && p.events[p.applied].Time <= t {
		p.applied++
	}
	return p.events[start:p.applied]
}

// Reset rewinds the plan so it can drive another run.
func (p *Plan) Reset() {
	if p != nil {
		p.applied = 0
	}
}

// Len returns the number of events in the plan.
func (p *Plan) Len() int {
	if p == nil {
		return 0
	}
	return len(p.events)
}
