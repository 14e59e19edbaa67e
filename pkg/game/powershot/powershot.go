// Package powershot tracks how long the current carrier has held the ball.
package powershot

import "github.com/cbodonnell/beastball/pkg/game/constants"

// State is a copy of the tracker values.
type State struct {
	Armed       bool    `json:"armed"`
	HoldTime    float64 `json:"holdTime"`
	Charge      float64 `json:"charge"`
	IsPowerShot bool    `json:"isPowerShot"`
}

type Tracker struct {
	threshold  float64
	multiplier float64

	armed       bool
	holdTime    float64
	charge      float64
	isPowerShot bool
	fired       bool
}

func NewTracker() *Tracker {
	return NewTrackerWithOptions(constants.PowerShotChargeThreshold, constants.PowerShotChargeMultiplier)
}

func NewTrackerWithOptions(threshold, multiplier float64) *Tracker {
	return &Tracker{
		threshold:  threshold,
		multiplier: multiplier,
	}
}

// OnBallCarrierChanged resets the episode. Charging is armed only when
// somebody now holds the ball.
func (t *Tracker) OnBallCarrierChanged(hasCarrier bool) {
	t.holdTime = 0
	t.charge = 0
	t.isPowerShot = false
	t.fired = false
	t.armed = hasCarrier
}

// Update advances the hold timer. It returns true exactly once per episode,
// on the tick the power shot begins.
func (t *Tracker) Update(deltaTime float64) bool {
	if !t.armed {
		return false
	}
	t.holdTime += deltaTime
	if t.holdTime < t.threshold {
		return false
	}

	began := false
	if !t.fired {
		t.fired = true
		began = true
	}
	t.charge += deltaTime * t.multiplier
	t.isPowerShot = true
	return began
}

func (t *Tracker) Charge() float64 {
	return t.charge
}

func (t *Tracker) IsPowerShot() bool {
	return t.isPowerShot
}

func (t *Tracker) State() State {
	return State{
		Armed:       t.armed,
		HoldTime:    t.holdTime,
		Charge:      t.charge,
		IsPowerShot: t.isPowerShot,
	}
}
