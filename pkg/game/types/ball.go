package types

import (
	"math"

	"github.com/cbodonnell/beastball/pkg/game/constants"
	"github.com/cbodonnell/beastball/pkg/kinematic"
)

// Ball is the projectile in flight between two players. While it exists
// nobody holds the ball.
type Ball struct {
	Source      PlayerID         `json:"source"`
	Target      PlayerID         `json:"target"`
	Initial     bool             `json:"initial"`
	IsPowerShot bool             `json:"isPowerShot"`
	Charge      float64          `json:"charge"`
	Position    kinematic.Vector `json:"position"`
	Speed       float64          `json:"speed"`

	heightAdjustment  float64
	applyVelocityTime float64
	elapsed           float64
}

// BallSpeedForCharge returns the travel speed of a pass made with the given charge.
func BallSpeedForCharge(charge float64) float64 {
	multiplier := math.Max(1, charge*constants.BallChargeMultiplier)
	return math.Min(constants.BallSpeed*multiplier, constants.BallSpeedLimit)
}

// NewBall launches a ball from spawn towards the target's current position.
func NewBall(source, target PlayerID, initial bool, spawn, targetPos kinematic.Vector, isPowerShot bool, charge float64) *Ball {
	b := &Ball{
		Source:           source,
		Target:           target,
		Initial:          initial,
		IsPowerShot:      isPowerShot,
		Charge:           charge,
		Position:         spawn,
		Speed:            constants.BallSpeed,
		heightAdjustment: constants.BallInitialHeightAdjustment,
	}
	distance := kinematic.Distance(spawn, targetPos)
	b.applyVelocityTime = constants.BallApplyVelocityTime * distance / 100
	if isPowerShot {
		b.Speed = BallSpeedForCharge(charge)
		b.applyVelocityTime *= distance / (b.Speed * constants.BallPowerShotRiseFactor)
	}
	return b
}

// Copy returns a detached copy.
func (b *Ball) Copy() *Ball {
	c := *b
	return &c
}

// Update moves the ball towards the target's position and reports whether it arrived.
func (b *Ball) Update(deltaTime float64, targetPos kinematic.Vector) bool {
	b.elapsed += deltaTime
	if b.elapsed > b.applyVelocityTime {
		b.heightAdjustment -= deltaTime * constants.BallFallDecay
	} else {
		b.heightAdjustment -= deltaTime * constants.BallRiseDecay
	}
	if b.heightAdjustment < 0 {
		b.heightAdjustment = 0
	}

	catchPoint := targetPos.Add(kinematic.Vector{Y: constants.BallHeight})
	aim := catchPoint.Add(kinematic.Vector{Y: b.heightAdjustment})
	b.Position = kinematic.MoveTowards(b.Position, aim, deltaTime*b.Speed)

	return kinematic.Distance(b.Position, catchPoint) < constants.BallArrivalThreshold
}
