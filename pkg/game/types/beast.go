package types

import (
	"math"

	"github.com/cbodonnell/beastball/pkg/game/constants"
	"github.com/cbodonnell/beastball/pkg/kinematic"
	"github.com/solarlune/resolv"
)

// BeastMode is what the beast is doing between hunts.
type BeastMode uint8

const (
	BeastModeIdle BeastMode = iota
	BeastModeIdleAggressive
	BeastModeHunting
)

func (m BeastMode) String() string {
	switch m {
	case BeastModeIdle:
		return "Idle"
	case BeastModeIdleAggressive:
		return "IdleAggressive"
	case BeastModeHunting:
		return "Hunting"
	default:
		return "Unknown"
	}
}

// BeastState is the hazard that hunts the ball carrier.
type BeastState struct {
	Speed         float64          `json:"speed"`
	RotationSpeed float64          `json:"rotationSpeed"`
	Position      kinematic.Vector `json:"position"`
	Rotation      float64          `json:"rotation"`
	Target        PlayerID         `json:"target"`
	Mode          BeastMode        `json:"mode"`

	Object *resolv.Object `json:"-"`
}

func NewBeastState() *BeastState {
	b := &BeastState{
		Speed:         constants.BeastInitSpeed,
		RotationSpeed: constants.BeastInitRotationSpeed,
		Target:        NoPlayer,
		Mode:          BeastModeIdle,
		Object:        resolv.NewObject(0, 0, constants.BeastSize, constants.BeastSize, CollisionSpaceTagBeast),
	}
	b.SetPosition(kinematic.Vector{X: constants.BeastSpawnX, Y: constants.BeastSpawnY, Z: constants.BeastSpawnZ})
	return b
}

func (b *BeastState) Copy() BeastState {
	c := *b
	c.Object = nil
	return c
}

// SetPosition moves the beast and keeps its collision object in sync.
func (b *BeastState) SetPosition(pos kinematic.Vector) {
	b.Position = pos
	if b.Object != nil {
		b.Object.Position.X = pos.X - constants.ArenaMinX - constants.BeastSize/2
		b.Object.Position.Y = pos.Z - constants.ArenaMinZ - constants.BeastSize/2
		b.Object.Update()
	}
}

// SetTarget starts hunting a player.
func (b *BeastState) SetTarget(id PlayerID) {
	b.Target = id
	b.Mode = BeastModeHunting
}

// Idle stops the hunt.
func (b *BeastState) Idle() {
	b.Target = NoPlayer
	b.Mode = BeastModeIdle
}

// IdleAggressive keeps the beast still but ready to hunt.
func (b *BeastState) IdleAggressive() {
	b.Target = NoPlayer
	b.Mode = BeastModeIdleAggressive
}

// Reset puts speed and turn rate back to their initial values.
func (b *BeastState) Reset() {
	b.Speed = constants.BeastInitSpeed
	b.RotationSpeed = constants.BeastInitRotationSpeed
	b.IdleAggressive()
}

// Hunting reports whether the beast has a target.
func (b *BeastState) Hunting() bool {
	return b.Mode == BeastModeHunting && b.Target != NoPlayer
}

// Update turns the beast towards targetPos, moves it forward and applies
// the natural acceleration. The turn rate grows with the square of its
// current value so the beast drifts wide early and tightens later.
func (b *BeastState) Update(deltaTime float64, targetPos kinematic.Vector) {
	if !b.Hunting() {
		return
	}

	desired := kinematic.YawTowards(b.Position, targetPos)
	b.Rotation = kinematic.RotateTowards(b.Rotation, desired, deltaTime*b.RotationSpeed)
	step := kinematic.Forward(b.Rotation).Scale(kinematic.Displacement(b.Speed, deltaTime, 0))
	next := b.Position.Add(step)
	next.X = math.Max(constants.ArenaMinX, math.Min(constants.ArenaMaxX, next.X))
	next.Z = math.Max(constants.ArenaMinZ, math.Min(constants.ArenaMaxZ, next.Z))
	b.SetPosition(next)

	if b.Speed <= constants.BeastMaxSpeed {
		b.Speed = kinematic.FinalVelocity(b.Speed, deltaTime, constants.BeastSpeedAcceleration)
	}
	if b.Speed > constants.BeastMaxSpeed {
		b.Speed = constants.BeastMaxSpeed
	}

	if b.RotationSpeed <= constants.BeastMaxRotationSpeed {
		growth := b.RotationSpeed * b.RotationSpeed * constants.BeastRotationAcceleration
		b.RotationSpeed = kinematic.FinalVelocity(b.RotationSpeed, deltaTime, growth)
	}
	if b.RotationSpeed > constants.BeastMaxRotationSpeed {
		b.RotationSpeed = constants.BeastMaxRotationSpeed
	}
}

// BeastBoost holds the values a power shot boost reverts to.
type BeastBoost struct {
	Speed         float64
	RotationSpeed float64
}

// Boost applies a power shot boost scaled by charge and returns the values
// to restore when it ends. The restore values are derived from the live
// values at boost start so they compose with the natural acceleration.
func (b *BeastState) Boost(charge float64) BeastBoost {
	saved := BeastBoost{
		Speed:         b.Speed * constants.BeastPowerShotSpeedFactor,
		RotationSpeed: b.RotationSpeed * constants.BeastPowerShotRotationFactor,
	}
	factor := charge * constants.BeastPowerShotChargeFactor
	b.Speed = clamp(b.Speed*factor, constants.BeastInitSpeed, constants.BeastMaxSpeed)
	b.RotationSpeed = clamp(b.RotationSpeed*factor, constants.BeastInitRotationSpeed, constants.BeastMaxRotationSpeed)
	return saved
}

// Restore ends a power shot boost.
func (b *BeastState) Restore(saved BeastBoost) {
	b.Speed = clamp(saved.Speed, constants.BeastInitSpeed, constants.BeastMaxSpeed)
	b.RotationSpeed = clamp(saved.RotationSpeed, constants.BeastInitRotationSpeed, constants.BeastMaxRotationSpeed)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
