package constants

import "time"

// DefaultGameLoopInterval runs the simulation at 60 ticks per second
const DefaultGameLoopInterval = time.Second / 60

const (
	// MaxPlayers is the number of player slots in a match
	MaxPlayers int = 8
	// DefaultLives is the number of lives a player starts a match with
	DefaultLives int = 2
	// MaxLives is the upper bound accepted by the lobby
	MaxLives int = 9

	// PlayerSpeed is the speed at which players move towards their destination
	PlayerSpeed float64 = 15.0
	// PlayerSize is the footprint of a player on the arena floor
	PlayerSize float64 = 2.0
	// PlayerBlinkCooldown is the time before a player may blink again
	PlayerBlinkCooldown float64 = 15.0 // seconds
	// PlayerMinTauntID is the first valid taunt
	PlayerMinTauntID int = 1
	// PlayerMaxTauntID is the last valid taunt
	PlayerMaxTauntID int = 8

	// ArenaRadius bounds player destinations and blinks
	ArenaRadius float64 = 60.0
	// ArenaMinX is the left edge of the arena floor
	ArenaMinX float64 = -80.0
	// ArenaMaxX is the right edge of the arena floor
	ArenaMaxX float64 = 80.0
	// ArenaMinZ is the bottom edge of the arena floor
	ArenaMinZ float64 = -80.0
	// ArenaMaxZ is the top edge of the arena floor
	ArenaMaxZ float64 = 80.0

	// RespawnMinX and friends bound the random revive position
	RespawnMinX float64 = -45.0
	RespawnMaxX float64 = 45.0
	RespawnMinZ float64 = -40.0
	RespawnMaxZ float64 = 40.0

	// BeastInitSpeed is the speed the beast starts hunting with
	BeastInitSpeed float64 = 10.0
	// BeastMaxSpeed is the speed ceiling of the beast
	BeastMaxSpeed float64 = 75.0
	// BeastInitRotationSpeed is the turn rate the beast starts with (degrees per second)
	BeastInitRotationSpeed float64 = 50.0
	// BeastMaxRotationSpeed is the turn rate ceiling of the beast
	BeastMaxRotationSpeed float64 = 360.0
	// BeastSpeedAcceleration is added to the beast speed every second
	BeastSpeedAcceleration float64 = 0.6
	// BeastRotationAcceleration scales the quadratic turn rate growth
	BeastRotationAcceleration float64 = 0.0005
	// BeastSize is the footprint of the beast on the arena floor
	BeastSize float64 = 4.0
	// BeastSpawnX, BeastSpawnY and BeastSpawnZ are where the beast appears
	BeastSpawnX float64 = 0.0
	BeastSpawnY float64 = 0.5
	BeastSpawnZ float64 = 0.0
	// BeastPowerShotSpeedFactor is applied to the captured speed when a power shot boost starts
	BeastPowerShotSpeedFactor float64 = 1.05
	// BeastPowerShotRotationFactor is applied to the captured turn rate when a power shot boost starts
	BeastPowerShotRotationFactor float64 = 1.1
	// BeastPowerShotChargeFactor scales the boost by the ball charge
	BeastPowerShotChargeFactor float64 = 0.15
	// BeastPowerShotDuration is how long the boost lasts
	BeastPowerShotDuration float64 = 2.1 // seconds

	// BallSpeed is the travel speed of a regular pass
	BallSpeed float64 = 45.0
	// BallSpeedLimit caps the travel speed of a power shot
	BallSpeedLimit float64 = 200.0
	// BallChargeMultiplier converts power shot charge into a speed factor
	BallChargeMultiplier float64 = 0.3
	// BallHeight is the height the ball travels at above its target
	BallHeight float64 = 8.0
	// BallInitialHeightAdjustment is the extra arc height at launch
	BallInitialHeightAdjustment float64 = 20.0
	// BallApplyVelocityTime is the rise phase of a pass over 100 units of distance
	BallApplyVelocityTime float64 = 0.5 // seconds
	// BallRiseDecay is how fast the arc flattens per second while rising
	BallRiseDecay float64 = 5.0
	// BallFallDecay is how fast the arc flattens per second after the rise phase
	BallFallDecay float64 = 75.0
	// BallPowerShotRiseFactor shortens the rise phase of fast passes
	BallPowerShotRiseFactor float64 = 2.5
	// BallArrivalThreshold is how close the ball must get to be caught
	BallArrivalThreshold float64 = 0.05
	// BallInitialSpawnX, BallInitialSpawnY and BallInitialSpawnZ are where the first ball of a round appears
	BallInitialSpawnX float64 = 0.0
	BallInitialSpawnY float64 = 8.0
	BallInitialSpawnZ float64 = 0.0

	// PowerShotChargeThreshold is how long the ball must be held before charging
	PowerShotChargeThreshold float64 = 7.5 // seconds
	// PowerShotChargeMultiplier is the charge gained per second once charging
	PowerShotChargeMultiplier float64 = 2.0

	// MatchSettleDelay is the wait between launching a match and spawning the beast
	MatchSettleDelay float64 = 1.0 // seconds
	// MatchStartDelay is the wait between spawning the beast and the first pass
	MatchStartDelay float64 = 5.0 // seconds
	// RevivalDelay is the wait between each step of a revival
	RevivalDelay float64 = 3.0 // seconds
	// MatchEndDelay is how long the result stays up before the lobby reopens
	MatchEndDelay float64 = 5.0 // seconds
	// LobbyLaunchCountdown is the wait between everyone being ready and the match starting
	LobbyLaunchCountdown float64 = 5.0 // seconds
)
