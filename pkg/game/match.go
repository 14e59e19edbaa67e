package game

import (
	"math"
	"math/rand"

	"github.com/cbodonnell/beastball/pkg/collisions"
	"github.com/cbodonnell/beastball/pkg/events"
	"github.com/cbodonnell/beastball/pkg/game/constants"
	"github.com/cbodonnell/beastball/pkg/game/lifecycle"
	"github.com/cbodonnell/beastball/pkg/game/powershot"
	"github.com/cbodonnell/beastball/pkg/game/types"
	"github.com/cbodonnell/beastball/pkg/kinematic"
	"github.com/cbodonnell/beastball/pkg/log"
	"github.com/cbodonnell/beastball/pkg/scheduler"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
)

var (
	ErrMatchInProgress = eris.New("match in progress")
	ErrMatchNotRunning = eris.New("match is not running")
	ErrNotKillable     = eris.New("player cannot be killed")
	ErrIllegalPass     = eris.New("illegal pass")
)

// InitialBallSpawn is where the ball appears for the first pass of a sequence.
var InitialBallSpawn = kinematic.Vector{
	X: constants.BallInitialSpawnX,
	Y: constants.BallInitialSpawnY,
	Z: constants.BallInitialSpawnZ,
}

// MatchOptions contains the collaborators of a Match.
type MatchOptions struct {
	State     *types.GameState
	Bus       *events.Bus
	Scheduler *scheduler.Scheduler
	PowerShot *powershot.Tracker
	Rand      *rand.Rand
	// OnConcluded is called once per match after the last kill of the match
	// has been fully resolved. winner is NoPlayer when nobody survived.
	OnConcluded func(winner types.PlayerID)
}

// Match is the only writer of the match state and of the fields shared
// between players: the ball carrier, the last passer and the roster.
// It is not safe for concurrent use; the game loop drives it.
type Match struct {
	state       *types.GameState
	bus         *events.Bus
	scheduler   *scheduler.Scheduler
	powerShot   *powershot.Tracker
	rng         *rand.Rand
	onConcluded func(winner types.PlayerID)

	boosted    bool
	boost      types.BeastBoost
	boostToken scheduler.Token

	concluded bool
	logger    *log.Logger
}

func NewMatch(opts MatchOptions) *Match {
	m := &Match{
		state:       opts.State,
		bus:         opts.Bus,
		scheduler:   opts.Scheduler,
		powerShot:   opts.PowerShot,
		rng:         opts.Rand,
		onConcluded: opts.OnConcluded,
		logger:      log.Default(),
	}
	if m.powerShot == nil {
		m.powerShot = powershot.NewTracker()
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(1))
	}
	return m
}

// PowerShot exposes the charge tracker for snapshots.
func (m *Match) PowerShot() *powershot.Tracker {
	return m.powerShot
}

// StartMatch opens a new match. The roster is built and the beast spawned
// after the settle delay; the first pass follows after the start delay.
func (m *Match) StartMatch() error {
	if m.state.MatchState.InProgress() {
		return eris.Wrapf(ErrMatchInProgress, "start match %s", m.state.MatchID)
	}

	m.state.MatchID = uuid.NewString()
	m.state.MatchState = types.MatchStateMatchStart
	m.state.Remaining = nil
	m.state.BallCarrier = types.NoPlayer
	m.state.LastPassingPlayer = types.NoPlayer
	m.state.Ball = nil
	m.state.BallSequenceTime = 0
	m.powerShot.OnBallCarrierChanged(false)
	m.clearBoost()
	m.concluded = false
	m.logger = log.With("match", m.state.MatchID)

	if _, err := m.scheduler.After(constants.MatchSettleDelay, "settle", m.launchRoster); err != nil {
		return eris.Wrap(err, "failed to schedule match settle")
	}
	m.logger.Info("Match starting")
	return nil
}

func (m *Match) launchRoster() {
	for _, p := range m.state.Players {
		if p.Available && p.MatchReady && !p.IsGameOver {
			lifecycle.Enter(p)
			p.SetPosition(p.SpawnPoint)
			p.Rotation = kinematic.YawTowards(p.Position, kinematic.Zero)
			m.state.Remaining = append(m.state.Remaining, p.ID)
			continue
		}
		p.IsGameOver = true
	}
	if len(m.state.Remaining) == 0 {
		m.logger.Warn("No match ready players, aborting")
		if err := m.AbortMatch(); err != nil {
			m.logger.Error("Failed to abort match: %v", err)
		}
		return
	}

	if m.state.Beast == nil {
		m.state.Beast = types.NewBeastState()
		if m.state.CollisionSpace != nil {
			m.state.CollisionSpace.Add(m.state.Beast.Object)
		}
	}
	m.resetBeast()
	m.state.Beast.Idle()

	m.bus.Publish(events.MatchStarted{MatchID: m.state.MatchID})
	m.logger.Info("Match started with %d players", len(m.state.Remaining))

	_, err := m.scheduler.After(constants.MatchStartDelay, "first pass", func() {
		m.state.MatchState = types.MatchStatePlayerAlive
		m.state.Beast.IdleAggressive()
		m.launchBall()
	})
	if err != nil {
		m.logger.Error("Failed to schedule first pass: %v", err)
	}
}

// launchBall starts a new pass sequence towards a random roster member.
func (m *Match) launchBall() {
	if len(m.state.Remaining) == 0 {
		return
	}
	target := m.state.Remaining[m.rng.Intn(len(m.state.Remaining))]
	if err := m.PassBall(true, target, types.NoPlayer); err != nil {
		m.logger.Warn("Failed to launch ball: %v", err)
	}
}

// PassBall throws the ball at target. Relay passes must come from the
// current carrier; initial passes start a new sequence from overhead and
// forget the previous passer. Either way the beast is sent after target.
func (m *Match) PassBall(initial bool, target, acting types.PlayerID) error {
	if !m.state.MatchState.InProgress() {
		return eris.Wrapf(ErrMatchNotRunning, "pass %d -> %d", acting, target)
	}
	if target == acting || !m.state.InRoster(target) {
		return eris.Wrapf(ErrIllegalPass, "target %d is not a remaining enemy", target)
	}
	tp := m.state.Players[target]
	if !tp.IsAlive() {
		return eris.Wrapf(ErrIllegalPass, "target %d is %s", target, tp.State)
	}

	var spawn kinematic.Vector
	if initial {
		if m.state.BallCarrier != types.NoPlayer || m.state.Ball != nil {
			return eris.Wrap(ErrIllegalPass, "ball is already in play")
		}
		if last, ok := m.state.Player(m.state.LastPassingPlayer); ok {
			last.HasKilled = false
		}
		m.state.LastPassingPlayer = types.NoPlayer
		m.state.BallSequenceTime = 0
		spawn = InitialBallSpawn
	} else {
		ap, ok := m.state.Player(acting)
		if !ok || !lifecycle.CanPass(ap) || m.state.BallCarrier != acting {
			return eris.Wrapf(ErrIllegalPass, "player %d does not hold the ball", acting)
		}
		ap.HasBall = false
		m.state.LastPassingPlayer = acting
		spawn = kinematic.Vector{X: ap.Position.X, Y: constants.BallHeight, Z: ap.Position.Z}
	}

	isPowerShot := m.powerShot.IsPowerShot()
	charge := m.powerShot.Charge()
	m.state.BallCarrier = types.NoPlayer
	m.powerShot.OnBallCarrierChanged(false)

	m.state.Ball = types.NewBall(acting, target, initial, spawn, tp.Position, isPowerShot, charge)
	if m.state.Beast != nil {
		m.state.Beast.SetTarget(target)
		if isPowerShot {
			m.boostBeast(charge)
		}
	}

	m.bus.Publish(events.BallPassed{
		Source:          acting,
		Target:          target,
		Initial:         initial,
		IsPowerShot:     isPowerShot,
		PowerShotCharge: charge,
	})
	m.logger.Debug("Ball passed %d -> %d (initial=%t, power=%t, charge=%.2f)", acting, target, initial, isPowerShot, charge)
	return nil
}

func (m *Match) catchBall(p *types.PlayerRecord) {
	m.state.Ball = nil
	p.HasBall = true
	m.state.BallCarrier = p.ID
	m.powerShot.OnBallCarrierChanged(true)
	m.bus.Publish(events.BallCaught{Catcher: p.ID})
}

// PlayerKilledByBeast resolves the death of id. Kills aimed at a player that
// is not alive are rejected without side effects.
func (m *Match) PlayerKilledByBeast(id types.PlayerID) error {
	if !m.state.MatchState.InProgress() {
		return eris.Wrapf(ErrMatchNotRunning, "kill %d", id)
	}
	p, ok := m.state.Player(id)
	if !ok || !p.Available {
		return eris.Wrapf(ErrNotKillable, "player %d is not seated", id)
	}
	if !lifecycle.CanBeKilled(p) {
		return eris.Wrapf(ErrNotKillable, "player %d is %s (game over: %t)", id, p.State, p.IsGameOver)
	}
	if err := lifecycle.Transition(p, types.PlayerStateDead); err != nil {
		return err
	}

	m.state.MatchState = types.MatchStatePlayerDead
	p.HasBall = false
	m.state.BallCarrier = types.NoPlayer
	m.state.Ball = nil
	m.powerShot.OnBallCarrierChanged(false)
	m.bus.Publish(events.BeastKilledPlayer{Victim: id})

	if p.Lives > 0 || m.state.InfiniteLives {
		if !m.state.InfiniteLives {
			p.Lives--
		}
		m.scheduleRevival(p)
	} else {
		if err := lifecycle.Eliminate(p); err != nil {
			m.logger.Warn("Failed to eliminate player %d: %v", id, err)
		}
		m.state.RemoveFromRoster(id)
		if len(m.state.Remaining) > 1 {
			m.ContinueMatch()
		} else {
			m.ConcludeMatch()
		}
	}

	if killer, ok := m.state.Player(m.state.LastPassingPlayer); ok {
		killer.Kills++
		killer.HasKilled = true
		m.bus.Publish(events.PlayerKilled{Killer: killer.ID, Victim: id})
	} else {
		m.bus.Publish(events.PlayerKilled{Killer: types.NoPlayer, Victim: id, Humiliated: true})
		if !m.state.InfiniteLives {
			p.Kills--
		}
	}

	m.logger.Info("Player %d killed by the beast (lives=%d, remaining=%d)", id, p.Lives, len(m.state.Remaining))
	m.finish()
	return nil
}

// scheduleRevival brings p back after the revival delays. If p has left the
// roster by then, play resumes without them.
func (m *Match) scheduleRevival(p *types.PlayerRecord) {
	id := p.ID
	_, err := m.scheduler.After(constants.RevivalDelay, "revive", func() {
		m.state.MatchState = types.MatchStatePlayerRevive
		if m.state.Beast != nil {
			m.state.Beast.Idle()
		}
		revived := m.state.InRoster(id) && p.State == types.PlayerStateDead
		if revived {
			if err := lifecycle.Transition(p, types.PlayerStateRevive); err != nil {
				m.logger.Warn("Failed to revive player %d: %v", id, err)
				revived = false
			}
		}
		_, err := m.scheduler.After(constants.RevivalDelay, "respawn", func() {
			if revived && m.state.InRoster(id) && p.State == types.PlayerStateRevive {
				m.respawn(p)
			}
			m.RelaunchEntities()
		})
		if err != nil {
			m.logger.Error("Failed to schedule respawn: %v", err)
		}
	})
	if err != nil {
		m.logger.Error("Failed to schedule revival: %v", err)
	}
}

func (m *Match) respawn(p *types.PlayerRecord) {
	pos := kinematic.Vector{
		X: constants.RespawnMinX + m.rng.Float64()*(constants.RespawnMaxX-constants.RespawnMinX),
		Z: constants.RespawnMinZ + m.rng.Float64()*(constants.RespawnMaxZ-constants.RespawnMinZ),
	}
	p.SetPosition(pos)
	p.Rotation = kinematic.YawTowards(pos, kinematic.Zero)
	if err := lifecycle.Transition(p, types.PlayerStateAlive); err != nil {
		m.logger.Warn("Failed to respawn player %d: %v", p.ID, err)
	}
}

// ContinueMatch resumes play after an elimination that left more than one
// player standing.
func (m *Match) ContinueMatch() {
	_, err := m.scheduler.After(constants.RevivalDelay, "continue", func() {
		m.state.MatchState = types.MatchStatePlayerRevive
		if m.state.Beast != nil {
			m.state.Beast.Idle()
		}
		if _, err := m.scheduler.After(constants.RevivalDelay, "relaunch", m.RelaunchEntities); err != nil {
			m.logger.Error("Failed to schedule relaunch: %v", err)
		}
	})
	if err != nil {
		m.logger.Error("Failed to schedule continue: %v", err)
	}
}

// RelaunchEntities resets the beast and starts a new pass sequence.
func (m *Match) RelaunchEntities() {
	m.state.MatchState = types.MatchStatePlayerAlive
	m.clearBoost()
	m.resetBeast()
	m.launchBall()
}

// ConcludeMatch crowns the sole survivor, if any, and ends the match.
func (m *Match) ConcludeMatch() {
	winner := types.NoPlayer
	winnerName := ""
	if len(m.state.Remaining) == 1 {
		w := m.state.Players[m.state.Remaining[0]]
		w.IsWinner = true
		w.IsGameOver = true
		w.HasBall = false
		winner = w.ID
		winnerName = w.Name
	}

	m.state.MatchState = types.MatchStateMatchEnd
	m.state.BallCarrier = types.NoPlayer
	m.state.Ball = nil
	m.powerShot.OnBallCarrierChanged(false)
	m.scheduler.CancelAll()
	m.clearBoost()
	if m.state.Beast != nil {
		m.state.Beast.Idle()
	}

	m.bus.Publish(events.MatchDone{Winner: winner, WinnerName: winnerName})
	m.logger.Info("Match won by %d (%s)", winner, winnerName)
	m.concluded = true
}

// AbortMatch tears the match down without a winner. Pending continuations
// and undelivered events are dropped so none of them reach the reset state.
func (m *Match) AbortMatch() error {
	if !m.state.MatchState.InProgress() {
		return eris.Wrap(ErrMatchNotRunning, "abort match")
	}
	m.scheduler.CancelAll()
	m.clearBoost()
	for _, p := range m.state.Players {
		p.HasBall = false
		lifecycle.Park(p)
	}
	m.state.Remaining = nil
	m.state.BallCarrier = types.NoPlayer
	m.state.LastPassingPlayer = types.NoPlayer
	m.state.Ball = nil
	m.powerShot.OnBallCarrierChanged(false)
	if m.state.Beast != nil {
		m.resetBeast()
		m.state.Beast.Idle()
	}
	m.state.MatchState = types.MatchStatePreMatch
	m.bus.Reset()
	m.bus.Publish(events.MatchDone{Winner: types.NoPlayer})
	m.logger.Info("Match aborted")
	return nil
}

// RemovePlayer takes a departing player out of a running match. Their ball
// is dropped and relaunched, and a match left with one competitor ends.
// A departed passer no longer gets credit for kills.
func (m *Match) RemovePlayer(id types.PlayerID) {
	if !m.state.MatchState.InProgress() {
		return
	}
	p, ok := m.state.Player(id)
	if !ok {
		return
	}
	if m.state.LastPassingPlayer == id {
		m.state.LastPassingPlayer = types.NoPlayer
	}
	if !m.state.RemoveFromRoster(id) {
		return
	}
	hadBall := p.HasBall
	p.HasBall = false
	p.HasDestination = false
	p.IsGameOver = true
	if hadBall {
		m.state.BallCarrier = types.NoPlayer
		m.powerShot.OnBallCarrierChanged(false)
	}
	m.logger.Info("Player %d left the match (remaining=%d)", id, len(m.state.Remaining))

	if len(m.state.Remaining) <= 1 {
		m.ConcludeMatch()
		m.finish()
		return
	}
	if hadBall && m.state.MatchState == types.MatchStatePlayerAlive {
		m.clearBoost()
		m.resetBeast()
		m.launchBall()
	}
}

func (m *Match) finish() {
	if !m.concluded {
		return
	}
	m.concluded = false
	if m.onConcluded != nil {
		winner := types.NoPlayer
		for _, p := range m.state.Players {
			if p.IsWinner {
				winner = p.ID
			}
		}
		m.onConcluded(winner)
	}
}

// Update advances movement, the ball, the beast and the power-shot charge.
func (m *Match) Update(deltaTime float64) {
	for _, p := range m.state.Players {
		if p.Available {
			p.Update(deltaTime)
		}
	}
	if !m.state.MatchState.InProgress() {
		return
	}
	if m.state.MatchState == types.MatchStatePlayerAlive {
		m.state.BallSequenceTime += deltaTime
	}

	m.updateBall(deltaTime)
	m.updateBeast(deltaTime)

	if m.powerShot.Update(deltaTime) {
		m.bus.Publish(events.PowerShotBegin{Carrier: m.state.BallCarrier})
	}
}

func (m *Match) updateBall(deltaTime float64) {
	b := m.state.Ball
	if b == nil {
		return
	}
	target := m.state.Players[b.Target]
	if !m.state.InRoster(b.Target) || !target.IsAlive() {
		// the target left mid-flight
		m.state.Ball = nil
		if m.state.MatchState == types.MatchStatePlayerAlive {
			m.launchBall()
		}
		return
	}
	if b.Update(deltaTime, target.Position) {
		m.catchBall(target)
	}
}

func (m *Match) updateBeast(deltaTime float64) {
	beast := m.state.Beast
	if beast == nil || !beast.Hunting() {
		return
	}
	target, ok := m.state.Player(beast.Target)
	if !ok || !target.IsAlive() {
		return
	}
	beast.Update(deltaTime, target.Position)
}

// CheckBeastCollisions kills the ball carrier if the beast touches it.
func (m *Match) CheckBeastCollisions() {
	if m.state.MatchState != types.MatchStatePlayerAlive || m.state.Beast == nil {
		return
	}
	carrier, ok := m.state.Player(m.state.BallCarrier)
	if !ok || carrier.Object == nil {
		return
	}
	for _, obj := range collisions.Touching(m.state.Beast.Object) {
		if obj != carrier.Object {
			continue
		}
		if err := m.PlayerKilledByBeast(carrier.ID); err != nil {
			m.logger.Warn("Failed to resolve beast kill: %v", err)
		}
		return
	}
}

func (m *Match) resetBeast() {
	if m.state.Beast == nil {
		return
	}
	m.state.Beast.Reset()
	m.state.Beast.Rotation = 0
	m.state.Beast.SetPosition(kinematic.Vector{X: constants.BeastSpawnX, Y: constants.BeastSpawnY, Z: constants.BeastSpawnZ})
}

// boostBeast speeds the beast up for a power shot and schedules the revert
// to the values captured now. A boost still running is reverted first.
func (m *Match) boostBeast(charge float64) {
	m.clearBoost()
	m.boost = m.state.Beast.Boost(charge)
	m.boosted = true
	token, err := m.scheduler.After(constants.BeastPowerShotDuration, "power shot revert", func() {
		m.boosted = false
		if m.state.Beast != nil {
			m.state.Beast.Restore(m.boost)
		}
	})
	if err != nil {
		m.logger.Error("Failed to schedule power shot revert: %v", err)
		return
	}
	m.boostToken = token
}

func (m *Match) clearBoost() {
	if !m.boosted {
		return
	}
	m.scheduler.Cancel(m.boostToken)
	m.boosted = false
	if m.state.Beast != nil {
		m.state.Beast.Restore(m.boost)
	}
}

// Move sends a player towards destination, clamped to the arena.
func (m *Match) Move(id types.PlayerID, destination kinematic.Vector) bool {
	p, ok := m.state.Player(id)
	if !ok || !lifecycle.CanMove(p) {
		return false
	}
	p.Destination = clampToArena(destination)
	p.HasDestination = true
	return true
}

func (m *Match) Stop(id types.PlayerID) bool {
	p, ok := m.state.Player(id)
	if !ok || !lifecycle.CanMove(p) {
		return false
	}
	p.HasDestination = false
	return true
}

// Blink teleports a player and starts its cooldown.
func (m *Match) Blink(id types.PlayerID, destination kinematic.Vector) bool {
	if !m.state.MatchState.InProgress() {
		return false
	}
	p, ok := m.state.Player(id)
	if !ok || !lifecycle.CanBlink(p) {
		return false
	}
	dest := clampToArena(destination)
	if dest.Flat() != p.Position.Flat() {
		p.Rotation = kinematic.YawTowards(p.Position, dest)
	}
	p.SetPosition(dest)
	p.HasDestination = false
	p.BlinkOnCooldown = true
	p.BlinkCooldown = constants.PlayerBlinkCooldown
	m.bus.Publish(events.PlayerBlinked{Player: id, Destination: dest})
	return true
}

func (m *Match) Taunt(id types.PlayerID, taunt int) bool {
	if taunt < constants.PlayerMinTauntID || taunt > constants.PlayerMaxTauntID {
		return false
	}
	p, ok := m.state.Player(id)
	if !ok || !lifecycle.CanTaunt(p) {
		return false
	}
	m.bus.Publish(events.PlayerTaunted{Player: id, Taunt: taunt})
	return true
}

func clampToArena(v kinematic.Vector) kinematic.Vector {
	flat := v.Flat()
	if math.IsNaN(flat.X) || math.IsNaN(flat.Z) {
		return kinematic.Zero
	}
	if flat.Magnitude() > constants.ArenaRadius {
		return flat.Normalized().Scale(constants.ArenaRadius)
	}
	return flat
}
