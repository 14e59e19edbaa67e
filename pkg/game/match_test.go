package game

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/cbodonnell/beastball/pkg/collisions"
	"github.com/cbodonnell/beastball/pkg/events"
	"github.com/cbodonnell/beastball/pkg/game/constants"
	"github.com/cbodonnell/beastball/pkg/game/types"
	"github.com/cbodonnell/beastball/pkg/registration"
	"github.com/cbodonnell/beastball/pkg/scheduler"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type matchFixture struct {
	state     *types.GameState
	bus       *events.Bus
	sched     *scheduler.Scheduler
	match     *Match
	concluded []types.PlayerID
}

func newMatchFixture(t *testing.T, players int, lives int) *matchFixture {
	t.Helper()
	state := types.NewGameState(collisions.NewCollisionSpace())
	for _, p := range state.Players {
		p.Object = collisions.NewPlayerObject()
		state.CollisionSpace.Add(p.Object)
	}

	f := &matchFixture{
		state: state,
		bus:   events.NewBus(),
		sched: scheduler.New(),
	}
	f.match = NewMatch(MatchOptions{
		State:     state,
		Bus:       f.bus,
		Scheduler: f.sched,
		Rand:      rand.New(rand.NewSource(7)),
		OnConcluded: func(winner types.PlayerID) {
			f.concluded = append(f.concluded, winner)
		},
	})

	svc := registration.NewService(state)
	for i := 0; i < players; i++ {
		_, err := svc.RegisterPlayer(uint32(i+1), fmt.Sprintf("player-%d", i))
		require.NoError(t, err)
	}
	require.NoError(t, svc.SetPlayerLives(lives))
	svc.PrepareMatch()
	return f
}

// start runs the match through the settle and start delays up to the first pass.
func (f *matchFixture) start(t *testing.T) {
	t.Helper()
	require.NoError(t, f.match.StartMatch())
	f.sched.Advance(constants.MatchSettleDelay)
	require.Equal(t, types.MatchStateMatchStart, f.state.MatchState)
	f.sched.Advance(constants.MatchStartDelay)
	require.Equal(t, types.MatchStatePlayerAlive, f.state.MatchState)
	require.NotNil(t, f.state.Ball)
}

// launchTo replaces the ball in flight with an initial pass to id.
func (f *matchFixture) launchTo(t *testing.T, id types.PlayerID) {
	t.Helper()
	f.state.Ball = nil
	require.NoError(t, f.match.PassBall(true, id, types.NoPlayer))
}

// landBall runs the simulation until somebody catches the ball.
func (f *matchFixture) landBall(t *testing.T) types.PlayerID {
	t.Helper()
	for i := 0; i < 2000 && f.state.BallCarrier == types.NoPlayer; i++ {
		f.match.Update(0.01)
	}
	require.NotEqual(t, types.NoPlayer, f.state.BallCarrier, "ball never landed")
	return f.state.BallCarrier
}

func eventTypes(envelopes []events.Envelope) []events.Type {
	out := make([]events.Type, 0, len(envelopes))
	for _, e := range envelopes {
		out = append(out, e.Type)
	}
	return out
}

func assertCarrierInvariant(t *testing.T, state *types.GameState) {
	t.Helper()
	count := state.CarrierCount()
	require.LessOrEqual(t, count, 1)
	if state.BallCarrier == types.NoPlayer {
		require.Equal(t, 0, count)
		return
	}
	require.Equal(t, 1, count)
	require.True(t, state.Players[state.BallCarrier].HasBall)
	require.Nil(t, state.Ball)
}

func TestMatch_StartMatch(t *testing.T) {
	f := newMatchFixture(t, 3, 2)

	require.NoError(t, f.match.StartMatch())
	assert.NotEmpty(t, f.state.MatchID)
	assert.Equal(t, types.MatchStateMatchStart, f.state.MatchState)
	assert.Empty(t, f.state.Remaining)

	err := f.match.StartMatch()
	assert.True(t, eris.Is(err, ErrMatchInProgress))

	f.sched.Advance(constants.MatchSettleDelay)
	assert.Equal(t, []types.PlayerID{0, 1, 2}, f.state.Remaining)
	require.NotNil(t, f.state.Beast)
	assert.Equal(t, types.BeastModeIdle, f.state.Beast.Mode)
	for _, id := range f.state.Remaining {
		assert.Equal(t, types.PlayerStateAlive, f.state.Players[id].State)
	}
	for _, p := range f.state.Players[3:] {
		assert.True(t, p.IsGameOver)
	}
	assert.Equal(t, []events.Type{events.TypeMatchStarted}, eventTypes(f.bus.Drain()))

	f.sched.Advance(constants.MatchStartDelay)
	assert.Equal(t, types.MatchStatePlayerAlive, f.state.MatchState)
	require.NotNil(t, f.state.Ball)
	assert.True(t, f.state.Ball.Initial)
	assert.Equal(t, InitialBallSpawn, f.state.Ball.Position)

	envelopes := f.bus.Drain()
	require.Len(t, envelopes, 1)
	passed := envelopes[0].Event.(events.BallPassed)
	assert.True(t, passed.Initial)
	assert.Equal(t, types.NoPlayer, passed.Source)
	assert.True(t, f.state.InRoster(passed.Target))
}

func TestMatch_atMostOneCarrier(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			f := newMatchFixture(t, 6, 1)
			rng := rand.New(rand.NewSource(seed))
			f.start(t)

			const dt = 0.02
			for i := 0; i < 5000 && f.state.MatchState != types.MatchStateMatchEnd; i++ {
				f.sched.Advance(dt)
				if carrier := f.state.BallCarrier; carrier != types.NoPlayer && rng.Float64() < 0.05 {
					target := f.state.Remaining[rng.Intn(len(f.state.Remaining))]
					// passes to yourself or to the dead are rejected, which is fine here
					_ = f.match.PassBall(false, target, carrier)
				}
				f.match.Update(dt)
				f.match.CheckBeastCollisions()
				assertCarrierInvariant(t, f.state)
			}
		})
	}
}

func TestMatch_PlayerKilledByBeast_idempotent(t *testing.T) {
	f := newMatchFixture(t, 3, 2)
	f.start(t)
	holder := f.landBall(t)
	f.bus.Drain()

	require.NoError(t, f.match.PlayerKilledByBeast(holder))
	before := *f.state.Players[holder]
	matchState := f.state.MatchState
	pending := f.sched.Pending()
	f.bus.Drain()

	err := f.match.PlayerKilledByBeast(holder)
	assert.True(t, eris.Is(err, ErrNotKillable))
	assert.Equal(t, before, *f.state.Players[holder])
	assert.Equal(t, matchState, f.state.MatchState)
	assert.Equal(t, pending, f.sched.Pending())
	assert.Empty(t, f.bus.Drain())

	// unseated slots and finished matches are rejected as well
	assert.True(t, eris.Is(f.match.PlayerKilledByBeast(7), ErrNotKillable))
	assert.True(t, eris.Is(f.match.PlayerKilledByBeast(types.NoPlayer), ErrNotKillable))
}

func TestMatch_deterministicWinner(t *testing.T) {
	for n := 2; n <= constants.MaxPlayers; n++ {
		for _, kills := range []int{n - 2, n - 1} {
			t.Run(fmt.Sprintf("%d players %d eliminated", n, kills), func(t *testing.T) {
				f := newMatchFixture(t, n, 1)
				for _, p := range f.state.Players[:n] {
					p.Lives = 0
				}
				f.start(t)

				for i := 0; i < kills; i++ {
					require.NoError(t, f.match.PlayerKilledByBeast(types.PlayerID(i)))
				}

				winners := 0
				for _, p := range f.state.Players {
					if p.IsWinner {
						winners++
					}
				}

				if kills < n-1 {
					assert.NotEqual(t, types.MatchStateMatchEnd, f.state.MatchState)
					assert.Zero(t, winners)
					assert.Empty(t, f.concluded)
					assert.Len(t, f.state.Remaining, n-kills)
					return
				}

				last := types.PlayerID(n - 1)
				assert.Equal(t, types.MatchStateMatchEnd, f.state.MatchState)
				assert.Equal(t, 1, winners)
				assert.True(t, f.state.Players[last].IsWinner)
				assert.True(t, f.state.Players[last].IsGameOver)
				assert.Equal(t, []types.PlayerID{last}, f.state.Remaining)
				assert.Equal(t, []types.PlayerID{last}, f.concluded)
				assert.Empty(t, f.sched.Pending())
			})
		}
	}
}

func TestMatch_anyEliminationOrder(t *testing.T) {
	for seed := int64(1); seed <= 12; seed++ {
		rng := rand.New(rand.NewSource(seed))
		n := 2 + rng.Intn(constants.MaxPlayers-1)
		order := rng.Perm(n)
		lives := make([]int, n)
		for i := range lives {
			lives[i] = rng.Intn(3)
		}

		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			f := newMatchFixture(t, n, 1)
			for i, p := range f.state.Players[:n] {
				p.Lives = lives[i]
			}
			f.start(t)

			survivor := types.PlayerID(order[n-1])
			for _, id := range order[:n-1] {
				victim := types.PlayerID(id)
				for deaths := 0; deaths <= lives[id]; deaths++ {
					require.NoError(t, f.match.PlayerKilledByBeast(victim))
					if f.state.MatchState == types.MatchStateMatchEnd {
						break
					}
					f.sched.Advance(constants.RevivalDelay)
					f.sched.Advance(constants.RevivalDelay)
					require.Equal(t, types.MatchStatePlayerAlive, f.state.MatchState)
					assertCarrierInvariant(t, f.state)
				}
				assert.False(t, f.state.InRoster(victim))
			}

			winners := 0
			for _, p := range f.state.Players {
				if p.IsWinner {
					winners++
				}
			}
			assert.Equal(t, types.MatchStateMatchEnd, f.state.MatchState)
			assert.Equal(t, 1, winners)
			assert.True(t, f.state.Players[survivor].IsWinner)
			assert.Equal(t, []types.PlayerID{survivor}, f.state.Remaining)
			assert.Equal(t, []types.PlayerID{survivor}, f.concluded)
			assert.Empty(t, f.sched.Pending())
		})
	}
}

func TestMatch_finalKillEventOrder(t *testing.T) {
	f := newMatchFixture(t, 2, 1)
	f.state.Players[0].Lives = 0
	f.start(t)
	f.bus.Drain()

	require.NoError(t, f.match.PlayerKilledByBeast(0))
	assert.Equal(t, []events.Type{
		events.TypeBeastKilledPlayer,
		events.TypeMatchDone,
		events.TypePlayerKilled,
	}, eventTypes(f.bus.Drain()))
}

func TestMatch_killCredit(t *testing.T) {
	tests := []struct {
		name          string
		infiniteLives bool
		relay         bool
		wantVictim    int
		wantKiller    int
		wantLives     int
		wantHumiliate bool
	}{
		{
			name:       "last passer gets the kill",
			relay:      true,
			wantVictim: 0,
			wantKiller: 1,
			wantLives:  1,
		},
		{
			name:          "no passer humiliates the victim",
			wantVictim:    -1,
			wantLives:     1,
			wantHumiliate: true,
		},
		{
			name:          "infinite lives has no penalty",
			infiniteLives: true,
			wantVictim:    0,
			wantLives:     2,
			wantHumiliate: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMatchFixture(t, 3, 2)
			f.state.InfiniteLives = tt.infiniteLives
			f.start(t)
			f.launchTo(t, 0)
			carrier := f.landBall(t)
			require.Equal(t, types.PlayerID(0), carrier)

			victim := types.PlayerID(0)
			if tt.relay {
				require.NoError(t, f.match.PassBall(false, 1, 0))
				assert.Equal(t, types.PlayerID(0), f.state.LastPassingPlayer)
				victim = 1
			}
			f.bus.Drain()

			require.NoError(t, f.match.PlayerKilledByBeast(victim))

			var killed events.PlayerKilled
			for _, e := range f.bus.Drain() {
				if pk, ok := e.Event.(events.PlayerKilled); ok {
					killed = pk
				}
			}
			assert.Equal(t, victim, killed.Victim)
			assert.Equal(t, tt.wantHumiliate, killed.Humiliated)
			assert.Equal(t, tt.wantVictim, f.state.Players[victim].Kills)
			assert.Equal(t, tt.wantLives, f.state.Players[victim].Lives)
			if tt.relay {
				assert.Equal(t, types.PlayerID(0), killed.Killer)
				assert.Equal(t, tt.wantKiller, f.state.Players[0].Kills)
				assert.True(t, f.state.Players[0].HasKilled)
			} else {
				assert.Equal(t, types.NoPlayer, killed.Killer)
			}
		})
	}
}

func TestMatch_powerShotReset(t *testing.T) {
	f := newMatchFixture(t, 3, 2)
	f.start(t)
	f.launchTo(t, 0)
	f.landBall(t)
	f.bus.Drain()

	tracker := f.match.PowerShot()
	for i := 0; i < 80; i++ {
		f.match.Update(0.1)
	}
	require.True(t, tracker.IsPowerShot())
	require.Greater(t, tracker.Charge(), 0.0)
	assert.Contains(t, eventTypes(f.bus.Drain()), events.TypePowerShotBegin)

	require.NoError(t, f.match.PassBall(false, 1, 0))
	assert.False(t, tracker.IsPowerShot())
	assert.Zero(t, tracker.Charge())
	assert.True(t, f.state.Ball.IsPowerShot)
	assert.Contains(t, f.sched.Pending(), "power shot revert")

	passed := f.bus.Drain()[0].Event.(events.BallPassed)
	assert.True(t, passed.IsPowerShot)
	assert.Greater(t, passed.PowerShotCharge, 0.0)

	// catching arms a fresh episode, a kill clears it
	f.landBall(t)
	for i := 0; i < 80; i++ {
		f.match.Update(0.1)
	}
	require.True(t, tracker.IsPowerShot())
	require.NoError(t, f.match.PlayerKilledByBeast(1))
	assert.False(t, tracker.IsPowerShot())
	assert.Zero(t, tracker.Charge())
	assert.False(t, tracker.State().Armed)
}

func TestMatch_initialHolderKilledWithoutPass(t *testing.T) {
	f := newMatchFixture(t, 4, 2)
	f.start(t)
	f.launchTo(t, 2)
	require.Equal(t, types.PlayerID(2), f.landBall(t))
	f.bus.Drain()

	require.NoError(t, f.match.PlayerKilledByBeast(2))

	p := f.state.Players[2]
	assert.Equal(t, 1, p.Lives)
	assert.Equal(t, types.PlayerStateDead, p.State)
	assert.Equal(t, -1, p.Kills)
	assert.False(t, p.HasBall)
	assert.Len(t, f.state.Remaining, 4)
	assert.Equal(t, types.MatchStatePlayerDead, f.state.MatchState)
	assert.Equal(t, types.NoPlayer, f.state.BallCarrier)
	assert.Equal(t, []string{"revive"}, f.sched.Pending())
	assert.Equal(t, []events.Type{events.TypeBeastKilledPlayer, events.TypePlayerKilled}, eventTypes(f.bus.Drain()))

	f.sched.Advance(constants.RevivalDelay)
	assert.Equal(t, types.MatchStatePlayerRevive, f.state.MatchState)
	assert.Equal(t, types.PlayerStateRevive, p.State)
	assert.Equal(t, types.BeastModeIdle, f.state.Beast.Mode)

	f.sched.Advance(constants.RevivalDelay)
	assert.Equal(t, types.MatchStatePlayerAlive, f.state.MatchState)
	assert.Equal(t, types.PlayerStateAlive, p.State)
	require.NotNil(t, f.state.Ball)
	assert.True(t, f.state.Ball.Initial)
	assert.Equal(t, types.NoPlayer, f.state.LastPassingPlayer)
	assert.Len(t, f.state.Remaining, 4)
}

func TestMatch_PassBall_rejections(t *testing.T) {
	f := newMatchFixture(t, 3, 2)

	err := f.match.PassBall(false, 1, 0)
	assert.True(t, eris.Is(err, ErrMatchNotRunning))

	f.start(t)
	f.launchTo(t, 0)
	f.landBall(t)

	tests := []struct {
		name   string
		target types.PlayerID
		acting types.PlayerID
	}{
		{name: "to self", target: 0, acting: 0},
		{name: "not the carrier", target: 2, acting: 1},
		{name: "not in the roster", target: 5, acting: 0},
		{name: "invalid target", target: types.NoPlayer, acting: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.match.PassBall(false, tt.target, tt.acting)
			assert.True(t, eris.Is(err, ErrIllegalPass))
			assert.Equal(t, types.PlayerID(0), f.state.BallCarrier)
		})
	}

	err = f.match.PassBall(true, 1, types.NoPlayer)
	assert.True(t, eris.Is(err, ErrIllegalPass), "initial pass while the ball is held")
}

func TestMatch_RemovePlayer(t *testing.T) {
	t.Run("carrier leaves", func(t *testing.T) {
		f := newMatchFixture(t, 3, 2)
		f.start(t)
		f.launchTo(t, 0)
		f.landBall(t)

		f.match.RemovePlayer(0)
		assert.False(t, f.state.InRoster(0))
		assert.False(t, f.state.Players[0].HasBall)
		assertCarrierInvariant(t, f.state)
		require.NotNil(t, f.state.Ball)
		assert.True(t, f.state.Ball.Initial)
		assert.NotEqual(t, types.PlayerID(0), f.state.Ball.Target)
	})

	t.Run("last opponent leaves", func(t *testing.T) {
		f := newMatchFixture(t, 2, 2)
		f.start(t)

		f.match.RemovePlayer(1)
		assert.Equal(t, types.MatchStateMatchEnd, f.state.MatchState)
		assert.True(t, f.state.Players[0].IsWinner)
		assert.Equal(t, []types.PlayerID{0}, f.concluded)
	})

	t.Run("dead player leaves before revival", func(t *testing.T) {
		f := newMatchFixture(t, 3, 2)
		f.start(t)
		holder := f.landBall(t)
		require.NoError(t, f.match.PlayerKilledByBeast(holder))

		f.match.RemovePlayer(holder)
		f.state.Players[holder].Reset(2)
		require.Len(t, f.state.Remaining, 2)

		f.sched.Advance(constants.RevivalDelay)
		assert.Equal(t, types.MatchStatePlayerRevive, f.state.MatchState)
		f.sched.Advance(constants.RevivalDelay)

		assert.Equal(t, types.MatchStatePlayerAlive, f.state.MatchState)
		assert.Equal(t, types.PlayerStateMatchStart, f.state.Players[holder].State)
		assert.False(t, f.state.InRoster(holder))
		require.NotNil(t, f.state.Ball)
		assert.True(t, f.state.InRoster(f.state.Ball.Target))
		assertCarrierInvariant(t, f.state)
	})

	t.Run("departed passer gets no credit", func(t *testing.T) {
		f := newMatchFixture(t, 3, 2)
		f.start(t)
		f.launchTo(t, 0)
		f.landBall(t)
		require.NoError(t, f.match.PassBall(false, 1, 0))

		f.match.RemovePlayer(0)
		assert.Equal(t, types.NoPlayer, f.state.LastPassingPlayer)
		require.NoError(t, f.match.PlayerKilledByBeast(1))
		assert.Equal(t, -1, f.state.Players[1].Kills)
	})
}

func TestMatch_AbortMatch(t *testing.T) {
	f := newMatchFixture(t, 3, 2)
	assert.True(t, eris.Is(f.match.AbortMatch(), ErrMatchNotRunning))

	f.start(t)
	holder := f.landBall(t)
	require.NoError(t, f.match.PlayerKilledByBeast(holder))
	require.NotEmpty(t, f.sched.Pending())
	require.NotZero(t, f.bus.Pending())

	// the kill is dropped with the rest of the torn-down match
	require.NoError(t, f.match.AbortMatch())
	assert.Equal(t, 1, f.bus.Pending())
	assert.Equal(t, types.MatchStatePreMatch, f.state.MatchState)
	assert.Empty(t, f.sched.Pending())
	assert.Empty(t, f.state.Remaining)
	assertCarrierInvariant(t, f.state)

	// stale continuations never fire
	f.sched.Advance(2 * constants.RevivalDelay)
	assert.Equal(t, types.MatchStatePreMatch, f.state.MatchState)
	assert.Equal(t, types.PlayerStateMatchStart, f.state.Players[holder].State)

	done := f.bus.Drain()
	require.Len(t, done, 1)
	assert.Equal(t, events.MatchDone{Winner: types.NoPlayer}, done[0].Event)
}

func TestMatch_intents(t *testing.T) {
	f := newMatchFixture(t, 2, 2)

	assert.False(t, f.match.Blink(0, InitialBallSpawn), "blink before the match")

	f.start(t)
	f.bus.Drain()

	far := types.PlayerSpawnPoints[2].Scale(10)
	require.True(t, f.match.Move(0, far))
	assert.InDelta(t, constants.ArenaRadius, f.state.Players[0].Destination.Magnitude(), 1e-9)
	assert.True(t, f.match.Stop(0))
	assert.False(t, f.state.Players[0].HasDestination)

	require.True(t, f.match.Blink(1, far))
	assert.True(t, f.state.Players[1].BlinkOnCooldown)
	assert.InDelta(t, constants.ArenaRadius, f.state.Players[1].Position.Magnitude(), 1e-9)
	assert.False(t, f.match.Blink(1, far), "blink on cooldown")

	assert.False(t, f.match.Taunt(1, 3), "taunt without a kill")
	f.state.Players[1].HasKilled = true
	assert.False(t, f.match.Taunt(1, 0))
	assert.False(t, f.match.Taunt(1, 9))
	assert.True(t, f.match.Taunt(1, 8))

	assert.Equal(t, []events.Type{events.TypePlayerBlinked, events.TypePlayerTaunted}, eventTypes(f.bus.Drain()))

	assert.False(t, f.match.Move(types.NoPlayer, far))
	assert.False(t, f.match.Move(5, far), "unseated slot")
}
