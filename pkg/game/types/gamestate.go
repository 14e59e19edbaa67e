package types

import (
	"github.com/cbodonnell/beastball/pkg/game/constants"
	"github.com/solarlune/resolv"
)

// GameState is the authoritative state of one match instance. It is owned
// by the game loop and never shared; readers get a Snapshot.
type GameState struct {
	// MatchID identifies the current match, empty before the first launch
	MatchID string
	// Timestamp is the time at which the game state was last ticked
	Timestamp int64
	// MatchState is the current phase of the match
	MatchState MatchState
	// Players are the eight player slots indexed by PlayerID
	Players [constants.MaxPlayers]*PlayerRecord
	// Remaining are the ids still competing, in roster order
	Remaining []PlayerID
	// BallCarrier is the player holding the ball, or NoPlayer
	BallCarrier PlayerID
	// LastPassingPlayer is the source of the last relay pass, or NoPlayer
	LastPassingPlayer PlayerID
	// Beast is nil until the match spawns it
	Beast *BeastState
	// Ball is non-nil only while a pass is in flight
	Ball *Ball
	// InfiniteLives disables life loss and the humiliation penalty
	InfiniteLives bool
	// DefaultLives is the number of lives a registered player starts with
	DefaultLives int
	// BallSequenceTime is the time since the last initial pass
	BallSequenceTime float64
	// CollisionSpace is a resolv.Space used for beast contact detection
	CollisionSpace *resolv.Space
}

func NewGameState(collisionSpace *resolv.Space) *GameState {
	g := &GameState{
		MatchState:        MatchStatePreMatch,
		BallCarrier:       NoPlayer,
		LastPassingPlayer: NoPlayer,
		DefaultLives:      constants.DefaultLives,
		CollisionSpace:    collisionSpace,
	}
	for i := range g.Players {
		g.Players[i] = NewPlayerRecord(PlayerID(i))
	}
	return g
}

// Player returns the record for id.
func (g *GameState) Player(id PlayerID) (*PlayerRecord, bool) {
	if !id.Valid() {
		return nil, false
	}
	return g.Players[id], true
}

// InRoster reports whether id is still competing.
func (g *GameState) InRoster(id PlayerID) bool {
	for _, r := range g.Remaining {
		if r == id {
			return true
		}
	}
	return false
}

// RemoveFromRoster removes id from the remaining players and reports whether it was present.
func (g *GameState) RemoveFromRoster(id PlayerID) bool {
	for i, r := range g.Remaining {
		if r == id {
			g.Remaining = append(g.Remaining[:i], g.Remaining[i+1:]...)
			return true
		}
	}
	return false
}

// CarrierCount counts the records that hold the ball.
func (g *GameState) CarrierCount() int {
	count := 0
	for _, p := range g.Players {
		if p.HasBall {
			count++
		}
	}
	return count
}

// AvailablePlayers returns the ids of the taken slots.
func (g *GameState) AvailablePlayers() []PlayerID {
	ids := make([]PlayerID, 0, constants.MaxPlayers)
	for _, p := range g.Players {
		if p.Available {
			ids = append(ids, p.ID)
		}
	}
	return ids
}
