// Package lifecycle is the per-player state machine:
//
//	MatchStart -> Alive -> Dead -> Revive -> Alive -> ... -> GameOver
//
// GameOver is terminal for the match and is represented by the record's
// IsGameOver flag on top of the Dead state. Every player has exactly one
// active state; the predicates below are the only place that decides which
// intents that state allows.
package lifecycle

import (
	"github.com/cbodonnell/beastball/pkg/game/types"
	"github.com/rotisserie/eris"
)

var (
	// ErrIllegalTransition is returned when a transition is not in the table.
	ErrIllegalTransition = eris.New("illegal player state transition")
	// ErrGameOver is returned for any transition on an eliminated player.
	ErrGameOver = eris.New("player is game over")
)

var transitions = map[types.PlayerState][]types.PlayerState{
	types.PlayerStateMatchStart: {types.PlayerStateAlive},
	types.PlayerStateAlive:      {types.PlayerStateDead},
	types.PlayerStateDead:       {types.PlayerStateRevive},
	types.PlayerStateRevive:     {types.PlayerStateAlive},
}

// CanTransition reports whether from -> to is legal.
func CanTransition(from, to types.PlayerState) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition moves p into state to. The record is left untouched on error.
func Transition(p *types.PlayerRecord, to types.PlayerState) error {
	if p.IsGameOver {
		return eris.Wrapf(ErrGameOver, "player %d cannot enter %s", p.ID, to)
	}
	if !CanTransition(p.State, to) {
		return eris.Wrapf(ErrIllegalTransition, "player %d: %s -> %s", p.ID, p.State, to)
	}
	p.State = to
	if to != types.PlayerStateAlive {
		p.HasDestination = false
	}
	return nil
}

// Eliminate moves a dead player into the terminal GameOver state.
func Eliminate(p *types.PlayerRecord) error {
	if p.IsGameOver {
		return eris.Wrapf(ErrGameOver, "player %d already eliminated", p.ID)
	}
	if p.State != types.PlayerStateDead {
		return eris.Wrapf(ErrIllegalTransition, "player %d: %s -> GameOver", p.ID, p.State)
	}
	p.IsGameOver = true
	return nil
}

// Enter admits a match-ready player into a new match and makes it Alive.
// It is the only way out of GameOver.
func Enter(p *types.PlayerRecord) {
	p.IsGameOver = false
	p.IsWinner = false
	p.State = types.PlayerStateAlive
}

// Park puts a player back into MatchStart without touching lives or score.
func Park(p *types.PlayerRecord) {
	p.State = types.PlayerStateMatchStart
	p.HasDestination = false
}

// CanBeKilled reports whether a beast kill may be applied to p.
func CanBeKilled(p *types.PlayerRecord) bool {
	return !p.IsGameOver && p.State == types.PlayerStateAlive
}

// CanMove reports whether p may walk.
func CanMove(p *types.PlayerRecord) bool {
	return !p.IsGameOver && p.State == types.PlayerStateAlive
}

// CanPass reports whether p may pass the ball.
func CanPass(p *types.PlayerRecord) bool {
	return CanMove(p) && p.HasBall
}

// CanBlink reports whether p may blink.
func CanBlink(p *types.PlayerRecord) bool {
	return CanMove(p) && !p.BlinkOnCooldown
}

// CanTaunt reports whether p may taunt. Only players who scored a kill on
// the current ball sequence may taunt.
func CanTaunt(p *types.PlayerRecord) bool {
	return CanMove(p) && p.HasKilled
}
