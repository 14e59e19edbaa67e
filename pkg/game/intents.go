package game

import (
	"github.com/cbodonnell/beastball/pkg/game/types"
	"github.com/cbodonnell/beastball/pkg/kinematic"
	"github.com/cbodonnell/beastball/pkg/log"
)

// applyIntent validates and applies an intent from a client or an agent.
func (gm *GameManager) applyIntent(intent types.Intent) bool {
	switch i := intent.(type) {
	case types.MoveIntent:
		return gm.Move(i.PlayerID, i.Destination)
	case types.StopIntent:
		return gm.Stop(i.PlayerID)
	case types.BlinkIntent:
		return gm.Blink(i.PlayerID, i.Destination)
	case types.PassBallIntent:
		return gm.PassBall(i.PlayerID, i.TargetID)
	case types.TauntIntent:
		return gm.Taunt(i.PlayerID, i.TauntID)
	default:
		log.Error("unhandled intent type: %T", intent)
		return false
	}
}

func (gm *GameManager) Move(id types.PlayerID, destination kinematic.Vector) bool {
	if !gm.match.Move(id, destination) {
		log.Debug("Rejected move from player %d", id)
		return false
	}
	return true
}

func (gm *GameManager) Stop(id types.PlayerID) bool {
	if !gm.match.Stop(id) {
		log.Debug("Rejected stop from player %d", id)
		return false
	}
	return true
}

func (gm *GameManager) Blink(id types.PlayerID, destination kinematic.Vector) bool {
	if !gm.match.Blink(id, destination) {
		log.Debug("Rejected blink from player %d", id)
		return false
	}
	return true
}

// PassBall relays the ball held by id to target.
func (gm *GameManager) PassBall(id, target types.PlayerID) bool {
	if err := gm.match.PassBall(false, target, id); err != nil {
		log.Debug("Rejected pass from player %d: %v", id, err)
		return false
	}
	return true
}

// Taunt plays taunt 1..8. Only a player who scored on the current ball sequence may taunt.
func (gm *GameManager) Taunt(id types.PlayerID, taunt int) bool {
	if !gm.match.Taunt(id, taunt) {
		log.Debug("Rejected taunt %d from player %d", taunt, id)
		return false
	}
	return true
}
