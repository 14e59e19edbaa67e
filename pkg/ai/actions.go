package ai

import (
	"github.com/cbodonnell/beastball/pkg/game/types"
	"github.com/cbodonnell/beastball/pkg/kinematic"
)

// Action is one of the discrete outputs a policy can choose.
type Action int

const (
	ActionDoNothing Action = iota
	ActionDodgeBeast
	ActionGainDistance
	ActionPassBallRandomly
)

// NumActions is the size of the action space.
const NumActions = 4

const (
	behindBeastDistance = 8
	gainDistanceFactor  = 4
)

func (a Action) String() string {
	switch a {
	case ActionDoNothing:
		return "DoNothing"
	case ActionDodgeBeast:
		return "DodgeBeast"
	case ActionGainDistance:
		return "GainDistance"
	case ActionPassBallRandomly:
		return "PassBallRandomly"
	default:
		return "Unknown"
	}
}

// behindBeast returns the point distance units behind the beast.
func behindBeast(beast *types.BeastState, distance float64) kinematic.Vector {
	forward := kinematic.Forward(beast.Rotation)
	return beast.Position.Flat().Add(forward.Scale(-distance))
}

// Execute turns an action into intents. It reports whether an intent was emitted.
func Execute(action Action, h *Handle, s *types.Snapshot) bool {
	switch action {
	case ActionDoNothing:
		return h.Stop()
	case ActionDodgeBeast:
		if s.Beast == nil {
			return false
		}
		return h.Move(behindBeast(s.Beast, behindBeastDistance))
	case ActionGainDistance:
		if s.Beast == nil {
			return false
		}
		return h.Move(behindBeast(s.Beast, behindBeastDistance*gainDistanceFactor))
	case ActionPassBallRandomly:
		me, ok := s.Player(h.ID)
		if !ok || !me.HasBall {
			return false
		}
		return h.PassToRandomEnemy(s)
	default:
		return false
	}
}
