package ai

import (
	"math/rand"

	"github.com/cbodonnell/beastball/pkg/game/types"
	"github.com/cbodonnell/beastball/pkg/kinematic"
)

// IntentEmitter forwards intents to the game loop. The game validates them
// on the next tick exactly like intents from network clients.
type IntentEmitter interface {
	EmitIntent(intent types.Intent) bool
}

// Handle is the only way an AI behaviour acts on the match.
type Handle struct {
	ID      types.PlayerID
	emitter IntentEmitter
	rng     *rand.Rand
}

func NewHandle(id types.PlayerID, emitter IntentEmitter, rng *rand.Rand) *Handle {
	return &Handle{
		ID:      id,
		emitter: emitter,
		rng:     rng,
	}
}

// Rand returns the behaviour's random source.
func (h *Handle) Rand() *rand.Rand {
	return h.rng
}

func (h *Handle) Move(destination kinematic.Vector) bool {
	return h.emitter.EmitIntent(types.MoveIntent{PlayerID: h.ID, Destination: destination})
}

func (h *Handle) Stop() bool {
	return h.emitter.EmitIntent(types.StopIntent{PlayerID: h.ID})
}

func (h *Handle) Blink(destination kinematic.Vector) bool {
	return h.emitter.EmitIntent(types.BlinkIntent{PlayerID: h.ID, Destination: destination})
}

func (h *Handle) PassBall(target types.PlayerID) bool {
	return h.emitter.EmitIntent(types.PassBallIntent{PlayerID: h.ID, TargetID: target})
}

func (h *Handle) Taunt(taunt int) bool {
	return h.emitter.EmitIntent(types.TauntIntent{PlayerID: h.ID, TauntID: taunt})
}

// PassToRandomEnemy passes to a uniformly random remaining enemy.
func (h *Handle) PassToRandomEnemy(s *types.Snapshot) bool {
	enemies := s.RemainingEnemies(h.ID)
	if len(enemies) == 0 {
		return false
	}
	return h.PassBall(enemies[h.rng.Intn(len(enemies))].ID)
}
