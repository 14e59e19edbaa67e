package ai

import (
	"testing"

	"github.com/cbodonnell/beastball/pkg/events"
	"github.com/cbodonnell/beastball/pkg/game/types"
	"github.com/cbodonnell/beastball/pkg/kinematic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTutorialBehaviour_flees(t *testing.T) {
	h, emitter := newTestHandle(0)
	b := NewTutorialBehaviour(h)
	s := testSnapshot(kinematic.Vector{X: 0, Z: 0}, kinematic.Vector{X: 10, Z: 0}, kinematic.Vector{X: -30, Z: 0})
	b.HandleEvent(events.MatchStarted{})

	b.Update(0.01, s)
	require.Len(t, emitter.intents, 1)
	move := emitter.last().(types.MoveIntent)
	assert.InDelta(t, -15, move.Destination.X, 1e-9)
	assert.InDelta(t, 0, move.Destination.Z, 1e-9)

	// next decision only after the interval
	b.Update(0.4, s)
	assert.Len(t, emitter.intents, 1)
	b.Update(0.15, s)
	assert.Len(t, emitter.intents, 2)
}

func TestTutorialBehaviour_wanders(t *testing.T) {
	h, emitter := newTestHandle(0)
	b := NewTutorialBehaviour(h)
	s := testSnapshot(kinematic.Vector{X: 0, Z: 0}, kinematic.Vector{X: 50, Z: 0})
	b.HandleEvent(events.MatchStarted{})

	b.Update(0.01, s)
	require.Len(t, emitter.intents, 1)
	move := emitter.last().(types.MoveIntent)
	assert.GreaterOrEqual(t, move.Destination.X, -40.0)
	assert.LessOrEqual(t, move.Destination.X, 40.0)
	assert.GreaterOrEqual(t, move.Destination.Z, -40.0)
	assert.LessOrEqual(t, move.Destination.Z, 40.0)
}

func TestTutorialBehaviour_passesOnCatch(t *testing.T) {
	h, emitter := newTestHandle(0)
	b := NewTutorialBehaviour(h)
	s := testSnapshot(kinematic.Vector{X: 0, Z: 0}, kinematic.Vector{X: 50, Z: 0})
	b.HandleEvent(events.MatchStarted{})

	// someone else caught it
	b.HandleEvent(events.BallCaught{Catcher: 1})
	s.Players[0].HasBall = true
	b.Update(0.01, s)
	for _, intent := range emitter.intents {
		assert.IsType(t, types.MoveIntent{}, intent)
	}

	emitter.intents = nil
	b.HandleEvent(events.BallCaught{Catcher: 0})
	b.Update(0.01, s)
	require.Len(t, emitter.intents, 1)
	assert.Equal(t, types.PassBallIntent{PlayerID: 0, TargetID: 1}, emitter.last())
}
