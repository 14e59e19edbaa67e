package ai

import (
	"math"

	"github.com/cbodonnell/beastball/pkg/events"
	"github.com/cbodonnell/beastball/pkg/game/types"
	"github.com/cbodonnell/beastball/pkg/kinematic"
)

const (
	tutorialInterval     = 0.5 // seconds
	tutorialFleeRadius   = 20
	tutorialFleeDistance = 15
	tutorialWanderExtent = 40
)

// TutorialBehaviour is the scripted opponent of the tutorial. It runs from
// the closest player, wanders around otherwise and gets rid of the ball as
// soon as it catches it.
type TutorialBehaviour struct {
	handle   *Handle
	active   bool
	timer    float64
	passNext bool
}

func NewTutorialBehaviour(handle *Handle) *TutorialBehaviour {
	return &TutorialBehaviour{handle: handle}
}

func (b *TutorialBehaviour) HandleEvent(e events.Event) {
	switch ev := e.(type) {
	case events.MatchStarted:
		b.active = true
		b.timer = tutorialInterval
	case events.MatchDone:
		b.active = false
		b.passNext = false
	case events.BallCaught:
		if ev.Catcher == b.handle.ID {
			b.passNext = true
		}
	}
}

func (b *TutorialBehaviour) Update(deltaTime float64, snapshot *types.Snapshot) {
	if !b.active || snapshot == nil {
		return
	}
	me, ok := snapshot.Player(b.handle.ID)
	if !ok {
		return
	}

	if b.passNext {
		b.passNext = false
		if me.HasBall {
			b.handle.PassToRandomEnemy(snapshot)
			return
		}
	}

	b.timer += deltaTime
	if b.timer < tutorialInterval {
		return
	}
	b.timer = 0
	if me.HasBall {
		return
	}

	closest, distance, found := closestEnemy(snapshot, me)
	if !found {
		return
	}
	if distance < tutorialFleeRadius {
		away := me.Position.Flat().Sub(closest.Position.Flat()).Normalized()
		b.handle.Move(me.Position.Flat().Add(away.Scale(tutorialFleeDistance)))
		return
	}
	rng := b.handle.Rand()
	b.handle.Move(kinematic.Vector{
		X: rng.Float64()*2*tutorialWanderExtent - tutorialWanderExtent,
		Z: rng.Float64()*2*tutorialWanderExtent - tutorialWanderExtent,
	})
}

func closestEnemy(s *types.Snapshot, me types.PlayerRecord) (types.PlayerRecord, float64, bool) {
	var closest types.PlayerRecord
	best := math.Inf(1)
	for _, enemy := range s.RemainingEnemies(me.ID) {
		d := kinematic.Distance(me.Position.Flat(), enemy.Position.Flat())
		if d < best {
			best = d
			closest = enemy
		}
	}
	return closest, best, !math.IsInf(best, 1)
}
