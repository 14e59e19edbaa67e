package ai

import (
	"github.com/cbodonnell/beastball/pkg/kinematic"
)

// RulePolicy is a fixed rule set. The carrier keeps the beast behind it
// until the power shot has charged enough or the beast gets too close,
// everyone else keeps their distance.
type RulePolicy struct {
	// DangerDistance is the beast distance at which the carrier passes
	DangerDistance float64
	// PassCharge is the power shot charge at which the carrier passes
	PassCharge float64
	// SafeDistance is the beast distance players without the ball try to keep
	SafeDistance float64
}

func NewRulePolicy() *RulePolicy {
	return &RulePolicy{
		DangerDistance: 12,
		PassCharge:     4,
		SafeDistance:   25,
	}
}

func (p *RulePolicy) Decide(obs Observation) Action {
	s := obs.Snapshot
	if s == nil || s.Beast == nil {
		return ActionDoNothing
	}
	me, ok := s.Player(obs.Me)
	if !ok || !me.IsAlive() {
		return ActionDoNothing
	}
	distance := kinematic.Distance(me.Position.Flat(), s.Beast.Position.Flat())

	if me.HasBall {
		if distance < p.DangerDistance || (s.IsPowerShot && s.PowerShotCharge >= p.PassCharge) {
			return ActionPassBallRandomly
		}
		return ActionDodgeBeast
	}
	if distance < p.SafeDistance {
		return ActionGainDistance
	}
	return ActionDoNothing
}
