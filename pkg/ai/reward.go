package ai

import (
	"github.com/cbodonnell/beastball/pkg/events"
	"github.com/cbodonnell/beastball/pkg/game/types"
)

const (
	AliveReward           = 0.2
	ChargePowerShotReward = AliveReward * 3
	SurvivedDeathReward   = 5
	DeathReward           = -20
	KillReward            = 5
)

// Rewards gathers the reward of one agent between two decisions.
type Rewards struct {
	gathered float64
}

// OnPlayerKilled rewards surviving and scoring kills and punishes dying.
func (r *Rewards) OnPlayerKilled(e events.PlayerKilled, me types.PlayerID) {
	if e.Victim == me {
		r.gathered += DeathReward
	} else {
		r.gathered += SurvivedDeathReward
	}
	if e.Killer == me {
		r.gathered += KillReward
	}
}

// OnDecision adds the reward for the time alive since the last decision.
func (r *Rewards) OnDecision(me types.PlayerRecord, isPowerShot bool) {
	if !me.IsAlive() {
		return
	}
	switch {
	case !isPowerShot:
		r.gathered += AliveReward
	case me.HasBall:
		r.gathered += ChargePowerShotReward
	}
}

// Take returns the gathered reward and clears it.
func (r *Rewards) Take() float64 {
	reward := r.gathered
	r.gathered = 0
	return reward
}
