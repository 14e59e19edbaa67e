package ai

import (
	"testing"

	"github.com/cbodonnell/beastball/pkg/game/types"
	"github.com/cbodonnell/beastball/pkg/kinematic"
	"github.com/stretchr/testify/assert"
)

func TestRulePolicy_Decide(t *testing.T) {
	tests := []struct {
		name        string
		beast       kinematic.Vector
		hasBall     bool
		isPowerShot bool
		charge      float64
		state       types.PlayerState
		want        Action
	}{
		{name: "carrier dodges", beast: kinematic.Vector{X: 30}, hasBall: true, want: ActionDodgeBeast},
		{name: "carrier passes when cornered", beast: kinematic.Vector{X: 5}, hasBall: true, want: ActionPassBallRandomly},
		{name: "carrier passes when charged", beast: kinematic.Vector{X: 30}, hasBall: true, isPowerShot: true, charge: 5, want: ActionPassBallRandomly},
		{name: "carrier keeps charging", beast: kinematic.Vector{X: 30}, hasBall: true, isPowerShot: true, charge: 1, want: ActionDodgeBeast},
		{name: "others run when close", beast: kinematic.Vector{X: 20}, want: ActionGainDistance},
		{name: "others rest when safe", beast: kinematic.Vector{X: 40}, want: ActionDoNothing},
		{name: "dead players do nothing", beast: kinematic.Vector{X: 5}, state: types.PlayerStateDead, want: ActionDoNothing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSnapshot(kinematic.Vector{}, kinematic.Vector{Z: 50})
			s.Beast.Position = tt.beast
			s.IsPowerShot = tt.isPowerShot
			s.PowerShotCharge = tt.charge
			s.Players[0].HasBall = tt.hasBall
			if tt.state != types.PlayerStateMatchStart {
				s.Players[0].State = tt.state
			}

			got := NewRulePolicy().Decide(Observation{Me: 0, Snapshot: s})
			assert.Equal(t, tt.want, got)
		})
	}
}
