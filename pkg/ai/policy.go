package ai

import "github.com/cbodonnell/beastball/pkg/game/types"

// Observation is what a policy sees when it decides.
type Observation struct {
	Me       types.PlayerID
	Snapshot *types.Snapshot
	Features []float64
}

// Policy picks the next action.
type Policy interface {
	Decide(obs Observation) Action
}

// Learner is a policy that is trained from rewards. Backward is called
// with the reward gathered since the previous decision and the
// observation the next decision will be made on.
type Learner interface {
	Policy
	Backward(reward float64, next Observation)
	SetLearning(learning bool)
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc func(obs Observation) Action

func (f PolicyFunc) Decide(obs Observation) Action { return f(obs) }

// IdlePolicy never does anything.
var IdlePolicy = PolicyFunc(func(Observation) Action { return ActionDoNothing })
