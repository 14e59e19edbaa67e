package ai

import (
	"github.com/cbodonnell/beastball/pkg/events"
	"github.com/cbodonnell/beastball/pkg/game/types"
	"github.com/cbodonnell/beastball/pkg/log"
	"github.com/rotisserie/eris"
)

// DefaultDecisionInterval is the time between two decisions of an agent.
const DefaultDecisionInterval = 0.025 // seconds

const noAction Action = -1

// Behaviour is an AI attached to one player. It receives deferred events
// at the end of every tick and is updated with the fresh snapshot right
// after.
type Behaviour interface {
	events.Listener
	Update(deltaTime float64, snapshot *types.Snapshot)
}

// FeatureFunc builds the observation vector for a policy.
type FeatureFunc func(s *types.Snapshot, me types.PlayerID, elapsed float64) ([]float64, error)

// SimplifiedFeatureFunc adapts SimplifiedFeatures to FeatureFunc.
func SimplifiedFeatureFunc(s *types.Snapshot, me types.PlayerID, _ float64) ([]float64, error) {
	return SimplifiedFeatures(s, me)
}

// FullFeatureFunc returns a FeatureFunc over FullFeatures on grid.
func FullFeatureFunc(grid *Grid) FeatureFunc {
	return func(s *types.Snapshot, me types.PlayerID, elapsed float64) ([]float64, error) {
		return FullFeatures(s, me, grid, elapsed)
	}
}

// Agent runs a policy at a fixed interval while a match is running. The
// training order per decision is: gather reward, backward, decide, act.
// The first decision of a match has nothing to learn from and skips the
// backward step.
type Agent struct {
	handle   *Handle
	policy   Policy
	features FeatureFunc
	interval float64
	learning bool
	logger   *log.Logger

	active      bool
	first       bool
	accumulator float64
	elapsed     float64
	rewards     Rewards
	lastAction  Action
	decisions   int
}

// AgentOptions configures an Agent.
type AgentOptions struct {
	Policy Policy
	// Features defaults to SimplifiedFeatureFunc
	Features FeatureFunc
	// Interval defaults to DefaultDecisionInterval
	Interval float64
	// Learning enables training when Policy is a Learner
	Learning bool
}

func NewAgent(handle *Handle, opts AgentOptions) *Agent {
	if opts.Features == nil {
		opts.Features = SimplifiedFeatureFunc
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultDecisionInterval
	}
	if opts.Policy == nil {
		opts.Policy = IdlePolicy
	}
	return &Agent{
		handle:     handle,
		policy:     opts.Policy,
		features:   opts.Features,
		interval:   opts.Interval,
		learning:   opts.Learning,
		logger:     log.With("player", int(handle.ID)),
		lastAction: noAction,
	}
}

// Active reports whether the agent is between MatchStarted and MatchDone.
func (a *Agent) Active() bool {
	return a.active
}

// Decisions returns the number of decisions made.
func (a *Agent) Decisions() int {
	return a.decisions
}

// LastAction returns the most recent decision.
func (a *Agent) LastAction() Action {
	return a.lastAction
}

func (a *Agent) HandleEvent(e events.Event) {
	switch ev := e.(type) {
	case events.MatchStarted:
		a.active = true
		a.first = true
		a.accumulator = a.interval
		a.elapsed = 0
		a.lastAction = noAction
		a.rewards.Take()
	case events.MatchDone:
		a.active = false
	case events.BallPassed:
		if ev.Initial {
			a.elapsed = 0
		}
	case events.PlayerKilled:
		a.rewards.OnPlayerKilled(ev, a.handle.ID)
	}
}

func (a *Agent) Update(deltaTime float64, snapshot *types.Snapshot) {
	if !a.active || snapshot == nil {
		return
	}
	a.elapsed += deltaTime
	a.accumulator += deltaTime
	if a.accumulator < a.interval {
		return
	}
	a.accumulator -= a.interval
	if a.accumulator > a.interval {
		// never catch up on more than one missed decision
		a.accumulator = 0
	}
	a.decide(snapshot)
}

func (a *Agent) decide(snapshot *types.Snapshot) {
	me, ok := snapshot.Player(a.handle.ID)
	if !ok {
		return
	}

	learner, isLearner := a.policy.(Learner)
	if isLearner {
		alive := me.State != types.PlayerStateDead && me.State != types.PlayerStateRevive
		learner.SetLearning(a.learning && alive)
	}

	features, err := a.features(snapshot, a.handle.ID, a.elapsed)
	if err != nil {
		if eris.Is(err, ErrOutOfBounds) {
			a.logger.Warn("Skipping decision: %v", err)
		} else {
			a.logger.Trace("Skipping decision: %v", err)
		}
		return
	}
	obs := Observation{
		Me:       a.handle.ID,
		Snapshot: snapshot,
		Features: features,
	}

	if !a.first {
		a.rewards.OnDecision(me, snapshot.IsPowerShot)
		reward := a.rewards.Take()
		if isLearner {
			learner.Backward(reward, obs)
		}
	}
	a.first = false

	action := a.policy.Decide(obs)
	repeatStop := action == ActionDoNothing && a.lastAction == ActionDoNothing
	a.lastAction = action
	a.decisions++
	if repeatStop {
		return
	}
	if !Execute(action, a.handle, snapshot) {
		a.logger.Trace("Action %s emitted no intent", action)
	}
}
