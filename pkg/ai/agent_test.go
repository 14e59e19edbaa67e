package ai

import (
	"testing"

	"github.com/cbodonnell/beastball/pkg/events"
	"github.com/cbodonnell/beastball/pkg/game/types"
	"github.com/cbodonnell/beastball/pkg/kinematic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLearner struct {
	action    Action
	decisions int
	rewards   []float64
	learning  []bool
}

func (f *fakeLearner) Decide(obs Observation) Action {
	f.decisions++
	return f.action
}

func (f *fakeLearner) Backward(reward float64, next Observation) {
	f.rewards = append(f.rewards, reward)
}

func (f *fakeLearner) SetLearning(learning bool) {
	f.learning = append(f.learning, learning)
}

func TestAgent_trainingOrder(t *testing.T) {
	h, emitter := newTestHandle(0)
	learner := &fakeLearner{action: ActionDodgeBeast}
	agent := NewAgent(h, AgentOptions{Policy: learner, Learning: true})
	s := testSnapshot(kinematic.Vector{}, kinematic.Vector{X: 30})

	// nothing happens before the match starts
	agent.Update(1, s)
	assert.Zero(t, learner.decisions)

	agent.HandleEvent(events.MatchStarted{MatchID: "m"})
	require.True(t, agent.Active())

	agent.Update(0.01, s)
	assert.Equal(t, 1, learner.decisions)
	assert.Empty(t, learner.rewards, "first decision has nothing to learn from")
	require.Len(t, emitter.intents, 1)
	assert.IsType(t, types.MoveIntent{}, emitter.intents[0])

	// not yet due
	agent.Update(0.01, s)
	assert.Equal(t, 1, learner.decisions)

	agent.HandleEvent(events.PlayerKilled{Killer: 0, Victim: 1})
	agent.Update(0.02, s)
	assert.Equal(t, 2, learner.decisions)
	require.Len(t, learner.rewards, 1)
	assert.InDelta(t, 5+5+0.2, learner.rewards[0], 1e-9)

	agent.HandleEvent(events.MatchDone{Winner: 0})
	agent.Update(1, s)
	assert.Equal(t, 2, learner.decisions)
}

func TestAgent_suspendsLearningWhileDead(t *testing.T) {
	h, _ := newTestHandle(0)
	learner := &fakeLearner{}
	agent := NewAgent(h, AgentOptions{Policy: learner, Learning: true})
	s := testSnapshot(kinematic.Vector{}, kinematic.Vector{X: 30})
	agent.HandleEvent(events.MatchStarted{})

	agent.Update(DefaultDecisionInterval, s)
	s.Players[0].State = types.PlayerStateDead
	agent.Update(DefaultDecisionInterval, s)
	s.Players[0].State = types.PlayerStateRevive
	agent.Update(DefaultDecisionInterval, s)
	s.Players[0].State = types.PlayerStateAlive
	agent.Update(DefaultDecisionInterval, s)

	assert.Equal(t, []bool{true, false, false, true}, learner.learning)
}

func TestAgent_skipsDecisionWithoutObservation(t *testing.T) {
	h, emitter := newTestHandle(0)
	learner := &fakeLearner{}
	agent := NewAgent(h, AgentOptions{Policy: learner})
	s := testSnapshot(kinematic.Vector{})
	agent.HandleEvent(events.MatchStarted{})

	agent.Update(DefaultDecisionInterval, s)
	assert.Zero(t, learner.decisions)
	assert.Empty(t, emitter.intents)
}

func TestAgent_repeatedStopIsEmittedOnce(t *testing.T) {
	h, emitter := newTestHandle(0)
	agent := NewAgent(h, AgentOptions{Policy: IdlePolicy})
	s := testSnapshot(kinematic.Vector{}, kinematic.Vector{X: 30})
	agent.HandleEvent(events.MatchStarted{})

	for i := 0; i < 5; i++ {
		agent.Update(DefaultDecisionInterval, s)
	}
	assert.Equal(t, 5, agent.Decisions())
	assert.Equal(t, []types.Intent{types.StopIntent{PlayerID: 0}}, emitter.intents)
}

func TestAgent_learningPolicyEndToEnd(t *testing.T) {
	h, emitter := newTestHandle(1)
	policy, err := NewLearningPolicy(DefaultLearningOptions(), h.Rand())
	require.NoError(t, err)
	agent := NewAgent(h, AgentOptions{Policy: policy, Learning: true})
	s := testSnapshot(kinematic.Vector{X: -20}, kinematic.Vector{X: 20})
	s.Players[1].HasBall = true
	s.BallCarrier = 1
	agent.HandleEvent(events.MatchStarted{})

	for i := 0; i < 10; i++ {
		agent.Update(DefaultDecisionInterval, s)
	}
	assert.Equal(t, 10, agent.Decisions())
	assert.Equal(t, 9, policy.Age())
	assert.NotEmpty(t, emitter.intents)
}
