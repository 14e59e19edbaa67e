package ai

import (
	"github.com/cbodonnell/beastball/pkg/game/types"
)

const (
	StrategyLearning = "learning"
	StrategyRules    = "rules"
	StrategyTutorial = "tutorial"
	StrategyIdle     = "idle"
)

// BuiltinOptions configures the built-in strategies.
type BuiltinOptions struct {
	DecisionInterval float64
	Learning         LearningOptions
	// Train enables online training of the learning strategy
	Train bool
}

func DefaultBuiltinOptions() BuiltinOptions {
	return BuiltinOptions{
		DecisionInterval: DefaultDecisionInterval,
		Learning:         DefaultLearningOptions(),
		Train:            true,
	}
}

// NewDefaultRegistry returns a registry with the built-in strategies.
func NewDefaultRegistry(opts BuiltinOptions) *Registry {
	r := NewRegistry()
	for _, s := range BuiltinStrategies(opts) {
		// keys are unique
		_ = r.Register(s)
	}
	return r
}

// BuiltinStrategies returns the strategies shipped with the server.
func BuiltinStrategies(opts BuiltinOptions) []Strategy {
	return []Strategy{
		NewStrategy(Metadata{
			Key:         StrategyLearning,
			Name:        "Learning Agent",
			Author:      "beastball",
			Affinity:    types.Color{R: 0, G: 200, B: 255},
			Description: "Learns online from rewards for staying alive, charging power shots and scoring kills.",
			Tag:         TagLearningAI,
			Version:     "1.0",
			Date:        "2024-06-01",
		}, func(h *Handle) (Behaviour, error) {
			policy, err := NewLearningPolicy(opts.Learning, h.Rand())
			if err != nil {
				return nil, err
			}
			return NewAgent(h, AgentOptions{
				Policy:   policy,
				Interval: opts.DecisionInterval,
				Learning: opts.Train,
			}), nil
		}),
		NewStrategy(Metadata{
			Key:         StrategyRules,
			Name:        "Rules",
			Author:      "beastball",
			Affinity:    types.Color{R: 255, G: 140, B: 0},
			Description: "Keeps the beast behind it while carrying and passes when charged or cornered.",
			Tag:         TagCompetitive,
			Version:     "1.0",
			Date:        "2024-06-01",
		}, func(h *Handle) (Behaviour, error) {
			return NewAgent(h, AgentOptions{
				Policy:   NewRulePolicy(),
				Interval: opts.DecisionInterval,
			}), nil
		}),
		NewStrategy(Metadata{
			Key:         StrategyTutorial,
			Name:        "Tutorial",
			Author:      "beastball",
			Affinity:    types.Color{R: 120, G: 200, B: 80},
			Description: "Runs from the closest player and passes the ball right away.",
			Tag:         TagTutorial,
			Version:     "1.0",
			Date:        "2024-06-01",
		}, func(h *Handle) (Behaviour, error) {
			return NewTutorialBehaviour(h), nil
		}),
		NewStrategy(Metadata{
			Key:         StrategyIdle,
			Name:        "Idle",
			Author:      "beastball",
			Affinity:    types.Color{R: 128, G: 128, B: 128},
			Description: "Stands still.",
			Tag:         TagExperimental,
			Version:     "1.0",
			Date:        "2024-06-01",
		}, func(h *Handle) (Behaviour, error) {
			return NewAgent(h, AgentOptions{Interval: opts.DecisionInterval}), nil
		}),
	}
}
