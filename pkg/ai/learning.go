package ai

import (
	"math"
	"math/rand"

	"github.com/rotisserie/eris"
)

// LearningOptions configures a LearningPolicy.
type LearningOptions struct {
	// Inputs is the length of the feature vector
	Inputs int
	// Gamma discounts the value of the next state
	Gamma float64
	// LearningRate scales every weight update
	LearningRate float64
	// EpsilonMin is the exploration floor once burn-in is over
	EpsilonMin float64
	// LearningStepsBurnin is the number of updates explored fully at random
	LearningStepsBurnin int
	// LearningStepsTotal is the number of updates over which exploration decays
	LearningStepsTotal int
	// RandomActionDistribution weights the actions chosen while exploring
	RandomActionDistribution []float64
	// TDErrorClip bounds a single temporal difference error
	TDErrorClip float64
}

func DefaultLearningOptions() LearningOptions {
	return LearningOptions{
		Inputs:                   SimplifiedFeatureCount,
		Gamma:                    0.9,
		LearningRate:             0.01,
		EpsilonMin:               0.05,
		LearningStepsBurnin:      500,
		LearningStepsTotal:       50000,
		RandomActionDistribution: []float64{0.15, 0.4, 0.4, 0.05},
		TDErrorClip:              10,
	}
}

// LearningPolicy approximates Q(s, a) linearly from the feature vector and
// learns by one step temporal difference updates with epsilon-greedy
// exploration.
type LearningPolicy struct {
	opts     LearningOptions
	rng      *rand.Rand
	weights  [NumActions][]float64
	learning bool
	age      int

	hasLast      bool
	lastFeatures []float64
	lastAction   Action
	averageLoss  float64
}

func NewLearningPolicy(opts LearningOptions, rng *rand.Rand) (*LearningPolicy, error) {
	if opts.Inputs <= 0 {
		return nil, eris.Errorf("inputs must be positive, got %d", opts.Inputs)
	}
	if len(opts.RandomActionDistribution) != NumActions {
		return nil, eris.Errorf("random action distribution needs %d entries, got %d", NumActions, len(opts.RandomActionDistribution))
	}
	sum := 0.0
	for _, p := range opts.RandomActionDistribution {
		if p < 0 {
			return nil, eris.New("random action distribution must not be negative")
		}
		sum += p
	}
	if math.Abs(sum-1) > 1e-6 {
		return nil, eris.Errorf("random action distribution must sum to 1, got %f", sum)
	}
	if opts.LearningStepsTotal <= opts.LearningStepsBurnin {
		return nil, eris.New("learning steps total must exceed burn-in")
	}

	p := &LearningPolicy{
		opts:     opts,
		rng:      rng,
		learning: true,
	}
	for a := range p.weights {
		// the last weight is the bias
		p.weights[a] = make([]float64, opts.Inputs+1)
		for i := range p.weights[a] {
			p.weights[a][i] = (rng.Float64() - 0.5) * 0.01
		}
	}
	return p, nil
}

func (p *LearningPolicy) SetLearning(learning bool) {
	p.learning = learning
}

func (p *LearningPolicy) Learning() bool {
	return p.learning
}

// Age returns the number of updates applied.
func (p *LearningPolicy) Age() int {
	return p.age
}

// AverageLoss is a smoothed squared temporal difference error.
func (p *LearningPolicy) AverageLoss() float64 {
	return p.averageLoss
}

// Epsilon returns the current exploration rate. A policy that is not
// learning always exploits.
func (p *LearningPolicy) Epsilon() float64 {
	if !p.learning {
		return 0
	}
	progress := float64(p.age-p.opts.LearningStepsBurnin) / float64(p.opts.LearningStepsTotal-p.opts.LearningStepsBurnin)
	return math.Min(1, math.Max(p.opts.EpsilonMin, 1-progress))
}

// Q returns the estimated value of every action for the features.
func (p *LearningPolicy) Q(features []float64) [NumActions]float64 {
	var q [NumActions]float64
	for a := range p.weights {
		w := p.weights[a]
		v := w[len(w)-1]
		for i, x := range features {
			v += w[i] * x
		}
		q[a] = v
	}
	return q
}

func (p *LearningPolicy) greedy(features []float64) (Action, float64) {
	q := p.Q(features)
	best := ActionDoNothing
	for a := 1; a < NumActions; a++ {
		if q[a] > q[best] {
			best = Action(a)
		}
	}
	return best, q[best]
}

func (p *LearningPolicy) randomAction() Action {
	r := p.rng.Float64()
	for a, weight := range p.opts.RandomActionDistribution {
		if r < weight {
			return Action(a)
		}
		r -= weight
	}
	return Action(NumActions - 1)
}

func (p *LearningPolicy) Decide(obs Observation) Action {
	if len(obs.Features) != p.opts.Inputs {
		p.hasLast = false
		return ActionDoNothing
	}
	var action Action
	if p.rng.Float64() < p.Epsilon() {
		action = p.randomAction()
	} else {
		action, _ = p.greedy(obs.Features)
	}
	p.lastFeatures = append(p.lastFeatures[:0], obs.Features...)
	p.lastAction = action
	p.hasLast = true
	return action
}

// Backward moves Q(last, lastAction) towards reward + gamma * max Q(next).
func (p *LearningPolicy) Backward(reward float64, next Observation) {
	if !p.learning || !p.hasLast {
		return
	}
	target := reward
	if len(next.Features) == p.opts.Inputs {
		_, best := p.greedy(next.Features)
		target += p.opts.Gamma * best
	}
	current := p.Q(p.lastFeatures)[p.lastAction]
	tdError := target - current
	if p.opts.TDErrorClip > 0 {
		tdError = math.Max(-p.opts.TDErrorClip, math.Min(p.opts.TDErrorClip, tdError))
	}

	w := p.weights[p.lastAction]
	for i, x := range p.lastFeatures {
		w[i] += p.opts.LearningRate * tdError * x
	}
	w[len(w)-1] += p.opts.LearningRate * tdError

	p.averageLoss = 0.999*p.averageLoss + 0.001*tdError*tdError
	p.age++
}
