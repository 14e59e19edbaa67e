package ai

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := NewDefaultRegistry(DefaultBuiltinOptions())

	list := r.List()
	keys := make([]string, 0, len(list))
	for _, m := range list {
		keys = append(keys, m.Key)
	}
	assert.Equal(t, []string{StrategyIdle, StrategyLearning, StrategyRules, StrategyTutorial}, keys)

	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			s, err := r.Lookup(key)
			require.NoError(t, err)
			h, _ := newTestHandle(3)
			b, err := s.Attach(h)
			require.NoError(t, err)
			assert.NotNil(t, b)
		})
	}

	_, err := r.Lookup("nope")
	assert.True(t, eris.Is(err, ErrStrategyNotFound))

	s, err := r.Lookup(StrategyRules)
	require.NoError(t, err)
	assert.True(t, eris.Is(r.Register(s), ErrStrategyExists))
	assert.Error(t, r.Register(NewStrategy(Metadata{}, nil)))
}

func TestRegistry_learningStrategyRejectsBadOptions(t *testing.T) {
	opts := DefaultBuiltinOptions()
	opts.Learning.RandomActionDistribution = []float64{1}
	r := NewDefaultRegistry(opts)

	s, err := r.Lookup(StrategyLearning)
	require.NoError(t, err)
	h, _ := newTestHandle(0)
	_, err = s.Attach(h)
	assert.Error(t, err)
}
