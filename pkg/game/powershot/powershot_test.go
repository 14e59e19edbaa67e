package powershot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker_chargesAfterThreshold(t *testing.T) {
	tr := NewTrackerWithOptions(1, 2)
	tr.OnBallCarrierChanged(true)

	assert.False(t, tr.Update(0.5))
	assert.False(t, tr.IsPowerShot())
	assert.Zero(t, tr.Charge())

	assert.True(t, tr.Update(0.5), "begin fires on the tick the threshold is crossed")
	assert.True(t, tr.IsPowerShot())
	assert.InDelta(t, 1.0, tr.Charge(), 1e-9)

	assert.False(t, tr.Update(0.5), "begin fires once per episode")
	assert.InDelta(t, 2.0, tr.Charge(), 1e-9)
}

func TestTracker_resetOnPossessionChange(t *testing.T) {
	tests := []struct {
		name       string
		hasCarrier bool
	}{
		{name: "ball passed to nobody", hasCarrier: false},
		{name: "ball caught by someone else", hasCarrier: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTrackerWithOptions(1, 2)
			tr.OnBallCarrierChanged(true)
			tr.Update(3)
			assert.True(t, tr.IsPowerShot())

			tr.OnBallCarrierChanged(tt.hasCarrier)
			assert.Zero(t, tr.Charge())
			assert.False(t, tr.IsPowerShot())

			// the threshold must be crossed again
			began := tr.Update(0.5)
			assert.False(t, began)
			assert.False(t, tr.IsPowerShot())
			assert.Zero(t, tr.Charge())

			if tt.hasCarrier {
				assert.True(t, tr.Update(0.5))
				assert.True(t, tr.IsPowerShot())
			} else {
				assert.False(t, tr.Update(5))
				assert.False(t, tr.IsPowerShot())
			}
		})
	}
}

func TestTracker_defaults(t *testing.T) {
	tr := NewTracker()
	tr.OnBallCarrierChanged(true)
	for i := 0; i < 74; i++ {
		tr.Update(0.1)
	}
	assert.False(t, tr.IsPowerShot())
	tr.Update(0.2)
	assert.True(t, tr.IsPowerShot())
	assert.Equal(t, State{Armed: true, HoldTime: tr.State().HoldTime, Charge: tr.Charge(), IsPowerShot: true}, tr.State())
}
