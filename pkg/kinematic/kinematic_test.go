package kinematic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoveTowards(t *testing.T) {
	tests := []struct {
		name     string
		current  Vector
		target   Vector
		maxDelta float64
		want     Vector
	}{
		{
			name:     "partial step",
			current:  Vector{},
			target:   Vector{X: 10},
			maxDelta: 4,
			want:     Vector{X: 4},
		},
		{
			name:     "arrives",
			current:  Vector{X: 9},
			target:   Vector{X: 10},
			maxDelta: 4,
			want:     Vector{X: 10},
		},
		{
			name:     "already there",
			current:  Vector{Z: 3},
			target:   Vector{Z: 3},
			maxDelta: 1,
			want:     Vector{Z: 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MoveTowards(tt.current, tt.target, tt.maxDelta)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
			assert.InDelta(t, tt.want.Z, got.Z, 1e-9)
		})
	}
}

func TestRotateTowards(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		target  float64
		max     float64
		want    float64
	}{
		{name: "clockwise", current: 0, target: 90, max: 10, want: 10},
		{name: "counter clockwise across zero", current: 10, target: 350, max: 5, want: 5},
		{name: "shorter way across zero", current: 350, target: 20, max: 15, want: 5},
		{name: "snaps when close", current: 80, target: 90, max: 45, want: 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RotateTowards(tt.current, tt.target, tt.max), 1e-9)
		})
	}
}

func TestYawTowardsAndForward(t *testing.T) {
	assert.InDelta(t, 0, YawTowards(Zero, Vector{Z: 5}), 1e-9)
	assert.InDelta(t, 90, YawTowards(Zero, Vector{X: 5}), 1e-9)
	assert.InDelta(t, 270, YawTowards(Zero, Vector{X: -5}), 1e-9)

	f := Forward(90)
	assert.InDelta(t, 1, f.X, 1e-9)
	assert.InDelta(t, 0, f.Z, 1e-9)
}

func TestFinalVelocity(t *testing.T) {
	assert.InDelta(t, 10.06, FinalVelocity(10, 0.1, 0.6), 1e-9)
	assert.InDelta(t, 1.0, Displacement(0, 1, 2), 1e-9)
}
