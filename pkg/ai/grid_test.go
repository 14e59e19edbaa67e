package ai

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid_FindGridIndex(t *testing.T) {
	grid := DefaultGrid()
	require.Equal(t, 256, grid.CellCount())

	tests := []struct {
		name string
		x, z float64
		want int
	}{
		{name: "top left corner", x: -80, z: 80, want: 0},
		{name: "inside first cell", x: -75, z: 75, want: 0},
		{name: "shared vertical edge goes to the earlier cell", x: -70, z: 75, want: 0},
		{name: "just past the edge", x: -69.9, z: 75, want: 1},
		{name: "shared horizontal edge goes to the earlier row", x: -75, z: 70, want: 0},
		{name: "second row", x: -75, z: 69.9, want: 16},
		{name: "origin", x: 0, z: 0, want: 7*16 + 7},
		{name: "just past origin", x: 0.1, z: -0.1, want: 8*16 + 8},
		{name: "bottom right corner", x: 80, z: -80, want: 255},
		{name: "right edge", x: 80, z: 80, want: 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := grid.FindGridIndex(tt.x, tt.z)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := grid.FindGridIndex(tt.x, tt.z)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestGrid_outOfBounds(t *testing.T) {
	grid := DefaultGrid()
	tests := []struct {
		name string
		x, z float64
	}{
		{name: "left", x: -80.01, z: 0},
		{name: "right", x: 80.01, z: 0},
		{name: "above", x: 0, z: 80.01},
		{name: "below", x: 0, z: -80.01},
		{name: "far away", x: 1000, z: -1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := grid.FindGridIndex(tt.x, tt.z)
			assert.True(t, eris.Is(err, ErrOutOfBounds), "got %v", err)
		})
	}
}

func TestRange_Normalize(t *testing.T) {
	assert.InDelta(t, 0, BallCarrierRange.Normalize(-1), 1e-9)
	assert.InDelta(t, 1, BallCarrierRange.Normalize(7), 1e-9)
	assert.InDelta(t, 0.5, PositionXRange.Normalize(0), 1e-9)
	// out of range values are not clamped
	assert.InDelta(t, 2, BeastSpeedRange.Normalize(150), 1e-9)
}
