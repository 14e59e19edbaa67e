package ai

import (
	"math"

	"github.com/rotisserie/eris"
)

// ErrOutOfBounds is returned for positions outside the grid.
var ErrOutOfBounds = eris.New("position is out of the grid's bounds")

// Grid maps floor positions onto numbered cells. Cells are numbered row by
// row starting at the top left corner, rows going down in Z and columns
// going right in X. Cell bounds are inclusive, so a position on an edge
// shared by two cells belongs to the one with the lower index.
type Grid struct {
	left, top     float64
	right, bottom float64
	cellWidth     float64
	cellHeight    float64
	rows, columns int
}

// NewGrid builds a grid spanning the rectangle between the two corners,
// given as (x, z) pairs.
func NewGrid(left, top, right, bottom, cellWidth, cellHeight float64) *Grid {
	width := math.Abs(left) + math.Abs(right)
	height := math.Abs(top) + math.Abs(bottom)
	return &Grid{
		left:       left,
		top:        top,
		right:      right,
		bottom:     bottom,
		cellWidth:  cellWidth,
		cellHeight: cellHeight,
		rows:       int(height / cellHeight),
		columns:    int(width / cellWidth),
	}
}

// DefaultGrid covers the whole arena in 10x10 cells.
func DefaultGrid() *Grid {
	return NewGrid(-80, 80, 80, -80, 10, 10)
}

// CellCount returns the number of cells.
func (g *Grid) CellCount() int {
	return g.rows * g.columns
}

// FindGridIndex returns the index of the cell containing (x, z).
func (g *Grid) FindGridIndex(x, z float64) (int, error) {
	if math.IsNaN(x) || math.IsNaN(z) || x < g.left || z > g.top {
		return 0, eris.Wrapf(ErrOutOfBounds, "pos: (%.2f, %.2f)", x, z)
	}
	column := cellOf(x-g.left, g.cellWidth)
	row := cellOf(g.top-z, g.cellHeight)
	if column >= g.columns || row >= g.rows {
		return 0, eris.Wrapf(ErrOutOfBounds, "pos: (%.2f, %.2f)", x, z)
	}
	return row*g.columns + column, nil
}

func cellOf(offset, size float64) int {
	cell := int(math.Ceil(offset/size)) - 1
	if cell < 0 {
		return 0
	}
	return cell
}
