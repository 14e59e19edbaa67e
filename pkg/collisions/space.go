package collisions

import (
	"github.com/cbodonnell/beastball/pkg/game/constants"
	"github.com/cbodonnell/beastball/pkg/game/types"
	"github.com/solarlune/resolv"
)

const (
	// CellSize is the resolv cell size in arena units
	CellSize = 4
)

// NewCollisionSpace returns a space covering the arena floor. Arena X maps
// to space X and arena Z maps to space Y, both offset so the arena's
// minimum corner is the space origin. The rim is walled off.
func NewCollisionSpace() *resolv.Space {
	width := constants.ArenaMaxX - constants.ArenaMinX
	height := constants.ArenaMaxZ - constants.ArenaMinZ
	space := resolv.NewSpace(int(width), int(height), CellSize, CellSize)
	space.Add(
		resolv.NewObject(0, 0, width, CellSize, types.CollisionSpaceTagLevel),
		resolv.NewObject(0, height-CellSize, width, CellSize, types.CollisionSpaceTagLevel),
		resolv.NewObject(0, CellSize, CellSize, height-2*CellSize, types.CollisionSpaceTagLevel),
		resolv.NewObject(width-CellSize, CellSize, CellSize, height-2*CellSize, types.CollisionSpaceTagLevel),
	)
	return space
}

// NewPlayerObject returns the collision box for a player slot.
func NewPlayerObject() *resolv.Object {
	return resolv.NewObject(0, 0, constants.PlayerSize, constants.PlayerSize, types.CollisionSpaceTagPlayer)
}

// Touching returns the player objects the beast currently overlaps.
func Touching(beast *resolv.Object) []*resolv.Object {
	if beast == nil || beast.Space == nil {
		return nil
	}
	collision := beast.Check(0, 0, types.CollisionSpaceTagPlayer)
	if collision == nil {
		return nil
	}
	var touching []*resolv.Object
	for _, obj := range collision.ObjectsByTags(types.CollisionSpaceTagPlayer) {
		if overlaps(beast, obj) {
			touching = append(touching, obj)
		}
	}
	return touching
}

// overlaps narrows the cell-level broad phase down to box overlap.
func overlaps(a, b *resolv.Object) bool {
	return a.Position.X < b.Position.X+b.Size.X &&
		b.Position.X < a.Position.X+a.Size.X &&
		a.Position.Y < b.Position.Y+b.Size.Y &&
		b.Position.Y < a.Position.Y+a.Size.Y
}
