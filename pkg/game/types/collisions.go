package types

const (
	CollisionSpaceTagPlayer string = "player"
	CollisionSpaceTagBeast  string = "beast"
	CollisionSpaceTagLevel  string = "level"
)
