package types

import "github.com/cbodonnell/beastball/pkg/kinematic"

// Intent is a request from a human client or an AI agent to act on behalf
// of a player. Intents are validated by the game loop before they touch state.
type Intent interface {
	Actor() PlayerID
}

// MoveIntent walks the player towards Destination.
type MoveIntent struct {
	PlayerID    PlayerID
	Destination kinematic.Vector
}

func (i MoveIntent) Actor() PlayerID { return i.PlayerID }

// StopIntent cancels the current destination.
type StopIntent struct {
	PlayerID PlayerID
}

func (i StopIntent) Actor() PlayerID { return i.PlayerID }

// BlinkIntent teleports the player to Destination.
type BlinkIntent struct {
	PlayerID    PlayerID
	Destination kinematic.Vector
}

func (i BlinkIntent) Actor() PlayerID { return i.PlayerID }

// PassBallIntent passes the held ball to TargetID.
type PassBallIntent struct {
	PlayerID PlayerID
	TargetID PlayerID
}

func (i PassBallIntent) Actor() PlayerID { return i.PlayerID }

// TauntIntent plays taunt TauntID (1..8).
type TauntIntent struct {
	PlayerID PlayerID
	TauntID  int
}

func (i TauntIntent) Actor() PlayerID { return i.PlayerID }
