package types

import (
	"fmt"

	"github.com/cbodonnell/beastball/pkg/game/constants"
	"github.com/cbodonnell/beastball/pkg/kinematic"
	"github.com/solarlune/resolv"
)

// PlayerID is the stable slot index of a player, 0..7.
type PlayerID int

// NoPlayer is the sentinel for "nobody", e.g. the source of the initial pass.
const NoPlayer PlayerID = -1

// Valid reports whether id addresses a player slot.
func (id PlayerID) Valid() bool {
	return id >= 0 && int(id) < constants.MaxPlayers
}

// PlayerState is the lifecycle state of a player within a match.
type PlayerState uint8

const (
	PlayerStateMatchStart PlayerState = iota
	PlayerStateAlive
	PlayerStateDead
	PlayerStateRevive
)

func (s PlayerState) String() string {
	switch s {
	case PlayerStateMatchStart:
		return "MatchStart"
	case PlayerStateAlive:
		return "Alive"
	case PlayerStateDead:
		return "Dead"
	case PlayerStateRevive:
		return "Revive"
	default:
		return "Unknown"
	}
}

type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// PlayerColors assigns a color to each slot.
var PlayerColors = [constants.MaxPlayers]Color{
	{R: 255, G: 0, B: 0},
	{R: 0, G: 0, B: 255},
	{R: 0, G: 255, B: 0},
	{R: 255, G: 235, B: 4},
	{R: 255, G: 0, B: 255},
	{R: 255, G: 120, B: 0},
	{R: 15, G: 25, B: 25},
	{R: 255, G: 255, B: 255},
}

// PlayerSpawnPoints assigns a start position on the arena rim to each slot.
var PlayerSpawnPoints = [constants.MaxPlayers]kinematic.Vector{
	{X: 0, Z: 25},
	{X: 24.5, Z: 19.5},
	{X: 35, Z: 0},
	{X: 24.5, Z: -19.5},
	{X: 0, Z: -25},
	{X: -24.5, Z: -19.5},
	{X: -35, Z: 0},
	{X: -24.5, Z: 19.5},
}

// PlayerRecord is the authoritative record of one player slot.
type PlayerRecord struct {
	ID         PlayerID    `json:"id"`
	Name       string      `json:"name"`
	State      PlayerState `json:"state"`
	Lives      int         `json:"lives"`
	Kills      int         `json:"kills"`
	HasBall    bool        `json:"hasBall"`
	HasKilled  bool        `json:"hasKilled"`
	IsAI       bool        `json:"isAI"`
	Strategy   string      `json:"strategy,omitempty"`
	IsGameOver bool        `json:"isGameOver"`
	IsWinner   bool        `json:"isWinner"`
	// Available is true while the slot is taken by a connected or AI player
	Available  bool `json:"available"`
	LobbyReady bool `json:"lobbyReady"`
	MatchReady bool `json:"matchReady"`

	BlinkOnCooldown bool    `json:"blinkOnCooldown"`
	BlinkCooldown   float64 `json:"blinkCooldown"`

	SpawnPoint     kinematic.Vector `json:"spawnPoint"`
	Color          Color            `json:"color"`
	Position       kinematic.Vector `json:"position"`
	Rotation       float64          `json:"rotation"`
	Destination    kinematic.Vector `json:"destination"`
	HasDestination bool             `json:"hasDestination"`

	Object *resolv.Object `json:"-"`
}

// NewPlayerRecord returns an empty slot with its defaults applied.
func NewPlayerRecord(id PlayerID) *PlayerRecord {
	p := &PlayerRecord{ID: id}
	p.Reset(constants.DefaultLives)
	return p
}

// Reset returns the slot to its lobby defaults, freeing it. A free slot is
// forced game over while it still holds lives, so it can never be killed
// or revived.
func (p *PlayerRecord) Reset(lives int) {
	*p = PlayerRecord{
		ID:            p.ID,
		Lives:         lives,
		IsGameOver:    true,
		BlinkCooldown: constants.PlayerBlinkCooldown,
		State:         PlayerStateMatchStart,
		SpawnPoint:    PlayerSpawnPoints[p.ID],
		Color:         PlayerColors[p.ID],
		Position:      PlayerSpawnPoints[p.ID],
		Object:        p.Object,
	}
}

// Copy returns a detached copy without the collision object.
func (p *PlayerRecord) Copy() PlayerRecord {
	c := *p
	c.Object = nil
	return c
}

// IsAlive is a convenience accessor.
func (p *PlayerRecord) IsAlive() bool {
	return p.State == PlayerStateAlive
}

// SetPosition moves the player and keeps its collision object in sync.
func (p *PlayerRecord) SetPosition(pos kinematic.Vector) {
	p.Position = pos
	if p.Object != nil {
		p.Object.Position.X = pos.X - constants.ArenaMinX - constants.PlayerSize/2
		p.Object.Position.Y = pos.Z - constants.ArenaMinZ - constants.PlayerSize/2
		p.Object.Update()
	}
}

// Update moves the player towards its destination.
func (p *PlayerRecord) Update(deltaTime float64) {
	if p.BlinkOnCooldown {
		p.BlinkCooldown -= deltaTime
		if p.BlinkCooldown <= 0 {
			p.BlinkCooldown = constants.PlayerBlinkCooldown
			p.BlinkOnCooldown = false
		}
	}

	if p.State != PlayerStateAlive || !p.HasDestination {
		return
	}
	if p.Destination.Flat() != p.Position.Flat() {
		p.Rotation = kinematic.YawTowards(p.Position, p.Destination)
	}
	next := kinematic.MoveTowards(p.Position.Flat(), p.Destination.Flat(), constants.PlayerSpeed*deltaTime)
	p.SetPosition(next)
	if next == p.Destination.Flat() {
		p.HasDestination = false
	}
}
