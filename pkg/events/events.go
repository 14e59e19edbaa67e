package events

import (
	"encoding/json"

	"github.com/cbodonnell/beastball/pkg/game/types"
	"github.com/cbodonnell/beastball/pkg/kinematic"
	"github.com/rotisserie/eris"
)

// Type names a gameplay event on the wire.
type Type string

const (
	TypeMatchStarted      Type = "match_started"
	TypeMatchDone         Type = "match_done"
	TypePlayerKilled      Type = "player_killed"
	TypeBallPassed        Type = "ball_passed"
	TypeBallCaught        Type = "ball_caught"
	TypePlayerBlinked     Type = "player_blinked"
	TypePowerShotBegin    Type = "power_shot_begin"
	TypeBeastKilledPlayer Type = "beast_killed_player"
	TypePlayerTaunted     Type = "player_taunted"
)

// Event is a gameplay notification.
type Event interface {
	EventType() Type
}

type MatchStarted struct {
	MatchID string `json:"matchID"`
}

type MatchDone struct {
	Winner     types.PlayerID `json:"winner"`
	WinnerName string         `json:"winnerName"`
}

// PlayerKilled credits Killer with the death of Victim. Humiliated kills
// have no killer.
type PlayerKilled struct {
	Killer     types.PlayerID `json:"killer"`
	Victim     types.PlayerID `json:"victim"`
	Humiliated bool           `json:"humiliated"`
}

type BallPassed struct {
	Source          types.PlayerID `json:"source"`
	Target          types.PlayerID `json:"target"`
	Initial         bool           `json:"initial"`
	IsPowerShot     bool           `json:"isPowerShot"`
	PowerShotCharge float64        `json:"powerShotCharge"`
}

type BallCaught struct {
	Catcher types.PlayerID `json:"catcher"`
}

type PlayerBlinked struct {
	Player      types.PlayerID   `json:"player"`
	Destination kinematic.Vector `json:"destination"`
}

type PowerShotBegin struct {
	Carrier types.PlayerID `json:"carrier"`
}

type BeastKilledPlayer struct {
	Victim types.PlayerID `json:"victim"`
}

type PlayerTaunted struct {
	Player types.PlayerID `json:"player"`
	Taunt  int            `json:"taunt"`
}

func (MatchStarted) EventType() Type      { return TypeMatchStarted }
func (MatchDone) EventType() Type         { return TypeMatchDone }
func (PlayerKilled) EventType() Type      { return TypePlayerKilled }
func (BallPassed) EventType() Type        { return TypeBallPassed }
func (BallCaught) EventType() Type        { return TypeBallCaught }
func (PlayerBlinked) EventType() Type     { return TypePlayerBlinked }
func (PowerShotBegin) EventType() Type    { return TypePowerShotBegin }
func (BeastKilledPlayer) EventType() Type { return TypeBeastKilledPlayer }
func (PlayerTaunted) EventType() Type     { return TypePlayerTaunted }

// Decode parses the JSON body of an event of type t.
func Decode(t Type, data []byte) (Event, error) {
	switch t {
	case TypeMatchStarted:
		return decode[MatchStarted](t, data)
	case TypeMatchDone:
		return decode[MatchDone](t, data)
	case TypePlayerKilled:
		return decode[PlayerKilled](t, data)
	case TypeBallPassed:
		return decode[BallPassed](t, data)
	case TypeBallCaught:
		return decode[BallCaught](t, data)
	case TypePlayerBlinked:
		return decode[PlayerBlinked](t, data)
	case TypePowerShotBegin:
		return decode[PowerShotBegin](t, data)
	case TypeBeastKilledPlayer:
		return decode[BeastKilledPlayer](t, data)
	case TypePlayerTaunted:
		return decode[PlayerTaunted](t, data)
	default:
		return nil, eris.Errorf("unknown event type %q", t)
	}
}

func decode[E Event](t Type, data []byte) (Event, error) {
	var e E
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, eris.Wrapf(err, "failed to decode %s", t)
	}
	return e, nil
}
