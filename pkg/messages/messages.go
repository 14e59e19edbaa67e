package messages

import (
	"encoding/json"
	"fmt"

	"github.com/cbodonnell/beastball/pkg/events"
	"github.com/cbodonnell/beastball/pkg/game/types"
	"github.com/cbodonnell/beastball/pkg/kinematic"
)

const (
	// MessageBufferSize represents the maximum size of a message
	MessageBufferSize = 64 * 1024
)

type MessageType byte

// Message types
const (
	MessageTypeClientLogin MessageType = iota + 1
	MessageTypeServerLoginSuccess
	MessageTypeServerLoginFailure
	MessageTypeClientPing
	MessageTypeServerPong
	MessageTypeClientReady
	MessageTypeClientMove
	MessageTypeClientStop
	MessageTypeClientBlink
	MessageTypeClientPass
	MessageTypeClientTaunt
	MessageTypeServerLobbyUpdate
	MessageTypeServerEvents
	MessageTypeServerSnapshot
)

func (t MessageType) String() string {
	switch t {
	case MessageTypeClientLogin:
		return "ClientLogin"
	case MessageTypeServerLoginSuccess:
		return "ServerLoginSuccess"
	case MessageTypeServerLoginFailure:
		return "ServerLoginFailure"
	case MessageTypeClientPing:
		return "ClientPing"
	case MessageTypeServerPong:
		return "ServerPong"
	case MessageTypeClientReady:
		return "ClientReady"
	case MessageTypeClientMove:
		return "ClientMove"
	case MessageTypeClientStop:
		return "ClientStop"
	case MessageTypeClientBlink:
		return "ClientBlink"
	case MessageTypeClientPass:
		return "ClientPass"
	case MessageTypeClientTaunt:
		return "ClientTaunt"
	case MessageTypeServerLobbyUpdate:
		return "ServerLobbyUpdate"
	case MessageTypeServerEvents:
		return "ServerEvents"
	case MessageTypeServerSnapshot:
		return "ServerSnapshot"
	default:
		return fmt.Sprintf("MessageType(%d)", byte(t))
	}
}

// Message represents a generic message for serialization/deserialization
type Message struct {
	ClientID uint32      `json:"clientID"`
	Type     MessageType `json:"type"`
	Payload  []byte      `json:"payload"`
}

type ClientLogin struct {
	Token string `json:"token"`
}

type ServerLoginSuccess struct {
	ClientID uint32 `json:"clientID"`
}

type ServerLoginFailure struct {
	Reason string `json:"reason"`
}

type ClientPing struct {
	Timestamp int64 `json:"timestamp"`
}

type ServerPong struct {
	ClientTimestamp int64 `json:"clientTimestamp"`
	ServerTimestamp int64 `json:"serverTimestamp"`
}

type ClientMove struct {
	Destination kinematic.Vector `json:"destination"`
}

type ClientBlink struct {
	Destination kinematic.Vector `json:"destination"`
}

type ClientPass struct {
	Target types.PlayerID `json:"target"`
}

type ClientTaunt struct {
	Taunt int `json:"taunt"`
}

// LobbySlot is one taken seat in the lobby.
type LobbySlot struct {
	ID       types.PlayerID `json:"id"`
	Name     string         `json:"name"`
	IsAI     bool           `json:"isAI"`
	Strategy string         `json:"strategy,omitempty"`
	Ready    bool           `json:"ready"`
	Color    types.Color    `json:"color"`
}

type ServerLobbyUpdate struct {
	MatchState    types.MatchState `json:"matchState"`
	Lives         int              `json:"lives"`
	InfiniteLives bool             `json:"infiniteLives"`
	Counting      bool             `json:"counting"`
	Countdown     float64          `json:"countdown"`
	Slots         []LobbySlot      `json:"slots"`
}

// ServerEvents carries the gameplay events of one tick in publish order.
type ServerEvents struct {
	Events []events.Envelope `json:"events"`
}

type rawEnvelope struct {
	Seq   uint64          `json:"seq"`
	Tick  uint64          `json:"tick"`
	Type  events.Type     `json:"type"`
	Event json.RawMessage `json:"event"`
}

func (s *ServerEvents) UnmarshalJSON(b []byte) error {
	var raw struct {
		Events []rawEnvelope `json:"events"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	s.Events = make([]events.Envelope, 0, len(raw.Events))
	for _, r := range raw.Events {
		e, err := events.Decode(r.Type, r.Event)
		if err != nil {
			return err
		}
		s.Events = append(s.Events, events.Envelope{Seq: r.Seq, Tick: r.Tick, Type: r.Type, Event: e})
	}
	return nil
}
