package messages

import (
	"encoding/json"
	"fmt"

	"github.com/cbodonnell/beastball/pkg/game/types"
)

// IntentFromMessage decodes a gameplay message from a client seated as id.
func IntentFromMessage(m *Message, id types.PlayerID) (types.Intent, error) {
	switch m.Type {
	case MessageTypeClientMove:
		move := &ClientMove{}
		if err := json.Unmarshal(m.Payload, move); err != nil {
			return nil, fmt.Errorf("failed to unmarshal move: %v", err)
		}
		return types.MoveIntent{PlayerID: id, Destination: move.Destination}, nil
	case MessageTypeClientStop:
		return types.StopIntent{PlayerID: id}, nil
	case MessageTypeClientBlink:
		blink := &ClientBlink{}
		if err := json.Unmarshal(m.Payload, blink); err != nil {
			return nil, fmt.Errorf("failed to unmarshal blink: %v", err)
		}
		return types.BlinkIntent{PlayerID: id, Destination: blink.Destination}, nil
	case MessageTypeClientPass:
		pass := &ClientPass{}
		if err := json.Unmarshal(m.Payload, pass); err != nil {
			return nil, fmt.Errorf("failed to unmarshal pass: %v", err)
		}
		return types.PassBallIntent{PlayerID: id, TargetID: pass.Target}, nil
	case MessageTypeClientTaunt:
		taunt := &ClientTaunt{}
		if err := json.Unmarshal(m.Payload, taunt); err != nil {
			return nil, fmt.Errorf("failed to unmarshal taunt: %v", err)
		}
		return types.TauntIntent{PlayerID: id, TauntID: taunt.Taunt}, nil
	default:
		return nil, fmt.Errorf("message type %s is not an intent", m.Type)
	}
}
