package game

import (
	"github.com/cbodonnell/beastball/pkg/game/types"
	"github.com/cbodonnell/beastball/pkg/messages"
)

func (gm *GameManager) buildLobbyUpdate() *messages.ServerLobbyUpdate {
	return ServerLobbyUpdateFromState(gm.gameState, gm.ready.Counting(), gm.ready.Remaining())
}

// ServerLobbyUpdateFromState lists the taken slots in id order.
func ServerLobbyUpdateFromState(state *types.GameState, counting bool, countdown float64) *messages.ServerLobbyUpdate {
	slots := make([]messages.LobbySlot, 0, len(state.Players))
	for _, p := range state.Players {
		if !p.Available {
			continue
		}
		slots = append(slots, LobbySlotFromPlayer(p))
	}

	return &messages.ServerLobbyUpdate{
		MatchState:    state.MatchState,
		Lives:         state.DefaultLives,
		InfiniteLives: state.InfiniteLives,
		Counting:      counting,
		Countdown:     countdown,
		Slots:         slots,
	}
}

func LobbySlotFromPlayer(p *types.PlayerRecord) messages.LobbySlot {
	return messages.LobbySlot{
		ID:       p.ID,
		Name:     p.Name,
		IsAI:     p.IsAI,
		Strategy: p.Strategy,
		Ready:    p.LobbyReady,
		Color:    p.Color,
	}
}
