package registration

import (
	"testing"

	"github.com/cbodonnell/beastball/pkg/game/constants"
	"github.com/cbodonnell/beastball/pkg/game/types"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RegisterPlayer(t *testing.T) {
	state := types.NewGameState(nil)
	svc := NewService(state)

	id, err := svc.RegisterPlayer(100, "alice")
	require.NoError(t, err)
	assert.Equal(t, types.PlayerID(0), id)
	assert.Equal(t, 1, svc.Connected())

	p := state.Players[id]
	assert.Equal(t, "alice", p.Name)
	assert.True(t, p.Available)
	assert.False(t, p.LobbyReady)

	got, ok := svc.PlayerForClient(100)
	assert.True(t, ok)
	assert.Equal(t, id, got)
	client, ok := svc.ClientForPlayer(id)
	assert.True(t, ok)
	assert.Equal(t, uint32(100), client)

	_, err = svc.RegisterPlayer(100, "alice again")
	assert.Error(t, err)
}

func TestService_RegisterAIPlayer(t *testing.T) {
	state := types.NewGameState(nil)
	svc := NewService(state)

	_, err := svc.RegisterPlayer(1, "human")
	require.NoError(t, err)
	id, err := svc.RegisterAIPlayer("Rules", "rules")
	require.NoError(t, err)
	assert.Equal(t, types.PlayerID(1), id)

	p := state.Players[id]
	assert.Equal(t, "Rules 1", p.Name)
	assert.Equal(t, "rules", p.Strategy)
	assert.True(t, p.IsAI)
	assert.True(t, p.LobbyReady)
	assert.True(t, p.Available)
	_, ok := svc.ClientForPlayer(id)
	assert.False(t, ok)

	for i := 2; i < constants.MaxPlayers; i++ {
		_, err := svc.RegisterAIPlayer("Idle", "idle")
		require.NoError(t, err)
	}
	_, err = svc.RegisterAIPlayer("Idle", "idle")
	assert.True(t, eris.Is(err, ErrNoFreeSlot))
}

func TestService_Deregister(t *testing.T) {
	state := types.NewGameState(nil)
	svc := NewService(state)

	id, err := svc.RegisterPlayer(7, "bob")
	require.NoError(t, err)
	p := state.Players[id]
	p.Kills = 3
	p.HasBall = true
	p.LobbyReady = true

	got, err := svc.DeregisterClient(7)
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.Equal(t, 0, svc.Connected())
	assert.False(t, p.Available)
	assert.Zero(t, p.Kills)
	assert.False(t, p.HasBall)
	assert.True(t, p.IsGameOver)
	assert.Empty(t, p.Name)

	_, ok := svc.PlayerForClient(7)
	assert.False(t, ok)

	assert.Error(t, svc.Deregister(id))
	_, err = svc.DeregisterClient(7)
	assert.Error(t, err)
}

func TestService_SetPlayerLives(t *testing.T) {
	tests := []struct {
		name    string
		lives   int
		wantErr bool
	}{
		{name: "one", lives: 1},
		{name: "max", lives: constants.MaxLives},
		{name: "zero", lives: 0, wantErr: true},
		{name: "too many", lives: constants.MaxLives + 1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := types.NewGameState(nil)
			svc := NewService(state)
			err := svc.SetPlayerLives(tt.lives)
			if tt.wantErr {
				assert.True(t, eris.Is(err, ErrInvalidLives))
				assert.Equal(t, constants.DefaultLives, state.DefaultLives)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.lives, state.DefaultLives)
			for _, p := range state.Players {
				assert.Equal(t, tt.lives, p.Lives)
			}
		})
	}
}

func TestService_PrepareMatch(t *testing.T) {
	state := types.NewGameState(nil)
	svc := NewService(state)
	id, err := svc.RegisterPlayer(1, "carol")
	require.NoError(t, err)
	p := state.Players[id]
	p.Kills = 4
	p.Lives = 0
	p.IsWinner = true

	svc.PrepareMatch()

	assert.True(t, p.MatchReady)
	assert.False(t, p.IsGameOver)
	assert.False(t, p.IsWinner)
	assert.Zero(t, p.Kills)
	assert.Equal(t, constants.DefaultLives, p.Lives)
	assert.Equal(t, p.SpawnPoint, p.Position)
	assert.False(t, state.Players[1].MatchReady)
}
