package messages

import (
	"encoding/json"
	"testing"

	"github.com/cbodonnell/beastball/pkg/events"
	"github.com/cbodonnell/beastball/pkg/game/types"
	"github.com/cbodonnell/beastball/pkg/kinematic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeDeserializeMessage(t *testing.T) {
	type args struct {
		message *Message
	}
	tests := []struct {
		name string
		args args
	}{
		{
			name: "login",
			args: args{
				message: &Message{
					ClientID: 0,
					Type:     MessageTypeClientLogin,
					Payload:  []byte(`{"token":"abc"}`),
				},
			},
		},
		{
			name: "empty payload",
			args: args{
				message: &Message{
					ClientID: 7,
					Type:     MessageTypeClientStop,
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := SerializeMessage(tt.args.message)
			require.NoError(t, err)

			got, err := DeserializeMessage(b)
			require.NoError(t, err)
			assert.Equal(t, tt.args.message.ClientID, got.ClientID)
			assert.Equal(t, tt.args.message.Type, got.Type)
			assert.Equal(t, len(tt.args.message.Payload), len(got.Payload))
			if len(tt.args.message.Payload) > 0 {
				assert.Equal(t, tt.args.message.Payload, got.Payload)
			}
		})
	}
}

func TestDeserializeMessage_garbage(t *testing.T) {
	_, err := DeserializeMessage([]byte("not zstd"))
	assert.Error(t, err)

	_, err = DeserializeMessageFlatbuffer([]byte{1})
	assert.Error(t, err)
}

func TestSerializeDeserializeSnapshot(t *testing.T) {
	snapshot := &types.Snapshot{
		MatchID:    "a1b2",
		Timestamp:  1700000000000,
		Tick:       42,
		MatchState: types.MatchStatePlayerAlive,
		Players: []types.PlayerRecord{
			{
				ID:        0,
				Name:      "zero",
				State:     types.PlayerStateAlive,
				Lives:     2,
				Kills:     -1,
				Available: true,
				Color:     types.PlayerColors[0],
				Position:  kinematic.Vector{X: 1.5, Z: -3},
				Rotation:  90,
			},
			{
				ID:              3,
				Name:            "Rules 3",
				State:           types.PlayerStateAlive,
				Lives:           1,
				Kills:           2,
				HasBall:         true,
				HasKilled:       true,
				IsAI:            true,
				Available:       true,
				BlinkOnCooldown: true,
				BlinkCooldown:   4.5,
				Color:           types.PlayerColors[3],
				Position:        kinematic.Vector{X: -10, Z: 12},
				Rotation:        180,
			},
		},
		Remaining:         []types.PlayerID{0, 3},
		BallCarrier:       3,
		LastPassingPlayer: 0,
		Beast: &types.BeastState{
			Speed:         20,
			RotationSpeed: 80,
			Position:      kinematic.Vector{X: 2, Y: 0.5, Z: 2},
			Rotation:      45,
			Target:        3,
			Mode:          types.BeastModeHunting,
		},
		IsPowerShot:      true,
		PowerShotCharge:  1.25,
		BallSequenceTime: 12.5,
	}

	b, err := SerializeSnapshot(snapshot)
	require.NoError(t, err)

	got, err := DeserializeSnapshot(b)
	require.NoError(t, err)
	assert.Equal(t, snapshot, got)
}

func TestSerializeDeserializeSnapshot_ball(t *testing.T) {
	snapshot := &types.Snapshot{
		MatchState:        types.MatchStatePlayerAlive,
		Players:           []types.PlayerRecord{},
		Remaining:         []types.PlayerID{},
		BallCarrier:       types.NoPlayer,
		LastPassingPlayer: types.NoPlayer,
		Ball: &types.Ball{
			Source:   types.NoPlayer,
			Target:   4,
			Initial:  true,
			Position: kinematic.Vector{Y: 8},
			Speed:    45,
		},
	}

	b, err := SerializeSnapshot(snapshot)
	require.NoError(t, err)

	got, err := DeserializeSnapshot(b)
	require.NoError(t, err)
	assert.Nil(t, got.Beast)
	require.NotNil(t, got.Ball)
	assert.Equal(t, *snapshot.Ball, *got.Ball)
	assert.Equal(t, types.NoPlayer, got.BallCarrier)
	assert.Equal(t, types.NoPlayer, got.LastPassingPlayer)
}

func TestServerEvents_roundTrip(t *testing.T) {
	batch := &ServerEvents{
		Events: []events.Envelope{
			{Seq: 1, Tick: 9, Type: events.TypeBallCaught, Event: events.BallCaught{Catcher: 2}},
			{Seq: 2, Tick: 9, Type: events.TypePlayerKilled, Event: events.PlayerKilled{Killer: types.NoPlayer, Victim: 2, Humiliated: true}},
		},
	}

	payload, err := json.Marshal(batch)
	require.NoError(t, err)

	got := &ServerEvents{}
	require.NoError(t, json.Unmarshal(payload, got))
	assert.Equal(t, batch, got)
}

func TestIntentFromMessage(t *testing.T) {
	tests := []struct {
		name    string
		message *Message
		want    types.Intent
		wantErr bool
	}{
		{
			name:    "move",
			message: &Message{Type: MessageTypeClientMove, Payload: []byte(`{"destination":{"x":1,"y":0,"z":2}}`)},
			want:    types.MoveIntent{PlayerID: 4, Destination: kinematic.Vector{X: 1, Z: 2}},
		},
		{
			name:    "stop",
			message: &Message{Type: MessageTypeClientStop},
			want:    types.StopIntent{PlayerID: 4},
		},
		{
			name:    "pass",
			message: &Message{Type: MessageTypeClientPass, Payload: []byte(`{"target":6}`)},
			want:    types.PassBallIntent{PlayerID: 4, TargetID: 6},
		},
		{
			name:    "taunt",
			message: &Message{Type: MessageTypeClientTaunt, Payload: []byte(`{"taunt":3}`)},
			want:    types.TauntIntent{PlayerID: 4, TauntID: 3},
		},
		{
			name:    "bad payload",
			message: &Message{Type: MessageTypeClientBlink, Payload: []byte(`{`)},
			wantErr: true,
		},
		{
			name:    "not an intent",
			message: &Message{Type: MessageTypeClientReady},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IntentFromMessage(tt.message, 4)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
