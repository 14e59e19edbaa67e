package events

import (
	"encoding/json"
	"testing"

	"github.com/cbodonnell/beastball/pkg/kinematic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		event Event
	}{
		{name: "match started", event: MatchStarted{MatchID: "abc"}},
		{name: "match done", event: MatchDone{Winner: 3, WinnerName: "three"}},
		{name: "humiliation", event: PlayerKilled{Killer: -1, Victim: 2, Humiliated: true}},
		{name: "power shot pass", event: BallPassed{Source: 1, Target: 4, IsPowerShot: true, PowerShotCharge: 1.5}},
		{name: "blink", event: PlayerBlinked{Player: 5, Destination: kinematic.Vector{X: 1, Z: -2}}},
		{name: "taunt", event: PlayerTaunted{Player: 6, Taunt: 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.event)
			require.NoError(t, err)

			got, err := Decode(tt.event.EventType(), data)
			require.NoError(t, err)
			assert.Equal(t, tt.event, got)
		})
	}
}

func TestDecode_errors(t *testing.T) {
	_, err := Decode("nope", []byte(`{}`))
	assert.Error(t, err)

	_, err = Decode(TypeBallCaught, []byte(`{"catcher":"x"}`))
	assert.Error(t, err)
}
