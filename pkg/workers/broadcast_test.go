package workers

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/cbodonnell/beastball/pkg/events"
	"github.com/cbodonnell/beastball/pkg/game/types"
	"github.com/cbodonnell/beastball/pkg/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct {
	reliable bool
	clientID uint32
	message  *messages.Message
}

type recordingSender struct {
	mu   sync.Mutex
	sent []sent
}

func (s *recordingSender) SendReliableMessageToAll(ctx context.Context, msg *messages.Message) {
	s.record(sent{reliable: true, message: msg})
}

func (s *recordingSender) SendUnreliableMessageToAll(ctx context.Context, msg *messages.Message) {
	s.record(sent{message: msg})
}

func (s *recordingSender) SendReliableMessageToClient(ctx context.Context, clientID uint32, msg *messages.Message) error {
	s.record(sent{reliable: true, clientID: clientID, message: msg})
	return nil
}

func (s *recordingSender) record(m sent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, m)
}

func (s *recordingSender) all() []sent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sent(nil), s.sent...)
}

func TestBroadcastMessageWorker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sender := &recordingSender{}
	ch := make(chan BroadcastMessage, 8)
	worker := NewBroadcastMessageWorker(NewBroadcastMessageWorkerOptions{
		Sender:               sender,
		BroadcastMessageChan: ch,
	})
	go worker.Start(ctx)

	ch <- BroadcastMessage{
		Type: messages.MessageTypeServerEvents,
		Message: &messages.ServerEvents{Events: []events.Envelope{
			{Seq: 1, Tick: 3, Type: events.TypeBallCaught, Event: events.BallCaught{Catcher: 1}},
		}},
	}
	ch <- BroadcastMessage{
		Type:    messages.MessageTypeServerSnapshot,
		Message: &types.Snapshot{MatchState: types.MatchStatePreMatch, BallCarrier: types.NoPlayer, LastPassingPlayer: types.NoPlayer},
	}
	ch <- BroadcastMessage{
		Type:     messages.MessageTypeServerLobbyUpdate,
		ClientID: 9,
		Message:  &messages.ServerLobbyUpdate{Lives: 2},
	}
	// wrong payload type is logged and skipped
	ch <- BroadcastMessage{Type: messages.MessageTypeServerEvents, Message: "nope"}

	require.Eventually(t, func() bool { return len(sender.all()) == 3 }, time.Second, 5*time.Millisecond)
	got := sender.all()

	assert.True(t, got[0].reliable)
	assert.Equal(t, messages.MessageTypeServerEvents, got[0].message.Type)
	decoded := &messages.ServerEvents{}
	require.NoError(t, json.Unmarshal(got[0].message.Payload, decoded))
	assert.Equal(t, events.BallCaught{Catcher: 1}, decoded.Events[0].Event)

	assert.False(t, got[1].reliable)
	assert.Equal(t, messages.MessageTypeServerSnapshot, got[1].message.Type)
	snapshot, err := messages.DeserializeSnapshot(got[1].message.Payload)
	require.NoError(t, err)
	assert.Equal(t, types.NoPlayer, snapshot.BallCarrier)

	assert.Equal(t, uint32(9), got[2].clientID)
	assert.Equal(t, messages.MessageTypeServerLobbyUpdate, got[2].message.Type)
}
