package client

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authproviders "github.com/cbodonnell/beastball/pkg/auth/providers"
	"github.com/cbodonnell/beastball/pkg/messages"
	"github.com/cbodonnell/beastball/pkg/network"
	"github.com/cbodonnell/beastball/pkg/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*network.NetworkManager, queue.Queue, string) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	messageQueue := queue.NewInMemoryQueue(16)
	n := network.NewNetworkManager(network.NewNetworkManagerOptions{
		AuthProvider:  authproviders.NewGuestAuthProvider(),
		ClientManager: network.NewClientManager(),
		MessageQueue:  messageQueue,
	})
	server := httptest.NewServer(n.Handler(ctx))
	t.Cleanup(server.Close)
	return n, messageQueue, "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestClient_session(t *testing.T) {
	n, messageQueue, url := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, err := Dial(ctx, url, "Alice")
	require.NoError(t, err)
	defer c.Close()
	assert.True(t, n.ClientManager.Exists(c.ClientID()))

	go c.Run(ctx)

	require.NoError(t, c.Ping(ctx))
	require.Eventually(t, func() bool { return c.ServerTime() > 0 }, 2*time.Second, 10*time.Millisecond)
	assert.GreaterOrEqual(t, c.Latency(), 0.0)

	require.NoError(t, c.ToggleReady(ctx))
	require.NoError(t, c.Pass(ctx, 3))
	require.Eventually(t, func() bool { return messageQueue.Size() == 2 }, 2*time.Second, 10*time.Millisecond)

	items, err := messageQueue.ReadAllMessages()
	require.NoError(t, err)
	ready := items[0].(*messages.Message)
	assert.Equal(t, messages.MessageTypeClientReady, ready.Type)
	assert.Equal(t, c.ClientID(), ready.ClientID)
	pass := items[1].(*messages.Message)
	assert.Equal(t, messages.MessageTypeClientPass, pass.Type)
	assert.JSONEq(t, `{"target":3}`, string(pass.Payload))

	n.SendReliableMessageToAll(ctx, &messages.Message{Type: messages.MessageTypeServerLobbyUpdate, Payload: []byte(`{"lives":2}`)})
	select {
	case msg := <-c.Messages():
		assert.Equal(t, messages.MessageTypeServerLobbyUpdate, msg.Type)
	case <-ctx.Done():
		t.Fatal("timed out waiting for lobby update")
	}

	require.NoError(t, n.DisconnectClient(c.ClientID(), "kicked"))
	select {
	case _, ok := <-c.Messages():
		assert.False(t, ok, "messages are closed when the server hangs up")
	case <-ctx.Done():
		t.Fatal("timed out waiting for the connection to close")
	}
}

func TestClient_loginFailure(t *testing.T) {
	_, _, url := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := Dial(ctx, url, "   ")
	require.Error(t, err)
	loginErr := &ErrLoginFailed{}
	assert.True(t, errors.As(err, &loginErr))
}

func TestAverageRTT(t *testing.T) {
	tests := []struct {
		name string
		rtts []int64
		want float64
	}{
		{name: "empty", rtts: nil, want: 0},
		{name: "steady", rtts: []int64{10, 12, 14}, want: 12},
		{name: "outlier dropped", rtts: []int64{10, 10, 10, 200}, want: 10},
		{name: "small spikes kept", rtts: []int64{5, 5, 15}, want: 25.0 / 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, averageRTT(tt.rtts), 1e-9)
		})
	}
}
