package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientManager_ConnectDisconnect(t *testing.T) {
	cm := NewClientManager()

	id, err := cm.ConnectClient(nil, "user-1", "Alice")
	require.NoError(t, err)
	assert.NotZero(t, id)
	assert.True(t, cm.Exists(id))

	event := <-cm.GetConnectionEventChan()
	assert.Equal(t, id, event.ClientID)
	assert.Equal(t, ConnectionEventTypeConnect, event.Type)
	assert.Equal(t, ClientConnectData{UserID: "user-1", Name: "Alice"}, event.Data)

	client, err := cm.GetClient(id)
	require.NoError(t, err)
	assert.Equal(t, "Alice", client.Name)

	cm.DisconnectClient(id)
	assert.False(t, cm.Exists(id))
	event = <-cm.GetConnectionEventChan()
	assert.Equal(t, ConnectionEventTypeDisconnect, event.Type)

	// a second disconnect is a no-op
	cm.DisconnectClient(id)
	assert.Len(t, cm.GetConnectionEventChan(), 0)

	_, err = cm.GetClient(id)
	assert.Error(t, err)
}

func TestClientManager_DuplicateUser(t *testing.T) {
	cm := NewClientManager()

	_, err := cm.ConnectClient(nil, "user-1", "Alice")
	require.NoError(t, err)

	_, err = cm.ConnectClient(nil, "user-1", "Alice again")
	assert.Error(t, err)
	assert.Len(t, cm.GetClients(), 1)
}

func TestClientManager_GetClientIDByWSConn(t *testing.T) {
	cm := NewClientManager()
	assert.Zero(t, cm.GetClientIDByWSConn(nil))
}
