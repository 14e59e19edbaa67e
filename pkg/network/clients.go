package network

import (
	"fmt"
	"math/rand"
	"sync"

	"nhooyr.io/websocket"
)

const (
	// ClientIDMaxRetries represents the maximum number of retries when generating a unique ID
	ClientIDMaxRetries = 1024
	// ConnectionEventChannelSize represents the size of the connection event channel
	ConnectionEventChannelSize = 1024
)

// Client represents a connected client
type Client struct {
	ID     uint32
	UserID string
	Name   string
	WSConn *websocket.Conn
}

// ConnectionEvent represents an event that happened to a client
type ConnectionEvent struct {
	ClientID uint32
	Type     ConnectionEventType
	Data     interface{}
}

// ConnectionEventType represents the type of a connection event
type ConnectionEventType int

const (
	ConnectionEventTypeConnect ConnectionEventType = iota
	ConnectionEventTypeDisconnect
)

type ClientConnectData struct {
	UserID string
	Name   string
}

// ClientManager manages connected clients
type ClientManager struct {
	clients             map[uint32]*Client
	clientsLock         sync.RWMutex
	connectionEventChan chan ConnectionEvent
}

// NewClientManager creates a new ClientManager
func NewClientManager() *ClientManager {
	return &ClientManager{
		clients:             make(map[uint32]*Client),
		connectionEventChan: make(chan ConnectionEvent, ConnectionEventChannelSize),
	}
}

// GetConnectionEventChan returns a one-way channel for receiving connection events
func (cm *ClientManager) GetConnectionEventChan() <-chan ConnectionEvent {
	return cm.connectionEventChan
}

// GetClients returns a slice with a copy of all connected clients.
func (cm *ClientManager) GetClients() []*Client {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	clients := make([]*Client, 0, len(cm.clients))
	for _, client := range cm.clients {
		copy := *client
		clients = append(clients, &copy)
	}
	return clients
}

// GetClient returns a copy of a connected client.
func (cm *ClientManager) GetClient(clientID uint32) (*Client, error) {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	client, ok := cm.clients[clientID]
	if !ok {
		return nil, fmt.Errorf("client %d not found", clientID)
	}
	copy := *client
	return &copy, nil
}

// ConnectClient adds a new client to the manager and returns its ID.
// A user can only be connected once.
func (cm *ClientManager) ConnectClient(wsConn *websocket.Conn, userID string, name string) (uint32, error) {
	cm.clientsLock.Lock()
	defer cm.clientsLock.Unlock()

	for _, client := range cm.clients {
		if client.UserID == userID {
			return 0, fmt.Errorf("user %s is already connected as client %d", userID, client.ID)
		}
	}

	clientID, err := cm.generateUniqueID(ClientIDMaxRetries)
	if err != nil {
		return 0, fmt.Errorf("failed to generate a unique ID: %v", err)
	}
	client := &Client{
		ID:     clientID,
		UserID: userID,
		Name:   name,
		WSConn: wsConn,
	}
	cm.clients[clientID] = client

	event := ConnectionEvent{
		ClientID: clientID,
		Type:     ConnectionEventTypeConnect,
		Data: ClientConnectData{
			UserID: userID,
			Name:   name,
		},
	}
	cm.connectionEventChan <- event

	return clientID, nil
}

// GetClientIDByWSConn returns the ID of a client by its WebSocket connection.
// Returns 0 if the client is not found
func (cm *ClientManager) GetClientIDByWSConn(conn *websocket.Conn) uint32 {
	if conn == nil {
		return 0
	}
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	for _, client := range cm.clients {
		if client.WSConn == conn {
			return client.ID
		}
	}
	return 0
}

// DisconnectClient removes a client from the manager
func (cm *ClientManager) DisconnectClient(clientID uint32) {
	cm.clientsLock.Lock()
	defer cm.clientsLock.Unlock()

	client, ok := cm.clients[clientID]
	if !ok {
		return
	}

	event := ConnectionEvent{
		ClientID: client.ID,
		Type:     ConnectionEventTypeDisconnect,
	}
	cm.connectionEventChan <- event

	delete(cm.clients, clientID)
}

func (cm *ClientManager) Exists(clientID uint32) bool {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	_, ok := cm.clients[clientID]
	return ok
}

// generateUniqueID generates a unique client ID with a maximum number of retries
// it reads from the clients, so it needs to be locked before calling
func (cm *ClientManager) generateUniqueID(maxRetries int) (uint32, error) {
	for attempt := 0; attempt < maxRetries; attempt++ {
		id := rand.Uint32()
		if id == 0 {
			continue
		}
		if _, ok := cm.clients[id]; !ok {
			return id, nil
		}
	}

	return 0, fmt.Errorf("failed to generate a unique ID after %d attempts", maxRetries)
}
