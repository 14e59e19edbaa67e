package network

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	authproviders "github.com/cbodonnell/beastball/pkg/auth/providers"
	"github.com/cbodonnell/beastball/pkg/log"
	"github.com/cbodonnell/beastball/pkg/messages"
	"github.com/cbodonnell/beastball/pkg/queue"
	"nhooyr.io/websocket"
)

// UnreliableWriteTimeout bounds how long a snapshot write may block on a
// slow client before the message is dropped.
const UnreliableWriteTimeout = 50 * time.Millisecond

type NetworkManager struct {
	AuthProvider  authproviders.AuthProvider
	ClientManager *ClientManager
	MessageQueue  queue.Queue
	WSServer      *WSServer
}

type NewNetworkManagerOptions struct {
	AuthProvider  authproviders.AuthProvider
	ClientManager *ClientManager
	MessageQueue  queue.Queue
	WSPort        int
	WSServerTLS   *TLSConfig
}

func NewNetworkManager(options NewNetworkManagerOptions) *NetworkManager {
	return &NetworkManager{
		AuthProvider:  options.AuthProvider,
		ClientManager: options.ClientManager,
		MessageQueue:  options.MessageQueue,
		WSServer: NewWSServer(NewWSServerOptions{
			Port: options.WSPort,
			TLS:  options.WSServerTLS,
		}),
	}
}

func (n *NetworkManager) Start(ctx context.Context) {
	go n.WSServer.Start(ctx, n.handleDisconnect, n.handleMessage)
}

// Handler exposes the websocket endpoint without binding a listener.
func (n *NetworkManager) Handler(ctx context.Context) *WSHandler {
	return n.WSServer.Handler(ctx, n.handleDisconnect, n.handleMessage)
}

type DisconnectHandler func(wsConn *websocket.Conn)

func (n *NetworkManager) handleDisconnect(wsConn *websocket.Conn) {
	clientID := n.ClientManager.GetClientIDByWSConn(wsConn)
	if clientID != 0 {
		n.ClientManager.DisconnectClient(clientID)
		log.Info("Client %d disconnected", clientID)
		return
	}

	log.Trace("Unauthenticated connection closed")
}

type MessageHandler func(ctx context.Context, wsConn *websocket.Conn, message *messages.Message)

func (n *NetworkManager) handleMessage(ctx context.Context, wsConn *websocket.Conn, message *messages.Message) {
	if message.Type == messages.MessageTypeClientLogin {
		if n.ClientManager.GetClientIDByWSConn(wsConn) != 0 {
			log.Warn("Received login message on an authenticated connection, ignoring")
			return
		}
		clientID, err := n.handleClientLogin(ctx, wsConn, message)
		if err != nil {
			log.Error("Failed to handle client login: %v", err)
			if err := n.sendServerLoginFailure(ctx, wsConn, err.Error()); err != nil {
				log.Error("Failed to send server login failure: %v", err)
			}
			return
		}
		log.Info("Client %d connected", clientID)
		if err := n.sendServerLoginSuccess(ctx, clientID); err != nil {
			log.Error("Failed to send server login success: %v", err)
		}
		return
	}

	// the connection is the identity, whatever the message claims
	clientID := n.ClientManager.GetClientIDByWSConn(wsConn)
	if clientID == 0 {
		log.Warn("Received message from unknown client that is not a login message")
		return
	}
	message.ClientID = clientID

	switch message.Type {
	case messages.MessageTypeClientPing:
		if err := n.handleClientPing(ctx, message); err != nil {
			log.Error("Failed to handle client ping: %v", err)
		}
	default:
		if err := n.MessageQueue.Enqueue(message); err != nil {
			log.Error("Failed to enqueue message: %v", err)
		}
	}
}

// handleClientLogin handles a client login message.
func (n *NetworkManager) handleClientLogin(ctx context.Context, wsConn *websocket.Conn, message *messages.Message) (uint32, error) {
	clientLogin := &messages.ClientLogin{}
	if err := json.Unmarshal(message.Payload, clientLogin); err != nil {
		return 0, fmt.Errorf("failed to unmarshal client login: %v", err)
	}

	token, err := n.AuthProvider.VerifyToken(ctx, clientLogin.Token)
	if err != nil {
		return 0, fmt.Errorf("failed to verify token: %v", err)
	}

	clientID, err := n.ClientManager.ConnectClient(wsConn, token.UID, token.Name)
	if err != nil {
		return 0, fmt.Errorf("failed to connect client: %v", err)
	}

	return clientID, nil
}

func (n *NetworkManager) sendServerLoginSuccess(ctx context.Context, clientID uint32) error {
	serverLoginSuccess := &messages.ServerLoginSuccess{
		ClientID: clientID,
	}

	payload, err := json.Marshal(serverLoginSuccess)
	if err != nil {
		return fmt.Errorf("failed to marshal server login success: %v", err)
	}

	msg := &messages.Message{
		ClientID: 0,
		Type:     messages.MessageTypeServerLoginSuccess,
		Payload:  payload,
	}

	if err := n.SendReliableMessageToClient(ctx, clientID, msg); err != nil {
		return fmt.Errorf("failed to send server login success: %v", err)
	}

	return nil
}

// sendServerLoginFailure writes straight to the connection since a client
// that failed to log in has no ID.
func (n *NetworkManager) sendServerLoginFailure(ctx context.Context, wsConn *websocket.Conn, reason string) error {
	msg, err := LoginFailureMessage(reason)
	if err != nil {
		return err
	}

	if err := WriteMessageToWS(ctx, wsConn, msg); err != nil {
		return fmt.Errorf("failed to send server login failure: %v", err)
	}

	return nil
}

// LoginFailureMessage builds the message sent to a client whose login was refused.
func LoginFailureMessage(reason string) (*messages.Message, error) {
	payload, err := json.Marshal(&messages.ServerLoginFailure{
		Reason: reason,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal server login failure: %v", err)
	}

	return &messages.Message{
		ClientID: 0,
		Type:     messages.MessageTypeServerLoginFailure,
		Payload:  payload,
	}, nil
}

func (n *NetworkManager) handleClientPing(ctx context.Context, message *messages.Message) error {
	clientPing := &messages.ClientPing{}
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, clientPing); err != nil {
			return fmt.Errorf("failed to unmarshal client ping: %v", err)
		}
	}

	serverPong := &messages.ServerPong{
		ClientTimestamp: clientPing.Timestamp,
		ServerTimestamp: time.Now().UnixMilli(),
	}

	payload, err := json.Marshal(serverPong)
	if err != nil {
		return fmt.Errorf("failed to marshal server pong: %v", err)
	}

	msg := &messages.Message{
		ClientID: 0,
		Type:     messages.MessageTypeServerPong,
		Payload:  payload,
	}

	if err := n.SendUnreliableMessageToClient(ctx, message.ClientID, msg); err != nil {
		return fmt.Errorf("failed to write pong message to client: %v", err)
	}

	return nil
}

// DisconnectClient closes the connection of a client with a reason. The
// disconnect event is emitted by the read loop once the close completes.
func (n *NetworkManager) DisconnectClient(clientID uint32, reason string) error {
	client, err := n.ClientManager.GetClient(clientID)
	if err != nil {
		return fmt.Errorf("failed to get client %d: %v", clientID, err)
	}
	if client.WSConn == nil {
		n.ClientManager.DisconnectClient(clientID)
		return nil
	}
	if err := client.WSConn.Close(websocket.StatusPolicyViolation, reason); err != nil {
		return fmt.Errorf("failed to close connection for client %d: %v", clientID, err)
	}
	return nil
}

// SendUnreliableMessageToAll drops the message for clients that cannot
// accept it within UnreliableWriteTimeout.
func (n *NetworkManager) SendUnreliableMessageToAll(ctx context.Context, msg *messages.Message) {
	for _, client := range n.ClientManager.GetClients() {
		if err := n.sendUnreliableMessageToClient(ctx, client, msg); err != nil {
			log.Debug("Dropped unreliable message to client %d: %v", client.ID, err)
		}
	}
}

func (n *NetworkManager) sendUnreliableMessageToClient(ctx context.Context, client *Client, msg *messages.Message) error {
	ctx, cancel := context.WithTimeout(ctx, UnreliableWriteTimeout)
	defer cancel()

	if err := WriteMessageToWS(ctx, client.WSConn, msg); err != nil {
		return fmt.Errorf("failed to write message to WebSocket connection for client %d: %v", client.ID, err)
	}

	return nil
}

func (n *NetworkManager) SendUnreliableMessageToClient(ctx context.Context, clientID uint32, msg *messages.Message) error {
	client, err := n.ClientManager.GetClient(clientID)
	if err != nil {
		return fmt.Errorf("failed to get client %d: %v", clientID, err)
	}

	if err := n.sendUnreliableMessageToClient(ctx, client, msg); err != nil {
		return fmt.Errorf("failed to send unreliable message to client %d: %v", clientID, err)
	}

	return nil
}

func (n *NetworkManager) SendReliableMessageToAll(ctx context.Context, msg *messages.Message) {
	for _, client := range n.ClientManager.GetClients() {
		if err := n.sendReliableMessageToClient(ctx, client, msg); err != nil {
			log.Error("Failed to send reliable message to client %d: %v", client.ID, err)
		}
	}
}

func (n *NetworkManager) sendReliableMessageToClient(ctx context.Context, client *Client, msg *messages.Message) error {
	if err := WriteMessageToWS(ctx, client.WSConn, msg); err != nil {
		return fmt.Errorf("failed to write message to WebSocket connection for client %d: %v", client.ID, err)
	}

	return nil
}

func (n *NetworkManager) SendReliableMessageToClient(ctx context.Context, clientID uint32, msg *messages.Message) error {
	client, err := n.ClientManager.GetClient(clientID)
	if err != nil {
		return fmt.Errorf("failed to get client %d: %v", clientID, err)
	}

	if err := n.sendReliableMessageToClient(ctx, client, msg); err != nil {
		return fmt.Errorf("failed to send reliable message to client %d: %v", clientID, err)
	}

	return nil
}
