package client

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/cbodonnell/beastball/pkg/game/types"
	"github.com/cbodonnell/beastball/pkg/kinematic"
	"github.com/cbodonnell/beastball/pkg/log"
	"github.com/cbodonnell/beastball/pkg/messages"
	"nhooyr.io/websocket"
)

// DefaultLoginTimeout bounds how long Dial waits for the login result.
const DefaultLoginTimeout = 5 * time.Second

// ErrLoginFailed is returned when the server refuses the login.
type ErrLoginFailed struct {
	Reason string
}

func (e *ErrLoginFailed) Error() string {
	return fmt.Sprintf("server login failure: %s", e.Reason)
}

// Client is a headless match client. Server messages other than pongs are
// delivered on Messages; snapshots are dropped when the reader falls behind.
type Client struct {
	conn     *websocket.Conn
	clientID uint32
	messages chan *messages.Message

	rttLock    sync.Mutex
	recentRTTs []int64
	serverTime int64
}

// Dial connects to a match server and logs in with token.
func Dial(ctx context.Context, url string, token string) (*Client, error) {
	log.Info("Connecting to WebSocket server at %s", url)
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %v", err)
	}
	conn.SetReadLimit(messages.MessageBufferSize)

	c := &Client{
		conn:     conn,
		messages: make(chan *messages.Message, 256),
	}

	payload, err := json.Marshal(messages.ClientLogin{Token: token})
	if err != nil {
		conn.Close(websocket.StatusInternalError, "")
		return nil, fmt.Errorf("failed to marshal login: %v", err)
	}
	if err := c.send(ctx, messages.MessageTypeClientLogin, payload); err != nil {
		conn.Close(websocket.StatusInternalError, "")
		return nil, err
	}

	loginCtx, cancel := context.WithTimeout(ctx, DefaultLoginTimeout)
	defer cancel()
	for {
		msg, err := c.read(loginCtx)
		if err != nil {
			conn.Close(websocket.StatusNormalClosure, "")
			return nil, fmt.Errorf("failed to read login result: %v", err)
		}
		switch msg.Type {
		case messages.MessageTypeServerLoginSuccess:
			success := &messages.ServerLoginSuccess{}
			if err := json.Unmarshal(msg.Payload, success); err != nil {
				conn.Close(websocket.StatusNormalClosure, "")
				return nil, fmt.Errorf("failed to deserialize server login success message: %v", err)
			}
			c.clientID = success.ClientID
			log.Info("Logged in with client ID %d", c.clientID)
			return c, nil
		case messages.MessageTypeServerLoginFailure:
			failure := &messages.ServerLoginFailure{}
			if err := json.Unmarshal(msg.Payload, failure); err != nil {
				conn.Close(websocket.StatusNormalClosure, "")
				return nil, fmt.Errorf("failed to deserialize server login failure message: %v", err)
			}
			conn.Close(websocket.StatusNormalClosure, "")
			return nil, &ErrLoginFailed{Reason: failure.Reason}
		default:
			log.Trace("Ignoring %s before login", msg.Type)
		}
	}
}

func (c *Client) ClientID() uint32 {
	return c.clientID
}

// Messages returns the server messages read by Run.
func (c *Client) Messages() <-chan *messages.Message {
	return c.messages
}

// Run reads server messages until the connection closes or ctx is done.
// The messages channel is closed when Run returns.
func (c *Client) Run(ctx context.Context) error {
	defer close(c.messages)
	for {
		msg, err := c.read(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if status := websocket.CloseStatus(err); status != -1 {
				log.Info("Connection closed by server (%s)", status)
				return nil
			}
			return err
		}

		switch msg.Type {
		case messages.MessageTypeServerPong:
			c.handlePong(msg)
		case messages.MessageTypeServerSnapshot:
			select {
			case c.messages <- msg:
			default:
				log.Trace("Dropping snapshot, reader is behind")
			}
		default:
			select {
			case c.messages <- msg:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func (c *Client) read(ctx context.Context) (*messages.Message, error) {
	for {
		typ, b, err := c.conn.Read(ctx)
		if err != nil {
			return nil, err
		}
		if typ != websocket.MessageBinary {
			continue
		}
		msg, err := messages.DeserializeMessage(b)
		if err != nil {
			log.Warn("Failed to deserialize server message: %v", err)
			continue
		}
		return msg, nil
	}
}

func (c *Client) handlePong(msg *messages.Message) {
	pong := &messages.ServerPong{}
	if err := json.Unmarshal(msg.Payload, pong); err != nil {
		log.Warn("Failed to deserialize pong: %v", err)
		return
	}
	rtt := time.Now().UnixMilli() - pong.ClientTimestamp

	c.rttLock.Lock()
	defer c.rttLock.Unlock()
	c.recentRTTs = append(c.recentRTTs, rtt)
	for len(c.recentRTTs) > maxRecentRTTs {
		c.recentRTTs = c.recentRTTs[1:]
	}
	c.serverTime = pong.ServerTimestamp + rtt/2
	log.Trace("Server time: %d, rtt: %d", c.serverTime, rtt)
}

// Latency returns the average round trip in milliseconds, ignoring outliers.
func (c *Client) Latency() float64 {
	c.rttLock.Lock()
	defer c.rttLock.Unlock()
	return averageRTT(c.recentRTTs)
}

// ServerTime returns the server clock estimated from the last pong.
func (c *Client) ServerTime() int64 {
	c.rttLock.Lock()
	defer c.rttLock.Unlock()
	return c.serverTime
}

func (c *Client) send(ctx context.Context, typ messages.MessageType, payload []byte) error {
	b, err := messages.SerializeMessage(&messages.Message{
		ClientID: c.clientID,
		Type:     typ,
		Payload:  payload,
	})
	if err != nil {
		return fmt.Errorf("failed to serialize message: %v", err)
	}
	if err := c.conn.Write(ctx, websocket.MessageBinary, b); err != nil {
		return fmt.Errorf("failed to write message to WebSocket connection: %v", err)
	}
	return nil
}

func (c *Client) sendJSON(ctx context.Context, typ messages.MessageType, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %v", typ, err)
	}
	return c.send(ctx, typ, payload)
}

func (c *Client) Ping(ctx context.Context) error {
	return c.sendJSON(ctx, messages.MessageTypeClientPing, messages.ClientPing{Timestamp: time.Now().UnixMilli()})
}

// ToggleReady flips the lobby readiness of this client's slot.
func (c *Client) ToggleReady(ctx context.Context) error {
	return c.send(ctx, messages.MessageTypeClientReady, nil)
}

func (c *Client) Move(ctx context.Context, destination kinematic.Vector) error {
	return c.sendJSON(ctx, messages.MessageTypeClientMove, messages.ClientMove{Destination: destination})
}

func (c *Client) Stop(ctx context.Context) error {
	return c.send(ctx, messages.MessageTypeClientStop, nil)
}

func (c *Client) Blink(ctx context.Context, destination kinematic.Vector) error {
	return c.sendJSON(ctx, messages.MessageTypeClientBlink, messages.ClientBlink{Destination: destination})
}

func (c *Client) Pass(ctx context.Context, target types.PlayerID) error {
	return c.sendJSON(ctx, messages.MessageTypeClientPass, messages.ClientPass{Target: target})
}

func (c *Client) Taunt(ctx context.Context, taunt int) error {
	return c.sendJSON(ctx, messages.MessageTypeClientTaunt, messages.ClientTaunt{Taunt: taunt})
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close(websocket.StatusNormalClosure, "")
}
