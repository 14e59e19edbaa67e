package workers

import (
	"context"
	"fmt"
	"time"

	gametypes "github.com/cbodonnell/beastball/pkg/game/types"
	"github.com/cbodonnell/beastball/pkg/log"
	"github.com/cbodonnell/beastball/pkg/network"
	"github.com/cbodonnell/beastball/pkg/queue"
)

// DefaultRegistrationTimeout bounds how long a new client waits for a lobby slot.
const DefaultRegistrationTimeout = 2 * time.Second

// ClientDisconnector closes a client connection with a reason.
type ClientDisconnector interface {
	DisconnectClient(clientID uint32, reason string) error
}

type ConnectionEventWorker struct {
	connectionEventChan <-chan network.ConnectionEvent
	lobbyEventQueue     queue.Queue
	disconnector        ClientDisconnector
	registrationTimeout time.Duration
}

type NewConnectionEventWorkerOptions struct {
	ConnectionEventChan <-chan network.ConnectionEvent
	LobbyEventQueue     queue.Queue
	Disconnector        ClientDisconnector
	RegistrationTimeout time.Duration
}

// NewConnectionEventWorker creates a new ConnectionEventWorker.
// The worker processes client events like connect and disconnect
// and writes lobby events to a queue for the game loop to process.
// Clients that cannot be seated are disconnected.
func NewConnectionEventWorker(opts NewConnectionEventWorkerOptions) *ConnectionEventWorker {
	timeout := opts.RegistrationTimeout
	if timeout <= 0 {
		timeout = DefaultRegistrationTimeout
	}
	return &ConnectionEventWorker{
		connectionEventChan: opts.ConnectionEventChan,
		lobbyEventQueue:     opts.LobbyEventQueue,
		disconnector:        opts.Disconnector,
		registrationTimeout: timeout,
	}
}

func (w *ConnectionEventWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-w.connectionEventChan:
			switch event.Type {
			case network.ConnectionEventTypeConnect:
				w.handleClientConnect(ctx, event)
			case network.ConnectionEventTypeDisconnect:
				w.handleClientDisconnect(event)
			default:
				log.Error("Unknown client event type: %v", event.Type)
			}
		}
	}
}

func (w *ConnectionEventWorker) handleClientConnect(ctx context.Context, event network.ConnectionEvent) {
	data, ok := event.Data.(network.ClientConnectData)
	if !ok {
		log.Error("Failed to cast client connect data")
		return
	}

	if err := w.registerClient(ctx, event.ClientID, data.Name); err != nil {
		log.Warn("Failed to seat client %d: %v", event.ClientID, err)
		if err := w.disconnector.DisconnectClient(event.ClientID, err.Error()); err != nil {
			log.Error("Failed to disconnect client %d: %v", event.ClientID, err)
		}
	}
}

// registerClient waits for the game loop to assign a slot.
func (w *ConnectionEventWorker) registerClient(ctx context.Context, clientID uint32, name string) error {
	result := make(chan gametypes.RegistrationResult, 1)
	if err := w.lobbyEventQueue.Enqueue(&gametypes.ConnectPlayerEvent{
		ClientID: clientID,
		Name:     name,
		Result:   result,
	}); err != nil {
		return fmt.Errorf("failed to enqueue connect player event: %v", err)
	}

	timer := time.NewTimer(w.registrationTimeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return fmt.Errorf("timed out waiting for a lobby slot")
	case r := <-result:
		if r.Err != nil {
			return r.Err
		}
		log.Info("Client %d seated as player %d", clientID, r.PlayerID)
		return nil
	}
}

func (w *ConnectionEventWorker) handleClientDisconnect(event network.ConnectionEvent) {
	if err := w.lobbyEventQueue.Enqueue(&gametypes.DisconnectPlayerEvent{
		ClientID: event.ClientID,
	}); err != nil {
		log.Error("Failed to enqueue disconnect player event: %v", err)
	}
}
