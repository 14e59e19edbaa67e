package workers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cbodonnell/beastball/pkg/game/types"
	"github.com/cbodonnell/beastball/pkg/log"
	"github.com/cbodonnell/beastball/pkg/messages"
)

// MessageSender delivers messages to connected clients.
type MessageSender interface {
	SendReliableMessageToAll(ctx context.Context, msg *messages.Message)
	SendUnreliableMessageToAll(ctx context.Context, msg *messages.Message)
	SendReliableMessageToClient(ctx context.Context, clientID uint32, msg *messages.Message) error
}

type BroadcastMessageWorker struct {
	sender               MessageSender
	broadcastMessageChan <-chan BroadcastMessage
}

// BroadcastMessage is sent to every client, or only to ClientID when it is set.
type BroadcastMessage struct {
	Type     messages.MessageType
	ClientID uint32
	Message  interface{}
}

type NewBroadcastMessageWorkerOptions struct {
	Sender               MessageSender
	BroadcastMessageChan <-chan BroadcastMessage
}

func NewBroadcastMessageWorker(opts NewBroadcastMessageWorkerOptions) *BroadcastMessageWorker {
	return &BroadcastMessageWorker{
		sender:               opts.Sender,
		broadcastMessageChan: opts.BroadcastMessageChan,
	}
}

func (w *BroadcastMessageWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-w.broadcastMessageChan:
			switch msg.Type {
			case messages.MessageTypeServerLobbyUpdate:
				if err := w.handleServerLobbyUpdate(ctx, msg); err != nil {
					log.Error("Failed to handle server lobby update message: %v", err)
				}
			case messages.MessageTypeServerEvents:
				if err := w.handleServerEvents(ctx, msg); err != nil {
					log.Error("Failed to handle server events message: %v", err)
				}
			case messages.MessageTypeServerSnapshot:
				if err := w.handleServerSnapshot(ctx, msg); err != nil {
					log.Error("Failed to handle server snapshot message: %v", err)
				}
			default:
				log.Error("Unknown server message type: %v", msg.Type)
			}
		}
	}
}

func (w *BroadcastMessageWorker) handleServerLobbyUpdate(ctx context.Context, b BroadcastMessage) error {
	lobbyUpdate, ok := b.Message.(*messages.ServerLobbyUpdate)
	if !ok {
		return fmt.Errorf("failed to cast server lobby update message")
	}

	payload, err := json.Marshal(lobbyUpdate)
	if err != nil {
		return fmt.Errorf("failed to marshal lobby update: %v", err)
	}

	return w.sendReliable(ctx, b.ClientID, &messages.Message{
		ClientID: 0,
		Type:     messages.MessageTypeServerLobbyUpdate,
		Payload:  payload,
	})
}

func (w *BroadcastMessageWorker) handleServerEvents(ctx context.Context, b BroadcastMessage) error {
	serverEvents, ok := b.Message.(*messages.ServerEvents)
	if !ok {
		return fmt.Errorf("failed to cast server events message")
	}

	payload, err := json.Marshal(serverEvents)
	if err != nil {
		return fmt.Errorf("failed to marshal server events: %v", err)
	}

	return w.sendReliable(ctx, b.ClientID, &messages.Message{
		ClientID: 0,
		Type:     messages.MessageTypeServerEvents,
		Payload:  payload,
	})
}

func (w *BroadcastMessageWorker) handleServerSnapshot(ctx context.Context, b BroadcastMessage) error {
	snapshot, ok := b.Message.(*types.Snapshot)
	if !ok {
		return fmt.Errorf("failed to cast server snapshot message")
	}

	payload, err := messages.SerializeSnapshot(snapshot)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %v", err)
	}

	message := &messages.Message{
		ClientID: 0,
		Type:     messages.MessageTypeServerSnapshot,
		Payload:  payload,
	}
	if b.ClientID != 0 {
		return w.sender.SendReliableMessageToClient(ctx, b.ClientID, message)
	}
	w.sender.SendUnreliableMessageToAll(ctx, message)

	return nil
}

func (w *BroadcastMessageWorker) sendReliable(ctx context.Context, clientID uint32, msg *messages.Message) error {
	if clientID != 0 {
		return w.sender.SendReliableMessageToClient(ctx, clientID, msg)
	}
	w.sender.SendReliableMessageToAll(ctx, msg)
	return nil
}
