package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cbodonnell/beastball/pkg/client"
	"github.com/cbodonnell/beastball/pkg/events"
	"github.com/cbodonnell/beastball/pkg/game/types"
	"github.com/cbodonnell/beastball/pkg/log"
	"github.com/cbodonnell/beastball/pkg/messages"
)

// A headless client for smoke testing a server. It readies up, logs lobby
// updates and events, and passes the ball on to a random opponent when it
// catches it.
func main() {
	serverURL := flag.String("server", "ws://localhost:8888/", "WebSocket URL of the match server")
	token := flag.String("token", "", "Login token, or the display name with guest auth")
	ready := flag.Bool("ready", true, "Ready up after joining the lobby")
	passDelay := flag.Duration("pass-delay", 500*time.Millisecond, "How long to hold the ball before passing")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}
	log.SetDefaultLogger(log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel))

	if *token == "" {
		*token = fmt.Sprintf("guest-%d", rand.Intn(1000))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := client.Dial(ctx, *serverURL, *token)
	if err != nil {
		panic(fmt.Sprintf("Failed to connect: %v", err))
	}
	defer c.Close()

	go func() {
		if err := c.Run(ctx); err != nil {
			log.Error("Connection error: %v", err)
		}
	}()
	go pingLoop(ctx, c)

	if *ready {
		if err := c.ToggleReady(ctx); err != nil {
			log.Error("Failed to ready up: %v", err)
		}
	}

	var snapshot *types.Snapshot
	var me types.PlayerID = types.NoPlayer
	var passAt time.Time
	for msg := range c.Messages() {
		switch msg.Type {
		case messages.MessageTypeServerLobbyUpdate:
			lobby := &messages.ServerLobbyUpdate{}
			if err := json.Unmarshal(msg.Payload, lobby); err != nil {
				log.Warn("Failed to read lobby update: %v", err)
				continue
			}
			log.Info("Lobby: %d players, counting=%t (%.0fs), ping %.0fms", len(lobby.Slots), lobby.Counting, lobby.Countdown, c.Latency())
		case messages.MessageTypeServerEvents:
			batch := &messages.ServerEvents{}
			if err := json.Unmarshal(msg.Payload, batch); err != nil {
				log.Warn("Failed to read events: %v", err)
				continue
			}
			for _, e := range batch.Events {
				log.Info("Event %d: %s %+v", e.Seq, e.Type, e.Event)
				if caught, ok := e.Event.(events.BallCaught); ok && caught.Catcher == me {
					passAt = time.Now().Add(*passDelay)
				}
			}
		case messages.MessageTypeServerSnapshot:
			s, err := messages.DeserializeSnapshot(msg.Payload)
			if err != nil {
				log.Warn("Failed to read snapshot: %v", err)
				continue
			}
			snapshot = s
			if me == types.NoPlayer {
				me = findSelf(snapshot, *token)
			}
		}

		if !passAt.IsZero() && time.Now().After(passAt) && snapshot != nil && snapshot.BallCarrier == me {
			passAt = time.Time{}
			if target, ok := pickTarget(snapshot, me); ok {
				if err := c.Pass(ctx, target); err != nil {
					log.Error("Failed to pass: %v", err)
				}
			}
		}
	}
	log.Info("Disconnected")
}

func pingLoop(ctx context.Context, c *client.Client) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	for {
		if err := c.Ping(ctx); err != nil {
			log.Debug("Failed to ping: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// findSelf looks up this client's slot by display name.
func findSelf(snapshot *types.Snapshot, name string) types.PlayerID {
	for _, p := range snapshot.Players {
		if p.Available && !p.IsAI && p.Name == name {
			return p.ID
		}
	}
	return types.NoPlayer
}

func pickTarget(snapshot *types.Snapshot, me types.PlayerID) (types.PlayerID, bool) {
	var targets []types.PlayerID
	for _, id := range snapshot.Remaining {
		if id != me {
			targets = append(targets, id)
		}
	}
	if len(targets) == 0 {
		return types.NoPlayer, false
	}
	return targets[rand.Intn(len(targets))], true
}
