package game

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/cbodonnell/beastball/pkg/ai"
	"github.com/cbodonnell/beastball/pkg/collisions"
	"github.com/cbodonnell/beastball/pkg/events"
	"github.com/cbodonnell/beastball/pkg/game/constants"
	"github.com/cbodonnell/beastball/pkg/game/lifecycle"
	"github.com/cbodonnell/beastball/pkg/game/types"
	"github.com/cbodonnell/beastball/pkg/log"
	"github.com/cbodonnell/beastball/pkg/messages"
	"github.com/cbodonnell/beastball/pkg/queue"
	"github.com/cbodonnell/beastball/pkg/registration"
	"github.com/cbodonnell/beastball/pkg/repositories/models"
	"github.com/cbodonnell/beastball/pkg/scheduler"
	"github.com/cbodonnell/beastball/pkg/state"
	"github.com/cbodonnell/beastball/pkg/workers"
	"github.com/rotisserie/eris"
)

var ErrNotEnoughPlayers = eris.New("not enough players")

type GameManager struct {
	clientMessageQueue   queue.Queue
	lobbyEventQueue      queue.Queue
	intentQueue          queue.Queue
	stateManager         state.StateManager
	gameState            *types.GameState
	bus                  *events.Bus
	scheduler            *scheduler.Scheduler
	match                *Match
	registration         *registration.Service
	ready                *registration.ReadyController
	registry             *ai.Registry
	agents               map[types.PlayerID]ai.Behaviour
	rng                  *rand.Rand
	disconnector         workers.ClientDisconnector
	broadcastMessageChan chan<- workers.BroadcastMessage
	saveMatchResultChan  chan<- workers.SaveMatchResultRequest
	gameLoopInterval     time.Duration

	tick           uint64
	matchStartedAt int64
	lobbyDirty     bool
	lastCountdown  int

	lobbyLock sync.RWMutex
	lobby     *messages.ServerLobbyUpdate
}

// NewGameManagerOptions contains options for creating a new GameManager.
type NewGameManagerOptions struct {
	ClientMessageQueue queue.Queue
	LobbyEventQueue    queue.Queue
	IntentQueue        queue.Queue
	StateManager       state.StateManager
	// GameState defaults to an empty lobby with a fresh collision space
	GameState *types.GameState
	Registry  *ai.Registry
	Rand      *rand.Rand
	// Disconnector, when set, closes the connection of kicked human players
	Disconnector         workers.ClientDisconnector
	BroadcastMessageChan chan<- workers.BroadcastMessage
	SaveMatchResultChan  chan<- workers.SaveMatchResultRequest
	GameLoopInterval     time.Duration
}

func NewGameManager(opts NewGameManagerOptions) *GameManager {
	gm := &GameManager{
		clientMessageQueue:   opts.ClientMessageQueue,
		lobbyEventQueue:      opts.LobbyEventQueue,
		intentQueue:          opts.IntentQueue,
		stateManager:         opts.StateManager,
		gameState:            opts.GameState,
		bus:                  events.NewBus(),
		scheduler:            scheduler.New(),
		registry:             opts.Registry,
		agents:               make(map[types.PlayerID]ai.Behaviour),
		rng:                  opts.Rand,
		disconnector:         opts.Disconnector,
		broadcastMessageChan: opts.BroadcastMessageChan,
		saveMatchResultChan:  opts.SaveMatchResultChan,
		gameLoopInterval:     opts.GameLoopInterval,
		lobbyDirty:           true,
		lastCountdown:        -1,
	}
	if gm.gameState == nil {
		gm.gameState = types.NewGameState(collisions.NewCollisionSpace())
	}
	if gm.registry == nil {
		gm.registry = ai.NewDefaultRegistry(ai.DefaultBuiltinOptions())
	}
	if gm.rng == nil {
		gm.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if gm.gameLoopInterval <= 0 {
		gm.gameLoopInterval = constants.DefaultGameLoopInterval
	}

	gm.initializeGameState()
	gm.match = NewMatch(MatchOptions{
		State:       gm.gameState,
		Bus:         gm.bus,
		Scheduler:   gm.scheduler,
		Rand:        rand.New(rand.NewSource(gm.rng.Int63())),
		OnConcluded: gm.onMatchConcluded,
	})
	gm.registration = registration.NewService(gm.gameState)
	gm.ready = registration.NewReadyController(gm.gameState, gm.scheduler, gm.launchMatch)
	gm.lobby = gm.buildLobbyUpdate()

	return gm
}

// Start starts the game loop.
func (gm *GameManager) Start(ctx context.Context) error {
	ticker := time.NewTicker(gm.gameLoopInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			gm.Shutdown()
			return nil
		case t := <-ticker.C:
			err := gm.gameTick(ctx, t)
			if err != nil {
				log.Error("Failed to run game tick: %v", err)
			}
		}
	}
}

// Shutdown aborts a running match so its continuations never fire.
func (gm *GameManager) Shutdown() {
	if gm.gameState.MatchState.InProgress() {
		if err := gm.match.AbortMatch(); err != nil {
			log.Error("Failed to abort match on shutdown: %v", err)
		}
	}
}

// initializeGameState gives every slot a collision object for beast contact.
func (gm *GameManager) initializeGameState() {
	for _, p := range gm.gameState.Players {
		if p.Object != nil || gm.gameState.CollisionSpace == nil {
			continue
		}
		p.Object = collisions.NewPlayerObject()
		gm.gameState.CollisionSpace.Add(p.Object)
		p.SetPosition(p.Position)
	}
}

// gameTick runs one iteration of the game loop.
func (gm *GameManager) gameTick(ctx context.Context, t time.Time) error {
	return gm.step(ctx, t.UnixMilli(), gm.gameLoopInterval.Seconds())
}

func (gm *GameManager) step(ctx context.Context, timestamp int64, deltaTime float64) error {
	gm.tick++
	gm.gameState.Timestamp = timestamp
	gm.bus.SetTick(gm.tick)

	gm.scheduler.Advance(deltaTime)
	gm.processLobbyEvents()
	gm.processClientMessages()
	gm.processIntents()
	gm.match.Update(deltaTime)
	gm.match.CheckBeastCollisions()
	gm.bus.Flush()

	tracker := gm.match.PowerShot()
	snapshot := types.NewSnapshot(gm.gameState, gm.tick, tracker.IsPowerShot(), tracker.Charge())
	if err := gm.stateManager.Set(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to set game state: %v", err)
	}

	gm.updateAgents(deltaTime, snapshot)
	gm.broadcast(ctx, snapshot)

	return nil
}

// processLobbyEvents applies all pending lobby commands in arrival order.
func (gm *GameManager) processLobbyEvents() {
	pendingEvents, err := gm.lobbyEventQueue.ReadAllMessages()
	if err != nil {
		log.Error("Failed to read lobby events: %v", err)
		return
	}
	for _, item := range pendingEvents {
		switch event := item.(type) {
		case *types.ConnectPlayerEvent:
			id, err := gm.registration.RegisterPlayer(event.ClientID, event.Name)
			if err == nil {
				gm.lobbyDirty = true
				gm.ready.Evaluate()
			}
			if event.Result != nil {
				event.Result <- types.RegistrationResult{PlayerID: id, Err: err}
			}
		case *types.DisconnectPlayerEvent:
			id, ok := gm.registration.PlayerForClient(event.ClientID)
			if !ok {
				log.Debug("Client %d disconnected without a slot", event.ClientID)
				continue
			}
			if err := gm.removePlayer(id); err != nil {
				log.Error("Failed to remove player %d: %v", id, err)
			}
		case *types.AddAIPlayerEvent:
			id, err := gm.addAIPlayer(event.Strategy)
			if err != nil {
				log.Warn("Failed to add AI player: %v", err)
			}
			if event.Result != nil {
				event.Result <- types.RegistrationResult{PlayerID: id, Err: err}
			}
		case *types.KickPlayerEvent:
			err := gm.kickPlayer(event.PlayerID)
			if event.Result != nil {
				event.Result <- err
			}
		case *types.SetLivesEvent:
			err := gm.setLives(event.Lives, event.InfiniteLives)
			if event.Result != nil {
				event.Result <- err
			}
		case *types.ForceStartEvent:
			err := gm.forceStart()
			if event.Result != nil {
				event.Result <- err
			}
		case *types.AbortMatchEvent:
			err := gm.abortMatch()
			if event.Result != nil {
				event.Result <- err
			}
		default:
			log.Error("unhandled lobby event type: %T", event)
		}
	}
}

// processClientMessages processes all pending client messages in the queue
// and turns them into intents or lobby commands for the sender's slot.
func (gm *GameManager) processClientMessages() {
	pendingMessages, err := gm.clientMessageQueue.ReadAllMessages()
	if err != nil {
		log.Error("Failed to read client messages: %v", err)
		return
	}
	for _, item := range pendingMessages {
		message, ok := item.(*messages.Message)
		if !ok {
			log.Error("Failed to cast message to messages.Message")
			continue
		}

		id, ok := gm.registration.PlayerForClient(message.ClientID)
		if !ok {
			log.Debug("Dropping %s from client %d without a slot", message.Type, message.ClientID)
			continue
		}

		switch message.Type {
		case messages.MessageTypeClientReady:
			if _, err := gm.ready.ToggleReady(id); err != nil {
				log.Debug("Failed to toggle ready for player %d: %v", id, err)
				continue
			}
			gm.lobbyDirty = true
		default:
			intent, err := messages.IntentFromMessage(message, id)
			if err != nil {
				log.Warn("Failed to read intent from client %d: %v", message.ClientID, err)
				continue
			}
			gm.applyIntent(intent)
		}
	}
}

// processIntents applies the intents emitted by AI agents since the last tick.
func (gm *GameManager) processIntents() {
	pendingIntents, err := gm.intentQueue.ReadAllMessages()
	if err != nil {
		log.Error("Failed to read intents: %v", err)
		return
	}
	for _, item := range pendingIntents {
		intent, ok := item.(types.Intent)
		if !ok {
			log.Error("Failed to cast %T to types.Intent", item)
			continue
		}
		gm.applyIntent(intent)
	}
}

// EmitIntent queues an intent for the next tick. It implements ai.IntentEmitter.
func (gm *GameManager) EmitIntent(intent types.Intent) bool {
	if err := gm.intentQueue.Enqueue(intent); err != nil {
		log.Error("Failed to enqueue intent: %v", err)
		return false
	}
	return true
}

func (gm *GameManager) updateAgents(deltaTime float64, snapshot *types.Snapshot) {
	ids := make([]types.PlayerID, 0, len(gm.agents))
	for id := range gm.agents {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		gm.agents[id].Update(deltaTime, snapshot)
	}
}

// broadcast hands the tick's events, snapshot and, when it changed, the
// lobby to the broadcast worker. Snapshots are dropped when the worker
// falls behind; events and lobby updates are not.
func (gm *GameManager) broadcast(ctx context.Context, snapshot *types.Snapshot) {
	envelopes := gm.bus.Drain()

	if gm.ready.Counting() {
		if countdown := int(gm.ready.Remaining()); countdown != gm.lastCountdown {
			gm.lastCountdown = countdown
			gm.lobbyDirty = true
		}
	} else if gm.lastCountdown != -1 {
		gm.lastCountdown = -1
		gm.lobbyDirty = true
	}

	var lobby *messages.ServerLobbyUpdate
	if gm.lobbyDirty {
		gm.lobbyDirty = false
		lobby = gm.buildLobbyUpdate()
		gm.lobbyLock.Lock()
		gm.lobby = lobby
		gm.lobbyLock.Unlock()
	}

	if gm.broadcastMessageChan == nil {
		return
	}
	if len(envelopes) > 0 {
		gm.send(ctx, workers.BroadcastMessage{
			Type:    messages.MessageTypeServerEvents,
			Message: &messages.ServerEvents{Events: envelopes},
		})
	}
	if lobby != nil {
		gm.send(ctx, workers.BroadcastMessage{
			Type:    messages.MessageTypeServerLobbyUpdate,
			Message: lobby,
		})
	}
	select {
	case gm.broadcastMessageChan <- workers.BroadcastMessage{Type: messages.MessageTypeServerSnapshot, Message: snapshot}:
	default:
		log.Debug("Broadcast channel full, dropping snapshot %d", snapshot.Tick)
	}
}

func (gm *GameManager) send(ctx context.Context, msg workers.BroadcastMessage) {
	select {
	case gm.broadcastMessageChan <- msg:
	case <-ctx.Done():
	}
}

// Lobby returns the lobby as of the last tick.
func (gm *GameManager) Lobby() *messages.ServerLobbyUpdate {
	gm.lobbyLock.RLock()
	defer gm.lobbyLock.RUnlock()
	c := *gm.lobby
	c.Slots = append([]messages.LobbySlot(nil), gm.lobby.Slots...)
	return &c
}

// Strategies lists the AI strategies players can be added with.
func (gm *GameManager) Strategies() []ai.Metadata {
	return gm.registry.List()
}

func (gm *GameManager) addAIPlayer(key string) (types.PlayerID, error) {
	strategy, err := gm.registry.Lookup(key)
	if err != nil {
		return types.NoPlayer, err
	}
	id, err := gm.registration.RegisterAIPlayer(strategy.Metadata().Name, key)
	if err != nil {
		return types.NoPlayer, err
	}
	handle := ai.NewHandle(id, gm, rand.New(rand.NewSource(gm.rng.Int63())))
	behaviour, err := strategy.Attach(handle)
	if err != nil {
		if derr := gm.registration.Deregister(id); derr != nil {
			log.Error("Failed to free slot %d: %v", id, derr)
		}
		return types.NoPlayer, eris.Wrapf(err, "attach %s", key)
	}
	gm.agents[id] = behaviour
	gm.bus.Subscribe(int(id), behaviour)
	gm.lobbyDirty = true
	gm.ready.Evaluate()
	return id, nil
}

func (gm *GameManager) kickPlayer(id types.PlayerID) error {
	p, ok := gm.gameState.Player(id)
	if !ok || !p.Available {
		return eris.Wrapf(registration.ErrSlotNotTaken, "kick %d", id)
	}
	clientID, human := gm.registration.ClientForPlayer(id)
	if err := gm.removePlayer(id); err != nil {
		return err
	}
	if human && gm.disconnector != nil {
		// closing waits for the peer, keep it off the game loop
		go func() {
			if err := gm.disconnector.DisconnectClient(clientID, "kicked"); err != nil {
				log.Error("Failed to disconnect kicked client %d: %v", clientID, err)
			}
		}()
	}
	return nil
}

// removePlayer takes a player out of the match, if any, and frees its slot.
func (gm *GameManager) removePlayer(id types.PlayerID) error {
	gm.match.RemovePlayer(id)
	if _, ok := gm.agents[id]; ok {
		gm.bus.Unsubscribe(int(id))
		delete(gm.agents, id)
	}
	if err := gm.registration.Deregister(id); err != nil {
		return err
	}
	if !gm.gameState.MatchState.InProgress() {
		gm.ready.Interrupt(true)
	}
	gm.lobbyDirty = true
	return nil
}

func (gm *GameManager) setLives(lives int, infinite bool) error {
	if gm.gameState.MatchState.InProgress() {
		return eris.Wrap(registration.ErrMatchInProgress, "set lives")
	}
	if !infinite {
		if err := gm.registration.SetPlayerLives(lives); err != nil {
			return err
		}
	}
	gm.gameState.InfiniteLives = infinite
	gm.lobbyDirty = true
	return nil
}

func (gm *GameManager) forceStart() error {
	if gm.gameState.MatchState.InProgress() {
		return eris.Wrap(registration.ErrMatchInProgress, "force start")
	}
	if n := len(gm.gameState.AvailablePlayers()); n < 2 {
		return eris.Wrapf(ErrNotEnoughPlayers, "force start with %d", n)
	}
	gm.ready.Interrupt(false)
	gm.launchMatch()
	return nil
}

func (gm *GameManager) abortMatch() error {
	if err := gm.match.AbortMatch(); err != nil {
		return err
	}
	gm.ready.Reset()
	gm.lobbyDirty = true
	return nil
}

// launchMatch is called when the lobby countdown completes or on a forced start.
func (gm *GameManager) launchMatch() {
	gm.registration.PrepareMatch()
	if err := gm.match.StartMatch(); err != nil {
		log.Error("Failed to start match: %v", err)
		return
	}
	gm.matchStartedAt = gm.gameState.Timestamp
	gm.lobbyDirty = true
}

func (gm *GameManager) onMatchConcluded(winner types.PlayerID) {
	result := gm.matchResult(winner)
	if gm.saveMatchResultChan != nil {
		select {
		case gm.saveMatchResultChan <- workers.SaveMatchResultRequest{Result: result}:
		default:
			log.Error("Save channel full, dropping result of match %s", result.ID)
		}
	}
	if _, err := gm.scheduler.After(constants.MatchEndDelay, "return to lobby", gm.returnToLobby); err != nil {
		log.Error("Failed to schedule return to lobby: %v", err)
	}
	gm.lobbyDirty = true
}

// returnToLobby parks everyone after the end-of-match delay. A lobby of AI
// players only is ready again right away and relaunches on its own.
func (gm *GameManager) returnToLobby() {
	if gm.gameState.MatchState != types.MatchStateMatchEnd {
		return
	}
	gm.gameState.MatchState = types.MatchStatePreMatch
	gm.gameState.Remaining = nil
	for _, p := range gm.gameState.Players {
		p.HasBall = false
		lifecycle.Park(p)
	}
	gm.ready.Reset()
	gm.ready.Evaluate()
	gm.lobbyDirty = true
}

func (gm *GameManager) matchResult(winner types.PlayerID) *models.MatchResult {
	result := &models.MatchResult{
		ID:        gm.gameState.MatchID,
		StartedAt: gm.matchStartedAt,
		EndedAt:   gm.gameState.Timestamp,
		WinnerID:  int32(winner),
	}
	for _, p := range gm.gameState.Players {
		if !p.Available || !p.MatchReady {
			continue
		}
		if p.ID == winner {
			result.WinnerName = p.Name
		}
		result.Standings = append(result.Standings, models.MatchStanding{
			PlayerID: int32(p.ID),
			Name:     p.Name,
			Kills:    int32(p.Kills),
			Lives:    int32(p.Lives),
			IsAI:     p.IsAI,
			IsWinner: p.IsWinner,
		})
	}
	return result
}
