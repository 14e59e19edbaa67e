package registration

import (
	"fmt"

	"github.com/cbodonnell/beastball/pkg/game/constants"
	"github.com/cbodonnell/beastball/pkg/game/types"
	"github.com/cbodonnell/beastball/pkg/log"
	"github.com/rotisserie/eris"
)

// ErrInvalidLives is returned when the lobby is asked for an unsupported life count.
var ErrInvalidLives = eris.New("invalid life count")

// Service keeps the player slots of a GameState in sync with who is
// connected. It must only be used from the game loop.
type Service struct {
	state   *types.GameState
	ids     *IDAssigner
	clients map[uint32]types.PlayerID
}

func NewService(state *types.GameState) *Service {
	s := &Service{
		state:   state,
		ids:     NewIDAssigner(),
		clients: make(map[uint32]types.PlayerID),
	}
	for _, p := range state.Players {
		p.Reset(state.DefaultLives)
	}
	return s
}

// Connected returns the number of taken slots.
func (s *Service) Connected() int {
	return s.ids.Count()
}

// RegisterPlayer seats a human client in the first free slot.
func (s *Service) RegisterPlayer(clientID uint32, name string) (types.PlayerID, error) {
	if _, ok := s.clients[clientID]; ok {
		return types.NoPlayer, eris.Errorf("client %d is already registered", clientID)
	}
	id, err := s.ids.Request()
	if err != nil {
		return types.NoPlayer, eris.Wrapf(err, "register %s", name)
	}
	p := s.state.Players[id]
	p.Name = name
	p.Available = true
	s.clients[clientID] = id
	log.Info("%s entered the lobby as player %d", name, id)
	return id, nil
}

// RegisterAIPlayer seats an AI player. AI players are always lobby ready.
func (s *Service) RegisterAIPlayer(name, strategy string) (types.PlayerID, error) {
	if s.Connected() >= constants.MaxPlayers {
		return types.NoPlayer, eris.Wrapf(ErrNoFreeSlot, "register ai %s", name)
	}
	id, err := s.ids.Request()
	if err != nil {
		return types.NoPlayer, eris.Wrapf(err, "register ai %s", name)
	}
	p := s.state.Players[id]
	p.Name = fmt.Sprintf("%s %d", name, id)
	p.Strategy = strategy
	p.IsAI = true
	p.LobbyReady = true
	p.Available = true
	log.Info("%s entered the lobby", p.Name)
	return id, nil
}

// Deregister resets a slot and frees it. Used for disconnects and kicks.
func (s *Service) Deregister(id types.PlayerID) error {
	if !s.ids.Taken(id) {
		return eris.Wrapf(ErrSlotNotTaken, "deregister %d", id)
	}
	p := s.state.Players[id]
	log.Info("%s left the lobby", p.Name)
	p.Reset(s.state.DefaultLives)
	for clientID, pid := range s.clients {
		if pid == id {
			delete(s.clients, clientID)
		}
	}
	return s.ids.Free(id)
}

// DeregisterClient frees the slot held by a client.
func (s *Service) DeregisterClient(clientID uint32) (types.PlayerID, error) {
	id, ok := s.clients[clientID]
	if !ok {
		return types.NoPlayer, eris.Errorf("client %d is not registered", clientID)
	}
	return id, s.Deregister(id)
}

// PlayerForClient maps a network client to its player slot.
func (s *Service) PlayerForClient(clientID uint32) (types.PlayerID, bool) {
	id, ok := s.clients[clientID]
	return id, ok
}

// ClientForPlayer maps a player slot to its network client. AI players have none.
func (s *Service) ClientForPlayer(id types.PlayerID) (uint32, bool) {
	for clientID, pid := range s.clients {
		if pid == id {
			return clientID, true
		}
	}
	return 0, false
}

// SetPlayerLives sets the starting lives of every slot.
func (s *Service) SetPlayerLives(lives int) error {
	if lives < 1 || lives > constants.MaxLives {
		return eris.Wrapf(ErrInvalidLives, "%d", lives)
	}
	s.state.DefaultLives = lives
	for _, p := range s.state.Players {
		p.Lives = lives
	}
	return nil
}

// PrepareMatch resets the per-match fields of every available slot and
// marks them match ready.
func (s *Service) PrepareMatch() {
	for _, p := range s.state.Players {
		if !p.Available {
			continue
		}
		p.Lives = s.state.DefaultLives
		p.Kills = 0
		p.HasBall = false
		p.HasKilled = false
		p.IsWinner = false
		p.BlinkOnCooldown = false
		p.BlinkCooldown = constants.PlayerBlinkCooldown
		p.State = types.PlayerStateMatchStart
		p.HasDestination = false
		p.SetPosition(p.SpawnPoint)
		p.Rotation = 0
		p.MatchReady = true
		p.IsGameOver = false
	}
}
