package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/cbodonnell/beastball/pkg/ai"
	"github.com/cbodonnell/beastball/pkg/game"
	"github.com/cbodonnell/beastball/pkg/game/types"
	"github.com/cbodonnell/beastball/pkg/log"
	"github.com/cbodonnell/beastball/pkg/messages"
	"github.com/cbodonnell/beastball/pkg/queue"
	"github.com/cbodonnell/beastball/pkg/registration"
	"github.com/cbodonnell/beastball/pkg/repositories"
	"github.com/cbodonnell/beastball/pkg/state"
	"github.com/gorilla/mux"
	"github.com/rotisserie/eris"
)

const (
	DefaultMatchListLimit = 20
	MaxMatchListLimit     = 100
)

// LobbyView is the read side of the game manager.
type LobbyView interface {
	Lobby() *messages.ServerLobbyUpdate
	Strategies() []ai.Metadata
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response: %v", err)
	}
}

func HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func HandleGetState(stateManager state.StateManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := stateManager.Get(r.Context())
		if err != nil {
			log.Error("failed to get game state: %v", err)
			http.Error(w, "Failed to get game state", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, snapshot)
	}
}

func HandleGetLobby(view LobbyView) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, view.Lobby())
	}
}

func HandleListStrategies(view LobbyView) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, view.Strategies())
	}
}

type addAIPlayerRequest struct {
	Strategy string `json:"strategy"`
}

type addAIPlayerResponse struct {
	PlayerID types.PlayerID `json:"playerID"`
}

// HandleAddAIPlayer seats an AI player. The command is applied by the game
// loop; the handler waits up to timeout for its result.
func HandleAddAIPlayer(lobbyEventQueue queue.Queue, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := addAIPlayerRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Strategy == "" {
			http.Error(w, "Strategy is required", http.StatusBadRequest)
			return
		}

		result := make(chan types.RegistrationResult, 1)
		if err := lobbyEventQueue.Enqueue(&types.AddAIPlayerEvent{Strategy: req.Strategy, Result: result}); err != nil {
			log.Error("failed to enqueue add ai player: %v", err)
			http.Error(w, "Failed to add AI player", http.StatusServiceUnavailable)
			return
		}

		select {
		case res := <-result:
			if res.Err != nil {
				writeCommandError(w, res.Err)
				return
			}
			writeJSON(w, http.StatusCreated, addAIPlayerResponse{PlayerID: res.PlayerID})
		case <-time.After(timeout):
			http.Error(w, "Timed out waiting for the game loop", http.StatusServiceUnavailable)
		case <-r.Context().Done():
		}
	}
}

func HandleKickPlayer(lobbyEventQueue queue.Queue, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerID, err := strconv.Atoi(mux.Vars(r)["playerID"])
		if err != nil || playerID < 0 || playerID > 255 {
			http.Error(w, "Failed to parse playerID", http.StatusBadRequest)
			return
		}
		runCommand(w, r, lobbyEventQueue, timeout, func(result chan<- error) interface{} {
			return &types.KickPlayerEvent{PlayerID: types.PlayerID(playerID), Result: result}
		})
	}
}

func HandleForceStart(lobbyEventQueue queue.Queue, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runCommand(w, r, lobbyEventQueue, timeout, func(result chan<- error) interface{} {
			return &types.ForceStartEvent{Result: result}
		})
	}
}

func HandleAbortMatch(lobbyEventQueue queue.Queue, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runCommand(w, r, lobbyEventQueue, timeout, func(result chan<- error) interface{} {
			return &types.AbortMatchEvent{Result: result}
		})
	}
}

type setLivesRequest struct {
	Lives         int  `json:"lives"`
	InfiniteLives bool `json:"infiniteLives"`
}

func HandleSetLives(lobbyEventQueue queue.Queue, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := setLivesRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		runCommand(w, r, lobbyEventQueue, timeout, func(result chan<- error) interface{} {
			return &types.SetLivesEvent{Lives: req.Lives, InfiniteLives: req.InfiniteLives, Result: result}
		})
	}
}

// runCommand enqueues a lobby command and waits for the game loop to apply it.
func runCommand(w http.ResponseWriter, r *http.Request, lobbyEventQueue queue.Queue, timeout time.Duration, command func(chan<- error) interface{}) {
	result := make(chan error, 1)
	if err := lobbyEventQueue.Enqueue(command(result)); err != nil {
		log.Error("failed to enqueue lobby command: %v", err)
		http.Error(w, "Failed to enqueue command", http.StatusServiceUnavailable)
		return
	}

	select {
	case err := <-result:
		if err != nil {
			writeCommandError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	case <-time.After(timeout):
		http.Error(w, "Timed out waiting for the game loop", http.StatusServiceUnavailable)
	case <-r.Context().Done():
	}
}

func writeCommandError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case eris.Is(err, ai.ErrStrategyNotFound), eris.Is(err, registration.ErrInvalidLives):
		status = http.StatusBadRequest
	case eris.Is(err, registration.ErrSlotNotTaken):
		status = http.StatusNotFound
	case eris.Is(err, registration.ErrNoFreeSlot),
		eris.Is(err, registration.ErrMatchInProgress),
		eris.Is(err, game.ErrMatchInProgress),
		eris.Is(err, game.ErrMatchNotRunning),
		eris.Is(err, game.ErrNotEnoughPlayers):
		status = http.StatusConflict
	default:
		log.Error("lobby command failed: %v", err)
	}
	http.Error(w, err.Error(), status)
}

func HandleListMatches(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := DefaultMatchListLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				http.Error(w, "Invalid limit", http.StatusBadRequest)
				return
			}
			limit = min(parsed, MaxMatchListLimit)
		}

		results, err := repository.ListMatchResults(r.Context(), limit)
		if err != nil {
			log.Error("failed to list match results: %v", err)
			http.Error(w, "Failed to list matches", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, results)
	}
}

func HandleGetMatch(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := repository.GetMatchResult(r.Context(), mux.Vars(r)["matchID"])
		if err != nil {
			if repositories.IsNotFound(err) {
				http.Error(w, "Match not found", http.StatusNotFound)
				return
			}
			log.Error("failed to get match result: %v", err)
			http.Error(w, "Failed to get match", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}
