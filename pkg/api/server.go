package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cbodonnell/beastball/pkg/api/handlers"
	"github.com/cbodonnell/beastball/pkg/api/middleware"
	authproviders "github.com/cbodonnell/beastball/pkg/auth/providers"
	"github.com/cbodonnell/beastball/pkg/log"
	"github.com/cbodonnell/beastball/pkg/queue"
	"github.com/cbodonnell/beastball/pkg/repositories"
	"github.com/cbodonnell/beastball/pkg/state"
	"github.com/gorilla/mux"
)

// DefaultCommandTimeout bounds how long a lobby command waits for the game loop.
const DefaultCommandTimeout = 2 * time.Second

type APIServer struct {
	server *http.Server
	tls    *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewAPIServerOptions struct {
	Port        int
	TLS         *TLSConfig
	AllowOrigin string
	// AuthProvider guards the lobby commands. Reads are public.
	AuthProvider    authproviders.AuthProvider
	Repository      repositories.Repository
	StateManager    state.StateManager
	Lobby           handlers.LobbyView
	LobbyEventQueue queue.Queue
	CommandTimeout  time.Duration
}

// NewRouter builds the API routes.
func NewRouter(opts NewAPIServerOptions) http.Handler {
	timeout := opts.CommandTimeout
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}

	router := mux.NewRouter()
	router.HandleFunc("/healthz", handlers.HandleHealth()).Methods(http.MethodGet)
	router.HandleFunc("/state", handlers.HandleGetState(opts.StateManager)).Methods(http.MethodGet)
	router.HandleFunc("/lobby", handlers.HandleGetLobby(opts.Lobby)).Methods(http.MethodGet)
	router.HandleFunc("/strategies", handlers.HandleListStrategies(opts.Lobby)).Methods(http.MethodGet)
	router.HandleFunc("/matches", handlers.HandleListMatches(opts.Repository)).Methods(http.MethodGet)
	router.HandleFunc("/matches/{matchID}", handlers.HandleGetMatch(opts.Repository)).Methods(http.MethodGet)

	commands := router.PathPrefix("/lobby").Subrouter()
	commands.Use(middleware.NewAuthMiddleware(opts.AuthProvider))
	commands.HandleFunc("/ai", handlers.HandleAddAIPlayer(opts.LobbyEventQueue, timeout)).Methods(http.MethodPost)
	commands.HandleFunc("/players/{playerID:[0-9]+}", handlers.HandleKickPlayer(opts.LobbyEventQueue, timeout)).Methods(http.MethodDelete)
	commands.HandleFunc("/lives", handlers.HandleSetLives(opts.LobbyEventQueue, timeout)).Methods(http.MethodPut)
	commands.HandleFunc("/start", handlers.HandleForceStart(opts.LobbyEventQueue, timeout)).Methods(http.MethodPost)
	commands.HandleFunc("/abort", handlers.HandleAbortMatch(opts.LobbyEventQueue, timeout)).Methods(http.MethodPost)

	return middleware.NewCORSMiddleware(opts.AllowOrigin)(router)
}

// NewAPIServer creates a new http.Server for handling API requests
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: NewRouter(opts),
	}
	return &APIServer{
		server: server,
		tls:    opts.TLS,
	}
}

// Start starts the APIServer
func (s *APIServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		log.Info("API server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("API server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return
		}
		log.Error("API server error: %v", err)
	}
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
