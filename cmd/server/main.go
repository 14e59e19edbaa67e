package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/cbodonnell/beastball/pkg/api"
	authproviders "github.com/cbodonnell/beastball/pkg/auth/providers"
	"github.com/cbodonnell/beastball/pkg/config"
	"github.com/cbodonnell/beastball/pkg/game"
	"github.com/cbodonnell/beastball/pkg/game/types"
	"github.com/cbodonnell/beastball/pkg/log"
	"github.com/cbodonnell/beastball/pkg/network"
	"github.com/cbodonnell/beastball/pkg/queue"
	"github.com/cbodonnell/beastball/pkg/repositories"
	"github.com/cbodonnell/beastball/pkg/state"
	"github.com/cbodonnell/beastball/pkg/workers"
)

func main() {
	configFile := flag.String("config", "beastball.config", "key=value config file, optional")
	logLevel := flag.String("log-level", "", "Log level, overrides the config")
	wsPort := flag.Int("ws-port", 0, "WebSocket port to listen on, overrides the config")
	apiPort := flag.Int("api-port", -1, "HTTP API port to listen on, 0 disables the API")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *wsPort != 0 {
		cfg.WSPort = *wsPort
	}
	if *apiPort >= 0 {
		cfg.APIPort = *apiPort
	}

	parsedLogLevel, err := log.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	authProvider, err := newAuthProvider(ctx, cfg)
	if err != nil {
		panic(fmt.Sprintf("Failed to create auth provider: %v", err))
	}

	repository, err := newRepository(ctx, cfg)
	if err != nil {
		panic(fmt.Sprintf("Failed to create repository: %v", err))
	}
	defer repository.Close(context.Background())

	var tls *network.TLSConfig
	if cfg.TLSCertFile != "" {
		tls = &network.TLSConfig{CertFile: cfg.TLSCertFile, KeyFile: cfg.TLSKeyFile}
	}

	clientManager := network.NewClientManager()
	clientMessageQueue := queue.NewInMemoryQueue(10000)
	networkManager := network.NewNetworkManager(network.NewNetworkManagerOptions{
		AuthProvider:  authProvider,
		ClientManager: clientManager,
		MessageQueue:  clientMessageQueue,
		WSPort:        cfg.WSPort,
		WSServerTLS:   tls,
	})
	networkManager.Start(ctx)

	lobbyEventQueue := queue.NewInMemoryQueue(1000)
	connectionEventWorker := workers.NewConnectionEventWorker(workers.NewConnectionEventWorkerOptions{
		ConnectionEventChan: clientManager.GetConnectionEventChan(),
		LobbyEventQueue:     lobbyEventQueue,
		Disconnector:        networkManager,
	})
	go connectionEventWorker.Start(ctx)

	broadcastMessageChannelSize := 256
	broadcastMessageChan := make(chan workers.BroadcastMessage, broadcastMessageChannelSize)
	broadcastMessageWorker := workers.NewBroadcastMessageWorker(workers.NewBroadcastMessageWorkerOptions{
		Sender:               networkManager,
		BroadcastMessageChan: broadcastMessageChan,
	})
	go broadcastMessageWorker.Start(ctx)

	saveMatchResultChannelSize := 16
	saveMatchResultChan := make(chan workers.SaveMatchResultRequest, saveMatchResultChannelSize)
	saveMatchResultWorker := workers.NewSaveMatchResultWorker(workers.NewSaveMatchResultWorkerOptions{
		Repository:          repository,
		SaveMatchResultChan: saveMatchResultChan,
	})
	go saveMatchResultWorker.Start(ctx)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	stateManager := state.NewInMemoryStateManager()
	gameManager := game.NewGameManager(game.NewGameManagerOptions{
		ClientMessageQueue:   clientMessageQueue,
		LobbyEventQueue:      lobbyEventQueue,
		IntentQueue:          queue.NewInMemoryQueue(1000),
		StateManager:         stateManager,
		Rand:                 rand.New(rand.NewSource(seed)),
		Disconnector:         networkManager,
		BroadcastMessageChan: broadcastMessageChan,
		SaveMatchResultChan:  saveMatchResultChan,
		GameLoopInterval:     cfg.GameLoopInterval(),
	})

	if err := seedLobby(cfg, lobbyEventQueue); err != nil {
		panic(fmt.Sprintf("Failed to seed lobby: %v", err))
	}

	if cfg.APIPort > 0 {
		apiServerOpts := api.NewAPIServerOptions{
			Port:            cfg.APIPort,
			AllowOrigin:     cfg.AllowOrigin,
			AuthProvider:    authProvider,
			Repository:      repository,
			StateManager:    stateManager,
			Lobby:           gameManager,
			LobbyEventQueue: lobbyEventQueue,
		}
		if cfg.TLSCertFile != "" {
			apiServerOpts.TLS = &api.TLSConfig{CertFile: cfg.TLSCertFile, KeyFile: cfg.TLSKeyFile}
		}
		apiServer := api.NewAPIServer(apiServerOpts)
		go apiServer.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := apiServer.Stop(shutdownCtx); err != nil {
				log.Error("Failed to stop API server: %v", err)
			}
		}()
	}

	log.Info("Starting game manager at %d ticks per second", cfg.TickRate)
	if err := gameManager.Start(ctx); err != nil {
		log.Error("Game manager stopped: %v", err)
	}
	log.Info("Server stopped")
}

func newAuthProvider(ctx context.Context, cfg config.Config) (authproviders.AuthProvider, error) {
	switch cfg.AuthProvider {
	case config.AuthProviderFirebase:
		return authproviders.NewFirebaseAuthProvider(ctx, cfg.FirebaseProjectID, cfg.FirebaseAPIKey)
	default:
		log.Warn("Using guest authentication, any name can join")
		return authproviders.NewGuestAuthProvider(), nil
	}
}

func newRepository(ctx context.Context, cfg config.Config) (repositories.Repository, error) {
	driver, source, err := cfg.Database()
	if err != nil {
		return nil, err
	}
	migrations := filepath.Join(cfg.MigrationsDir, driver)
	switch driver {
	case "postgres":
		return repositories.NewPostgresRepository(ctx, source, migrations)
	default:
		return repositories.NewSQLiteRepository(ctx, source, migrations)
	}
}

// seedLobby queues the configured lives and bot roster. The game loop applies
// them on its first tick.
func seedLobby(cfg config.Config, lobbyEventQueue queue.Queue) error {
	if err := lobbyEventQueue.Enqueue(&types.SetLivesEvent{Lives: cfg.Lives, InfiniteLives: cfg.InfiniteLives}); err != nil {
		return err
	}
	if cfg.BotsFile == "" {
		return nil
	}
	roster, err := config.LoadBots(cfg.BotsFile)
	if err != nil {
		return err
	}
	for _, strategy := range roster.Strategies() {
		if err := lobbyEventQueue.Enqueue(&types.AddAIPlayerEvent{Strategy: strategy}); err != nil {
			return err
		}
	}
	log.Info("Seeded the lobby with %d bots from %s", len(roster.Strategies()), cfg.BotsFile)
	return nil
}
