package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	jlconfig "github.com/JeremyLoy/config"
)

const (
	AuthProviderGuest    = "guest"
	AuthProviderFirebase = "firebase"
)

// Config is the server configuration. Values come from an optional
// key=value file, then from BEASTBALL_ environment variables, then from
// command-line flags.
type Config struct {
	LogLevel    string `config:"BEASTBALL_LOG_LEVEL"`
	WSPort      int    `config:"BEASTBALL_WS_PORT"`
	APIPort     int    `config:"BEASTBALL_API_PORT"`
	AllowOrigin string `config:"BEASTBALL_ALLOW_ORIGIN"`
	TLSCertFile string `config:"BEASTBALL_TLS_CERT_FILE"`
	TLSKeyFile  string `config:"BEASTBALL_TLS_KEY_FILE"`

	AuthProvider      string `config:"BEASTBALL_AUTH_PROVIDER"`
	FirebaseProjectID string `config:"BEASTBALL_FIREBASE_PROJECT_ID"`
	FirebaseAPIKey    string `config:"BEASTBALL_FIREBASE_API_KEY"`

	DatabaseURL   string `config:"BEASTBALL_DATABASE_URL"`
	MigrationsDir string `config:"BEASTBALL_MIGRATIONS_DIR"`

	// TickRate is the number of game loop iterations per second
	TickRate      int    `config:"BEASTBALL_TICK_RATE"`
	Lives         int    `config:"BEASTBALL_LIVES"`
	InfiniteLives bool   `config:"BEASTBALL_INFINITE_LIVES"`
	BotsFile      string `config:"BEASTBALL_BOTS_FILE"`
	// Seed seeds the match randomness. Zero picks a time based seed.
	Seed int64 `config:"BEASTBALL_SEED"`
}

func Default() Config {
	return Config{
		LogLevel:      "info",
		WSPort:        8888,
		APIPort:       9090,
		AllowOrigin:   "*",
		AuthProvider:  AuthProviderGuest,
		DatabaseURL:   "sqlite://beastball.db",
		MigrationsDir: "./migrations",
		TickRate:      60,
		Lives:         2,
	}
}

// Load reads the configuration on top of the defaults. path may be empty or
// point to a file that does not exist.
func Load(path string) (Config, error) {
	cfg := Default()

	builder := jlconfig.FromEnv()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			builder = jlconfig.From(path).FromEnv()
		} else if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("failed to stat config file %s: %v", path, err)
		}
	}
	if err := builder.To(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to load config: %v", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.WSPort <= 0 || c.WSPort > 65535 {
		return fmt.Errorf("invalid websocket port %d", c.WSPort)
	}
	if c.APIPort < 0 || c.APIPort > 65535 {
		return fmt.Errorf("invalid api port %d", c.APIPort)
	}
	if c.TickRate < 1 || c.TickRate > 240 {
		return fmt.Errorf("tick rate must be between 1 and 240, got %d", c.TickRate)
	}
	switch c.AuthProvider {
	case AuthProviderGuest:
	case AuthProviderFirebase:
		if c.FirebaseProjectID == "" {
			return fmt.Errorf("firebase auth needs BEASTBALL_FIREBASE_PROJECT_ID")
		}
	default:
		return fmt.Errorf("unknown auth provider %q", c.AuthProvider)
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		return fmt.Errorf("TLS needs both a cert and a key file")
	}
	if _, _, err := c.Database(); err != nil {
		return err
	}
	return nil
}

// GameLoopInterval is the duration of one tick.
func (c Config) GameLoopInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// Database splits DatabaseURL into a driver name and a data source.
func (c Config) Database() (driver string, source string, err error) {
	u, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse database url: %v", err)
	}
	switch u.Scheme {
	case "sqlite":
		source = u.Host + u.Path
		if source == "" {
			source = u.Opaque
		}
		if source == "" {
			return "", "", fmt.Errorf("sqlite url %q has no path", c.DatabaseURL)
		}
		return "sqlite", source, nil
	case "postgres", "postgresql":
		return "postgres", u.String(), nil
	default:
		return "", "", fmt.Errorf("unknown database type %q", u.Scheme)
	}
}
