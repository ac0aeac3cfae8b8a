package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"EBANK_PORT,      default=4200"`
	Env      string `env:"EBANK_ENV,       default=development"`
	LogLevel string `env:"EBANK_LOG_LEVEL, default=info"`

	API   APIConfig
	Store StoreConfig
	Mongo MongoConfig
	Redis RedisConfig
	UI    UIConfig
}

// APIConfig locates the banking backend. Auth and admin endpoints live under
// BaseURL+VersionPrefix, everything else directly under BaseURL.
type APIConfig struct {
	BaseURL       string        `env:"EBANK_API_URL,            default=http://localhost:8081/api"`
	VersionPrefix string        `env:"EBANK_API_VERSION_PREFIX, default=/v1"`
	Timeout       time.Duration `env:"EBANK_API_TIMEOUT,        default=15s"`
}

// StoreConfig selects where the session credentials are persisted.
type StoreConfig struct {
	Driver    string        `env:"EBANK_STORE,          default=file"`
	Path      string        `env:"EBANK_STORE_PATH"`
	SealKey   string        `env:"EBANK_STORE_SEAL_KEY"`
	KeyPrefix string        `env:"EBANK_STORE_PREFIX,   default=ebanking:"`
	TTL       time.Duration `env:"EBANK_STORE_TTL,      default=0s"`
}

type MongoConfig struct {
	URI        string `env:"EBANK_MONGO_URI,        default=mongodb://localhost:27017"`
	Database   string `env:"EBANK_MONGO_DB,         default=ebanking_console"`
	Collection string `env:"EBANK_MONGO_COLLECTION, default=credentials"`
}

type RedisConfig struct {
	Addr     string `env:"EBANK_REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"EBANK_REDIS_PASSWORD"`
	DB       int    `env:"EBANK_REDIS_DB,       default=0"`
}

// UIConfig holds the screen timing policies.
type UIConfig struct {
	NotificationPoll     time.Duration `env:"EBANK_NOTIFICATION_POLL, default=30s"`
	ShortToast           time.Duration `env:"EBANK_TOAST_SHORT,       default=2s"`
	LongToast            time.Duration `env:"EBANK_TOAST_LONG,        default=3s"`
	BannerToast          time.Duration `env:"EBANK_TOAST_BANNER,      default=5s"`
	FallbackFeePercent   float64       `env:"EBANK_FALLBACK_FEE,      default=2.0"`
	ChartRetryAttempts   int           `env:"EBANK_CHART_RETRIES,     default=5"`
	ChartRetryStep       time.Duration `env:"EBANK_CHART_RETRY_STEP,  default=200ms"`
	NotificationBellSize int           `env:"EBANK_BELL_SIZE,         default=5"`
}

// Supported store drivers.
const (
	StoreFile  = "file"
	StoreRedis = "redis"
	StoreMongo = "mongo"
)

// Load reads configuration from environment variables using go-envconfig.
// It panics on malformed input.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadFrom is Load with an explicit lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	switch cfg.Store.Driver {
	case StoreFile, StoreRedis, StoreMongo:
	default:
		return nil, fmt.Errorf("load config: unsupported store %q", cfg.Store.Driver)
	}
	if cfg.Store.Driver == StoreFile && cfg.Store.Path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("load config: resolve home: %w", err)
		}
		cfg.Store.Path = filepath.Join(home, ".ebanking", "credentials.json")
	}
	return &cfg, nil
}
