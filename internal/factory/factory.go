package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/wsentinels/sentinelchat/internal/dependencies/clock"
	"github.com/wsentinels/sentinelchat/internal/dependencies/random"
	"github.com/wsentinels/sentinelchat/internal/services/chat"
	"github.com/wsentinels/sentinelchat/internal/services/querylog"
	"github.com/wsentinels/sentinelchat/internal/services/roster"
	"github.com/wsentinels/sentinelchat/internal/services/session"
	"github.com/wsentinels/sentinelchat/internal/storage"
	"github.com/wsentinels/sentinelchat/internal/storage/memory"
	redisstorage "github.com/wsentinels/sentinelchat/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	SessionService  *session.Service
	RosterService   *roster.Service
	QueryLogService *querylog.Service
	Orchestrator    *chat.Orchestrator
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	// Create services
	sessionService := session.New(store, clk, rnd, logger)
	rosterService := roster.New(store, clk, logger)
	queryLogService := querylog.New(store, clk, logger)
	orchestrator := chat.NewOrchestrator(store, rosterService, queryLogService, clk, logger)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		SessionService:  sessionService,
		RosterService:   rosterService,
		QueryLogService: queryLogService,
		Orchestrator:    orchestrator,
	}
}
