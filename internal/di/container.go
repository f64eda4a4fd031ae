package di

import (
	"fmt"
	"sync"

	"hubsync/internal/shared/logger"
	syncmodule "hubsync/internal/sync"
	"hubsync/internal/sync/config"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container represents a dependency injection container with proper lifecycle management
type Container struct {
	mu sync.Mutex

	// Module instances
	SyncModule *syncmodule.SyncModule

	// Connections
	MongoDB *mongo.Database
	Redis   *redis.Client

	// Configuration
	Config *config.Config

	// Logger
	Logger logger.Logger
}

// NewContainer creates a new DI container
func NewContainer() *Container {
	return &Container{}
}

// InitializeSync wires the sync module with its connections and configuration
func (c *Container) InitializeSync(mongoDB *mongo.Database, redisClient *redis.Client, cfg *config.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if mongoDB == nil {
		return fmt.Errorf("MongoDB must be initialized before the sync module")
	}
	if redisClient == nil {
		return fmt.Errorf("Redis must be initialized before the sync module")
	}

	c.MongoDB = mongoDB
	c.Redis = redisClient
	c.Config = cfg

	if c.Logger == nil {
		c.Logger = logger.NewLogger()
	}

	module, err := syncmodule.NewSyncModule(mongoDB, redisClient, cfg, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create sync module: %w", err)
	}

	c.SyncModule = module
	return nil
}

// Close releases module resources. Database connections are owned and
// closed by main.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.SyncModule != nil {
		if err := c.SyncModule.Stop(); err != nil {
			return err
		}
	}
	return nil
}
