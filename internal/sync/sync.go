package sync

import (
	"fmt"

	"hubsync/internal/shared/logger"
	synchttp "hubsync/internal/sync/adapter/http"
	"hubsync/internal/sync/adapter/hubspot"
	"hubsync/internal/sync/adapter/persistence/mongodb"
	"hubsync/internal/sync/adapter/queue"
	"hubsync/internal/sync/adapter/security"
	"hubsync/internal/sync/config"
	"hubsync/internal/sync/progress"
	"hubsync/internal/sync/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SyncModule represents the complete meeting sync module
type SyncModule struct {
	accountRepo *mongodb.MongoAccountRepository
	runRepo     *mongodb.MongoSyncRunRepository
	crmClient   *hubspot.Client
	broker      *progress.Broker
	service     *usecase.SyncService
	handler     *synchttp.SyncHTTPHandler
	wsHandler   *synchttp.ProgressWSHandler
	middleware  *synchttp.AuthMiddleware
	wireLog     *zap.Logger
	config      *config.Config
}

// NewSyncModule creates a new sync module instance
func NewSyncModule(db *mongo.Database, redisClient *redis.Client, cfg *config.Config, log logger.Logger) (*SyncModule, error) {
	accountRepo, err := mongodb.NewMongoAccountRepository(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create account repository: %w", err)
	}

	runRepo, err := mongodb.NewMongoSyncRunRepository(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create sync run repository: %w", err)
	}

	// Dedicated wire-level logger for the CRM client
	wireLog, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("failed to create wire logger: %w", err)
	}

	crmClient := hubspot.NewClient(&cfg.HubSpot, wireLog)
	refresher := hubspot.NewOAuthTokenRefresher(crmClient, accountRepo, &cfg.HubSpot, log)
	actionQueue := queue.NewRedisActionQueue(redisClient, &cfg.Redis, log)
	broker := progress.NewBroker(log)

	fetcher := usecase.NewSearchFetcher(crmClient, refresher, &cfg.Sync, log)
	resolver := usecase.NewAssociationResolver(crmClient, log)
	contacts := usecase.NewContactFetcher(crmClient, log)

	orchestrator := usecase.NewSyncUsecase(fetcher, resolver, contacts, actionQueue, accountRepo, broker, &cfg.Sync, log)
	service := usecase.NewSyncService(accountRepo, runRepo, crmClient, orchestrator, log)

	validator, err := security.NewServiceTokenValidator(&cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create token validator: %w", err)
	}

	handler := synchttp.NewSyncHTTPHandler(service, accountRepo, db.Client(), redisClient, log)
	wsHandler := synchttp.NewProgressWSHandler(broker, log)
	middleware := synchttp.NewAuthMiddleware(validator)

	return &SyncModule{
		accountRepo: accountRepo,
		runRepo:     runRepo,
		crmClient:   crmClient,
		broker:      broker,
		service:     service,
		handler:     handler,
		wsHandler:   wsHandler,
		middleware:  middleware,
		wireLog:     wireLog,
		config:      cfg,
	}, nil
}

// RegisterRoutes registers the sync API routes with the provided router
func (m *SyncModule) RegisterRoutes(router fiber.Router) {
	router.Use(m.middleware.CORS())
	m.handler.SetupRoutesWithMiddleware(router, m.middleware)
	m.wsHandler.RegisterRoutes(router)
}

// GetService returns the sync service for external access
func (m *SyncModule) GetService() *usecase.SyncService {
	return m.service
}

// GetProgressBroker returns the progress broker for external access
func (m *SyncModule) GetProgressBroker() *progress.Broker {
	return m.broker
}

// Stop performs cleanup when the module is shut down
func (m *SyncModule) Stop() error {
	// Flush buffered wire logs; stdout sync errors are expected on some
	// platforms and safe to ignore.
	_ = m.wireLog.Sync()
	return nil
}
