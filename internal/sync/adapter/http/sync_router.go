package http

import (
	"context"
	"time"

	apperrors "hubsync/internal/shared/errors"
	"hubsync/internal/shared/logger"
	"hubsync/internal/sync/domain/repository"
	"hubsync/internal/sync/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// SyncHTTPHandler handles HTTP requests for the sync trigger API
type SyncHTTPHandler struct {
	service  usecase.SyncServiceInterface
	accounts repository.AccountRepository
	mongo    *mongo.Client
	redis    *redis.Client
	log      logger.Logger
}

// NewSyncHTTPHandler creates a new sync HTTP handler
func NewSyncHTTPHandler(
	service usecase.SyncServiceInterface,
	accounts repository.AccountRepository,
	mongoClient *mongo.Client,
	redisClient *redis.Client,
	log logger.Logger,
) *SyncHTTPHandler {
	return &SyncHTTPHandler{
		service:  service,
		accounts: accounts,
		mongo:    mongoClient,
		redis:    redisClient,
		log:      log.WithComponent("sync_http"),
	}
}

// SetupRoutesWithMiddleware sets up the trigger API routes
func (h *SyncHTTPHandler) SetupRoutesWithMiddleware(router fiber.Router, middleware *AuthMiddleware) {
	// Public routes
	router.Get("/healthz", h.Health)

	// Protected routes (service token required)
	api := router.Group("/api/v1", middleware.Protect())
	api.Post("/sync/meetings", h.TriggerMeetingSyncAll)
	api.Post("/sync/meetings/:hubId", h.TriggerMeetingSync)
	api.Get("/accounts/:hubId/watermarks", h.GetWatermarks)
}

// TriggerMeetingSync starts a meeting sync run for one hub
func (h *SyncHTTPHandler) TriggerMeetingSync(c *fiber.Ctx) error {
	hubID := c.Params("hubId")
	if hubID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "hubId is required",
		})
	}

	runID, err := h.service.StartMeetingSync(c.UserContext(), hubID)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"runId": runID,
		"hubId": hubID,
	})
}

// TriggerMeetingSyncAll starts a meeting sync run for every registered
// account; hubs with an active run are left out of the response
func (h *SyncHTTPHandler) TriggerMeetingSyncAll(c *fiber.Ctx) error {
	runs, err := h.service.StartMeetingSyncAll(c.UserContext())
	if err != nil {
		return h.handleError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"runs": runs,
	})
}

// GetWatermarks returns the account's per-object sync watermarks
func (h *SyncHTTPHandler) GetWatermarks(c *fiber.Ctx) error {
	hubID := c.Params("hubId")

	account, err := h.accounts.GetAccountByHubID(c.UserContext(), hubID)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(fiber.Map{
		"hubId":           account.HubID,
		"lastPulledDates": account.LastPulledDates,
	})
}

// Health reports the liveness of the service and its dependencies
func (h *SyncHTTPHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
	defer cancel()

	status := fiber.Map{"status": "ok"}
	code := fiber.StatusOK

	if h.mongo != nil {
		if err := h.mongo.Ping(ctx, nil); err != nil {
			status["mongo"] = err.Error()
			code = fiber.StatusServiceUnavailable
		}
	}
	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			status["redis"] = err.Error()
			code = fiber.StatusServiceUnavailable
		}
	}

	if code != fiber.StatusOK {
		status["status"] = "degraded"
	}
	return c.Status(code).JSON(status)
}

func (h *SyncHTTPHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case apperrors.IsNotFound(err):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "account not found"})
	case apperrors.IsConflict(err):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "sync already active"})
	case apperrors.IsValidation(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		h.log.Errorf("Unhandled error in sync API: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}
