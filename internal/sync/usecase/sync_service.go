package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	apperrors "hubsync/internal/shared/errors"
	"hubsync/internal/shared/logger"
	"hubsync/internal/shared/utils"
	"hubsync/internal/sync/domain/model"
	"hubsync/internal/sync/domain/repository"
	"hubsync/internal/sync/metrics"

	"github.com/google/uuid"
)

func newRunRecord(runID, hubID string) *model.SyncRun {
	return &model.SyncRun{
		RunID:      runID,
		HubID:      hubID,
		ObjectType: ObjectTypeMeetings,
		StartedAt:  time.Now(),
	}
}

// SyncServiceInterface defines the contract for triggering sync runs.
type SyncServiceInterface interface {
	StartMeetingSync(ctx context.Context, hubID string) (string, error)
	StartMeetingSyncAll(ctx context.Context) (map[string]string, error)
}

// SyncService wraps the orchestrator with run bookkeeping: one run
// record per invocation, one active run per hub, metrics on completion.
type SyncService struct {
	accounts     repository.AccountRepository
	runs         repository.SyncRunRepository
	crmClient    repository.CRMClient
	orchestrator SyncUsecaseInterface
	log          logger.Logger

	mu     sync.Mutex
	active map[string]bool
}

// NewSyncService creates a new sync service.
func NewSyncService(
	accounts repository.AccountRepository,
	runs repository.SyncRunRepository,
	crmClient repository.CRMClient,
	orchestrator SyncUsecaseInterface,
	log logger.Logger,
) *SyncService {
	return &SyncService{
		accounts:     accounts,
		runs:         runs,
		crmClient:    crmClient,
		orchestrator: orchestrator,
		log:          log.WithComponent("sync_service"),
		active:       make(map[string]bool),
	}
}

// StartMeetingSync validates the account, records a new run and starts
// it in the background. Returns the run ID. At most one run may be
// active per hub.
func (s *SyncService) StartMeetingSync(ctx context.Context, hubID string) (string, error) {
	account, err := s.accounts.GetAccountByHubID(ctx, hubID)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	if s.active[hubID] {
		s.mu.Unlock()
		return "", apperrors.ErrSyncAlreadyActive
	}
	s.active[hubID] = true
	s.mu.Unlock()

	runID := uuid.NewString()

	// The run outlives the triggering request; detach from its context
	// but keep the identifying values.
	runCtx := utils.WithRunID(utils.WithHubID(context.Background(), hubID), runID)

	if err := s.runs.Create(runCtx, newRunRecord(runID, hubID)); err != nil {
		s.release(hubID)
		return "", err
	}

	go s.run(runCtx, runID, account.HubID)

	return runID, nil
}

// StartMeetingSyncAll starts a run for every registered account and
// returns the run IDs keyed by hub. Hubs with a run already active are
// skipped rather than failing the whole trigger.
func (s *SyncService) StartMeetingSyncAll(ctx context.Context) (map[string]string, error) {
	accounts, err := s.accounts.GetAccounts(ctx)
	if err != nil {
		return nil, err
	}

	runs := make(map[string]string, len(accounts))
	for _, account := range accounts {
		runID, err := s.StartMeetingSync(ctx, account.HubID)
		if err != nil {
			if errors.Is(err, apperrors.ErrSyncAlreadyActive) {
				s.log.WithContext(ctx).Infof("Skipping hub %s, sync already active", account.HubID)
				continue
			}
			return nil, err
		}
		runs[account.HubID] = runID
	}
	return runs, nil
}

func (s *SyncService) run(ctx context.Context, runID, hubID string) {
	defer s.release(hubID)

	log := s.log.WithContext(ctx)

	// Reload inside the run: credentials may have rotated since trigger.
	account, err := s.accounts.GetAccountByHubID(ctx, hubID)
	if err != nil {
		log.Errorf("Sync run aborted, account lookup failed: %v", err)
		s.finish(ctx, runID, hubID, nil, err)
		return
	}

	s.crmClient.SetAccessToken(account.AccessToken)

	result, err := s.orchestrator.SyncMeetings(ctx, account)
	s.finish(ctx, runID, hubID, result, err)
}

func (s *SyncService) finish(ctx context.Context, runID, hubID string, result *model.SyncResult, runErr error) {
	if err := s.runs.Complete(ctx, runID, result, runErr); err != nil {
		s.log.WithContext(ctx).Errorf("Failed to finalize sync run record: %v", err)
	}

	metrics.RecordRunCompleted(ObjectTypeMeetings, runErr)
	if runErr == nil && result != nil {
		metrics.SetWatermark(hubID, result.Watermark)
	}

	if runErr != nil {
		s.log.WithContext(ctx).Errorf("Sync run failed: %v", runErr)
	}
}

func (s *SyncService) release(hubID string) {
	s.mu.Lock()
	delete(s.active, hubID)
	s.mu.Unlock()
}
