package repository

import (
	"context"
	"time"

	"hubsync/internal/sync/domain/model"
)

// AccountRepository persists CRM accounts and their sync watermarks.
type AccountRepository interface {
	GetAccounts(ctx context.Context) ([]*model.Account, error)
	GetAccountByHubID(ctx context.Context, hubID string) (*model.Account, error)
	// UpdateLastPulledDate advances the named watermark for one account.
	// objectType is one of "meetings", "contacts", "companies".
	UpdateLastPulledDate(ctx context.Context, hubID, objectType string, watermark time.Time) error
	// UpdateCredentials persists refreshed OAuth credentials.
	UpdateCredentials(ctx context.Context, hubID, accessToken string, expiresAt time.Time) error
}

// SyncRunRepository records the audit trail of sync invocations.
type SyncRunRepository interface {
	Create(ctx context.Context, run *model.SyncRun) error
	Complete(ctx context.Context, runID string, result *model.SyncResult, runErr error) error
}

// ActionQueue accepts normalized actions for downstream consumption.
// Push is fire-and-forget from the orchestrator's perspective; the
// queue's own retry and backpressure behavior is owned externally.
type ActionQueue interface {
	Push(ctx context.Context, hubID string, action *model.Action) error
}
