package usecase

import (
	"context"
	"time"

	apperrors "hubsync/internal/shared/errors"
	"hubsync/internal/shared/logger"
	"hubsync/internal/sync/config"
	"hubsync/internal/sync/domain/model"
	"hubsync/internal/sync/domain/repository"
)

// SearchFetcher issues meeting search requests with exponential-backoff
// retry and token-expiration awareness. It is the only component in the
// sync path that retries; association and contact reads fail fast.
type SearchFetcher struct {
	client     repository.CRMClient
	refresher  repository.TokenRefresher
	maxRetries int
	baseDelay  time.Duration
	log        logger.Logger
}

// NewSearchFetcher creates a fetcher configured from SyncConfig.
func NewSearchFetcher(client repository.CRMClient, refresher repository.TokenRefresher, cfg *config.SyncConfig, log logger.Logger) *SearchFetcher {
	return &SearchFetcher{
		client:     client,
		refresher:  refresher,
		maxRetries: cfg.MaxRetries,
		baseDelay:  cfg.RetryBaseDelay,
		log:        log.WithComponent("search_fetcher"),
	}
}

// Fetch issues the search request, retrying failures up to maxRetries
// additional times. The n-th retry waits baseDelay * 2^n. Before each
// retry the access token is refreshed if it has passed tokenExpiresAt;
// refreshing does not reset the retry counter. Exhausting the retries
// yields a terminal error that aborts the whole sync.
func (f *SearchFetcher) Fetch(ctx context.Context, req *model.SearchRequest, hubID string, tokenExpiresAt time.Time) (*model.SearchResponse, error) {
	var lastErr error
	expiresAt := tokenExpiresAt

	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if attempt > 0 {
			if time.Now().After(expiresAt) {
				newExpiry, err := f.refresher.RefreshAccessToken(ctx, hubID)
				if err != nil {
					return nil, apperrors.WrapError(err, "failed to refresh access token during retry")
				}
				expiresAt = newExpiry
			}

			delay := f.baseDelay * (1 << attempt)
			f.log.WithFields(map[string]interface{}{
				"hub_id":  hubID,
				"attempt": attempt,
				"delay":   delay.String(),
			}).Warn("Retrying meeting search")

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		resp, err := f.client.SearchMeetings(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		f.log.WithFields(map[string]interface{}{
			"hub_id":  hubID,
			"attempt": attempt,
		}).Errorf("Meeting search failed: %v", err)
	}

	return nil, apperrors.NewInfrastructureError("meeting search retries exhausted").
		WithCause(lastErr).
		WithComponent("search_fetcher").
		WithDetail("hub_id", hubID).
		WithDetail("attempts", f.maxRetries+1)
}
