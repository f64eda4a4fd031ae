package usecase

import (
	"context"

	"hubsync/internal/shared/logger"
	"hubsync/internal/sync/domain/model"
	"hubsync/internal/sync/domain/repository"
)

// ContactFetcher batch-reads the profile and engagement properties of
// the contacts attached to one meeting.
type ContactFetcher struct {
	client repository.CRMClient
	log    logger.Logger
}

// NewContactFetcher creates a fetcher backed by the CRM client.
func NewContactFetcher(client repository.CRMClient, log logger.Logger) *ContactFetcher {
	return &ContactFetcher{
		client: client,
		log:    log.WithComponent("contact_fetcher"),
	}
}

// Fetch reads the given contacts with the fixed property allow-list.
// Unknown IDs are silently omitted; an empty input resolves to an empty
// slice without a remote call.
func (f *ContactFetcher) Fetch(ctx context.Context, contactIDs []string) ([]model.Contact, error) {
	if len(contactIDs) == 0 {
		return []model.Contact{}, nil
	}
	return f.client.ReadContacts(ctx, contactIDs)
}
