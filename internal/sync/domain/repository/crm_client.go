package repository

import (
	"context"
	"time"

	"hubsync/internal/sync/domain/model"
)

// CRMClient is the outbound port to the remote CRM API. One client
// instance is bound to one account's credentials for the duration of a
// sync run.
type CRMClient interface {
	// SetAccessToken binds the client to the account's current
	// credentials for the duration of a run.
	SetAccessToken(token string)

	// SearchMeetings issues one search request and returns the parsed
	// page. It performs no retries of its own.
	SearchMeetings(ctx context.Context, req *model.SearchRequest) (*model.SearchResponse, error)

	// ReadMeetingContactAssociations batch-reads meeting-to-contact
	// associations for the given meeting IDs, preserving input order.
	ReadMeetingContactAssociations(ctx context.Context, meetingIDs []string) ([]model.Association, error)

	// ReadContacts batch-reads contacts with the fixed property
	// allow-list. Unknown IDs are omitted from the result.
	ReadContacts(ctx context.Context, contactIDs []string) ([]model.Contact, error)
}

// TokenRefresher refreshes stale OAuth credentials for one account and
// persists them as a side effect. Implementations must be idempotent;
// concurrent refreshes for the same hub must not corrupt stored state.
type TokenRefresher interface {
	RefreshAccessToken(ctx context.Context, hubID string) (expiresAt time.Time, err error)
}
