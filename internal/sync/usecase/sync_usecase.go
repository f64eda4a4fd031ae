package usecase

import (
	"context"
	"time"

	"hubsync/internal/shared/logger"
	"hubsync/internal/sync/config"
	"hubsync/internal/sync/domain/model"
	"hubsync/internal/sync/domain/repository"
	"hubsync/internal/sync/metrics"
	"hubsync/internal/sync/progress"
)

// ObjectTypeMeetings names the watermark advanced by the meeting sync.
const ObjectTypeMeetings = "meetings"

// ProgressNotifier receives a notification after each processed page.
// Notifications must never block the sync loop.
type ProgressNotifier interface {
	PageCompleted(ctx context.Context, event progress.PageEvent)
}

// SyncUsecaseInterface defines the contract for the meeting sync.
type SyncUsecaseInterface interface {
	SyncMeetings(ctx context.Context, account *model.Account) (*model.SyncResult, error)
}

// SyncUsecase drives the incremental meeting sync: it paginates the
// filtered result set, enriches each meeting with attendee details,
// emits actions, and finally advances the account's watermark.
//
// The loop is strictly sequential. The only shared state is the page
// cursor, owned by the single goroutine running the sync.
type SyncUsecase struct {
	fetcher  *SearchFetcher
	resolver *AssociationResolver
	contacts *ContactFetcher
	queue    repository.ActionQueue
	accounts repository.AccountRepository
	notifier ProgressNotifier
	cfg      *config.SyncConfig
	log      logger.Logger
}

// NewSyncUsecase creates a new instance of SyncUsecase. notifier may be
// nil when no progress consumers exist.
func NewSyncUsecase(
	fetcher *SearchFetcher,
	resolver *AssociationResolver,
	contacts *ContactFetcher,
	queue repository.ActionQueue,
	accounts repository.AccountRepository,
	notifier ProgressNotifier,
	cfg *config.SyncConfig,
	log logger.Logger,
) *SyncUsecase {
	return &SyncUsecase{
		fetcher:  fetcher,
		resolver: resolver,
		contacts: contacts,
		queue:    queue,
		accounts: accounts,
		notifier: notifier,
		cfg:      cfg,
		log:      log.WithComponent("sync_orchestrator"),
	}
}

// SyncMeetings runs one full incremental sync for the account and
// returns an immutable result snapshot. The account value is never
// mutated; the new watermark is persisted through the repository and
// only after every page has been drained. On error the watermark stays
// unadvanced so the next run re-processes the same window.
func (uc *SyncUsecase) SyncMeetings(ctx context.Context, account *model.Account) (*model.SyncResult, error) {
	// The watermark written on success is the sync start time, not the
	// completion time: records modified mid-run fall into the next window.
	now := time.Now().UTC()
	lastPulled := account.LastPulledDates.Meetings

	filter, err := CompileMeetingFilter(account.MeetingFilter)
	if err != nil {
		return nil, err
	}

	log := uc.log.WithContext(ctx)
	log.Infof("Starting meeting sync for hub %s (watermark %s)", account.HubID, lastPulled)

	result := &model.SyncResult{Watermark: now}
	cursor := model.FirstPage()

	for cursor.HasNext() {
		lower := lastPulled
		if lm := cursor.LastModifiedDate(); !lm.IsZero() {
			lower = lm
		}

		req := model.MeetingSearchRequest(lower, now, uc.cfg.PageSize, cursor.After())

		fetchStart := time.Now()
		resp, err := uc.fetcher.Fetch(ctx, req, account.HubID, account.TokenExpiresAt)
		if err != nil {
			return nil, err
		}
		metrics.ObservePageFetch(time.Since(fetchStart))

		meetings := resp.Results
		result.PagesFetched++
		result.MeetingsSeen += len(meetings)

		associations, err := uc.resolver.Resolve(ctx, meetings)
		if err != nil {
			return nil, err
		}

		pagePushed, err := uc.processPage(ctx, account, meetings, associations, filter, lastPulled)
		if err != nil {
			return nil, err
		}
		result.ActionsPushed += pagePushed

		if uc.notifier != nil {
			uc.notifier.PageCompleted(ctx, progress.PageEvent{
				HubID:         account.HubID,
				Page:          result.PagesFetched,
				MeetingsSeen:  len(meetings),
				ActionsPushed: pagePushed,
			})
		}

		var lastUpdated time.Time
		if len(meetings) > 0 {
			lastUpdated = meetings[len(meetings)-1].UpdatedAt
		}
		cursor = cursor.Advance(resp.NextToken(), lastUpdated)
	}

	if err := uc.accounts.UpdateLastPulledDate(ctx, account.HubID, ObjectTypeMeetings, now); err != nil {
		return nil, err
	}

	log.Infof("Meeting sync finished for hub %s: %d pages, %d meetings, %d actions",
		account.HubID, result.PagesFetched, result.MeetingsSeen, result.ActionsPushed)

	return result, nil
}

// processPage enriches and emits the meetings of one page, in page
// order. Meetings without associations or resolvable contacts are
// dropped silently; they are conditions, not errors.
func (uc *SyncUsecase) processPage(
	ctx context.Context,
	account *model.Account,
	meetings []model.Meeting,
	associations []model.Association,
	filter *MeetingFilter,
	lastPulled time.Time,
) (int, error) {
	pushed := 0

	for i := range meetings {
		meeting := &meetings[i]

		association := FindForMeeting(associations, meeting.ID)
		if association == nil || len(association.To) == 0 {
			metrics.RecordMeetingSkipped(metrics.SkipNoAssociation)
			continue
		}

		qualifies, err := filter.Qualifies(meeting)
		if err != nil {
			return pushed, err
		}
		if !qualifies {
			metrics.RecordMeetingSkipped(metrics.SkipFiltered)
			continue
		}

		contactIDs := make([]string, 0, len(association.To))
		for _, ref := range association.To {
			contactIDs = append(contactIDs, ref.ID)
		}

		contacts, err := uc.contacts.Fetch(ctx, contactIDs)
		if err != nil {
			return pushed, err
		}
		if len(contacts) == 0 {
			metrics.RecordMeetingSkipped(metrics.SkipNoContacts)
			continue
		}

		action := BuildAction(meeting, contacts, lastPulled)
		if err := uc.queue.Push(ctx, account.HubID, action); err != nil {
			return pushed, err
		}
		metrics.RecordActionPushed(action.ActionName)
		pushed++
	}

	return pushed, nil
}
