package usecase

import (
	"context"

	"hubsync/internal/shared/logger"
	"hubsync/internal/sync/domain/model"
	"hubsync/internal/sync/domain/repository"
)

// AssociationResolver retrieves meeting-to-contact associations for one
// page of meetings in a single batch read. It carries no retry logic of
// its own; a failure here aborts the sync run.
type AssociationResolver struct {
	client repository.CRMClient
	log    logger.Logger
}

// NewAssociationResolver creates a resolver backed by the CRM client.
func NewAssociationResolver(client repository.CRMClient, log logger.Logger) *AssociationResolver {
	return &AssociationResolver{
		client: client,
		log:    log.WithComponent("association_resolver"),
	}
}

// Resolve batch-reads the contact associations of the given meetings,
// in page order. An empty page resolves to an empty slice without a
// remote call.
func (r *AssociationResolver) Resolve(ctx context.Context, meetings []model.Meeting) ([]model.Association, error) {
	if len(meetings) == 0 {
		return []model.Association{}, nil
	}

	ids := make([]string, 0, len(meetings))
	for i := range meetings {
		ids = append(ids, meetings[i].ID)
	}

	associations, err := r.client.ReadMeetingContactAssociations(ctx, ids)
	if err != nil {
		return nil, err
	}

	r.log.WithContext(ctx).Debugf("Resolved %d associations for %d meetings", len(associations), len(meetings))
	return associations, nil
}

// FindForMeeting returns the association whose source matches the given
// meeting ID, or nil when the meeting has none.
func FindForMeeting(associations []model.Association, meetingID string) *model.Association {
	for i := range associations {
		if associations[i].From.ID == meetingID {
			return &associations[i]
		}
	}
	return nil
}
