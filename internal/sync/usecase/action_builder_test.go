package usecase_test

import (
	"testing"
	"time"

	"hubsync/internal/shared/utils"
	"hubsync/internal/sync/domain/model"
	"hubsync/internal/sync/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	watermark     = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	createdAfter  = time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
	createdBefore = time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	updatedAt     = time.Date(2024, 3, 3, 9, 30, 0, 0, time.UTC)
)

func meetingFixture(created time.Time) *model.Meeting {
	return &model.Meeting{
		ID: "meeting-1",
		Properties: map[string]string{
			model.PropMeetingTitle:   "Quarterly review",
			model.PropMeetingOutcome: "COMPLETED",
			model.PropCreateDate:     created.Format(time.RFC3339),
		},
		CreatedAt: created,
		UpdatedAt: updatedAt,
	}
}

func contactFixture() model.Contact {
	return model.Contact{
		ID: "contact-1",
		Properties: map[string]string{
			model.PropFirstName:  "Ada",
			model.PropLastName:   "Lovelace",
			model.PropJobTitle:   "CTO",
			model.PropEmail:      "ada@example.com",
			model.PropLeadStatus: "OPEN",
			model.PropScore:      "42",
		},
	}
}

func TestBuildActionClassifiesCreated(t *testing.T) {
	meeting := meetingFixture(createdAfter)

	action := usecase.BuildAction(meeting, []model.Contact{contactFixture()}, watermark)

	assert.Equal(t, model.ActionMeetingCreated, action.ActionName)
	assert.Equal(t, meeting.CreatedAt, action.ActionDate)
	assert.Equal(t, 0, action.IncludeInAnalytics)
}

func TestBuildActionClassifiesUpdated(t *testing.T) {
	meeting := meetingFixture(createdBefore)

	action := usecase.BuildAction(meeting, []model.Contact{contactFixture()}, watermark)

	assert.Equal(t, model.ActionMeetingUpdated, action.ActionName)
	assert.Equal(t, meeting.UpdatedAt, action.ActionDate)
}

func TestBuildActionMissingCreateDateClassifiesUpdated(t *testing.T) {
	meeting := meetingFixture(createdAfter)
	delete(meeting.Properties, model.PropCreateDate)

	action := usecase.BuildAction(meeting, []model.Contact{contactFixture()}, watermark)

	assert.Equal(t, model.ActionMeetingUpdated, action.ActionName)
	assert.Equal(t, meeting.UpdatedAt, action.ActionDate)
}

func TestBuildActionStripsAbsentProperties(t *testing.T) {
	meeting := meetingFixture(createdAfter)
	// Start/end were never set on the remote record
	action := usecase.BuildAction(meeting, []model.Contact{contactFixture()}, watermark)

	assert.Contains(t, action.MeetingProperties, "meeting_title")
	assert.Contains(t, action.MeetingProperties, "meeting_outcome")
	assert.Contains(t, action.MeetingProperties, "attendees")
	assert.NotContains(t, action.MeetingProperties, "meeting_start")
	assert.NotContains(t, action.MeetingProperties, "meeting_end")

	for key, value := range action.MeetingProperties {
		assert.NotNil(t, value, "property %q must not be nil", key)
	}

	// Filtering is idempotent
	assert.Equal(t, action.MeetingProperties, utils.StripNilValues(action.MeetingProperties))
}

func TestBuildActionAttendees(t *testing.T) {
	contacts := []model.Contact{
		contactFixture(),
		{
			ID: "contact-2",
			Properties: map[string]string{
				model.PropEmail:     "grace@example.com",
				model.PropFirstName: "  Grace  ",
				model.PropScore:     "not-a-number",
			},
		},
		{
			ID: "contact-3",
			Properties: map[string]string{
				model.PropEmail: "anon@example.com",
			},
		},
	}

	action := usecase.BuildAction(meetingFixture(createdAfter), contacts, watermark)

	attendees, ok := action.MeetingProperties["attendees"].([]model.Attendee)
	require.True(t, ok)
	require.Len(t, attendees, 3)

	assert.Equal(t, model.Attendee{
		Email:  "ada@example.com",
		Name:   "Ada Lovelace",
		Title:  "CTO",
		Status: "OPEN",
		Score:  42,
	}, attendees[0])

	// Malformed score defaults to 0; lone first name has no separator
	assert.Equal(t, "Grace", attendees[1].Name)
	assert.Equal(t, 0, attendees[1].Score)

	// Absent name parts collapse to the empty string
	assert.Equal(t, "", attendees[2].Name)
	assert.Equal(t, 0, attendees[2].Score)

	for _, attendee := range attendees {
		assert.GreaterOrEqual(t, attendee.Score, 0)
	}
}

func TestBuildActionEpochMillisCreateDate(t *testing.T) {
	meeting := meetingFixture(createdAfter)
	meeting.Properties[model.PropCreateDate] = "1709373600000" // 2024-03-02T10:00:00Z

	action := usecase.BuildAction(meeting, []model.Contact{contactFixture()}, watermark)

	assert.Equal(t, model.ActionMeetingCreated, action.ActionName)
}
