package usecase

import (
	"strconv"
	"strings"
	"time"

	"hubsync/internal/shared/utils"
	"hubsync/internal/sync/domain/model"
)

// BuildAction transforms one meeting and its resolved contacts into the
// normalized action pushed downstream. Pure function, no I/O.
//
// The meeting is classified as created when its hs_createdate property
// is after lastPulled (the watermark of the previous sync), otherwise
// as updated; actionDate follows the classification.
func BuildAction(meeting *model.Meeting, contacts []model.Contact, lastPulled time.Time) *model.Action {
	attendees := make([]model.Attendee, 0, len(contacts))
	for i := range contacts {
		attendees = append(attendees, buildAttendee(&contacts[i]))
	}

	properties := map[string]interface{}{
		"meeting_title":   propertyOrNil(meeting, model.PropMeetingTitle),
		"meeting_start":   propertyOrNil(meeting, model.PropMeetingStartTime),
		"meeting_end":     propertyOrNil(meeting, model.PropMeetingEndTime),
		"meeting_outcome": propertyOrNil(meeting, model.PropMeetingOutcome),
		"attendees":       attendees,
	}

	actionName := model.ActionMeetingUpdated
	actionDate := meeting.UpdatedAt
	if created, ok := parseCRMTime(meeting.Properties[model.PropCreateDate]); ok && created.After(lastPulled) {
		actionName = model.ActionMeetingCreated
		actionDate = meeting.CreatedAt
	}

	return &model.Action{
		ActionName: actionName,
		ActionDate: actionDate,
		// Always 0: meeting actions are excluded from the downstream
		// analytics counter.
		IncludeInAnalytics: 0,
		MeetingProperties:  utils.StripNilValues(properties),
	}
}

// buildAttendee summarizes one contact. The display name joins the
// trimmed first and last names, dropping empty parts. A missing or
// malformed engagement score defaults to 0.
func buildAttendee(contact *model.Contact) model.Attendee {
	return model.Attendee{
		Email:  contact.Properties[model.PropEmail],
		Name:   joinName(contact.Properties[model.PropFirstName], contact.Properties[model.PropLastName]),
		Title:  contact.Properties[model.PropJobTitle],
		Status: contact.Properties[model.PropLeadStatus],
		Score:  parseScore(contact.Properties[model.PropScore]),
	}
}

func joinName(first, last string) string {
	parts := make([]string, 0, 2)
	if f := strings.TrimSpace(first); f != "" {
		parts = append(parts, f)
	}
	if l := strings.TrimSpace(last); l != "" {
		parts = append(parts, l)
	}
	return strings.Join(parts, " ")
}

func parseScore(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// propertyOrNil yields nil for absent properties so that
// StripNilValues drops the key from the emitted object.
func propertyOrNil(meeting *model.Meeting, name string) interface{} {
	if v, ok := meeting.Property(name); ok {
		return v
	}
	return nil
}

// parseCRMTime parses a raw CRM datetime property. The API emits
// RFC3339 strings for datetime properties; epoch milliseconds appear in
// legacy payloads.
func parseCRMTime(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, true
	}
	if millis, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.UnixMilli(millis).UTC(), true
	}
	return time.Time{}, false
}
