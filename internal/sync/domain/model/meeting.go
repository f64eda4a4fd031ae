package model

import "time"

// CRM property names requested for meetings.
const (
	PropMeetingTitle     = "hs_meeting_title"
	PropMeetingStartTime = "hs_meeting_start_time"
	PropMeetingEndTime   = "hs_meeting_end_time"
	PropMeetingOutcome   = "hs_meeting_outcome"
	PropCreateDate       = "hs_createdate"
	PropLastModified     = "hs_lastmodifieddate"
	PropObjectID         = "hs_object_id"
)

// CRM property names requested for contacts.
const (
	PropFirstName            = "firstname"
	PropLastName             = "lastname"
	PropJobTitle             = "jobtitle"
	PropEmail                = "email"
	PropScore                = "hubspotscore"
	PropLeadStatus           = "hs_lead_status"
	PropAnalyticsSource      = "hs_analytics_source"
	PropAnalyticsSourceData1 = "hs_analytics_source_data_1"
)

// MeetingProperties is the fixed allow-list sent with meeting searches.
var MeetingProperties = []string{
	PropMeetingTitle,
	PropMeetingStartTime,
	PropMeetingEndTime,
	PropMeetingOutcome,
	PropCreateDate,
	PropLastModified,
	PropObjectID,
}

// ContactProperties is the fixed allow-list sent with contact batch reads.
var ContactProperties = []string{
	PropFirstName,
	PropLastName,
	PropJobTitle,
	PropEmail,
	PropScore,
	PropLeadStatus,
	PropAnalyticsSource,
	PropAnalyticsSourceData1,
}

// Meeting is a read-only projection of a remote meeting engagement.
type Meeting struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// Property returns the named raw property and whether it was present.
func (m *Meeting) Property(name string) (string, bool) {
	v, ok := m.Properties[name]
	return v, ok
}

// Contact is a read-only projection of a remote contact record.
type Contact struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
}

// Property returns the named raw property and whether it was present.
func (c *Contact) Property(name string) (string, bool) {
	v, ok := c.Properties[name]
	return v, ok
}

// ObjectRef references a remote CRM object by identifier.
type ObjectRef struct {
	ID string `json:"id"`
}

// Association maps one meeting to the contacts attached to it. The
// mapping is transient; it is only valid within one page's processing
// cycle and is never persisted.
type Association struct {
	From ObjectRef   `json:"from"`
	To   []ObjectRef `json:"to"`
}
