package model

import "time"

// Action names emitted for qualifying meetings.
const (
	ActionMeetingCreated = "Meeting Created"
	ActionMeetingUpdated = "Meeting Updated"
)

// Attendee summarizes one contact attached to a meeting.
type Attendee struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Title  string `json:"title,omitempty"`
	Status string `json:"status,omitempty"`
	Score  int    `json:"score"`
}

// Action is the normalized output event describing a meeting's creation
// or update. Once pushed to the queue it is owned by the consumer.
type Action struct {
	ActionName string    `json:"actionName"`
	ActionDate time.Time `json:"actionDate"`
	// IncludeInAnalytics is always 0: these actions are excluded from the
	// downstream analytics counter.
	IncludeInAnalytics int                    `json:"includeInAnalytics"`
	MeetingProperties  map[string]interface{} `json:"meetingProperties"`
}
