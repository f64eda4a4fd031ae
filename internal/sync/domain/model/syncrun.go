package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sync run statuses.
const (
	RunStatusRunning   = "running"
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = "failed"
)

// SyncRun is the audit record of one sync invocation, stored in the
// "sync_runs" collection.
type SyncRun struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RunID         string             `bson:"run_id" json:"runId"`
	HubID         string             `bson:"hub_id" json:"hubId"`
	ObjectType    string             `bson:"object_type" json:"objectType"`
	Status        string             `bson:"status" json:"status"`
	StartedAt     time.Time          `bson:"started_at" json:"startedAt"`
	FinishedAt    time.Time          `bson:"finished_at,omitempty" json:"finishedAt,omitempty"`
	PagesFetched  int                `bson:"pages_fetched" json:"pagesFetched"`
	MeetingsSeen  int                `bson:"meetings_seen" json:"meetingsSeen"`
	ActionsPushed int                `bson:"actions_pushed" json:"actionsPushed"`
	Error         string             `bson:"error,omitempty" json:"error,omitempty"`
}

// SyncResult is the immutable outcome snapshot returned by a completed
// sync. The orchestrator never mutates the account in place; the new
// watermark is carried here and persisted through the repository.
type SyncResult struct {
	Watermark     time.Time
	PagesFetched  int
	MeetingsSeen  int
	ActionsPushed int
}
