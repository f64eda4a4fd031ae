package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SyncRunsTotal counts completed sync runs.
	// Labels: object_type (meetings), status (succeeded/failed)
	SyncRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hubsync_sync_runs_total",
			Help: "Total number of sync runs by object type and outcome",
		},
		[]string{"object_type", "status"},
	)

	// ActionsPushedTotal counts actions handed to the queue.
	// Labels: action_name (Meeting Created/Meeting Updated)
	ActionsPushedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hubsync_actions_pushed_total",
			Help: "Total number of actions pushed to the queue by action name",
		},
		[]string{"action_name"},
	)

	// MeetingsSkippedTotal counts meetings dropped from a sync pass.
	// Labels: reason (no_association/no_contacts/filtered)
	MeetingsSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hubsync_meetings_skipped_total",
			Help: "Total number of meetings skipped during sync by reason",
		},
		[]string{"reason"},
	)

	// PageFetchDuration observes the latency of one search page fetch,
	// including retries and backoff.
	PageFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hubsync_page_fetch_duration_seconds",
			Help:    "Duration of one meeting search page fetch in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300},
		},
	)

	// WatermarkAge reports the age of each account's meetings watermark.
	WatermarkAge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hubsync_watermark_age_seconds",
			Help: "Age of the last successful meetings sync watermark per hub",
		},
		[]string{"hub_id"},
	)
)

// Skip reasons.
const (
	SkipNoAssociation = "no_association"
	SkipNoContacts    = "no_contacts"
	SkipFiltered      = "filtered"
)

// RecordRunCompleted records the outcome of one sync run.
func RecordRunCompleted(objectType string, err error) {
	status := "succeeded"
	if err != nil {
		status = "failed"
	}
	SyncRunsTotal.WithLabelValues(objectType, status).Inc()
}

// RecordActionPushed records one action handed to the queue.
func RecordActionPushed(actionName string) {
	ActionsPushedTotal.WithLabelValues(actionName).Inc()
}

// RecordMeetingSkipped records one dropped meeting.
func RecordMeetingSkipped(reason string) {
	MeetingsSkippedTotal.WithLabelValues(reason).Inc()
}

// ObservePageFetch records the latency of one page fetch.
func ObservePageFetch(elapsed time.Duration) {
	PageFetchDuration.Observe(elapsed.Seconds())
}

// SetWatermark updates the watermark age gauge for one hub.
func SetWatermark(hubID string, watermark time.Time) {
	WatermarkAge.WithLabelValues(hubID).Set(time.Since(watermark).Seconds())
}
