package progress

import (
	"context"
	"sync"
	"time"

	"hubsync/internal/shared/logger"
	"hubsync/internal/shared/utils"

	"github.com/google/uuid"
)

// PageEvent describes the completion of one page of a sync run.
type PageEvent struct {
	RunID         string    `json:"runId"`
	HubID         string    `json:"hubId"`
	Page          int       `json:"page"`
	MeetingsSeen  int       `json:"meetingsSeen"`
	ActionsPushed int       `json:"actionsPushed"`
	Timestamp     time.Time `json:"timestamp"`
}

// subscriberBuffer is the per-subscriber channel depth. Slow consumers
// lose events rather than blocking the sync loop.
const subscriberBuffer = 16

// Broker fans page events out to websocket subscribers. Publishing
// never blocks: events to full subscriber channels are dropped.
type Broker struct {
	mu     sync.RWMutex
	subs   map[string]map[string]chan PageEvent // hubID -> subscriberID -> channel
	logger logger.Logger
}

// NewBroker creates an empty progress broker.
func NewBroker(log logger.Logger) *Broker {
	return &Broker{
		subs:   make(map[string]map[string]chan PageEvent),
		logger: log.WithComponent("progress_broker"),
	}
}

// Subscribe registers a consumer for one hub's progress events and
// returns its subscriber ID and receive channel.
func (b *Broker) Subscribe(hubID string) (string, <-chan PageEvent) {
	id := uuid.NewString()
	ch := make(chan PageEvent, subscriberBuffer)

	b.mu.Lock()
	if b.subs[hubID] == nil {
		b.subs[hubID] = make(map[string]chan PageEvent)
	}
	b.subs[hubID][id] = ch
	b.mu.Unlock()

	b.logger.WithFields(map[string]interface{}{
		"hub_id":        hubID,
		"subscriber_id": id,
	}).Debug("Progress subscriber registered")

	return id, ch
}

// Unsubscribe removes a consumer and closes its channel.
func (b *Broker) Unsubscribe(hubID, subscriberID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if hubSubs, ok := b.subs[hubID]; ok {
		if ch, ok := hubSubs[subscriberID]; ok {
			delete(hubSubs, subscriberID)
			close(ch)
		}
		if len(hubSubs) == 0 {
			delete(b.subs, hubID)
		}
	}
}

// SubscriberCount returns the number of consumers for one hub.
func (b *Broker) SubscriberCount(hubID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[hubID])
}

// PageCompleted publishes a page event, filling the run ID from the
// context. Implements the orchestrator's progress notifier port.
func (b *Broker) PageCompleted(ctx context.Context, event PageEvent) {
	if runID, err := utils.GetRunIDFromContext(ctx); err == nil {
		event.RunID = runID
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subs[event.HubID] {
		select {
		case ch <- event:
		default:
			b.logger.WithFields(map[string]interface{}{
				"hub_id":        event.HubID,
				"subscriber_id": id,
			}).Warn("Progress subscriber buffer full, dropping event")
		}
	}
}
