package progress_test

import (
	"context"
	"testing"

	"hubsync/internal/shared/logger"
	"hubsync/internal/shared/utils"
	"hubsync/internal/sync/progress"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBroker() *progress.Broker {
	return progress.NewBroker(logger.NewLogger())
}

func TestSubscribeAndReceive(t *testing.T) {
	broker := newBroker()

	id, ch := broker.Subscribe("hub-1")
	require.NotEmpty(t, id)
	assert.Equal(t, 1, broker.SubscriberCount("hub-1"))

	broker.PageCompleted(context.Background(), progress.PageEvent{
		HubID:        "hub-1",
		Page:         1,
		MeetingsSeen: 42,
	})

	event := <-ch
	assert.Equal(t, "hub-1", event.HubID)
	assert.Equal(t, 1, event.Page)
	assert.Equal(t, 42, event.MeetingsSeen)
	assert.False(t, event.Timestamp.IsZero())
}

func TestPageCompletedFillsRunIDFromContext(t *testing.T) {
	broker := newBroker()
	_, ch := broker.Subscribe("hub-1")

	ctx := utils.WithRunID(context.Background(), "run-abc")
	broker.PageCompleted(ctx, progress.PageEvent{HubID: "hub-1", Page: 1})

	event := <-ch
	assert.Equal(t, "run-abc", event.RunID)
}

func TestEventsAreScopedToHub(t *testing.T) {
	broker := newBroker()
	_, own := broker.Subscribe("hub-1")
	_, other := broker.Subscribe("hub-2")

	broker.PageCompleted(context.Background(), progress.PageEvent{HubID: "hub-1", Page: 1})

	<-own
	select {
	case event := <-other:
		t.Fatalf("unexpected event for hub-2: %+v", event)
	default:
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	broker := newBroker()
	id, ch := broker.Subscribe("hub-1")

	broker.Unsubscribe("hub-1", id)

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, broker.SubscriberCount("hub-1"))

	// Publishing to a hub without subscribers is a no-op
	broker.PageCompleted(context.Background(), progress.PageEvent{HubID: "hub-1", Page: 2})
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	broker := newBroker()
	_, ch := broker.Subscribe("hub-1")

	// Overrun the subscriber buffer; the publisher must not block
	for i := 0; i < 100; i++ {
		broker.PageCompleted(context.Background(), progress.PageEvent{HubID: "hub-1", Page: i})
	}

	received := 0
	for {
		select {
		case <-ch:
			received++
			continue
		default:
		}
		break
	}

	assert.Greater(t, received, 0)
	assert.LessOrEqual(t, received, 16)
}
