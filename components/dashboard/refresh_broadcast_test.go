package dashboard

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/goliatone/go-router/eventstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastHookSubscribe(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe()
	defer cancel()

	event := PanelEvent{PanelID: "chart_1", Type: PanelTypeChart, Reason: "clone"}
	if err := hook.PanelUpdated(context.Background(), event); err != nil {
		t.Fatalf("PanelUpdated returned error: %v", err)
	}
	select {
	case msg := <-ch:
		if msg.Kind != "panel" || msg.Event == nil || *msg.Event != event {
			t.Fatalf("unexpected message %+v", msg)
		}
	default:
		t.Fatalf("expected event to be delivered")
	}
}

func TestBroadcastHookNotify(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe()
	defer cancel()

	n := DefaultNotificationConfig().Build(NotificationError, MessageDeleteDefault)
	require.NoError(t, hook.Notify(context.Background(), n))

	msg := <-ch
	assert.Equal(t, "notification", msg.Kind)
	require.NotNil(t, msg.Notification)
	assert.Equal(t, "Cannot delete default panels", msg.Notification.Message)
}

func TestBroadcastHookCancelClosesChannel(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe()
	assert.Equal(t, 1, hook.Subscribers())
	cancel()
	cancel()
	_, ok := <-ch
	assert.False(t, ok)
	assert.Equal(t, 0, hook.Subscribers())
}

func TestBroadcastHookDropsWhenSubscriberIsFull(t *testing.T) {
	hook := NewBroadcastHook()
	_, cancel := hook.Subscribe()
	defer cancel()
	for i := 0; i < 20; i++ {
		require.NoError(t, hook.PanelUpdated(context.Background(), PanelEvent{Reason: "layout"}))
	}
}

func TestBroadcastHookPublishesToEventStream(t *testing.T) {
	hook := NewBroadcastHook()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub, err := hook.Events().Subscribe(ctx, EventScope(), "")
	require.NoError(t, err)
	require.NoError(t, hook.PanelUpdated(context.Background(), PanelEvent{PanelID: "count_1", Reason: "delete"}))

	select {
	case record := <-sub.Records:
		assert.Equal(t, "panel", record.Event.Name)
		var msg StreamMessage
		require.NoError(t, json.Unmarshal(record.Event.Payload, &msg))
		require.NotNil(t, msg.Event)
		assert.Equal(t, "count_1", msg.Event.PanelID)
	case <-time.After(time.Second):
		t.Fatalf("expected stream record")
	}
}

func TestBroadcastHookReplaysAfterCursor(t *testing.T) {
	stream := eventstream.New()
	hook := NewBroadcastHookWithStream(stream)
	require.NoError(t, hook.Notify(context.Background(), DefaultNotificationConfig().Build(NotificationSuccess, MessagePanelCreated)))
	first := stream.SnapshotStats().PublishedCount
	require.EqualValues(t, 1, first)
	require.NoError(t, hook.PanelUpdated(context.Background(), PanelEvent{PanelID: "chart_2", Reason: "clone"}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub, err := stream.Subscribe(ctx, EventScope(), "1")
	require.NoError(t, err)
	require.False(t, sub.CursorGap)

	record := <-sub.Records
	assert.Equal(t, "panel", record.Event.Name)
	assert.Equal(t, "2", record.Cursor)
}
