package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-metrics-dashboard/pkg/activity"
)

func TestActivityFeedKeepsNewestFirst(t *testing.T) {
	feed := NewActivityFeed(2)
	ctx := context.Background()
	for _, id := range []string{"chart_1", "count_1", "chart_2"} {
		require.NoError(t, feed.Notify(ctx, activity.Event{
			Verb:           "dashboard.panel.create",
			ObjectID:       id,
			DefinitionCode: "chart",
			Metadata:       map[string]any{"reason": "create"},
		}))
	}
	require.NoError(t, feed.Notify(ctx, activity.Event{ObjectID: "ignored"}))

	items := feed.Recent(ctx, 0)
	require.Len(t, items, 2)
	assert.Equal(t, "chart_2", items[0].PanelID)
	assert.Equal(t, "count_1", items[1].PanelID)
	assert.Equal(t, "create", items[0].Reason)
	assert.Len(t, feed.Recent(ctx, 1), 1)
}

func TestActivityFeedReceivesServiceEvents(t *testing.T) {
	feed := NewActivityFeed(0)
	fx := newServiceFixture(t, func(o *Options) {
		o.ActivityHooks = activity.Hooks{feed}
		o.ActivityConfig = activity.Config{Enabled: true}
	})
	ctx := ContextWithActivity(context.Background(), ActivityContext{ActorID: "ops"})

	_, err := fx.service.ClonePanel(ctx, "count_1")
	require.NoError(t, err)

	items := feed.Recent(ctx, 10)
	require.Len(t, items, 1)
	assert.Equal(t, "dashboard.panel.clone", items[0].Verb)
	assert.Equal(t, "ops", items[0].ActorID)
	assert.Equal(t, "count", items[0].PanelType)
	assert.False(t, items[0].OccurredAt.IsZero())
}

func TestActivityFeedReportsAge(t *testing.T) {
	now := time.Date(2024, time.February, 13, 12, 0, 0, 0, time.UTC)
	feed := NewActivityFeed(5)
	feed.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, feed.Notify(ctx, activity.Event{
		Verb:       "dashboard.panel.delete",
		ObjectID:   "count_2",
		OccurredAt: now.Add(-3 * time.Minute),
	}))
	require.NoError(t, feed.Notify(ctx, activity.Event{Verb: "dashboard.layout.update"}))

	items := feed.Recent(ctx, 0)
	require.Len(t, items, 2)
	assert.Empty(t, items[0].Age)
	assert.Equal(t, "3 minutes ago", items[1].Age)
}
