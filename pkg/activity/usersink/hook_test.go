package usersink

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-metrics-dashboard/pkg/activity"
	"github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	records []types.ActivityRecord
	err     error
}

func (s *recordingSink) Log(_ context.Context, record types.ActivityRecord) error {
	s.records = append(s.records, record)
	return s.err
}

func TestHookNotifyMapsEvent(t *testing.T) {
	sink := &recordingSink{}
	hook := Hook{Sink: sink}

	now := time.Date(2024, 2, 13, 12, 0, 0, 0, time.UTC)
	actorID := uuid.New()
	userID := uuid.New()
	tenantID := uuid.New()

	event := activity.Event{
		Verb:           "dashboard.panel.create",
		ActorID:        actorID.String(),
		UserID:         userID.String(),
		TenantID:       tenantID.String(),
		ObjectType:     "panel",
		ObjectID:       "count_4821930",
		Channel:        "dashboard",
		DefinitionCode: "count",
		Recipients:     []string{"ops@example.com"},
		Metadata: map[string]any{
			"title": "CPU Usage",
		},
		OccurredAt: now,
	}

	require.NoError(t, hook.Notify(context.Background(), event))
	require.Len(t, sink.records, 1)

	record := sink.records[0]
	assert.Equal(t, actorID, record.ActorID)
	assert.Equal(t, userID, record.UserID)
	assert.Equal(t, tenantID, record.TenantID)
	assert.Equal(t, "dashboard.panel.create", record.Verb)
	assert.Equal(t, "panel", record.ObjectType)
	assert.Equal(t, "count_4821930", record.ObjectID)
	assert.Equal(t, "dashboard", record.Channel)
	assert.Equal(t, now, record.OccurredAt)
	assert.Equal(t, "count", record.Data["definition_code"])
	assert.Equal(t, "CPU Usage", record.Data["title"])
	assert.Equal(t, []string{"ops@example.com"}, record.Data["recipients"])
}

func TestHookNotifyHashesNonUUIDActors(t *testing.T) {
	sink := &recordingSink{}
	hook := Hook{Sink: sink}

	require.NoError(t, hook.Notify(context.Background(), activity.Event{Verb: "v", ActorID: "cli"}))
	require.NoError(t, hook.Notify(context.Background(), activity.Event{Verb: "v", ActorID: "cli"}))
	require.Len(t, sink.records, 2)
	assert.NotEqual(t, uuid.Nil, sink.records[0].ActorID)
	assert.Equal(t, sink.records[0].ActorID, sink.records[1].ActorID)
	assert.Equal(t, uuid.Nil, sink.records[0].UserID)
}

func TestHookNotifySkipsMissingVerb(t *testing.T) {
	sink := &recordingSink{}
	hook := Hook{Sink: sink}

	require.NoError(t, hook.Notify(context.Background(), activity.Event{}))
	assert.Empty(t, sink.records)
}

func TestHookNotifyPropagatesSinkErrors(t *testing.T) {
	boom := errors.New("sink down")
	hook := Hook{Sink: &recordingSink{err: boom}}
	assert.ErrorIs(t, hook.Notify(context.Background(), activity.Event{Verb: "v"}), boom)
}

func TestHookNotifyRequiresSink(t *testing.T) {
	err := Hook{}.Notify(context.Background(), activity.Event{Verb: "v"})
	assert.ErrorIs(t, err, errMissingSink)
}
