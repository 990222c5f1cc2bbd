package usersink

import (
	"context"
	"errors"

	"github.com/goliatone/go-metrics-dashboard/pkg/activity"
	"github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

var errMissingSink = errors.New("usersink: activity sink not configured")

// Sink is the subset of the go-users activity sink the hook needs.
type Sink interface {
	Log(ctx context.Context, record types.ActivityRecord) error
}

// Hook forwards panel activity events into a go-users activity sink.
type Hook struct {
	Sink Sink
}

// Notify maps the event to an ActivityRecord and logs it.
func (h Hook) Notify(ctx context.Context, evt activity.Event) error {
	evt = activity.NormalizeEvent(evt)
	if evt.Verb == "" {
		return nil
	}
	if h.Sink == nil {
		return errMissingSink
	}
	return h.Sink.Log(ctx, toRecord(evt))
}

func toRecord(evt activity.Event) types.ActivityRecord {
	data := make(map[string]any, len(evt.Metadata)+2)
	for k, v := range evt.Metadata {
		data[k] = v
	}
	if evt.DefinitionCode != "" {
		data["definition_code"] = evt.DefinitionCode
	}
	if len(evt.Recipients) > 0 {
		data["recipients"] = evt.Recipients
	}
	return types.ActivityRecord{
		ActorID:    parseID(evt.ActorID),
		UserID:     parseID(evt.UserID),
		TenantID:   parseID(evt.TenantID),
		Verb:       evt.Verb,
		ObjectType: evt.ObjectType,
		ObjectID:   evt.ObjectID,
		Channel:    evt.Channel,
		OccurredAt: evt.OccurredAt,
		Data:       data,
	}
}

// parseID maps free-form identifiers onto uuids; non-uuid values are hashed
// into a stable name-based uuid so records stay correlatable.
func parseID(raw string) uuid.UUID {
	if raw == "" {
		return uuid.Nil
	}
	if id, err := uuid.Parse(raw); err == nil {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(raw))
}
