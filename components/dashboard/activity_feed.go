package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/goliatone/go-metrics-dashboard/pkg/activity"
)

const defaultFeedCapacity = 50

// ActivityItem is a recent panel action shown to operators.
type ActivityItem struct {
	Verb       string    `json:"verb"`
	ActorID    string    `json:"actor_id,omitempty"`
	TenantID   string    `json:"tenant_id,omitempty"`
	PanelID    string    `json:"panel_id"`
	PanelType  string    `json:"panel_type"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	// Age is OccurredAt relative to the moment the feed was read.
	Age string `json:"age,omitempty"`
}

// ActivityFeed keeps the most recent panel actions in memory. It implements
// activity.Hook so it can be registered next to persistent sinks.
type ActivityFeed struct {
	mu       sync.RWMutex
	capacity int
	items    []ActivityItem
	now      func() time.Time
}

// NewActivityFeed returns a feed retaining at most capacity items.
func NewActivityFeed(capacity int) *ActivityFeed {
	if capacity <= 0 {
		capacity = defaultFeedCapacity
	}
	return &ActivityFeed{capacity: capacity, now: time.Now}
}

var _ activity.Hook = (*ActivityFeed)(nil)

// Notify appends the event, evicting the oldest entry once full.
func (f *ActivityFeed) Notify(_ context.Context, evt activity.Event) error {
	if f == nil || evt.Verb == "" {
		return nil
	}
	item := ActivityItem{
		Verb:       evt.Verb,
		ActorID:    evt.ActorID,
		TenantID:   evt.TenantID,
		PanelID:    evt.ObjectID,
		PanelType:  evt.DefinitionCode,
		OccurredAt: evt.OccurredAt,
	}
	if reason, ok := evt.Metadata["reason"].(string); ok {
		item.Reason = reason
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.capacity <= 0 {
		f.capacity = defaultFeedCapacity
	}
	f.items = append(f.items, item)
	if over := len(f.items) - f.capacity; over > 0 {
		f.items = append([]ActivityItem(nil), f.items[over:]...)
	}
	return nil
}

// Recent returns up to limit items, newest first. A non-positive limit returns
// everything retained.
func (f *ActivityFeed) Recent(_ context.Context, limit int) []ActivityItem {
	if f == nil {
		return nil
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	n := len(f.items)
	if limit <= 0 || limit > n {
		limit = n
	}
	now := time.Now
	if f.now != nil {
		now = f.now
	}
	at := now()
	out := make([]ActivityItem, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		item := f.items[i]
		if !item.OccurredAt.IsZero() {
			item.Age = humanize.RelTime(item.OccurredAt, at, "ago", "from now")
		}
		out = append(out, item)
	}
	return out
}
