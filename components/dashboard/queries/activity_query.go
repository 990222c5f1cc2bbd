package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-metrics-dashboard/components/dashboard"
)

// ActivityInput bounds the number of returned items.
type ActivityInput struct {
	Limit int
}

type activityFeed interface {
	Recent(ctx context.Context, limit int) []dashboard.ActivityItem
}

// ActivityQuery lists recent panel actions, newest first.
type ActivityQuery struct {
	feed activityFeed
}

// NewActivityQuery builds the query.
func NewActivityQuery(feed activityFeed) *ActivityQuery {
	return &ActivityQuery{feed: feed}
}

var _ gocommand.Querier[ActivityInput, []dashboard.ActivityItem] = (*ActivityQuery)(nil)

func (q *ActivityQuery) Query(ctx context.Context, input ActivityInput) ([]dashboard.ActivityItem, error) {
	if q.feed == nil {
		return nil, nil
	}
	return q.feed.Recent(ctx, input.Limit), nil
}
