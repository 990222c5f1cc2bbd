package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-metrics-dashboard/components/dashboard"
)

type layoutService interface {
	LayoutPayload(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.LayoutPayload, error)
}

// BoardQuery resolves the grid, layouts and rendered panels for a viewer.
type BoardQuery struct {
	service layoutService
}

// NewBoardQuery builds the query.
func NewBoardQuery(service layoutService) *BoardQuery {
	return &BoardQuery{service: service}
}

var _ gocommand.Querier[dashboard.ViewerContext, dashboard.LayoutPayload] = (*BoardQuery)(nil)

// Query resolves the layout payload for the viewer.
func (q *BoardQuery) Query(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.LayoutPayload, error) {
	return q.service.LayoutPayload(ctx, viewer)
}
