package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-metrics-dashboard/components/dashboard"
)

// PanelInput identifies a single panel.
type PanelInput struct {
	PanelID string
}

type panelService interface {
	Panel(ctx context.Context, id string) (dashboard.PanelSnapshot, error)
}

// PanelQuery fetches one panel's layout, metadata and data.
type PanelQuery struct {
	service panelService
}

// NewPanelQuery builds the query.
func NewPanelQuery(service panelService) *PanelQuery {
	return &PanelQuery{service: service}
}

var _ gocommand.Querier[PanelInput, dashboard.PanelSnapshot] = (*PanelQuery)(nil)

func (q *PanelQuery) Query(ctx context.Context, input PanelInput) (dashboard.PanelSnapshot, error) {
	return q.service.Panel(ctx, input.PanelID)
}
