package queries

import (
	"context"
	"errors"
	"testing"

	dashboard "github.com/goliatone/go-metrics-dashboard/components/dashboard"
	"github.com/goliatone/go-metrics-dashboard/pkg/activity"
)

type stubLayoutService struct {
	calls  int
	viewer dashboard.ViewerContext
}

func (s *stubLayoutService) LayoutPayload(_ context.Context, viewer dashboard.ViewerContext) (dashboard.LayoutPayload, error) {
	s.calls++
	s.viewer = viewer
	return dashboard.LayoutPayload{Theme: viewer.Theme}, nil
}

func TestBoardQuery(t *testing.T) {
	service := &stubLayoutService{}
	query := NewBoardQuery(service)
	payload, err := query.Query(context.Background(), dashboard.ViewerContext{UserID: "u1", Theme: dashboard.ChartThemeDark})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if service.calls != 1 {
		t.Fatalf("expected 1 call, got %d", service.calls)
	}
	if payload.Theme != dashboard.ChartThemeDark || service.viewer.UserID != "u1" {
		t.Fatalf("expected viewer to be forwarded, got %+v", service.viewer)
	}
}

func TestPanelQuery(t *testing.T) {
	board, err := dashboard.SeedBoard(dashboard.DefaultBootstrapPanels(), nil)
	if err != nil {
		t.Fatalf("SeedBoard returned error: %v", err)
	}
	service := dashboard.NewService(dashboard.Options{Store: dashboard.NewInMemoryPanelStore(board)})
	query := NewPanelQuery(service)

	panel, err := query.Query(context.Background(), PanelInput{PanelID: "count_1"})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if panel.Type != dashboard.PanelTypeCount {
		t.Fatalf("expected count panel, got %s", panel.Type)
	}
	if _, err := query.Query(context.Background(), PanelInput{PanelID: "chart_404"}); !errors.Is(err, dashboard.ErrPanelNotFound) {
		t.Fatalf("expected ErrPanelNotFound, got %v", err)
	}
}

func TestActivityQuery(t *testing.T) {
	feed := dashboard.NewActivityFeed(10)
	_ = feed.Notify(context.Background(), activity.Event{Verb: "dashboard.panel.delete", ObjectID: "count_9"})
	items, err := NewActivityQuery(feed).Query(context.Background(), ActivityInput{Limit: 5})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if len(items) != 1 || items[0].PanelID != "count_9" {
		t.Fatalf("unexpected items: %+v", items)
	}

	items, err = NewActivityQuery(nil).Query(context.Background(), ActivityInput{})
	if err != nil || items != nil {
		t.Fatalf("expected empty result without feed")
	}
}
