package commands

import (
	"context"
	"errors"
	"testing"

	dashboard "github.com/goliatone/go-metrics-dashboard/components/dashboard"
	"github.com/goliatone/go-metrics-dashboard/pkg/activity"
)

func newTestService(t *testing.T) *dashboard.Service {
	t.Helper()
	board, err := dashboard.SeedBoard(dashboard.DefaultBootstrapPanels(), nil)
	if err != nil {
		t.Fatalf("SeedBoard returned error: %v", err)
	}
	return dashboard.NewService(dashboard.Options{Store: dashboard.NewInMemoryPanelStore(board)})
}

func newRecordingService(t *testing.T) (*dashboard.Service, *dashboard.ActivityFeed) {
	t.Helper()
	board, err := dashboard.SeedBoard(dashboard.DefaultBootstrapPanels(), nil)
	if err != nil {
		t.Fatalf("SeedBoard returned error: %v", err)
	}
	feed := dashboard.NewActivityFeed(10)
	service := dashboard.NewService(dashboard.Options{
		Store:          dashboard.NewInMemoryPanelStore(board),
		ActivityHooks:  activity.Hooks{feed},
		ActivityConfig: activity.Config{Enabled: true},
	})
	return service, feed
}

func TestCommandsAttachActorToActivity(t *testing.T) {
	service, feed := newRecordingService(t)
	ctx := context.Background()
	actor := Actor{UserID: "user-7", TenantID: "acme"}

	created := &PanelResult{}
	if err := NewCreatePanelCommand(service, nil).Execute(ctx, CreatePanelInput{
		CreatePanelRequest: dashboard.CreatePanelRequest{Type: dashboard.PanelTypeCount, Title: "Orders"},
		Actor:              actor,
		Result:             created,
	}); err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if err := NewClonePanelCommand(service, nil).Execute(ctx, ClonePanelInput{PanelID: created.ID, Actor: Actor{ActorID: "bot"}}); err != nil {
		t.Fatalf("clone returned error: %v", err)
	}
	if err := NewDeletePanelCommand(service, nil).Execute(ctx, DeletePanelInput{PanelID: created.ID, Actor: actor}); err != nil {
		t.Fatalf("delete returned error: %v", err)
	}

	items := feed.Recent(ctx, 0)
	if len(items) != 3 {
		t.Fatalf("expected 3 activity items, got %d", len(items))
	}
	want := []struct{ verb, actor string }{
		{"dashboard.panel.delete", "user-7"},
		{"dashboard.panel.clone", "bot"},
		{"dashboard.panel.create", "user-7"},
	}
	for i, w := range want {
		if items[i].Verb != w.verb || items[i].ActorID != w.actor {
			t.Fatalf("item %d: expected %s by %s, got %+v", i, w.verb, w.actor, items[i])
		}
	}
	if items[0].TenantID != "acme" {
		t.Fatalf("expected tenant acme, got %q", items[0].TenantID)
	}
}

func TestActorFromViewer(t *testing.T) {
	actor := ActorFromViewer(dashboard.ViewerContext{UserID: "u1", TenantID: "t1"})
	if actor != (Actor{ActorID: "u1", UserID: "u1", TenantID: "t1"}) {
		t.Fatalf("unexpected actor %+v", actor)
	}
}

func TestCreatePanelCommand(t *testing.T) {
	service := newTestService(t)
	telemetry := &stubTelemetry{}
	cmd := NewCreatePanelCommand(service, telemetry)
	result := &PanelResult{}
	err := cmd.Execute(context.Background(), CreatePanelInput{
		CreatePanelRequest: dashboard.CreatePanelRequest{Type: dashboard.PanelTypeCount, Title: "Orders"},
		Result:             result,
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if result.ID == "" {
		t.Fatalf("expected result id")
	}
	board, _ := service.Board(context.Background())
	if !board.HasPanel(result.ID) {
		t.Fatalf("expected panel %s on board", result.ID)
	}
	if telemetry.calls != 1 {
		t.Fatalf("expected telemetry call, got %d", telemetry.calls)
	}
}

func TestCreatePanelCommandRejectsInvalid(t *testing.T) {
	cmd := NewCreatePanelCommand(newTestService(t), nil)
	err := cmd.Execute(context.Background(), CreatePanelInput{
		CreatePanelRequest: dashboard.CreatePanelRequest{Type: dashboard.PanelTypeChart, Title: "   "},
	})
	if !errors.Is(err, dashboard.ErrInvalidPanelRequest) {
		t.Fatalf("expected ErrInvalidPanelRequest, got %v", err)
	}
}

func TestClonePanelCommand(t *testing.T) {
	service := newTestService(t)
	cmd := NewClonePanelCommand(service, nil)
	result := &PanelResult{}
	if err := cmd.Execute(context.Background(), ClonePanelInput{PanelID: "chart_1", Result: result}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	panel, err := service.Panel(context.Background(), result.ID)
	if err != nil {
		t.Fatalf("Panel returned error: %v", err)
	}
	if panel.Type != dashboard.PanelTypeChart {
		t.Fatalf("expected chart clone, got %s", panel.Type)
	}
}

func TestDeletePanelCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewDeletePanelCommand(service, nil)
	if err := cmd.Execute(context.Background(), DeletePanelInput{PanelID: "count_42"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.deleted != "count_42" {
		t.Fatalf("expected delete call, got %q", service.deleted)
	}

	service.err = dashboard.ErrProtectedPanel
	if err := cmd.Execute(context.Background(), DeletePanelInput{PanelID: "chart_1"}); !errors.Is(err, dashboard.ErrProtectedPanel) {
		t.Fatalf("expected ErrProtectedPanel, got %v", err)
	}
}

func TestUpdateLayoutCommand(t *testing.T) {
	service := &stubService{}
	telemetry := &stubTelemetry{}
	cmd := NewUpdateLayoutCommand(service, telemetry)
	layouts := dashboard.Layouts{"lg": {{ID: "chart_1", W: 6, H: 6}}}
	if err := cmd.Execute(context.Background(), UpdateLayoutInput{Layouts: layouts}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.layoutCalls != 1 || telemetry.calls != 1 {
		t.Fatalf("expected one layout call and one telemetry call")
	}
}

func TestSaveSettingsCommand(t *testing.T) {
	settings := dashboard.NewSettingsService(dashboard.SettingsOptions{})
	cmd := NewSaveSettingsCommand(settings, nil)
	var saved dashboard.Settings
	err := cmd.Execute(context.Background(), SaveSettingsInput{
		Form:   map[string][]string{"theme": {"dark"}},
		Result: &saved,
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if saved.Theme != "dark" {
		t.Fatalf("expected dark theme, got %q", saved.Theme)
	}
}

func TestCommandsRequireService(t *testing.T) {
	ctx := context.Background()
	if err := NewCreatePanelCommand(nil, nil).Execute(ctx, CreatePanelInput{}); err == nil {
		t.Fatalf("expected create error")
	}
	if err := NewClonePanelCommand(nil, nil).Execute(ctx, ClonePanelInput{}); err == nil {
		t.Fatalf("expected clone error")
	}
	if err := NewDeletePanelCommand(nil, nil).Execute(ctx, DeletePanelInput{}); err == nil {
		t.Fatalf("expected delete error")
	}
	if err := NewUpdateLayoutCommand(nil, nil).Execute(ctx, UpdateLayoutInput{}); err == nil {
		t.Fatalf("expected layout error")
	}
	if err := NewSaveSettingsCommand(nil, nil).Execute(ctx, SaveSettingsInput{}); err == nil {
		t.Fatalf("expected settings error")
	}
}

type stubService struct {
	deleted     string
	layoutCalls int
	err         error
}

func (s *stubService) DeletePanel(_ context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = id
	return nil
}

func (s *stubService) UpdateLayout(context.Context, dashboard.Layouts) error {
	s.layoutCalls++
	return s.err
}

type stubTelemetry struct {
	calls int
}

func (s *stubTelemetry) Record(context.Context, string, map[string]any) {
	s.calls++
}
