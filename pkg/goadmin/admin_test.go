package goadmin_test

import (
	"context"
	"testing"

	dashboardpkg "github.com/goliatone/go-metrics-dashboard/pkg/dashboard"
	"github.com/goliatone/go-metrics-dashboard/pkg/goadmin"
)

type stubMenuBuilder struct {
	items []goadmin.MenuItem
}

func (s *stubMenuBuilder) EnsureMenuItem(_ context.Context, _ string, item goadmin.MenuItem) error {
	s.items = append(s.items, item)
	return nil
}

func newService(t *testing.T) *dashboardpkg.Service {
	t.Helper()
	service, err := dashboardpkg.NewFromConfig(nil, dashboardpkg.Options{})
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	return service
}

func TestAdminBootstrapSeedsMenu(t *testing.T) {
	builder := &stubMenuBuilder{}
	admin, err := goadmin.New(goadmin.Config{
		EnableDashboard: true,
		EnableSettings:  true,
		Service:         newService(t),
		MenuBuilder:     builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if len(builder.items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(builder.items))
	}
	if builder.items[1].Route != "admin.dashboard.settings" || builder.items[1].Position != 1 {
		t.Fatalf("unexpected settings item: %+v", builder.items[1])
	}
	if admin.Dashboard() == nil {
		t.Fatalf("expected dashboard service")
	}
}

func TestAdminRequiresServiceWhenEnabled(t *testing.T) {
	if _, err := goadmin.New(goadmin.Config{EnableDashboard: true}); err == nil {
		t.Fatalf("expected error without service")
	}
}

func TestAdminDisabledSkipsBootstrap(t *testing.T) {
	builder := &stubMenuBuilder{}
	admin, err := goadmin.New(goadmin.Config{
		EnableDashboard: false,
		MenuBuilder:     builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if len(builder.items) != 0 {
		t.Fatalf("expected 0 calls, got %d", len(builder.items))
	}
	if admin.Dashboard() != nil {
		t.Fatalf("expected nil dashboard when disabled")
	}
}
