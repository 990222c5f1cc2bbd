package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextWithActivityFallsBackToUser(t *testing.T) {
	ctx := ContextWithActivity(context.Background(), ActivityContext{UserID: " user-9 ", TenantID: "acme"})

	meta, ok := ActivityFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, ActivityContext{ActorID: "user-9", UserID: "user-9", TenantID: "acme"}, meta)
}

func TestContextWithActivityKeepsOuterActorWhenEmpty(t *testing.T) {
	outer := ContextWithActivity(context.Background(), ActivityContext{ActorID: "ops"})
	ctx := ContextWithActivity(outer, ActivityContext{})

	meta, ok := ActivityFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "ops", meta.ActorID)

	_, ok = ActivityFromContext(ContextWithActivity(context.Background(), ActivityContext{UserID: "  "}))
	assert.False(t, ok)
}

func TestViewerActivity(t *testing.T) {
	viewer := ViewerContext{UserID: "u1", TenantID: "t1", Theme: ChartThemeDark}
	assert.Equal(t, ActivityContext{ActorID: "u1", UserID: "u1", TenantID: "t1"}, viewer.Activity())
	assert.True(t, ViewerContext{}.Activity().IsZero())
}
