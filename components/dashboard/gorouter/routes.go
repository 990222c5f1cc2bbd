package gorouter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	gocommand "github.com/goliatone/go-command"
	router "github.com/goliatone/go-router"
	"github.com/goliatone/go-router/eventstream"
	"github.com/goliatone/go-router/ssefiber"

	"github.com/goliatone/go-metrics-dashboard/components/dashboard"
	"github.com/goliatone/go-metrics-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-metrics-dashboard/components/dashboard/httpapi"
	"github.com/goliatone/go-metrics-dashboard/components/dashboard/queries"
)

const defaultActivityLimit = 20

// ViewerResolver converts a router.Context into a dashboard.ViewerContext.
type ViewerResolver func(router.Context) dashboard.ViewerContext

// ActivityQuerier lists recent panel actions, newest first.
type ActivityQuerier = gocommand.Querier[queries.ActivityInput, []dashboard.ActivityItem]

// PanelQuerier resolves a single panel snapshot.
type PanelQuerier = gocommand.Querier[queries.PanelInput, dashboard.PanelSnapshot]

// Config wires go-router with the dashboard controller, APIs, and hooks.
type Config[T any] struct {
	Router         router.Router[T]
	Controller     *dashboard.Controller
	API            httpapi.Executor
	Broadcast      *dashboard.BroadcastHook
	Activity       ActivityQuerier
	Panel          PanelQuerier
	ViewerResolver ViewerResolver
	BasePath       string
	Routes         RouteConfig
}

// RouteConfig customizes the relative paths used for dashboard endpoints.
type RouteConfig struct {
	HTML       string
	Layout     string
	SaveLayout string
	Panels     string
	PanelID    string
	Clone      string
	Settings   string
	Activity   string
	WebSocket  string
	Events     string
}

// Register mounts dashboard routes (HTML, JSON, REST, WebSocket, SSE) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := cfg.routes()
	base := cfg.BasePath
	if base == "" {
		base = "/admin"
	}
	viewerResolver := cfg.ViewerResolver
	if viewerResolver == nil {
		viewerResolver = defaultViewerResolver
	}

	group := cfg.Router.Group(base)

	group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
		var buf bytes.Buffer
		if err := cfg.Controller.RenderTemplate(ctx.Context(), viewerResolver(ctx), &buf); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return sendHTML(ctx, buf.Bytes())
	}))

	boardQuery := queries.NewBoardQuery(cfg.Controller)
	group.Get(routes.Layout, router.WrapHandler(func(ctx router.Context) error {
		payload, err := boardQuery.Query(ctx.Context(), viewerResolver(ctx))
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, payload)
	}))

	group.Get(routes.Settings, router.WrapHandler(func(ctx router.Context) error {
		var buf bytes.Buffer
		if err := cfg.Controller.RenderSettings(ctx.Context(), viewerResolver(ctx), &buf); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return sendHTML(ctx, buf.Bytes())
	}))

	if cfg.API != nil {
		registerAPI(group, cfg.API, cfg.Controller, viewerResolver, routes)
	}

	if cfg.Panel != nil {
		registerPanel(group, cfg.Panel, routes.PanelID)
	}

	if cfg.Activity != nil {
		registerActivity(group, cfg.Activity, routes.Activity)
	}

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
		registerEvents(group, cfg.Broadcast, routes.Events)
	}

	return nil
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, controller *dashboard.Controller, resolver ViewerResolver, routes RouteConfig) {
	r.Post(routes.Panels, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.CreatePanelInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.Actor = commands.ActorFromViewer(resolver(ctx))
		payload.Result = &commands.PanelResult{}
		if err := api.CreatePanel(ctx.Context(), payload); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusCreated, payload.Result)
	}))

	r.Post(routes.Clone, router.WrapHandler(func(ctx router.Context) error {
		id := strings.TrimSpace(ctx.Param("id"))
		if id == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("panel id is required"))
		}
		input := commands.ClonePanelInput{
			PanelID: id,
			Actor:   commands.ActorFromViewer(resolver(ctx)),
			Result:  &commands.PanelResult{},
		}
		if err := api.ClonePanel(ctx.Context(), input); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusCreated, input.Result)
	}))

	r.Delete(routes.PanelID, router.WrapHandler(func(ctx router.Context) error {
		id := strings.TrimSpace(ctx.Param("id"))
		if id == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("panel id is required"))
		}
		input := commands.DeletePanelInput{PanelID: id, Actor: commands.ActorFromViewer(resolver(ctx))}
		if err := api.DeletePanel(ctx.Context(), input); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "deleted", "id": id})
	}))

	r.Post(routes.SaveLayout, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.UpdateLayoutInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.Actor = commands.ActorFromViewer(resolver(ctx))
		if err := api.UpdateLayout(ctx.Context(), payload); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "saved"})
	}))

	r.Post(routes.Settings, router.WrapHandler(func(ctx router.Context) error {
		form, err := url.ParseQuery(string(ctx.Body()))
		if err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.SaveSettings(ctx.Context(), commands.SaveSettingsInput{Form: form}); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		var buf bytes.Buffer
		if err := controller.RenderSettings(ctx.Context(), resolver(ctx), &buf); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return sendHTML(ctx, buf.Bytes())
	}))
}

func registerPanel[T any](r router.Router[T], query PanelQuerier, path string) {
	r.Get(path, router.WrapHandler(func(ctx router.Context) error {
		id := strings.TrimSpace(ctx.Param("id"))
		panel, err := query.Query(ctx.Context(), queries.PanelInput{PanelID: id})
		if err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusOK, panel)
	}))
}

func registerActivity[T any](r router.Router[T], query ActivityQuerier, path string) {
	r.Get(path, router.WrapHandler(func(ctx router.Context) error {
		limit := defaultActivityLimit
		if raw := strings.TrimSpace(ctx.Query("limit")); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				limit = n
			}
		}
		items, err := query.Query(ctx.Context(), queries.ActivityInput{Limit: limit})
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]any{"items": items})
	}))
}

func registerWebSocket[T any](r router.Router[T], hook *dashboard.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case msg, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(msg); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

// registerEvents streams the same messages as Server-Sent Events. Clients
// resume with Last-Event-ID.
func registerEvents[T any](r router.Router[T], hook *dashboard.BroadcastHook, path string) {
	r.Get(path, ssefiber.Handler(
		ssefiber.WithStream(hook.Events()),
		ssefiber.WithScopeResolver(func(router.Context) (eventstream.Scope, error) {
			return dashboard.EventScope(), nil
		}),
	))
}

func defaultViewerResolver(ctx router.Context) dashboard.ViewerContext {
	var viewer dashboard.ViewerContext
	if v, ok := ctx.Locals("user_id").(string); ok {
		viewer.UserID = v
	}
	if v, ok := ctx.Locals("tenant_id").(string); ok {
		viewer.TenantID = v
	}
	viewer.Theme = inferTheme(ctx)
	return viewer
}

// inferTheme returns an empty theme when the request does not name one so the
// controller falls back to the saved settings.
func inferTheme(ctx router.Context) dashboard.ChartTheme {
	raw := strings.TrimSpace(ctx.Query("theme"))
	if raw == "" {
		if v, ok := ctx.Locals("theme").(string); ok {
			raw = strings.TrimSpace(v)
		}
	}
	if raw == "" {
		return ""
	}
	return dashboard.ParseChartTheme(raw)
}

func sendHTML(ctx router.Context, body []byte) error {
	ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
	return ctx.Send(body)
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func (cfg Config[T]) routes() RouteConfig {
	return defaultRouteConfig(cfg.Routes)
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/dashboard"
	}
	if routes.Layout == "" {
		routes.Layout = "/dashboard/_layout"
	}
	if routes.SaveLayout == "" {
		routes.SaveLayout = "/dashboard/layout"
	}
	if routes.Panels == "" {
		routes.Panels = "/dashboard/panels"
	}
	if routes.PanelID == "" {
		routes.PanelID = "/dashboard/panels/:id"
	}
	if routes.Clone == "" {
		routes.Clone = "/dashboard/panels/:id/clone"
	}
	if routes.Settings == "" {
		routes.Settings = "/dashboard/settings"
	}
	if routes.Activity == "" {
		routes.Activity = "/dashboard/activity"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/dashboard/ws"
	}
	if routes.Events == "" {
		routes.Events = "/dashboard/events"
	}
	return routes
}
