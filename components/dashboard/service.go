package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-metrics-dashboard/pkg/activity"
)

// Options configures the dashboard Service. Every collaborator is provided via
// interface so applications can swap implementations.
type Options struct {
	Store          PanelStore
	Allocator      IDAllocator
	Generator      MetricGenerator
	Validator      PayloadValidator
	Notifier       Notifier
	RefreshHook    RefreshHook
	Telemetry      Telemetry
	ActivityHooks  activity.Hooks
	ActivityConfig activity.Config
	// ProtectedIDs cannot be deleted. Defaults to the bootstrap panel ids.
	ProtectedIDs  []string
	Notifications NotificationConfig
}

// Service owns every panel transition. Each mutation runs in a single store
// transaction and reports to notifier, refresh hook, activity and telemetry
// after it commits.
type Service struct {
	opts      Options
	protected map[string]struct{}
	activity  *activity.Emitter
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.Allocator == nil {
		opts.Allocator = NewRandomIDAllocator()
	}
	if opts.Generator == nil {
		opts.Generator = NewRandomMetricGenerator()
	}
	if opts.Validator == nil {
		opts.Validator = NewJSONSchemaValidator()
	}
	if opts.Notifier == nil {
		opts.Notifier = noopNotifier{}
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	if opts.ProtectedIDs == nil {
		opts.ProtectedIDs = BootstrapIDs(DefaultBootstrapPanels())
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	opts.Notifications = opts.Notifications.withDefaults()

	protected := make(map[string]struct{}, len(opts.ProtectedIDs))
	for _, id := range opts.ProtectedIDs {
		protected[id] = struct{}{}
	}
	return &Service{
		opts:      opts,
		protected: protected,
		activity:  activity.NewEmitter(opts.ActivityHooks, opts.ActivityConfig),
	}
}

// CreatePanelRequest captures the creation form. SourceURL is accepted for
// form compatibility but does not influence the created panel.
type CreatePanelRequest struct {
	Type        PanelType `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	SourceURL   string    `json:"sourceUrl"`
}

// CreatePanel adds a panel at the top-left of the primary layout, pushing every
// existing panel down by the new panel's height.
func (s *Service) CreatePanel(ctx context.Context, req CreatePanelRequest) (string, error) {
	store, err := s.store()
	if err != nil {
		return "", err
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := s.opts.Validator.Validate(SchemaCreatePanel, req); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidPanelRequest, err)
	}
	// Generated outside the transaction: remote generators may be slow.
	data := s.generate(req.Type)
	var id string
	err = store.Update(ctx, func(tx *Board) error {
		id = s.opts.Allocator.Allocate(req.Type, tx.HasPanel)
		tx.shiftPrimary(newPanelHeight)
		tx.insert(
			LayoutEntry{ID: id, X: 0, Y: 0, W: newPanelWidth, H: newPanelHeight},
			PanelMetadata{Title: req.Title, Description: req.Description},
			data,
			true,
		)
		return nil
	})
	if err != nil {
		return "", err
	}
	s.afterCommit(ctx, transition{
		event:        PanelEvent{PanelID: id, Type: req.Type, Reason: reasonCreate},
		notification: s.success(MessagePanelCreated),
		verb:         "dashboard.panel.create",
		metadata: map[string]any{
			"title": req.Title,
		},
	})
	return id, nil
}

// ClonePanel copies a panel's type and metadata into a new panel placed below
// the lowest row. Data is generated fresh.
func (s *Service) ClonePanel(ctx context.Context, sourceID string) (string, error) {
	store, err := s.store()
	if err != nil {
		return "", err
	}
	if sourceID == "" {
		return "", errMissingPanelID
	}
	var (
		id      string
		typ     PanelType
		preTyp  PanelType
		preData PanelData
	)
	if t, ok := PanelTypeFromID(sourceID); ok {
		preTyp, preData = t, s.generate(t)
	}
	err = store.Update(ctx, func(tx *Board) error {
		src, ok := tx.entry(sourceID)
		if !ok {
			return fmt.Errorf("%w: %s", ErrPanelNotFound, sourceID)
		}
		typ = panelTypeOf(tx, sourceID)
		data := preData
		if typ != preTyp {
			data = s.generate(typ)
		}
		id = s.opts.Allocator.Allocate(typ, tx.HasPanel)
		tx.insert(
			LayoutEntry{ID: id, X: 0, Y: tx.MaxY() + cloneRowGap, W: src.W, H: src.H},
			tx.Metadata[sourceID],
			data,
			false,
		)
		return nil
	})
	if err != nil {
		return "", err
	}
	s.afterCommit(ctx, transition{
		event:        PanelEvent{PanelID: id, Type: typ, Reason: reasonClone},
		notification: s.success(MessagePanelCloned),
		verb:         "dashboard.panel.clone",
		metadata: map[string]any{
			"source_id": sourceID,
		},
	})
	return id, nil
}

// DeletePanel removes a panel from every breakpoint and both maps. Bootstrap
// panels are refused with an error notification.
func (s *Service) DeletePanel(ctx context.Context, id string) error {
	store, err := s.store()
	if err != nil {
		return err
	}
	if _, ok := s.protected[id]; ok {
		s.notify(ctx, s.failure(MessageDeleteDefault))
		s.recordTelemetry(ctx, "dashboard.panel.delete_refused", map[string]any{"panel_id": id})
		return fmt.Errorf("%w: %s", ErrProtectedPanel, id)
	}
	var typ PanelType
	err = store.Update(ctx, func(tx *Board) error {
		if id == "" {
			return errMissingPanelID
		}
		if !tx.HasPanel(id) {
			return fmt.Errorf("%w: %s", ErrPanelNotFound, id)
		}
		typ = panelTypeOf(tx, id)
		tx.remove(id)
		return nil
	})
	if err != nil {
		s.notify(ctx, s.failure(MessageDeleteFailed))
		s.recordTelemetry(ctx, "dashboard.panel.delete_error", map[string]any{
			"panel_id": id,
			"error":    err.Error(),
		})
		return err
	}
	s.afterCommit(ctx, transition{
		event:        PanelEvent{PanelID: id, Type: typ, Reason: reasonDelete},
		notification: s.success(MessagePanelDeleted),
		verb:         "dashboard.panel.delete",
	})
	return nil
}

// UpdateLayout replaces the stored geometry with what the grid adapter reports.
// The primary breakpoint must name exactly the panels on the board; other
// breakpoints silently drop identifiers the board does not know.
func (s *Service) UpdateLayout(ctx context.Context, layouts Layouts) error {
	store, err := s.store()
	if err != nil {
		return err
	}
	for bp, entries := range layouts {
		for _, e := range entries {
			if err := checkGeometry(e); err != nil {
				return fmt.Errorf("breakpoint %s: %w", bp, err)
			}
		}
	}
	err = store.Update(ctx, func(tx *Board) error {
		primary, ok := layouts[PrimaryBreakpoint]
		if !ok {
			return fmt.Errorf("%w: missing %s breakpoint", ErrLayoutMismatch, PrimaryBreakpoint)
		}
		if err := matchesPanels(tx, primary); err != nil {
			return err
		}
		next := make(Layouts, len(layouts))
		for bp, entries := range layouts {
			next[bp] = dedupeKnown(tx, entries)
		}
		tx.Layouts = next
		return nil
	})
	if err != nil {
		return err
	}
	s.afterCommit(ctx, transition{
		event: PanelEvent{Reason: reasonLayout},
		verb:  "dashboard.layout.update",
		metadata: map[string]any{
			"breakpoints": len(layouts),
			"count":       len(layouts[PrimaryBreakpoint]),
		},
	})
	return nil
}

// Board returns a deep copy of the board.
func (s *Service) Board(ctx context.Context) (Board, error) {
	store, err := s.store()
	if err != nil {
		return Board{}, err
	}
	return store.Snapshot(ctx)
}

// Panel returns one panel's snapshot.
func (s *Service) Panel(ctx context.Context, id string) (PanelSnapshot, error) {
	board, err := s.Board(ctx)
	if err != nil {
		return PanelSnapshot{}, err
	}
	panel, ok := board.Panel(id)
	if !ok {
		return PanelSnapshot{}, fmt.Errorf("%w: %s", ErrPanelNotFound, id)
	}
	return panel, nil
}

// IsProtected reports whether id is a bootstrap panel.
func (s *Service) IsProtected(id string) bool {
	_, ok := s.protected[id]
	return ok
}

// Notify exposes the configured notifier so sibling services (settings) share
// toast styling and transport.
func (s *Service) Notify(ctx context.Context, kind NotificationKind, message string) {
	s.notify(ctx, s.opts.Notifications.Build(kind, message))
}

type transition struct {
	event        PanelEvent
	notification *Notification
	verb         string
	metadata     map[string]any
}

// afterCommit never fails: state is already committed, so collaborator errors
// are reported through telemetry only.
func (s *Service) afterCommit(ctx context.Context, t transition) {
	if t.notification != nil {
		s.notify(ctx, *t.notification)
	}
	if err := s.opts.RefreshHook.PanelUpdated(ctx, t.event); err != nil {
		s.reportError(ctx, "refresh", t.event, err)
	}
	if s.activity.Enabled() {
		meta := activityContextFrom(ctx)
		payload := map[string]any{"reason": t.event.Reason}
		for k, v := range t.metadata {
			payload[k] = v
		}
		err := s.activity.Emit(ctx, activity.Event{
			Verb:           t.verb,
			ActorID:        meta.ActorID,
			UserID:         meta.UserID,
			TenantID:       meta.TenantID,
			ObjectType:     "panel",
			ObjectID:       t.event.PanelID,
			DefinitionCode: string(t.event.Type),
			Metadata:       payload,
		})
		if err != nil {
			s.reportError(ctx, "activity", t.event, err)
		}
	}
	payload := map[string]any{
		"panel_id": t.event.PanelID,
		"type":     string(t.event.Type),
	}
	for k, v := range t.metadata {
		payload[k] = v
	}
	s.recordTelemetry(ctx, t.verb, payload)
}

func (s *Service) notify(ctx context.Context, n Notification) {
	if err := s.opts.Notifier.Notify(ctx, n); err != nil {
		s.recordTelemetry(ctx, "dashboard.notify_error", map[string]any{
			"stage":   "notifier",
			"message": n.Message,
			"error":   err.Error(),
		})
	}
}

func (s *Service) reportError(ctx context.Context, stage string, event PanelEvent, err error) {
	s.recordTelemetry(ctx, "dashboard.notify_error", map[string]any{
		"stage":    stage,
		"panel_id": event.PanelID,
		"reason":   event.Reason,
		"error":    err.Error(),
	})
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

func (s *Service) success(message string) *Notification {
	n := s.opts.Notifications.Build(NotificationSuccess, message)
	return &n
}

func (s *Service) failure(message string) Notification {
	return s.opts.Notifications.Build(NotificationError, message)
}

func (s *Service) generate(typ PanelType) PanelData {
	if typ == PanelTypeCount {
		return CountPanelData(s.opts.Generator.Count())
	}
	return ChartPanelData(s.opts.Generator.Series())
}

func (s *Service) store() (PanelStore, error) {
	if s.opts.Store == nil {
		return nil, errMissingPanelStore
	}
	return s.opts.Store, nil
}

func panelTypeOf(b *Board, id string) PanelType {
	if typ, ok := PanelTypeFromID(id); ok {
		return typ
	}
	return b.Data[id].Type
}

func checkGeometry(e LayoutEntry) error {
	if e.ID == "" {
		return fmt.Errorf("%w: entry without id", ErrInvalidGeometry)
	}
	if e.X < 0 || e.Y < 0 || e.W <= 0 || e.H <= 0 {
		return fmt.Errorf("%w: %s {x:%d y:%d w:%d h:%d}", ErrInvalidGeometry, e.ID, e.X, e.Y, e.W, e.H)
	}
	return nil
}

func matchesPanels(b *Board, entries []LayoutEntry) error {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("%w: %s listed twice", ErrLayoutMismatch, e.ID)
		}
		if !b.HasPanel(e.ID) {
			return fmt.Errorf("%w: unknown panel %s", ErrLayoutMismatch, e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	if len(seen) != len(b.Primary()) {
		return fmt.Errorf("%w: expected %d panels, got %d", ErrLayoutMismatch, len(b.Primary()), len(seen))
	}
	return nil
}

func dedupeKnown(b *Board, entries []LayoutEntry) []LayoutEntry {
	seen := make(map[string]struct{}, len(entries))
	return filterEntries(entries, func(e LayoutEntry) bool {
		if _, dup := seen[e.ID]; dup || !b.HasPanel(e.ID) {
			return false
		}
		seen[e.ID] = struct{}{}
		return true
	})
}

type noopRefreshHook struct{}

func (noopRefreshHook) PanelUpdated(context.Context, PanelEvent) error {
	return nil
}

// IsClientError reports whether err stems from caller input rather than the
// store or collaborators.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidPanelRequest) ||
		errors.Is(err, ErrLayoutMismatch) ||
		errors.Is(err, ErrInvalidGeometry) ||
		errors.Is(err, ErrInvalidSettings) ||
		errors.Is(err, errMissingPanelID)
}
