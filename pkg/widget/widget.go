package widget

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-answerform/pkg/answer"
	"github.com/goliatone/go-answerform/pkg/render"
	"github.com/goliatone/go-answerform/pkg/renderers/vanilla"
	"github.com/goliatone/go-answerform/pkg/spec"
)

// ErrDestroyed is returned by every lifecycle call after Destroy.
var ErrDestroyed = errors.New("widget: destroyed")

// Option configures a Widget.
type Option func(*Widget)

// WithRenderer overrides the renderer used by RenderedRoot.
func WithRenderer(renderer render.Renderer) Option {
	return func(w *Widget) {
		if renderer != nil {
			w.renderer = renderer
		}
	}
}

// WithNotifier routes issues to notifier instead of the logger.
func WithNotifier(notifier Notifier) Option {
	return func(w *Widget) {
		if notifier != nil {
			w.notifier = notifier
		}
	}
}

// WithLogger sets the logger for lifecycle events.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Widget) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithFragmentAttr changes the attribute prefix fragments are read from.
func WithFragmentAttr(prefix string) Option {
	return func(w *Widget) {
		if prefix != "" {
			w.prefix = prefix
		}
	}
}

// WithControlFactory overrides the controls created on every Reload.
func WithControlFactory(factory answer.ControlFactory) Option {
	return func(w *Widget) {
		if factory != nil {
			w.controls = factory
		}
	}
}

// WithTheme passes a theme configuration to the renderer.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(w *Widget) {
		w.theme = cfg
	}
}

// WithID fixes the root container id instead of generating one.
func WithID(id string) Option {
	return func(w *Widget) {
		if id != "" {
			w.id = id
		}
	}
}

// Widget binds a table and its live session to one host. A widget is driven
// by a single caller; it is not safe for concurrent use.
type Widget struct {
	id       string
	host     Host
	prefix   string
	renderer render.Renderer
	notifier Notifier
	logger   *zap.Logger
	controls answer.ControlFactory
	theme    *theme.RendererConfig

	table     spec.Table
	session   *answer.Session
	destroyed bool
}

// New reads the definition fragments from host, parses them once and builds
// the first session from the host's stored value.
func New(host Host, options ...Option) (*Widget, error) {
	if host == nil {
		return nil, errors.New("widget: host is required")
	}

	w := &Widget{
		host:     host,
		prefix:   spec.DefaultFragmentAttr,
		logger:   zap.NewNop(),
		controls: answer.MemoryControls,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(w)
	}
	if w.id == "" {
		w.id = "answerform-" + uuid.NewString()
	}
	if w.notifier == nil {
		w.notifier = LogNotifier(w.logger)
	}
	if w.renderer == nil {
		renderer, err := vanilla.New()
		if err != nil {
			return nil, fmt.Errorf("widget: default renderer: %w", err)
		}
		w.renderer = renderer
	}

	fragments := spec.ReadFragments(host.Attr, w.prefix)
	w.table = spec.Parse(fragments)
	w.logger.Debug("answer form parsed",
		zap.String("id", w.id),
		zap.Int("fragments", len(fragments)),
		zap.Int("fields", w.table.FieldCount()),
		zap.Int("skipped", w.table.Skipped),
	)

	if err := w.Reload(); err != nil {
		return nil, err
	}
	return w, nil
}

// ID is the root container id.
func (w *Widget) ID() string {
	return w.id
}

// Table returns the parsed definition.
func (w *Widget) Table() spec.Table {
	return w.table
}

// Session returns the live session, or nil after Destroy.
func (w *Widget) Session() *answer.Session {
	return w.session
}

// Reload discards the current controls and rebuilds them from the host's
// stored value. Definition and load issues are sent to the notifier.
func (w *Widget) Reload() error {
	if w.destroyed {
		return ErrDestroyed
	}
	w.session = answer.Build(w.table, w.host.Value(), answer.WithControlFactory(w.controls))
	w.logger.Debug("answer form loaded",
		zap.String("id", w.id),
		zap.Int("leftovers", len(w.session.Leftovers())),
	)
	w.notify(w.session.Issues())
	return nil
}

// Sync serializes the controls and writes the result into the host.
func (w *Widget) Sync() error {
	if w.destroyed {
		return ErrDestroyed
	}
	stored, issues := w.session.Serialize()
	w.host.SetValue(stored)
	w.logger.Debug("answer form synced", zap.String("id", w.id), zap.Int("bytes", len(stored)))
	w.notify(issues)
	return nil
}

// RenderedRoot renders the root container for insertion into the page. The
// session's issues are passed to the renderer as notices.
func (w *Widget) RenderedRoot(ctx context.Context) ([]byte, error) {
	if w.destroyed {
		return nil, ErrDestroyed
	}
	options := render.RenderOptions{
		ReadOnly: w.host.ReadOnly(),
		Notices:  w.session.Issues().Messages(),
		Theme:    w.theme,
	}
	out, err := w.renderer.Render(ctx, render.NewForm(w.id, w.session), options)
	if err != nil {
		return nil, fmt.Errorf("widget: render %s: %w", w.renderer.Name(), err)
	}
	return out, nil
}

// HasFocus reports whether any control currently holds input focus.
func (w *Widget) HasFocus() bool {
	if w.destroyed || w.session == nil {
		return false
	}
	for _, field := range w.session.Fields() {
		if focuser, ok := field.Control.(answer.Focuser); ok && focuser.Focused() {
			return true
		}
	}
	return false
}

// Leftovers returns the preload values no field claimed.
func (w *Widget) Leftovers() answer.LeftoverMap {
	if w.destroyed || w.session == nil {
		return nil
	}
	return w.session.Leftovers().Clone()
}

// Recover looks up one leftover value so author logic can consume it.
func (w *Widget) Recover(name string) (json.RawMessage, bool) {
	if w.destroyed || w.session == nil {
		return nil, false
	}
	return w.session.Leftovers().Get(name)
}

// Destroy performs a final Sync and releases the controls. The host keeps
// the last stored answer.
func (w *Widget) Destroy() error {
	if w.destroyed {
		return ErrDestroyed
	}
	if err := w.Sync(); err != nil {
		return err
	}
	w.destroyed = true
	w.session = nil
	w.logger.Debug("answer form destroyed", zap.String("id", w.id))
	return nil
}

func (w *Widget) notify(issues answer.Issues) {
	if issues.Empty() {
		return
	}
	w.notifier.Notify(issues)
}
