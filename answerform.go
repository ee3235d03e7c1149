// Package answerform renders and serializes author defined answer forms. A
// form is described by JSON fragments, preloaded from a stored answer string
// and written back to that string in canonical JSON.
//
// The root package is a convenience facade; pkg/widget holds the host
// lifecycle and pkg/answer the build and serialize core.
package answerform

import (
	"context"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-answerform/pkg/answer"
	"github.com/goliatone/go-answerform/pkg/render"
	"github.com/goliatone/go-answerform/pkg/renderers/tui"
	"github.com/goliatone/go-answerform/pkg/renderers/vanilla"
	"github.com/goliatone/go-answerform/pkg/spec"
)

// RenderOptions aliases render.RenderOptions for callers of the facade.
type RenderOptions = render.RenderOptions

// Result is the output of one Render call.
type Result struct {
	Output      []byte
	ContentType string
	Issues      answer.Issues
	Leftovers   answer.LeftoverMap
}

// Option configures Render.
type Option func(*config)

type config struct {
	id       string
	renderer string
	registry *render.Registry
	options  RenderOptions
}

// WithID sets the root container id.
func WithID(id string) Option {
	return func(cfg *config) {
		cfg.id = id
	}
}

// WithRenderer selects a renderer by name from the registry.
func WithRenderer(name string) Option {
	return func(cfg *config) {
		cfg.renderer = name
	}
}

// WithRegistry replaces the default renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithReadOnly renders disabled controls.
func WithReadOnly(readOnly bool) Option {
	return func(cfg *config) {
		cfg.options.ReadOnly = readOnly
	}
}

// WithTheme attaches a theme configuration.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.options.Theme = cfg
	}
}

// NewRegistry returns a registry holding the vanilla (default) and tui
// renderers.
func NewRegistry(tuiOptions ...tui.Option) (*render.Registry, error) {
	registry := render.NewRegistry()

	html, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	if err := registry.Register(html); err != nil {
		return nil, err
	}

	terminal, err := tui.New(tuiOptions...)
	if err != nil {
		return nil, err
	}
	if err := registry.Register(terminal); err != nil {
		return nil, err
	}
	return registry, nil
}

// Render parses fragments, preloads stored and renders the form. Issues are
// passed to the renderer as notices and returned; they never fail the call.
func Render(ctx context.Context, fragments []string, stored string, options ...Option) (Result, error) {
	cfg := config{id: "answerform"}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.registry == nil {
		registry, err := NewRegistry()
		if err != nil {
			return Result{}, fmt.Errorf("answerform: default registry: %w", err)
		}
		cfg.registry = registry
	}

	renderer, err := cfg.registry.Resolve(cfg.renderer)
	if err != nil {
		return Result{}, fmt.Errorf("answerform: %w", err)
	}

	session := answer.Build(spec.Parse(fragments), stored)
	issues := session.Issues()
	opts := cfg.options
	opts.Notices = append(append([]string(nil), opts.Notices...), issues.Messages()...)

	out, err := renderer.Render(ctx, render.NewForm(cfg.id, session), opts)
	if err != nil {
		return Result{}, fmt.Errorf("answerform: render %s: %w", renderer.Name(), err)
	}
	return Result{
		Output:      out,
		ContentType: renderer.ContentType(),
		Issues:      issues,
		Leftovers:   session.Leftovers(),
	}, nil
}

// RenderHTML renders with the vanilla renderer and returns the markup.
func RenderHTML(ctx context.Context, fragments []string, stored string, options ...Option) ([]byte, error) {
	result, err := Render(ctx, fragments, stored, append(options, WithRenderer("vanilla"))...)
	if err != nil {
		return nil, err
	}
	return result.Output, nil
}
