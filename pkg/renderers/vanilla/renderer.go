package vanilla

import (
	"context"
	"fmt"
	"html"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-answerform/pkg/render"
	rendertemplate "github.com/goliatone/go-answerform/pkg/render/template"
	gotemplate "github.com/goliatone/go-answerform/pkg/render/template/gotemplate"
	"github.com/goliatone/go-answerform/pkg/renderers/vanilla/components"
	"github.com/microcosm-cc/bluemonday"
)

// RootClass is the class list of the outer container.
const RootClass = "answerform-outer fcontainer clearfix"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	registry         *components.Registry
	labelPolicy      *bluemonday.Policy
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry replaces the built-in component registry.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithLabelPolicy overrides the sanitiser applied to labels and radio option
// text.
func WithLabelPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.labelPolicy = policy
		}
	}
}

// Renderer produces server-side HTML for an answer form.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	registry  *components.Registry
	policy    *bluemonday.Policy
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.registry == nil {
		cfg.registry = components.NewDefaultRegistry()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates: renderer,
		registry:  cfg.registry,
		policy:    cfg.labelPolicy,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the root container: notices first, then one group per
// fragment in document order.
func (r *Renderer) Render(ctx context.Context, form render.Form, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	fields := &componentRenderer{
		templates: r.templates,
		registry:  r.registry,
		policy:    r.policy,
		readOnly:  options.ReadOnly,
	}
	if options.Theme != nil {
		fields.partials = options.Theme.Partials
	}

	var b strings.Builder
	b.WriteString(openRoot(form, options))

	if len(options.Notices) > 0 {
		b.WriteString(`<div class="answerform-notices" role="status">` + "\n")
		for _, notice := range options.Notices {
			fmt.Fprintf(&b, `<p class="answerform-notice">%s</p>`+"\n", html.EscapeString(notice))
		}
		b.WriteString("</div>\n")
	}

	inputNames := InputNames(form.Fields())
	index := 0
	for _, group := range form.Groups {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fmt.Fprintf(&b, `<div class="answerform-group" data-fragment="%d" data-row="%t">`+"\n", group.Fragment, group.Row)
		for _, field := range group.Fields {
			markup, err := fields.render(field, controlID(form.ID, index), inputNames[index])
			if err != nil {
				return nil, fmt.Errorf("vanilla renderer: %w", err)
			}
			b.WriteString(markup)
			b.WriteString("\n")
			index++
		}
		b.WriteString("</div>\n")
	}

	b.WriteString("</div>\n")
	return []byte(b.String()), nil
}

func openRoot(form render.Form, options render.RenderOptions) string {
	var b strings.Builder
	b.WriteString("<div")
	if form.ID != "" {
		fmt.Fprintf(&b, ` id="%s"`, html.EscapeString(form.ID))
	}
	fmt.Fprintf(&b, ` class="%s"`, RootClass)
	fmt.Fprintf(&b, ` data-leftovers="%s"`, html.EscapeString(form.Leftovers.JSON()))
	if options.ReadOnly {
		b.WriteString(` data-readonly="true"`)
	}
	if cfg := options.Theme; cfg != nil {
		if name := strings.TrimSpace(cfg.Theme); name != "" {
			fmt.Fprintf(&b, ` data-theme="%s"`, html.EscapeString(name))
		}
		if variant := strings.TrimSpace(cfg.Variant); variant != "" {
			fmt.Fprintf(&b, ` data-theme-variant="%s"`, html.EscapeString(variant))
		}
		if style := cssVarsStyle(cfg.CSSVars); style != "" {
			fmt.Fprintf(&b, ` style="%s"`, html.EscapeString(style))
		}
	}
	b.WriteString(">\n")
	return b.String()
}
