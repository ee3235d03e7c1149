package render

import theme "github.com/goliatone/go-theme"

// RenderOptions carry per-render data that does not belong to the form.
type RenderOptions struct {
	// ReadOnly renders every control disabled, mirroring a read-only host
	// field.
	ReadOnly bool
	// Notices are non-blocking messages (usually answer.Issues.Messages)
	// shown above the fields.
	Notices []string
	// Theme selects alternate partials and CSS variables. Renderers that do
	// not support theming ignore it.
	Theme *theme.RendererConfig
}
