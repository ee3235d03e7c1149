package tui

// Theme captures optional prefixes the renderer applies to driver messages.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithNoAnswerLabel overrides the radio choice that clears the selection.
func WithNoAnswerLabel(label string) Option {
	return func(r *Renderer) {
		if label != "" {
			r.noAnswer = label
		}
	}
}
