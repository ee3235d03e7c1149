package tui

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-answerform/pkg/answer"
	"github.com/goliatone/go-answerform/pkg/render"
	"github.com/goliatone/go-answerform/pkg/spec"
)

const defaultNoAnswer = "(no answer)"

// Renderer implements render.Renderer for terminal-driven sessions. It walks
// the fields in document order, prompts for each named control and returns the
// serialized answer.
type Renderer struct {
	driver   PromptDriver
	theme    Theme
	noAnswer string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer using the survey driver unless one is
// supplied.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{noAnswer: defaultNoAnswer}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return "application/json"
}

// Render prints notices, prompts for every named field unless options are
// read-only and returns the stored answer of the resulting control state.
// Unnamed fields are never prompted since they are not serialized.
func (r *Renderer) Render(ctx context.Context, form render.Form, options render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	for _, notice := range options.Notices {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+notice); err != nil {
			return nil, err
		}
	}

	fields := form.Fields()
	if !options.ReadOnly {
		for _, field := range fields {
			if field.Control == nil || field.Spec.Name == "" {
				continue
			}
			if err := r.promptField(ctx, field); err != nil {
				return nil, err
			}
		}
	}

	stored, issues := answer.Serialize(fields)
	for _, conflict := range issues.Conflicts {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+conflict.Error()); err != nil {
			return nil, err
		}
	}
	if r.theme.InfoPrefix != "" {
		if err := r.driver.Info(ctx, r.theme.InfoPrefix+stored); err != nil {
			return nil, err
		}
	}
	return []byte(stored), nil
}

func (r *Renderer) promptField(ctx context.Context, field answer.RenderedField) error {
	message := displayLabel(field)
	current := field.Value()

	switch field.Spec.Kind {
	case spec.KindTextarea:
		text, err := r.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: current.Text})
		if err != nil {
			return fmt.Errorf("tui: prompt %q: %w", field.Spec.Name, err)
		}
		field.SetValue(answer.TextValue(text))
	case spec.KindCheckbox:
		checked, err := r.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: current.Checked})
		if err != nil {
			return fmt.Errorf("tui: prompt %q: %w", field.Spec.Name, err)
		}
		field.SetValue(answer.CheckedValue(checked))
	case spec.KindRadio:
		choices := make([]string, 0, len(field.Spec.Options)+1)
		for _, option := range field.Spec.Options {
			choices = append(choices, plainText(option))
		}
		choices = append(choices, r.noAnswer)
		def := len(choices) - 1
		if current.Choice > 0 && current.Choice <= len(field.Spec.Options) {
			def = current.Choice - 1
		}
		idx, err := r.driver.Select(ctx, SelectConfig{Message: message, Options: choices, DefaultIndex: def})
		if err != nil {
			return fmt.Errorf("tui: prompt %q: %w", field.Spec.Name, err)
		}
		choice := idx + 1
		if idx < 0 || idx >= len(field.Spec.Options) {
			choice = 0
		}
		field.SetValue(answer.ChoiceValue(choice))
	default:
		text, err := r.driver.Input(ctx, InputConfig{Message: message, Default: current.Text})
		if err != nil {
			return fmt.Errorf("tui: prompt %q: %w", field.Spec.Name, err)
		}
		field.SetValue(answer.TextValue(text))
	}
	return nil
}

func displayLabel(field answer.RenderedField) string {
	if label := plainText(field.Spec.Label); label != "" {
		return label
	}
	return spec.DefaultLabel(field.Spec.Name)
}

var (
	plainPolicyOnce sync.Once
	plainPolicy     *bluemonday.Policy
)

// plainText strips markup from labels meant for an HTML surface.
func plainText(raw string) string {
	plainPolicyOnce.Do(func() {
		plainPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(plainPolicy.Sanitize(raw)))
}
