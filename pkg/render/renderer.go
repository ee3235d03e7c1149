package render

import (
	"context"

	"github.com/goliatone/go-answerform/pkg/answer"
)

// Renderer presents a built answer form. HTML renderers return markup for the
// root container; interactive renderers may drive the controls and return
// the resulting stored answer.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form Form, options RenderOptions) ([]byte, error)
}

// Group is one fragment's worth of rendered fields.
type Group struct {
	Fragment int
	Row      bool
	Fields   []answer.RenderedField
}

// Form is the renderer-facing view of a Session.
type Form struct {
	// ID identifies the root container; unique per widget instance.
	ID        string
	Groups    []Group
	Leftovers answer.LeftoverMap
}

// NewForm groups the session's fields by their source fragment, preserving
// document order. Rows without fields still produce an empty group.
func NewForm(id string, session *answer.Session) Form {
	form := Form{ID: id}
	if session == nil {
		return form
	}
	form.Leftovers = session.Leftovers()

	fields := session.Fields()
	next := 0
	for _, group := range session.Table().Groups {
		out := Group{Fragment: group.Fragment, Row: group.Row}
		for next < len(fields) && fields[next].Fragment == group.Fragment {
			out.Fields = append(out.Fields, fields[next])
			next++
		}
		form.Groups = append(form.Groups, out)
	}
	return form
}

// Fields flattens the groups back into document order.
func (f Form) Fields() []answer.RenderedField {
	var out []answer.RenderedField
	for _, group := range f.Groups {
		out = append(out, group.Fields...)
	}
	return out
}
