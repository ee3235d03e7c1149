package answerform

import (
	"io/fs"

	"github.com/goliatone/go-answerform/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in vanilla component templates so
// callers can copy or override them without importing the renderer package.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}
