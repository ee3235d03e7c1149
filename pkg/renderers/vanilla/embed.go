package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/components/*.tmpl
var templatesFS embed.FS

// TemplatesFS exposes the built-in component templates.
func TemplatesFS() fs.FS {
	return templatesFS
}
