package template

import (
	"io"
)

// TemplateRenderer executes a named template from its bundle into w.
type TemplateRenderer interface {
	RenderTemplate(w io.Writer, name string, data any) error
}
