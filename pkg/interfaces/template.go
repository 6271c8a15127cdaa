package interfaces

import (
	"io"
)

// TemplateRenderer renders a named page template. When writers are given the
// output is streamed to them as well.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
