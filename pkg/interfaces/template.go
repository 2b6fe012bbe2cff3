package interfaces

import "io"

// TemplateRenderer resolves template identifiers to rendered output. The
// engine behind the identifier is opaque to the build pipeline; hosts bind
// whatever template system they use when constructing the module.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
}
