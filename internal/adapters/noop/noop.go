package noop

import (
	"io"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Template returns a template renderer that bypasses rendering and returns
// the template name. Hosts bind a real engine when they want output.
func Template() interfaces.TemplateRenderer {
	return templateAdapter{}
}

type templateAdapter struct{}

func (templateAdapter) Render(name string, _ any, out ...io.Writer) (string, error) {
	return writeThrough(name, out)
}

func (templateAdapter) RenderTemplate(name string, _ any, out ...io.Writer) (string, error) {
	return writeThrough(name, out)
}

func (templateAdapter) RenderString(templateContent string, _ any, out ...io.Writer) (string, error) {
	return writeThrough(templateContent, out)
}

func writeThrough(value string, out []io.Writer) (string, error) {
	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := io.WriteString(w, value); err != nil {
			return "", err
		}
	}
	return value, nil
}
