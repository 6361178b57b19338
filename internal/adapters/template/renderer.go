// Package template provides the template rendering adapter.
package template

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/dawret/framework-sdk-nrf/internal/ports"
	"github.com/dawret/framework-sdk-nrf/internal/templates"
)

// Renderer renders the registered templates with text/template plus the
// sprig function map. text/template is deterministic for the data shapes
// we feed it (structs and slices, never bare maps), which the downstream
// change detection depends on.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer creates a Renderer with all registered templates parsed.
func NewRenderer() (*Renderer, error) {
	parsed := make(map[string]*template.Template, len(templates.All))
	for name, src := range templates.All {
		tpl, err := template.New(name).Funcs(sprig.TxtFuncMap()).Parse(src)
		if err != nil {
			return nil, fmt.Errorf("parse template %q: %w", name, err)
		}
		parsed[name] = tpl
	}
	return &Renderer{templates: parsed}, nil
}

// Render renders the named template with data.
func (r *Renderer) Render(name string, data any) (string, error) {
	tpl, ok := r.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown template %q", name)
	}
	var b strings.Builder
	if err := tpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Ensure Renderer implements ports.TemplateRenderer.
var _ ports.TemplateRenderer = (*Renderer)(nil)
