package notify

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

const (
	DefaultToggleTemplate = `Average checker {{ if .Enabled }}on{{ else }}off{{ end }}!`
	DefaultPriceTemplate  = `{{ .Name }} marketplace average is {{ .Average }} coins!`
)

// templateFuncs provides utility functions for templates.
var templateFuncs = sprig.TxtFuncMap()

// ToggleData is available to the toggle template.
type ToggleData struct {
	Enabled bool
}

// PriceData is available to the price template.
type PriceData struct {
	Name    string
	Kind    string
	Average int32
	Offers  int32
}

// Formatter renders the user-visible texts.
type Formatter struct {
	toggle *template.Template
	price  *template.Template
}

// NewFormatter parses the toggle and price templates. Empty strings select the defaults.
func NewFormatter(toggleTmpl, priceTmpl string) (*Formatter, error) {
	if toggleTmpl == "" {
		toggleTmpl = DefaultToggleTemplate
	}
	if priceTmpl == "" {
		priceTmpl = DefaultPriceTemplate
	}

	toggle, err := parseTemplate("toggle", toggleTmpl)
	if err != nil {
		return nil, err
	}
	price, err := parseTemplate("price", priceTmpl)
	if err != nil {
		return nil, err
	}

	return &Formatter{toggle: toggle, price: price}, nil
}

func (f *Formatter) Toggle(enabled bool) (string, error) {
	return expand(f.toggle, ToggleData{Enabled: enabled})
}

func (f *Formatter) Price(data PriceData) (string, error) {
	return expand(f.price, data)
}

func parseTemplate(name, tmplStr string) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(templateFuncs).Option("missingkey=error").Parse(tmplStr)
	if err != nil {
		return nil, fmt.Errorf("parsing %s template: %w", name, err)
	}
	return tmpl, nil
}

func expand(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	err := tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("executing %s template: %w", tmpl.Name(), err)
	}

	return buf.String(), nil
}
