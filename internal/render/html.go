package render

import (
	"bytes"
	_ "embed"
	"html/template"
)

//go:embed templates/newsletter.html.tmpl
var newsletterTemplate string

var htmlTmpl = template.Must(template.New("newsletter").Parse(newsletterTemplate))

// HTML renders the issue through the embedded newsletter template. All
// content is escaped; Mermaid code blocks are read by the browser as
// text, so escaping does not affect diagram rendering.
func (n *Newsletter) HTML() ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
