package renderer

import (
	_ "embed"
)

//go:embed templates/index.html.tmpl
var indexTemplate string

//go:embed templates/run.html.tmpl
var runTemplate string

//go:embed templates/style.css
var stylesheet string

// getTemplate returns the named template content.
func getTemplate(name string) (string, bool) {
	templates := map[string]string{
		"index.html": indexTemplate,
		"run.html":   runTemplate,
	}

	tmpl, ok := templates[name]
	return tmpl, ok
}
