// Package pages holds the server-rendered dashboard templates.
package pages

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/*.tmpl
var files embed.FS

var funcs = template.FuncMap{
	"lower": strings.ToLower,
	"stepDone": func(current, step int) bool {
		return current > step
	},
}

// Templates parses every page; each is addressed by its file name, e.g. "contract_detail.tmpl".
func Templates() (*template.Template, error) {
	return template.New("pages").Funcs(funcs).ParseFS(files, "templates/*.tmpl")
}
