// Package web holds the HTML templates compiled into the server binary.
package web

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates
var templateFS embed.FS

// ISOTimeLayout is how repository timestamps are shown
const ISOTimeLayout = "2006-01-02T15:04:05Z"

var funcs = template.FuncMap{
	"isoTime": func(t time.Time) string {
		return t.UTC().Format(ISOTimeLayout)
	},
}

// Templates parses every page and layout. Pages are looked up by their {{define}} name.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/layouts/*.html", "templates/*.html")
}
