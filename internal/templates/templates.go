package templates

import (
	"embed"
	"html/template"
	"strings"
	"time"
)

//go:embed *.html
var files embed.FS

var funcs = template.FuncMap{
	"join": strings.Join,
	"date": func(t time.Time) string { return t.Format("Jan 2, 2006") },
	"contains": func(list []string, item string) bool {
		for _, s := range list {
			if s == item {
				return true
			}
		}
		return false
	},
}

// Parse loads every page and partial. Pages are addressed by file name.
func Parse() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(files, "*.html")
}
