package views

import (
	"embed"
	"html/template"
)

//go:embed *.tmpl
var files embed.FS

const PlannerPage = "planner.tmpl"

func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(files, "*.tmpl"))
}
