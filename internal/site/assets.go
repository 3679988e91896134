package site

import (
	"embed"
	"html/template"
)

//go:embed templates/page.tmpl
var templates embed.FS

//go:embed templates/main.css
var mainCSS []byte

//go:embed templates/main.js
var mainJS []byte

//go:embed templates/search.js
var searchJS []byte

var pageTemplate = template.Must(template.ParseFS(templates, "templates/page.tmpl")).Lookup("page.tmpl")
