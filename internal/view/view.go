// Package view renders the portal's server-side HTML templates.
package view

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"cstdportal/internal/classifier"
	"cstdportal/internal/model"
	"cstdportal/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() *Renderer {
	funcs := template.FuncMap{
		"add1": func(i int) int { return i + 1 },
	}
	return &Renderer{
		templates: template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")),
	}
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// Data is the payload handed to every page template.
type Data struct {
	Session model.Session
	View    service.View
	Notice  string

	// auth dialog state
	Mode    string
	Message string
	IsError bool

	// admin listing state
	Files        []classifier.RemoteFileEntry
	ListingError string
}
