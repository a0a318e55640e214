package http

import (
	"html/template"
	"io"

	"onboarding-service/internal/web"

	"github.com/labstack/echo/v4"
)

type TemplateRenderer struct{ t *template.Template }

func NewRenderer() (*TemplateRenderer, error) {
	t, err := template.ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &TemplateRenderer{t: t}, nil
}

func (r *TemplateRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.t.ExecuteTemplate(w, name, data)
}
