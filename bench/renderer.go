package bench

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Template names known to the default renderer.
const (
	BenchmarkTemplate = "benchmark"
	IndexTemplate     = "index"
)

// ErrRender is returned (wrapped) when a page template cannot be rendered.
var ErrRender = errors.New("bench: render failed")

//go:embed templates/*.tmpl
var templates embed.FS

// RenderError reports a template that failed to render, typically because a
// placeholder had no value.
type RenderError struct {
	Template string
	Cause    error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	return fmt.Sprintf("bench: render %q: %v", e.Template, e.Cause)
}

// Unwrap returns the underlying template error.
func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches ErrRender.
func (e *RenderError) Is(target error) bool {
	return target == ErrRender
}

// IsRenderError reports whether err is or wraps a *RenderError.
func IsRenderError(err error) bool {
	var re *RenderError
	return errors.As(err, &re)
}

// Renderer executes named page templates. A missing variable is an error.
// A Renderer is safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer returns a renderer for the built-in page templates.
func NewRenderer() (*Renderer, error) {
	return ParseRenderer(templates, "templates/*.tmpl")
}

// MustNewRenderer is like NewRenderer but panics on error.
func MustNewRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

// ParseRenderer parses the templates matching patterns in fsys.
func ParseRenderer(fsys fs.FS, patterns ...string) (*Renderer, error) {
	tmpl, err := template.New("pages").
		Option("missingkey=error").
		Funcs(Funcs).
		ParseFS(fsys, patterns...)
	if err != nil {
		return nil, fmt.Errorf("bench: parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render executes the template name with vars.
func (r *Renderer) Render(name string, vars map[string]any) (string, error) {
	var b strings.Builder
	if err := r.tmpl.ExecuteTemplate(&b, name, vars); err != nil {
		return "", &RenderError{Template: name, Cause: err}
	}
	return b.String(), nil
}

// Funcs are the template helpers available to page templates.
var Funcs = template.FuncMap{
	"title":  title,
	"plural": Plural,
}

// title turns a strategy name into a heading: "script-preload" becomes
// "Script Preload". Casers are stateful, so one is created per call.
func title(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "-", " "))
}
