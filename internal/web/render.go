package web

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/hpungsan/termcard/internal/errors"
	"github.com/hpungsan/termcard/internal/ops"
	"github.com/hpungsan/termcard/internal/script"
)

// PageData contains common fields used across all page templates.
type PageData struct {
	Title   string
	Version string
}

// IndexPageData is the template data for the form page.
type IndexPageData struct {
	PageData
}

// CardPageData is the template data for the card result page.
type CardPageData struct {
	PageData
	Card          *ops.GenerateOutput
	ReadmePreview template.HTML
	HasReadme     bool
}

// ErrorPageData is the template data for the error page.
type ErrorPageData struct {
	PageData
	StatusCode int
	Message    string
}

// Renderer manages template parsing and rendering.
type Renderer struct {
	templates map[string]*template.Template
	version   string
}

// NewRenderer creates a Renderer by parsing templates from the given FS.
func NewRenderer(templateFS fs.FS, version string) *Renderer {
	funcMap := template.FuncMap{
		"themes": script.Themes,
	}

	layoutTmpl := template.Must(template.New("layout").Funcs(funcMap).ParseFS(templateFS, "layout.html"))

	pages := map[string]string{
		"index": "index.html",
		"card":  "card.html",
		"error": "error.html",
	}

	templates := make(map[string]*template.Template, len(pages))
	for name, file := range pages {
		clone := template.Must(layoutTmpl.Clone())
		templates[name] = template.Must(clone.ParseFS(templateFS, file))
	}

	return &Renderer{templates: templates, version: version}
}

// renderPage renders a full page through the layout template.
func (r *Renderer) renderPage(w http.ResponseWriter, _ *http.Request, name string, data any) {
	tmpl, ok := r.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Printf("render %s: %v", name, err)
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// renderError renders an error response with content negotiation.
func (r *Renderer) renderError(w http.ResponseWriter, req *http.Request, err error) {
	cErr := asCardError(err)

	if strings.Contains(req.Header.Get("Accept"), "application/json") {
		r.renderJSONError(w, cErr)
		return
	}

	tmpl, ok := r.templates["error"]
	if !ok {
		http.Error(w, cErr.Message, cErr.Status)
		return
	}

	var buf bytes.Buffer
	data := ErrorPageData{
		PageData:   PageData{Title: "Error", Version: r.version},
		StatusCode: cErr.Status,
		Message:    cErr.Message,
	}
	if execErr := tmpl.ExecuteTemplate(&buf, "layout", data); execErr != nil {
		http.Error(w, cErr.Message, cErr.Status)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(cErr.Status)
	_, _ = buf.WriteTo(w)
}

// renderJSONError writes a structured JSON error body.
func (r *Renderer) renderJSONError(w http.ResponseWriter, err error) {
	cErr := asCardError(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(cErr.Status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"code":    string(cErr.Code),
			"message": cErr.Message,
			"status":  cErr.Status,
		},
	})
}

// asCardError converts any error into a CardError; unknown errors become
// generic 500s so nothing raw leaks to the client.
func asCardError(err error) *errors.CardError {
	var cErr *errors.CardError
	if !stderrors.As(err, &cErr) {
		cErr = errors.NewInternal(fmt.Errorf("request failed"))
	}
	return cErr
}

// renderMarkdown converts markdown text to HTML using goldmark.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}
