package web

import (
	"encoding/json"
	"net/http"

	"github.com/hpungsan/termcard/internal/ops"
)

// Handlers contains HTTP route handlers for the web UI and JSON API.
type Handlers struct {
	gen      *ops.Generator
	renderer *Renderer
}

// HandleIndex handles GET /, the username/theme form.
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, r, "index", IndexPageData{
		PageData: PageData{
			Title:   "termcard",
			Version: h.renderer.version,
		},
	})
}

// HandleCard handles GET /card: generate a card and render the HTML
// result page with the command, a script preview, and a README preview.
func (h *Handlers) HandleCard(w http.ResponseWriter, r *http.Request) {
	out, err := h.gen.Generate(r.Context(), ops.GenerateInput{
		Username: r.URL.Query().Get("user"),
		Theme:    r.URL.Query().Get("theme"),
		Upload:   true,
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, r, "card", CardPageData{
		PageData: PageData{
			Title:   out.Username + " - termcard",
			Version: h.renderer.version,
		},
		Card:          out,
		ReadmePreview: renderMarkdown(out.Readme),
		HasReadme:     out.Readme != "",
	})
}

// HandleAPICard handles GET /api/card: generate a card and return the
// JSON payload: username, theme, profile record, script, command, url.
func (h *Handlers) HandleAPICard(w http.ResponseWriter, r *http.Request) {
	out, err := h.gen.Generate(r.Context(), ops.GenerateInput{
		Username: r.URL.Query().Get("user"),
		Theme:    r.URL.Query().Get("theme"),
		Upload:   true,
	})
	if err != nil {
		h.renderer.renderJSONError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}
