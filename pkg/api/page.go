package api

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/platinummonkey/advocates/pkg/advocates"
	"github.com/platinummonkey/advocates/pkg/httputil"
	"github.com/platinummonkey/advocates/pkg/observability"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("index.html.tmpl").
		Funcs(template.FuncMap{
			"phone": advocates.FormatPhone,
			"join":  func(s advocates.Specialties) string { return strings.Join(s, ", ") },
		}).
		ParseFS(templateFS, "templates/index.html.tmpl"),
)

type pageData struct {
	Query     string
	Advocates []advocates.Advocate
}

// indexPage handles GET /, rendering the result table server-side
func (s *Server) indexPage(w http.ResponseWriter, r *http.Request) {
	q := httputil.ParseQueryString(r, "q", "")

	res, err := s.searcher.Search(r.Context(), q)
	if err != nil {
		observability.FromContext(r.Context()).WithError(err).Error("advocate search failed")
		http.Error(w, "failed to fetch advocates", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, pageData{Query: q, Advocates: res.Advocates}); err != nil {
		observability.FromContext(r.Context()).WithError(err).Error("failed to render page")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
