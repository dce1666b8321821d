package api

import (
	"net/http"

	"github.com/platinummonkey/advocates/pkg/httputil"
	"github.com/platinummonkey/advocates/pkg/observability"
)

// listAdvocates handles GET /api/advocates
// Query parameters:
//   - q: free text, a phone number, or empty for the default listing
func (s *Server) listAdvocates(w http.ResponseWriter, r *http.Request) {
	q := httputil.ParseQueryString(r, "q", "")

	res, err := s.searcher.Search(r.Context(), q)
	if err != nil {
		observability.FromContext(r.Context()).WithError(err).Error("advocate search failed")
		httputil.WriteErrorMessage(w, http.StatusInternalServerError, "failed to fetch advocates")
		return
	}

	httputil.WriteData(w, res.Advocates)
}
