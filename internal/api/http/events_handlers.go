package http

import (
	"net/http"
	"strconv"

	syncx "github.com/mind-engage/ecoquiz/internal/sync"
)

// GET /events?type=...&limit=...
func ListEventsHandler(j syncx.Journal) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		events, err := j.List(r.Context(), r.URL.Query().Get("type"), limit)
		if err != nil {
			writeError(w, err)
			return
		}
		if events == nil {
			events = []syncx.Event{}
		}
		writeJSON(w, http.StatusOK, events)
	}
}
