package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/ecoquiz/internal/bank"
	"github.com/mind-engage/ecoquiz/internal/metrics"
	"github.com/mind-engage/ecoquiz/internal/quizset"
	"github.com/mind-engage/ecoquiz/internal/sampler"
	"github.com/mind-engage/ecoquiz/internal/session"
)

// SessionDeps groups what starting a session needs.
type SessionDeps struct {
	Repo     *quizset.Repository
	Catalog  *bank.Catalog
	Sampler  *sampler.Sampler
	Sessions *session.Registry
	Metrics  *metrics.Metrics
	Limits   SampleLimits
}

// POST /sessions {quiz_set_id, count}. quiz_set_id "random" draws a transient
// set from the scored bank. Sets with nothing playable are rejected here,
// before any session exists.
func StartSessionHandler(d SessionDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			QuizSetID string `json:"quiz_set_id" validate:"required"`
			Count     *int   `json:"count" validate:"omitempty,gte=1"`
		}
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}

		var set quizset.QuizSet
		if req.QuizSetID == sampler.RandomSetID {
			count, err := d.Limits.resolve(req.Count)
			if err != nil {
				writeError(w, err)
				return
			}
			set = quizset.NewRandom(d.Sampler, d.Catalog.Items(bank.KindScored), count, time.Now())
		} else {
			var err error
			if set, err = d.Repo.Get(req.QuizSetID); err != nil {
				writeError(w, err)
				return
			}
		}

		playable, err := set.Playable()
		if err != nil {
			writeError(w, err)
			return
		}
		snap, err := d.Sessions.Start(playable)
		if err != nil {
			writeError(w, err)
			return
		}
		d.Metrics.ActiveSessions.Set(float64(d.Sessions.Len()))
		writeJSON(w, http.StatusCreated, snap)
	}
}

// GET /sessions/{id}
func GetSessionHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondSnapshot(w)(reg.Get(chi.URLParam(r, "id")))
	}
}

// POST /sessions/{id}/select {index}
func SelectAnswerHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Index *int `json:"index" validate:"required"`
		}
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		respondSnapshot(w)(reg.Select(chi.URLParam(r, "id"), *req.Index))
	}
}

// POST /sessions/{id}/submit
func SubmitAnswerHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondSnapshot(w)(reg.Submit(chi.URLParam(r, "id")))
	}
}

// POST /sessions/{id}/advance
func AdvanceHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondSnapshot(w)(reg.Advance(chi.URLParam(r, "id")))
	}
}

// POST /sessions/{id}/restart
func RestartHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondSnapshot(w)(reg.Restart(chi.URLParam(r, "id")))
	}
}

// GET /sessions/{id}/report
func ReportHandler(reg *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep, err := reg.Report(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rep)
	}
}

// DELETE /sessions/{id}
func AbandonHandler(reg *session.Registry, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reg.Abandon(chi.URLParam(r, "id"))
		m.ActiveSessions.Set(float64(reg.Len()))
		w.WriteHeader(http.StatusNoContent)
	}
}

func respondSnapshot(w http.ResponseWriter) func(session.Snapshot, error) {
	return func(s session.Snapshot, err error) {
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s)
	}
}
