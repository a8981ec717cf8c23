package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/mind-engage/ecoquiz/internal/bank"
	"github.com/mind-engage/ecoquiz/internal/errs"
	"github.com/mind-engage/ecoquiz/internal/metrics"
	"github.com/mind-engage/ecoquiz/internal/quizset"
	"github.com/mind-engage/ecoquiz/internal/sampler"
	syncx "github.com/mind-engage/ecoquiz/internal/sync"
)

// QuizSetDeps groups what the quiz set handlers touch besides the repository.
type QuizSetDeps struct {
	Repo    *quizset.Repository
	Surface *sampler.Surface
	Journal syncx.Journal
	Metrics *metrics.Metrics
	Log     logrus.FieldLogger
	Limits  SampleLimits
}

// POST /quizsets {name, quizzes} or {name, from_sample:true}
func CreateQuizSetHandler(d QuizSetDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name       string          `json:"name" validate:"max=120"`
			Quizzes    []bank.QuizItem `json:"quizzes"`
			FromSample bool            `json:"from_sample"`
		}
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		quizzes := req.Quizzes
		if req.FromSample {
			if len(quizzes) > 0 {
				writeError(w, errs.Invalid("quizzes", "must be empty with from_sample"))
				return
			}
			quizzes = d.Surface.Current().Quizzes
		}
		set, err := d.Repo.Create(req.Name, quizzes)
		if err != nil {
			writeError(w, err)
			return
		}
		d.Metrics.QuizSets.Set(float64(d.Repo.Len()))
		record(r, d.Journal, d.Log, syncx.TypeQuizSetCreated, set.ID, set.Summary())
		writeJSON(w, http.StatusCreated, set)
	}
}

// GET /quizsets[?playable=true]
func ListQuizSetsHandler(repo *quizset.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sets := repo.List()
		if r.URL.Query().Get("playable") == "true" {
			writeJSON(w, http.StatusOK, quizset.PlayableSets(sets))
			return
		}
		writeJSON(w, http.StatusOK, sets)
	}
}

// GET /quizsets/{id}
func GetQuizSetHandler(repo *quizset.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		set, err := repo.Get(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, set)
	}
}

// DELETE /quizsets/{id}  always 204. When the set was on the viewer, the
// viewer falls back to a fresh random sample.
func DeleteQuizSetHandler(d QuizSetDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !d.Repo.Delete(id) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		d.Metrics.QuizSets.Set(float64(d.Repo.Len()))
		record(r, d.Journal, d.Log, syncx.TypeQuizSetDeleted, id, map[string]string{"id": id})
		if _, err := d.Surface.ForgetSet(r.Context(), id, d.Limits.Default); err != nil {
			d.Log.WithError(err).WithField("quizset_id", id).Warn("viewer fallback sample failed")
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// record appends to the journal; a journal failure never fails the request.
func record(r *http.Request, j syncx.Journal, log logrus.FieldLogger, typ, key string, payload any) {
	if err := j.Record(r.Context(), typ, key, payload); err != nil {
		log.WithError(err).WithFields(logrus.Fields{"type": typ, "key": key}).Error("journal append failed")
	}
}
