package http

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/mind-engage/ecoquiz/internal/errs"
	"github.com/mind-engage/ecoquiz/internal/metrics"
	"github.com/mind-engage/ecoquiz/internal/quizset"
	"github.com/mind-engage/ecoquiz/internal/sampler"
)

// SampleLimits bounds viewer sample sizes.
type SampleLimits struct {
	Default int
	Max     int
}

func (l SampleLimits) resolve(count *int) (int, error) {
	if count == nil {
		return l.Default, nil
	}
	if l.Max > 0 && *count > l.Max {
		return 0, errs.Invalid("count", "exceeds maximum")
	}
	return *count, nil
}

// POST /samples {count}  draws a fresh random sample for the viewer.
func RefreshSampleHandler(s *sampler.Surface, limits SampleLimits, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Count *int `json:"count" validate:"omitempty,gte=1"`
		}
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		count, err := limits.resolve(req.Count)
		if err != nil {
			writeError(w, err)
			return
		}
		v, err := s.Refresh(r.Context(), count)
		if err != nil {
			if errors.Is(err, sampler.ErrSuperseded) {
				m.SamplesSuperseded.Inc()
			}
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

// GET /samples/current
func CurrentSampleHandler(s *sampler.Surface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.Current())
	}
}

// POST /samples/show {quiz_set_id}  puts a saved set on the viewer.
func ShowQuizSetHandler(s *sampler.Surface, repo *quizset.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			QuizSetID string `json:"quiz_set_id" validate:"required"`
		}
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
		set, err := repo.Get(req.QuizSetID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s.Show(set.ID, set.Quizzes))
	}
}
