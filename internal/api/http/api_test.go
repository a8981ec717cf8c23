package http

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authmw "github.com/mind-engage/ecoquiz/internal/auth/middleware"
	"github.com/mind-engage/ecoquiz/internal/bank"
	"github.com/mind-engage/ecoquiz/internal/db"
	"github.com/mind-engage/ecoquiz/internal/grading"
	"github.com/mind-engage/ecoquiz/internal/metrics"
	"github.com/mind-engage/ecoquiz/internal/quizset"
	"github.com/mind-engage/ecoquiz/internal/sampler"
	"github.com/mind-engage/ecoquiz/internal/session"
	syncx "github.com/mind-engage/ecoquiz/internal/sync"
)

type harness struct {
	t      *testing.T
	srv    *httptest.Server
	auth   *authmw.AuthService
	token  string
	deps   Deps
	events *syncx.EventRepo
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	log, _ := test.NewNullLogger()

	h, err := db.Open(context.Background(), db.DriverSQLite, fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })
	journal := syncx.NewEventRepo(h, "test")

	catalog := bank.NewCatalog()
	smp := sampler.New(nil)
	d := Deps{
		Catalog:  catalog,
		Sampler:  smp,
		Surface:  sampler.NewSurface(sampler.CatalogFetcher(catalog, bank.KindDisplay, smp), log),
		Repo:     quizset.NewRepository(log),
		Sessions: session.NewRegistry(grading.NewDefaultGrader(), log),
		Journal:  journal,
		Metrics:  metrics.New("ecoquiz_test"),
		Log:      log,
		Limits:   SampleLimits{Default: 5, Max: 20},
	}
	d.Sessions.OnComplete(func(s session.Snapshot, r session.Report) {
		_ = journal.Record(context.Background(), syncx.TypeSessionCompleted, s.SessionID, r)
	})

	a := authmw.NewAuthService("test-secret")
	r := chi.NewRouter()
	r.Group(func(pr chi.Router) {
		pr.Use(authmw.JWTMiddleware(a))
		Mount(pr, d)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	tok, err := a.IssueJWT("kim", "player")
	require.NoError(t, err)
	return &harness{t: t, srv: srv, auth: a, token: tok, deps: d, events: journal}
}

func (h *harness) do(method, path string, body any, out any) int {
	h.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(h.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, h.srv.URL+path, &buf)
	require.NoError(h.t, err)
	req.Header.Set("Authorization", "Bearer "+h.token)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(h.t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 && resp.StatusCode != http.StatusNoContent {
		require.NoError(h.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestBankEndpoint(t *testing.T) {
	h := newHarness(t)
	var out struct {
		Catalog string          `json:"catalog"`
		Quizzes []bank.QuizItem `json:"quizzes"`
	}
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/bank", nil, &out))
	assert.Equal(t, "scored", out.Catalog)
	assert.Len(t, out.Quizzes, 10)

	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodGet, "/bank?catalog=nope", nil, nil))
	assert.Equal(t, http.StatusForbidden, h.do(http.MethodPost, "/bank/reload", nil, nil))
}

func TestCurateAndPlayFlow(t *testing.T) {
	h := newHarness(t)

	var view sampler.View
	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/samples", map[string]int{"count": 3}, &view))
	assert.Equal(t, sampler.RandomSetID, view.SetID)
	require.Len(t, view.Quizzes, 3)

	var set quizset.QuizSet
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/quizsets", map[string]any{"name": "Viewer pick", "from_sample": true}, &set))
	assert.Equal(t, view.Quizzes, set.Quizzes)

	var sets []quizset.QuizSet
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/quizsets", nil, &sets))
	require.Len(t, sets, 1)

	scored := bank.NewCatalog().Items(bank.KindScored)[:4]
	var played quizset.QuizSet
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/quizsets", map[string]any{"name": "Scored", "quizzes": scored}, &played))

	var snap session.Snapshot
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/sessions", map[string]string{"quiz_set_id": played.ID}, &snap))
	id := snap.SessionID
	assert.Equal(t, 4, snap.Total)
	assert.Nil(t, snap.Question.CorrectAnswer)

	assert.Equal(t, http.StatusConflict, h.do(http.MethodPost, "/sessions/"+id+"/submit", nil, nil))
	assert.Equal(t, http.StatusConflict, h.do(http.MethodGet, "/sessions/"+id+"/report", nil, nil))

	for i, q := range scored {
		require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/sessions/"+id+"/select", map[string]int{"index": *q.CorrectAnswer}, &snap))
		require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/sessions/"+id+"/submit", nil, &snap))
		assert.Equal(t, i+1, snap.Score)
		assert.Equal(t, http.StatusConflict, h.do(http.MethodPost, "/sessions/"+id+"/submit", nil, nil))
		require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/sessions/"+id+"/advance", nil, &snap))
	}
	assert.Equal(t, session.PhaseCompleted, snap.Phase)

	var rep session.Report
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/sessions/"+id+"/report", nil, &rep))
	assert.Equal(t, session.Report{Score: 4, Total: 4, Percentage: 100, Grade: session.GradeExcellent}, rep)

	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/sessions/"+id+"/restart", nil, &snap))
	assert.Equal(t, session.PhaseSelecting, snap.Phase)
	assert.Zero(t, snap.Score)

	assert.Equal(t, http.StatusNoContent, h.do(http.MethodDelete, "/sessions/"+id, nil, nil))
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/sessions/"+id, nil, nil))

	done, err := h.events.List(context.Background(), syncx.TypeSessionCompleted, 10)
	require.NoError(t, err)
	require.Len(t, done, 1)
	created, err := h.events.List(context.Background(), syncx.TypeQuizSetCreated, 10)
	require.NoError(t, err)
	assert.Len(t, created, 2)
}

func TestCreateValidation(t *testing.T) {
	h := newHarness(t)
	one := bank.NewCatalog().Items(bank.KindScored)[:1]
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/quizsets", map[string]any{"name": "", "quizzes": one}, nil))
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/quizsets", map[string]any{"name": "x"}, nil))
	twice := []bank.QuizItem{one[0], one[0]}
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/quizsets", map[string]any{"name": "Twice", "quizzes": twice}, nil))
	assert.Equal(t, 0, h.deps.Repo.Len())
}

func TestIneligibleSetIsRejectedBeforePlay(t *testing.T) {
	h := newHarness(t)
	var set quizset.QuizSet
	short := []bank.QuizItem{{ID: "s1", Question: "Name one way to save water."}}
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/quizsets", map[string]any{"name": "Short", "quizzes": short}, &set))

	assert.Equal(t, http.StatusUnprocessableEntity, h.do(http.MethodPost, "/sessions", map[string]string{"quiz_set_id": set.ID}, nil))
	assert.Equal(t, 0, h.deps.Sessions.Len())

	var playable []quizset.PlayableSet
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/quizsets?playable=true", nil, &playable))
	assert.Empty(t, playable)
}

func TestRandomSession(t *testing.T) {
	h := newHarness(t)
	var snap session.Snapshot
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/sessions", map[string]any{"quiz_set_id": "random"}, &snap))
	assert.Equal(t, 5, snap.Total)
	assert.Equal(t, sampler.RandomSetID, snap.QuizSetID)
	assert.Equal(t, 0, h.deps.Repo.Len())

	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/sessions", map[string]any{"quiz_set_id": "random", "count": 99}, nil))
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodPost, "/sessions", map[string]any{"quiz_set_id": "missing"}, nil))
}

func TestDeleteShownSetFallsBackToSample(t *testing.T) {
	h := newHarness(t)
	var set quizset.QuizSet
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/quizsets", map[string]any{"name": "Shown", "quizzes": bank.NewCatalog().Items(bank.KindScored)[:2]}, &set))

	var view sampler.View
	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/samples/show", map[string]string{"quiz_set_id": set.ID}, &view))
	assert.Equal(t, set.ID, view.SetID)

	assert.Equal(t, http.StatusNoContent, h.do(http.MethodDelete, "/quizsets/"+set.ID, nil, nil))
	assert.Equal(t, http.StatusNoContent, h.do(http.MethodDelete, "/quizsets/"+set.ID, nil, nil))

	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/samples/current", nil, &view))
	assert.Equal(t, sampler.RandomSetID, view.SetID)
	assert.NotEmpty(t, view.Quizzes)
}

func TestSelectRequiresIndex(t *testing.T) {
	h := newHarness(t)
	var snap session.Snapshot
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/sessions", map[string]any{"quiz_set_id": "random", "count": 1}, &snap))
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/sessions/"+snap.SessionID+"/select", map[string]any{}, nil))
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/sessions/"+snap.SessionID+"/select", map[string]int{"index": 9}, nil))
}

func TestMe(t *testing.T) {
	h := newHarness(t)
	var me struct {
		Sub         string   `json:"sub"`
		Role        string   `json:"role"`
		Permissions []string `json:"permissions"`
	}
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/me", nil, &me))
	assert.Equal(t, "kim", me.Sub)
	assert.Equal(t, "player", me.Role)
	assert.Contains(t, me.Permissions, "session:play")
}

func TestGuestPlaysButCannotCurate(t *testing.T) {
	h := newHarness(t)
	var set quizset.QuizSet
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/quizsets", map[string]any{"name": "Shared", "quizzes": bank.NewCatalog().Items(bank.KindScored)[:2]}, &set))

	tok, err := h.auth.IssueJWT("guest|abc123", "guest")
	require.NoError(t, err)
	h.token = tok

	var sets []quizset.QuizSet
	require.Equal(t, http.StatusOK, h.do(http.MethodGet, "/quizsets", nil, &sets))
	require.Len(t, sets, 1)
	assert.Equal(t, http.StatusOK, h.do(http.MethodGet, "/quizsets/"+set.ID, nil, nil))
	assert.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/sessions", map[string]string{"quiz_set_id": set.ID}, nil))

	assert.Equal(t, http.StatusForbidden, h.do(http.MethodPost, "/quizsets", map[string]any{"name": "Mine", "quizzes": set.Quizzes}, nil))
	assert.Equal(t, http.StatusForbidden, h.do(http.MethodDelete, "/quizsets/"+set.ID, nil, nil))
	assert.Equal(t, http.StatusForbidden, h.do(http.MethodPost, "/samples", nil, nil))
}

func TestRequiresToken(t *testing.T) {
	h := newHarness(t)
	h.token = "garbage"
	assert.Equal(t, http.StatusUnauthorized, h.do(http.MethodGet, "/quizsets", nil, nil))
}
