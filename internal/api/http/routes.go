package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/mind-engage/ecoquiz/internal/bank"
	"github.com/mind-engage/ecoquiz/internal/metrics"
	"github.com/mind-engage/ecoquiz/internal/quizset"
	"github.com/mind-engage/ecoquiz/internal/rbac"
	"github.com/mind-engage/ecoquiz/internal/sampler"
	"github.com/mind-engage/ecoquiz/internal/session"
	syncx "github.com/mind-engage/ecoquiz/internal/sync"
)

// Deps is everything the protected API needs.
type Deps struct {
	Catalog    *bank.Catalog
	BankSource bank.Source // nil disables /bank/reload
	Sampler    *sampler.Sampler
	Surface    *sampler.Surface
	Repo       *quizset.Repository
	Sessions   *session.Registry
	Journal    syncx.Journal
	Metrics    *metrics.Metrics
	Log        logrus.FieldLogger
	Limits     SampleLimits
}

// Mount registers the protected API on pr. Authentication must already be
// installed on pr; each route then checks its permission.
func Mount(pr chi.Router, d Deps) {
	qd := QuizSetDeps{Repo: d.Repo, Surface: d.Surface, Journal: d.Journal, Metrics: d.Metrics, Log: d.Log, Limits: d.Limits}
	sd := SessionDeps{Repo: d.Repo, Catalog: d.Catalog, Sampler: d.Sampler, Sessions: d.Sessions, Metrics: d.Metrics, Limits: d.Limits}

	pr.Get("/me", MeHandler())

	pr.With(rbac.Require("bank:view")).Get("/bank", GetBankHandler(d.Catalog))
	pr.With(rbac.Require("bank:reload")).Post("/bank/reload", ReloadBankHandler(d.Catalog, d.BankSource, d.Log))

	pr.Route("/samples", func(sr chi.Router) {
		sr.Use(rbac.Require("quizset:view"))
		sr.Post("/", RefreshSampleHandler(d.Surface, d.Limits, d.Metrics))
		sr.Get("/current", CurrentSampleHandler(d.Surface))
		sr.Post("/show", ShowQuizSetHandler(d.Surface, d.Repo))
	})

	pr.Route("/quizsets", func(qr chi.Router) {
		qr.With(rbac.Require("quizset:create")).Post("/", CreateQuizSetHandler(qd))
		qr.With(rbac.RequireAny("quizset:view", "session:play")).Get("/", ListQuizSetsHandler(d.Repo))
		qr.With(rbac.RequireAny("quizset:view", "session:play")).Get("/{id}", GetQuizSetHandler(d.Repo))
		qr.With(rbac.Require("quizset:delete")).Delete("/{id}", DeleteQuizSetHandler(qd))
	})

	pr.Route("/sessions", func(sr chi.Router) {
		sr.Use(rbac.Require("session:play"))
		sr.Post("/", StartSessionHandler(sd))
		sr.Get("/{id}", GetSessionHandler(d.Sessions))
		sr.Post("/{id}/select", SelectAnswerHandler(d.Sessions))
		sr.Post("/{id}/submit", SubmitAnswerHandler(d.Sessions))
		sr.Post("/{id}/advance", AdvanceHandler(d.Sessions))
		sr.Post("/{id}/restart", RestartHandler(d.Sessions))
		sr.Get("/{id}/report", ReportHandler(d.Sessions))
		sr.Delete("/{id}", AbandonHandler(d.Sessions, d.Metrics))
	})

	pr.With(rbac.Require("events:view")).Get("/events", ListEventsHandler(d.Journal))
}
