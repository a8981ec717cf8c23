package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	api "github.com/mind-engage/ecoquiz/internal/api/http"
	"github.com/mind-engage/ecoquiz/internal/auth"
	authmw "github.com/mind-engage/ecoquiz/internal/auth/middleware"
	"github.com/mind-engage/ecoquiz/internal/bank"
	"github.com/mind-engage/ecoquiz/internal/config"
	"github.com/mind-engage/ecoquiz/internal/db"
	"github.com/mind-engage/ecoquiz/internal/grading"
	"github.com/mind-engage/ecoquiz/internal/logger"
	"github.com/mind-engage/ecoquiz/internal/metrics"
	"github.com/mind-engage/ecoquiz/internal/quizset"
	"github.com/mind-engage/ecoquiz/internal/sampler"
	"github.com/mind-engage/ecoquiz/internal/session"
	syncx "github.com/mind-engage/ecoquiz/internal/sync"
)

func main() {
	cfg := config.Load()
	log := logger.New("ecoquizd", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Journal ---
	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	dbh, err := db.Open(openCtx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	cancel()
	if err != nil {
		log.WithError(err).Fatal("db open failed")
	}
	var journal syncx.Journal = syncx.Discard{}
	if dbh != nil {
		defer dbh.Close()
		journal = syncx.NewEventRepo(dbh, cfg.SiteID)
	}

	// --- Question bank ---
	catalog := bank.NewCatalog()
	src := bankSource(cfg)
	if src != nil {
		loadCtx, cancel := context.WithTimeout(ctx, cfg.BankTimeout)
		n, err := bank.Reload(loadCtx, catalog, bank.KindScored, src)
		cancel()
		if err != nil {
			log.WithError(err).Warn("bank source unavailable; using built-in questions")
		} else {
			log.WithField("count", n).Info("scored bank loaded")
		}
	}

	m := metrics.New("ecoquiz")
	smp := sampler.New(nil)
	surface := sampler.NewSurface(sampler.CatalogFetcher(catalog, bank.KindDisplay, smp), log)
	if _, err := surface.Refresh(ctx, cfg.DefaultSampleCount); err != nil {
		log.WithError(err).Warn("initial viewer sample failed")
	}
	repo := quizset.NewRepository(log)
	sessions := session.NewRegistry(grading.NewDefaultGrader(), log)
	sessions.OnComplete(func(s session.Snapshot, r session.Report) {
		m.SessionsCompleted.Inc()
		m.ScorePercentage.Observe(float64(r.Percentage))
		if err := journal.Record(context.Background(), syncx.TypeSessionCompleted, s.SessionID, map[string]any{
			"quizset_id": s.QuizSetID,
			"report":     r,
		}); err != nil {
			log.WithError(err).Error("journal append failed")
		}
	})

	authSvc := authmw.NewAuthService(cfg.AuthHMACSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, logger.Middleware(log), middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(m.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins(),
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.EnableLocalAuth {
		r.Post("/auth/login", authmw.LoginHandler(authSvc, authmw.Credentials{
			AdminUser:     cfg.AdminUser,
			AdminPassHash: cfg.AdminPassHash,
			AllowDevUsers: cfg.Mode == config.ModeOffline,
		}))
	}
	r.Post("/auth/guest", auth.GuestLoginHandler(authSvc, cfg.Mode == config.ModeOnline))

	r.Group(func(pr chi.Router) {
		pr.Use(authmw.JWTMiddleware(authSvc))
		api.Mount(pr, api.Deps{
			Catalog:    catalog,
			BankSource: src,
			Sampler:    smp,
			Surface:    surface,
			Repo:       repo,
			Sessions:   sessions,
			Journal:    journal,
			Metrics:    m,
			Log:        log,
			Limits:     api.SampleLimits{Default: cfg.DefaultSampleCount, Max: cfg.MaxSampleCount},
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if dbh != nil {
			if err := dbh.PingContext(r.Context()); err != nil {
				http.Error(w, "db unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", m.Handler())

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		log.WithFields(logrus.Fields{"addr": cfg.HTTPAddr, "mode": cfg.Mode, "db": cfg.DBDriver}).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown")
	}
	log.Info("stopped")
}

// bankSource picks the configured scored bank source. A file wins over a URL.
func bankSource(cfg config.Config) bank.Source {
	switch {
	case cfg.BankFile != "":
		return bank.FileSource{Path: cfg.BankFile}
	case cfg.BankURL != "":
		return bank.NewRemoteSource(cfg.BankURL, cfg.BankTimeout).WithBearer(cfg.BankToken)
	}
	return nil
}
