package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	api "github.com/formava/formava-lms/internal/api/http"
	"github.com/formava/formava-lms/internal/auth"
	authmw "github.com/formava/formava-lms/internal/auth/middleware"
	"github.com/formava/formava-lms/internal/config"
	"github.com/formava/formava-lms/internal/content"
	"github.com/formava/formava-lms/internal/db"
	"github.com/formava/formava-lms/internal/logging"
	"github.com/formava/formava-lms/internal/rbac"
	"github.com/formava/formava-lms/internal/result"
	syncx "github.com/formava/formava-lms/internal/sync"
)

func main() {
	cfg := config.FromEnv()

	log, err := logging.New(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatal("db open failed", zap.Error(err))
	}

	// Seed a first admin on fresh installs; no-op otherwise.
	if err := auth.EnsureUser(ctx, dbh, "admin", "admin", "admin"); err != nil {
		log.Fatal("seed admin", zap.Error(err))
	}

	source := content.NewSQLSource(dbh)
	catalog := content.NewCatalog(dbh)
	resultStore := result.NewSQLStore(dbh)
	submitter := result.NewSubmitter(resultStore, time.Now)
	events := syncx.NewEventRepo(dbh, cfg.SiteID)

	registry := api.NewSessionRegistry(time.Duration(cfg.SessionTTLMin) * time.Minute)
	go func() {
		t := time.NewTicker(10 * time.Minute)
		defer t.Stop()
		for now := range t.C {
			if n := registry.Sweep(now); n > 0 {
				log.Info("swept idle sessions", zap.Int("count", n))
			}
		}
	}()

	authSvc := authmw.NewAuthService(cfg.AuthHMACSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(api.RequestLogger(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", authmw.LoginHandler(authSvc, dbh))

	// Protected API (JWT → subject+role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(authmw.JWTMiddleware(authSvc))

		// Learner flow
		pr.With(rbac.Require("evaluation:start")).
			Post("/sessions", api.CreateSessionHandler(source, registry))
		pr.With(rbac.Require("evaluation:start")).
			Get("/sessions/{sessionID}", api.GetSessionHandler(registry))
		pr.With(rbac.Require("evaluation:answer")).
			Post("/sessions/{sessionID}/answers", api.AnswerHandler(registry))
		pr.With(rbac.Require("evaluation:answer")).
			Post("/sessions/{sessionID}/navigate", api.NavigateHandler(registry))
		pr.With(rbac.Require("evaluation:submit")).
			Post("/sessions/{sessionID}/submit", api.SubmitHandler(registry, submitter, events))

		// Result history
		pr.With(rbac.RequireAny("result:view-own", "result:view-all")).
			Get("/results", api.ListResultsHandler(resultStore))
		pr.With(rbac.RequireAny("result:view-own", "result:view-all")).
			Get("/results/{resultID}", api.GetResultHandler(resultStore))

		// Authoring
		pr.With(rbac.Require("program:write")).
			Put("/programs", api.PutProgramHandler(catalog))
		pr.With(rbac.Require("program:write")).
			Put("/modules", api.PutModuleHandler(catalog))
		pr.With(rbac.Require("program:write")).
			Put("/chapters", api.PutChapterHandler(catalog))
		pr.With(rbac.Require("exercise:write")).
			Put("/chapters/{chapterID}/exercises", api.PutExercisesHandler(source))
		pr.Get("/programs", api.ListProgramsHandler(catalog))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Info("listening",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("mode", string(cfg.Mode)),
		zap.String("db", cfg.DBDriver))
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
