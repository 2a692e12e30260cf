package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	api "github.com/readysetclass/backend/internal/api/http"
	auth "github.com/readysetclass/backend/internal/auth/middleware"
	"github.com/readysetclass/backend/internal/config"
	"github.com/readysetclass/backend/internal/course"
	"github.com/readysetclass/backend/internal/db"
	"github.com/readysetclass/backend/internal/rbac"
	"github.com/readysetclass/backend/internal/trend"
	"github.com/readysetclass/backend/internal/triage"
)

func main() {
	cfg := config.FromEnv()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("db open failed")
	}
	store := course.NewSQLStore(dbh, cfg.DBDriver)
	history := trend.NewHistory(dbh)
	triager := triage.New(nil)

	authSvc := auth.NewAuthService(cfg.AuthSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, dbh))

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.With(rbac.Require("course:create")).
			Post("/courses", api.CreateCourseHandler(store))
		pr.With(rbac.Require("course:view")).
			Get("/courses", api.ListCoursesHandler(store))
		pr.With(rbac.Require("course:view")).
			Get("/courses/{courseID}", api.GetCourseHandler(store))
		pr.With(rbac.Require("course:sync")).
			Post("/courses/{courseID}/items", api.UpsertItemsHandler(store))

		pr.With(rbac.Require("setup:categories")).
			Put("/courses/{courseID}/categories", api.ReplaceCategoriesHandler(store))
		pr.With(rbac.Require("setup:analyze")).
			Get("/courses/{courseID}/setup/analysis", api.SetupAnalysisHandler(store))
		pr.With(rbac.Require("setup:validate")).
			Post("/grading/validate-weights", api.ValidateWeightsHandler())
		pr.With(rbac.Require("setup:templates")).
			Get("/grading/templates", api.ListTemplatesHandler())
		pr.With(rbac.Require("setup:templates")).
			Get("/grading/templates/{subject}", api.GetTemplateHandler())

		pr.With(rbac.Require("grade:view")).
			Get("/courses/{courseID}/grade", api.CourseGradeHandler(store, history))
		pr.With(rbac.Require("grade:view")).
			Get("/courses/{courseID}/grade/history", api.GradeHistoryHandler(history))
		pr.With(rbac.Require("grade:whatif")).
			Post("/courses/{courseID}/whatif", api.WhatIfHandler(store))

		pr.With(rbac.Require("announcement:triage")).
			Post("/announcements/triage", api.TriageHandler(triager))

		pr.With(rbac.Require("users:bulk_upsert")).
			Post("/admin/users/bulk", api.BulkUpsertUsersHandler(dbh))
		pr.With(rbac.Require("users:list")).
			Get("/admin/users", api.ListUsersHandler(dbh))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Info().
		Str("addr", cfg.HTTPAddr).
		Str("mode", string(cfg.Mode)).
		Str("db", cfg.DBDriver).
		Msg("listening")
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// requestLogger emits one structured line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}
