package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/sankofa-ed/sankofa-sms/internal/api/http"
	"github.com/sankofa-ed/sankofa-sms/internal/audit"
	"github.com/sankofa-ed/sankofa-sms/internal/config"
	"github.com/sankofa-ed/sankofa-sms/internal/db"
	"github.com/sankofa-ed/sankofa-sms/internal/grading"
	"github.com/sankofa-ed/sankofa-sms/internal/marks"
	"github.com/sankofa-ed/sankofa-sms/internal/storage"
)

func main() {
	cfg := config.FromEnv()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// --- Storage ---
	var store marks.Store
	var recorder audit.Recorder = audit.NopRecorder{}
	var eventLog *audit.EventLog
	switch cfg.DBDriver {
	case "memory":
		store = marks.NewInMemoryStore()
	default:
		dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
		if err != nil {
			log.Fatalf("db open failed: %v", err)
		}
		store = marks.NewSQLStore(dbh, cfg.DBDriver)
		eventLog = audit.NewEventLog(dbh)
		recorder = eventLog
	}

	engine := grading.NewEngine(store)
	defaults := api.Defaults{Term: cfg.DefaultTerm, ExamType: cfg.DefaultExamType}

	var blobs storage.BlobStore
	if cfg.ArchiveReports {
		bs, err := storage.NewFSStore(cfg.BlobBasePath)
		if err != nil {
			log.Fatalf("blob store: %v", err)
		}
		blobs = bs
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Reference data and mark entry
	r.Post("/students", api.CreateStudentHandler(store))
	r.Get("/students", api.ListStudentsHandler(store))
	r.Get("/students/{studentID}", api.GetStudentHandler(store))
	r.Post("/subjects", api.CreateSubjectHandler(store))
	r.Get("/subjects", api.ListSubjectsHandler(store))
	r.Post("/marks", api.PutMarkHandler(store, recorder))
	r.Get("/students/{studentID}/marks", api.ListMarksHandler(store))

	// Aggregates and transparency reports
	r.Get("/students/{studentID}/report", api.GetReportHandler(engine, defaults))
	r.Get("/students/{studentID}/report.csv", api.GetReportCSVHandler(engine, blobs, defaults))
	r.Get("/students/{studentID}/aggregate", api.GetAggregateHandler(engine, store, recorder, defaults))
	r.Post("/aggregates/recompute", api.RecomputeAggregatesHandler(engine, store, recorder, defaults))

	if eventLog != nil {
		r.Get("/audit/events", api.ListEventsHandler(eventLog))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("%s listening on %s (db=%s)", cfg.SchoolName, cfg.HTTPAddr, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
