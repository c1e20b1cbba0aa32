package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"leavedesk/internal/db"
	"leavedesk/internal/domain/employee"
	"leavedesk/internal/domain/reconcile"
	"leavedesk/internal/domain/reports"
	"leavedesk/internal/domain/request"
	"leavedesk/internal/platform/cdc"
	"leavedesk/internal/platform/config"
	"leavedesk/internal/platform/jobs"
	"leavedesk/internal/platform/metrics"
	"leavedesk/internal/transport/http/api"
	authhandler "leavedesk/internal/transport/http/handlers/auth"
	employeehandler "leavedesk/internal/transport/http/handlers/employee"
	reportshandler "leavedesk/internal/transport/http/handlers/reports"
	requesthandler "leavedesk/internal/transport/http/handlers/request"
	"leavedesk/internal/transport/http/middleware"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	collector := metrics.New()
	employeeStore := employee.NewStore(pool)
	requestStore := request.NewStore(pool)
	requestService := request.NewService(requestStore, employeeStore, cfg.WorkdayHours)
	reportService := reports.NewService(pool)

	reconciler := reconcile.New(reconcile.NewPgStore(pool, employeeStore), collector)

	listener := cdc.New(cfg.DatabaseURL, cfg.ReconcileChannel, cfg.ListenerRetryBackoff, reconciler.HandleChange)
	go listener.Run(ctx)

	jobs.NewSweeper(reconciler, cfg.RecoverySweepInterval).Start(ctx)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(employeeStore, cfg).RegisterRoutes(r)
		requesthandler.NewHandler(requestService, employeeStore).RegisterRoutes(r)
		employeehandler.NewHandler(employeeStore).RegisterRoutes(r)
		reportshandler.NewHandler(reportService).RegisterRoutes(r)
	})

	server := &http.Server{Addr: cfg.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("leavedesk server listening on %s", cfg.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server failed: %v", err)
	}
}
