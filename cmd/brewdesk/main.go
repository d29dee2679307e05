package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/riandyrn/otelchi"

	"github.com/bluemountain/brewdesk/internal/adapter/fsm"
	"github.com/bluemountain/brewdesk/internal/adapter/otel"
	"github.com/bluemountain/brewdesk/internal/adapter/river"
	"github.com/bluemountain/brewdesk/internal/adapter/smtp"
	"github.com/bluemountain/brewdesk/internal/adapter/sqlite"
	"github.com/bluemountain/brewdesk/internal/app"

	handler "github.com/bluemountain/brewdesk/internal/adapter/http"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Local development reads settings from .env; production sets real
	// environment variables, so a missing file is fine.
	_ = godotenv.Load()

	port := envOrDefault("PORT", "3001")
	dbPath := envOrDefault("DATABASE_PATH", "brewdesk.db")
	phone := envOrDefault("WHATSAPP_PHONE", "917085485883")

	smtpPort, err := strconv.Atoi(envOrDefault("SMTP_PORT", "587"))
	if err != nil {
		return fmt.Errorf("parsing SMTP_PORT: %w", err)
	}
	mailCfg := smtp.Config{
		Host:     envOrDefault("SMTP_HOST", "smtp.gmail.com"),
		Port:     smtpPort,
		Username: envOrDefault("SMTP_USER", "the.bluemountainofficial@gmail.com"),
		Password: os.Getenv("SMTP_PASS"),
		From:     envOrDefault("MAIL_FROM", "the.bluemountainofficial@gmail.com"),
		To:       envOrDefault("MAIL_TO", "the.bluemountainofficial@gmail.com"),
	}

	ctx := context.Background()

	// --- Observability ---
	providers, err := otel.Setup(ctx, otel.ConfigFromEnv())
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown error: %v", err)
		}
	}()

	// --- Adapters (out) ---
	db, err := otel.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	repo, err := sqlite.NewFromDB(db)
	if err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	sender := smtp.New(mailCfg)
	dispatcher := river.NewDispatcher()

	// --- Application ---
	svc := app.NewEnquiryService(
		otel.NewTracingRepository(repo),
		sender,
		otel.NewTracingDispatcher(dispatcher),
		fsm.New(),
	)
	sessions := app.NewConfiguratorService(phone)
	forms := app.NewFormService(phone, app.ResetDelay)

	// --- Task queue ---
	// The dispatcher is bound after the client exists; the client needs the
	// service for its worker, and the service needs the dispatcher.
	queue, err := river.Setup(ctx, db, svc)
	if err != nil {
		return fmt.Errorf("river: %w", err)
	}
	if err := queue.Start(ctx); err != nil {
		return fmt.Errorf("starting river: %w", err)
	}
	dispatcher.Bind(queue)

	// --- Adapters (in) ---
	router := chi.NewMux()
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.RequestID)
	router.Use(otelchi.Middleware("brewdesk", otelchi.WithChiRoutes(router)))

	api := humachi.New(router, huma.DefaultConfig("brewdesk", "0.1.0"))
	handler.Register(api, svc, sessions, forms)
	handler.RegisterSite(router, svc)

	// --- Server ---
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("brewdesk listening on :%s", port)
		log.Printf("API docs: http://localhost:%s/docs", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-done:
	}
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	if err := queue.Stop(shutdownCtx); err != nil {
		log.Printf("river shutdown error: %v", err)
	}

	log.Println("stopped")
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
