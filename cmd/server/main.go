package main

import (
	"context"
	"courier-tracking-service/internal/api"
	"courier-tracking-service/internal/app"
	"courier-tracking-service/internal/config"
	"courier-tracking-service/internal/platform/metrics"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires the row source, caches and distance provider behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, time.Now())
	if err != nil {
		log.Fatal(app.StartupError(err))
	}
	defer a.Close()

	router := api.NewRouter(a.Service, metrics.Handler(a.Registry))

	// Slow scenarios hold a request for the artificial delay, so the write
	// timeout leaves room for the slowest preset.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.SlowDelay + 30*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("Server listening addr=:%s scenario=%s source=%s", cfg.Port, a.Scenario.Current().Name, app.Describe(cfg))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
