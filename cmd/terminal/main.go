package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/httplog/v3"
	"github.com/smash-arena/pos-terminal/internal/config"
	appHTTP "github.com/smash-arena/pos-terminal/internal/handler/http"
	"github.com/smash-arena/pos-terminal/internal/pkg/backend"
	"github.com/smash-arena/pos-terminal/internal/pkg/cron"
	"github.com/smash-arena/pos-terminal/internal/pkg/jwt"
	"github.com/smash-arena/pos-terminal/internal/pkg/printer"
	"github.com/smash-arena/pos-terminal/internal/pkg/printstore"
	"github.com/smash-arena/pos-terminal/internal/pkg/sse"
	posService "github.com/smash-arena/pos-terminal/internal/service/pos"
	"golang.org/x/sync/errgroup"
)

const version = "v1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	store, err := printstore.Open(cfg.Terminal.PrintStorePath)
	if err != nil {
		log.Fatal("Failed to open print store:", err)
	}
	defer store.Close()

	backendClient := backend.NewClient(cfg.Backend)
	hub := sse.NewHub()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret)

	terminal := posService.NewPOSService(backendClient, store, hub, posService.Config{
		TerminalID: cfg.Terminal.ID,
		Layout:     printer.NewLayout(cfg.Receipt, cfg.Terminal.Location),
	})

	posHandler := appHTTP.NewPOSHandler(terminal, JWTService, hub, cfg.Terminal.ID)
	bookingHandler := appHTTP.NewBookingHandler(terminal, JWTService)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Logger:         logger,
			AllowedOrigins: cfg.App.AllowedOrigins,
		},
		JWTService,
		posHandler,
		bookingHandler,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A shift left open by a previous run is picked up again
	restoreCtx, cancel := context.WithTimeout(ctx, cfg.Backend.Timeout)
	if err := terminal.Restore(restoreCtx); err != nil {
		slog.Warn("Failed to restore shift state", "terminal_id", cfg.Terminal.ID, "error", err)
	}
	cancel()

	scheduler := cron.NewScheduler()
	scheduler.AddJob("catalog-refresh", cfg.Terminal.CatalogRefreshInterval, terminal.RefreshCatalog)
	slog.Info("Scheduler configured", "jobs", scheduler.Jobs())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Server running", "addr", server.Addr, "terminal_id", cfg.Terminal.ID)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return scheduler.Run(gCtx)
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server error", "error", err)
	}
	slog.Info("Server stopped")
}

func newLogger(cfg *config.Config) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       parseLevel(cfg.App.LogLevel),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "pos-terminal"),
		slog.String("version", version),
		slog.String("env", cfg.App.Env),
		slog.String("terminal_id", cfg.Terminal.ID),
	)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
