package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/amigo/internal/config"
	"github.com/mmynk/amigo/internal/event"
	"github.com/mmynk/amigo/internal/metrics"
	"github.com/mmynk/amigo/internal/middleware"
	"github.com/mmynk/amigo/internal/party"
	"github.com/mmynk/amigo/internal/records"
	"github.com/mmynk/amigo/internal/service"
	"github.com/mmynk/amigo/internal/session"
	"github.com/mmynk/amigo/internal/storage"
	"github.com/mmynk/amigo/internal/storage/memory"
	"github.com/mmynk/amigo/internal/storage/pgstore"
	"github.com/mmynk/amigo/internal/storage/redisstore"
	"github.com/mmynk/amigo/internal/storage/sqlite"
	"github.com/mmynk/amigo/internal/suggest"
	"github.com/mmynk/amigo/internal/web"
	"github.com/mmynk/amigo/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ev, err := loadEvent(cfg.EventFile)
	if err != nil {
		return err
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	slog.Info("Storage initialized", "driver", cfg.StoreDriver, "board_scope", cfg.BoardScope)

	gen, err := suggest.FromAPIKey(ctx, cfg.APIKey, cfg.GeminiModel)
	if err != nil {
		return fmt.Errorf("failed to set up suggestions: %w", err)
	}
	if gen == nil {
		slog.Info("API_KEY not set, gift suggestions disabled")
	}

	controller := party.New(party.Config{
		Event:        ev,
		Suggester:    suggest.New(gen, metrics.ObserveSuggestion),
		OnTransition: metrics.ObserveTransition,
		OnAppend: func(list string) {
			metrics.ListAppends.WithLabelValues(list).Inc()
		},
	})

	secret := cfg.SessionSecret
	if secret == "" {
		secret, err = randomSecret()
		if err != nil {
			return err
		}
		slog.Warn("SESSION_SECRET not set, open pages will not survive a restart")
	}
	tokens := session.NewManager(secret, cfg.SessionTTL)

	scope := cfg.Scope()
	stores := func(origin string) party.Store {
		return records.New(records.ForOrigin(store, origin, scope))
	}

	mux := http.NewServeMux()

	pages, err := web.New(web.Config{Party: controller, Tokens: tokens, Stores: stores})
	if err != nil {
		return err
	}
	pages.Register(mux)

	partyPath, partyHandler := service.NewPartyServiceHandler(
		service.NewPartyService(controller, tokens, stores),
		connect.WithInterceptors(middleware.LoggingInterceptor(), middleware.RequireOrigin()),
	)
	mux.Handle(partyPath, partyHandler)

	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	handler := h2c.NewHandler(corsMiddleware(middleware.Logging(mux)), &http2.Server{})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "address", server.Addr, "url", fmt.Sprintf("http://localhost%s", server.Addr), "event", ev.Title)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

func loadEvent(path string) (*event.Event, error) {
	if path == "" {
		return event.Default()
	}
	ev, err := event.Load(path)
	if err != nil {
		return nil, err
	}
	slog.Info("Event loaded", "file", path, "title", ev.Title)
	return ev, nil
}

func openStore(ctx context.Context, cfg config.Config) (storage.Backend, error) {
	switch cfg.StoreDriver {
	case config.DriverRedis:
		return redisstore.New(ctx, &redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB}, "amigo")
	case config.DriverPostgres:
		return pgstore.New(cfg.PostgresDSN)
	case config.DriverMemory:
		slog.Warn("Using in-memory storage, records are lost on restart")
		return memory.New(), nil
	default:
		return sqlite.New(cfg.DBPath)
	}
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// corsMiddleware adds CORS headers for browser access to the RPC API
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms, "+middleware.OriginHeader)
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
