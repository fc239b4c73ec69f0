package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/dstam/planner/internal/config"
	"github.com/dstam/planner/internal/list"
	"github.com/dstam/planner/internal/middleware"
	"github.com/dstam/planner/internal/service"
	"github.com/dstam/planner/internal/session"
	"github.com/dstam/planner/internal/storage/local"
	"github.com/dstam/planner/internal/storage/sqlite"
	"github.com/dstam/planner/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Remote-mode backend
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	// Local-mode backend
	kv, err := local.OpenFileKV(cfg.LocalStorePath)
	if err != nil {
		slog.Error("Failed to initialize local store", "error", err)
		os.Exit(1)
	}
	slog.Info("Local store initialized", "path", cfg.LocalStorePath)

	var tokens *session.TokenManager
	if cfg.JWTSecret != "" {
		tokens = session.NewTokenManager(cfg.JWTSecret)
	} else {
		slog.Warn("JWT_SECRET not set; remote sessions disabled")
	}

	mux := http.NewServeMux()

	lists := service.NewListService(list.Backends{Remote: store, Local: kv})
	lists.Register(mux)

	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	resolver := session.NewResolver(tokens)
	handler := middleware.Logging(
		middleware.Metrics(
			middleware.CORS(
				middleware.ResolveSession(resolver)(mux),
			),
		),
	)

	// h2c allows HTTP/2 without TLS behind a terminating proxy.
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	slog.Info("Server starting", "address", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
