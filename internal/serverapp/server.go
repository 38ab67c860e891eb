// Package serverapp wires the repos, engine, and HTTP layer together.
package serverapp

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"cardbinder/internal/catalog"
	"cardbinder/internal/config"
	"cardbinder/internal/game"
	"cardbinder/internal/httpmw"
	"cardbinder/internal/player"
	redisclient "cardbinder/internal/redis"
	"cardbinder/internal/server"
	"cardbinder/internal/telemetry"
)

type Options struct {
	Config  *config.Config
	Catalog *catalog.Catalog
	DataDir string

	// RedisAddr switches player persistence from the per-user JSON files
	// under DataDir to redis. Empty means files.
	RedisAddr string

	Logger *slog.Logger
}

func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Catalog == nil {
		return nil, errors.New("catalog is required")
	}
	if strings.TrimSpace(opts.DataDir) == "" {
		opts.DataDir = "data"
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	var players player.Repo
	var ping func(ctx context.Context) error
	if opts.RedisAddr != "" {
		client, err := redisclient.NewClient(opts.RedisAddr, nil)
		if err != nil {
			return nil, err
		}
		repo, err := player.NewRedisRepo(client)
		if err != nil {
			return nil, err
		}
		players = repo
		ping = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	} else {
		repo, err := player.NewFileRepo(filepath.Join(opts.DataDir, "players"))
		if err != nil {
			return nil, err
		}
		players = repo
	}

	engine := game.NewEngine(opts.Catalog, opts.Config, players, telemetry.NewMemoryRepository(), nil, nil)
	app := &server.App{Engine: engine}

	mux := http.NewServeMux()
	app.Routes(mux)

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "cardbinder",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if ping != nil {
			if err := ping(r.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]any{
					"ok":    false,
					"error": "player storage unavailable",
				})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "cardbinder",
			"teams":   len(opts.Catalog.Teams),
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	return httpmw.Chain(
		mux,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
	), nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
