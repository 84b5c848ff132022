// Command haggled runs the Haggle shop engine and its HTTP API.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/talgya/haggle/internal/agent"
	"github.com/talgya/haggle/internal/api"
	"github.com/talgya/haggle/internal/customer"
	"github.com/talgya/haggle/internal/persistence"
	"github.com/talgya/haggle/internal/shop"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("Haggle — fantasy shop negotiation engine")

	seed := time.Now().UnixNano()
	if v := os.Getenv("HAGGLE_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			seed = n
		} else {
			slog.Warn("invalid HAGGLE_SEED, using time seed", "value", v)
		}
	}

	apiPort := 8080
	if v := os.Getenv("HAGGLE_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n < 65536 {
			apiPort = n
		} else {
			slog.Warn("invalid HAGGLE_PORT, using default", "value", v, "default", apiPort)
		}
	}

	dbPath := "data/haggle.db"
	if v := os.Getenv("HAGGLE_DB"); v != "" {
		dbPath = v
	}

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll("data", 0755)
	db, err := persistence.Open(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", dbPath)

	// ── Shop ──────────────────────────────────────────────────────────
	sh := shop.New(shop.DefaultConfig())
	spawner := customer.NewSpawner(seed)
	slog.Info("shop ready", "seed", seed)

	// ── Agent ─────────────────────────────────────────────────────────
	anthropicKey := os.Getenv("ANTHROPIC_API_KEY")
	svc := agent.NewService()
	buildOracle := func() (agent.Oracle, error) {
		return agent.NewClient(anthropicKey)
	}
	if anthropicKey == "" {
		slog.Warn("ANTHROPIC_API_KEY not set — customers cannot be served until it is provided")
	}

	// Honor a previously granted consent so restarts don't re-prompt.
	if granted, err := db.Consent(); err != nil {
		slog.Error("consent read failed", "error", err)
	} else if granted {
		slog.Info("consent on record, loading agent")
		go svc.Load(buildOracle)
	} else {
		slog.Info("awaiting consent before loading agent")
	}

	session := &shop.Session{
		Shop:    sh,
		Agent:   svc,
		Spawner: spawner,
		Archive: db,
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	apiServer := &api.Server{
		Shop:        sh,
		Session:     session,
		Agent:       svc,
		DB:          db,
		Port:        apiPort,
		BuildOracle: buildOracle,
	}
	apiServer.Start()

	fmt.Printf("\nThe shop is open. API: http://localhost:%d/api/v1/state\n", apiPort)
	fmt.Println("Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("received signal, shutting down", "signal", sig)
}
