// Kestrel - Customer data and return-eligibility decision service.
// Copyright (c) 2025 opensource.retail
// Licensed under the Apache License 2.0

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/opensource-retail/kestrel/internal/api"
	"github.com/opensource-retail/kestrel/internal/catalog"
	"github.com/opensource-retail/kestrel/internal/classifier"
	"github.com/opensource-retail/kestrel/internal/domain"
	"github.com/opensource-retail/kestrel/internal/returns"
	"github.com/opensource-retail/kestrel/internal/synth"
)

// Version information (set via ldflags)
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	// Initialize structured logger
	logLevel := slog.LevelInfo
	if os.Getenv("KESTREL_DEBUG") == "true" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	slog.Info("starting kestrel",
		"version", Version,
		"commit", Commit,
		"build_date", BuildDate,
	)

	cfg := loadConfig()
	slog.Info("configuration loaded",
		"profiles", cfg.Catalog.Profiles,
		"policy", cfg.Engine.Policy,
		"key_scheme", cfg.Lookup.KeyScheme,
		"item_match", cfg.Lookup.ItemMatch,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		slog.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Initialize abuse classifier; bad CEL rules fail startup
	cls, err := classifier.New(cfg.Classifier.ExtraRules)
	if err != nil {
		slog.Error("failed to initialize abuse classifier", "error", err)
		os.Exit(1)
	}
	slog.Info("abuse classifier initialized", "extra_rules", cls.RulesCount())

	// Initialize decision engine
	engine := returns.NewEngine(cfg.Engine.Policy, cls)
	slog.Info("decision engine initialized", "policy", engine.Policy())

	// Generate the catalog once; it is immutable for the process lifetime
	profiles := synth.Generate(synth.Config{
		Profiles: cfg.Catalog.Profiles,
		Seed:     cfg.Catalog.Seed,
	})
	store := catalog.New(profiles, cfg.Lookup)
	slog.Info("catalog generated", "profiles", store.Size())

	// Initialize Server
	srv := api.NewServer(cfg.Server, store, engine, cfg.Lookup, Version)

	// Start Server in goroutine
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("kestrel is ready",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	printBanner(cfg, Version)

	// Wait for shutdown signal
	<-ctx.Done()
	slog.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("kestrel shutdown complete")
}

// loadConfig builds the configuration from defaults plus environment
// overrides.
func loadConfig() *domain.Config {
	cfg := domain.DefaultConfig()

	if host := os.Getenv("KESTREL_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if port, err := strconv.Atoi(os.Getenv("KESTREL_PORT")); err == nil && port > 0 {
		cfg.Server.Port = port
	}
	if n, err := strconv.Atoi(os.Getenv("KESTREL_PROFILES")); err == nil && n > 0 {
		cfg.Catalog.Profiles = n
	}
	if seed, err := strconv.ParseUint(os.Getenv("KESTREL_SEED"), 10, 64); err == nil {
		cfg.Catalog.Seed = seed
	}

	switch domain.ReturnPolicy(os.Getenv("KESTREL_POLICY")) {
	case domain.PolicyStandard:
		cfg.Engine.Policy = domain.PolicyStandard
	case domain.PolicyCounterAct:
		cfg.Engine.Policy = domain.PolicyCounterAct
	}

	switch domain.KeyScheme(os.Getenv("KESTREL_LOOKUP_KEY")) {
	case domain.KeyByTransaction:
		cfg.Lookup.KeyScheme = domain.KeyByTransaction
	case domain.KeyByOrder:
		cfg.Lookup.KeyScheme = domain.KeyByOrder
	}

	switch domain.ItemMatch(os.Getenv("KESTREL_ITEM_MATCH")) {
	case domain.MatchExact:
		cfg.Lookup.ItemMatch = domain.MatchExact
	case domain.MatchPrefix:
		cfg.Lookup.ItemMatch = domain.MatchPrefix
	}

	if rules := os.Getenv("KESTREL_ABUSE_RULES"); rules != "" {
		for _, expr := range strings.Split(rules, ";") {
			if expr = strings.TrimSpace(expr); expr != "" {
				cfg.Classifier.ExtraRules = append(cfg.Classifier.ExtraRules, expr)
			}
		}
	}

	return cfg
}

func printBanner(cfg *domain.Config, version string) {
	fmt.Println()
	fmt.Println("  ==============================================")
	fmt.Println("                   KESTREL")
	fmt.Println("        Customer & Returns Decision API")
	fmt.Println("  ==============================================")
	fmt.Println()
	fmt.Printf("  Version:  %s\n", version)
	fmt.Printf("  Policy:   %s\n", cfg.Engine.Policy)
	fmt.Printf("  Server:   http://%s:%d\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Println()
	fmt.Println("  Endpoints:")
	fmt.Println("    GET  /                  - API description")
	fmt.Println("    GET  /users             - All customer profiles")
	fmt.Println("    GET  /users?email=...   - Profile for one email")
	fmt.Println("    GET  /list_emails       - Sorted unique emails")
	fmt.Println("    POST /returns/analyze   - Analyze a return request")
	fmt.Println("    GET  /health            - Health check")
	fmt.Println()
}
