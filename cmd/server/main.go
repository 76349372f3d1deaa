// webrogue-server runs the cooperative dungeon crawler backend: one shared
// level, turn-based play over WebSockets. Build:
//
//	go build -o webrogue-server ./cmd/server
//
// Usage:
//
//	./webrogue-server [-port 3000] [-config game_config.yaml] [-web web]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"webrogue/internal/catalog"
	"webrogue/internal/config"
	"webrogue/internal/game"
	"webrogue/internal/generate"
	"webrogue/internal/logging"
	"webrogue/internal/server"
)

func main() {
	port := flag.Int("port", 0, "listen port (overrides PORT)")
	catalogPath := flag.String("config", "", "game object catalog file")
	logPath := flag.String("log", "", "log file path")
	webDir := flag.String("web", "", "static client directory")
	flag.Parse()

	cfg := config.Load(*port)
	if *catalogPath != "" {
		cfg.CatalogPath = *catalogPath
	}
	if *logPath != "" {
		cfg.LogPath = *logPath
	}
	if *webDir != "" {
		cfg.WebDir = *webDir
	}

	logging.Init(cfg.LogPath)
	defer logging.Sync()

	reg, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: loading %s: %v\n", cfg.CatalogPath, err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	gen := generate.DefaultConfig(reg, rng)
	srv := server.New(game.NewSession(gen, rng))
	go srv.Run()

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: server.Routes(srv, reg, gen, cfg.WebDir),
	}

	go func() {
		logging.L.Infow("listening", "port", cfg.Port, "web", cfg.WebDir)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.L.Fatalw("server failed", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.L.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		logging.L.Errorw("shutdown failed", "err", err)
	}
	srv.Close()
}
