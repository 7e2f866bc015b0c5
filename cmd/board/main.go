package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"board/internal/board"
	"board/internal/config"
	"board/internal/gateway"
	"board/internal/server"
	"board/internal/storage/snapshot"
	"board/internal/storage/sqlite"
	"board/internal/util"
)

func main() {
	configDir := flag.String("config", util.EnvOrDefault("BOARD_CONFIG_DIR", "."), "Directory with the optional board.env file")
	flag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		slog.Error("unable to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := newLogger(cfg.LogFile)
	logger.Info("starting board service")

	snapshots, err := snapshot.Open(cfg.SnapshotPath)
	if err != nil {
		logger.Error("unable to open snapshot store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer snapshots.Close()

	var gw gateway.ProjectGateway
	if cfg.UseRemote() {
		logger.Info("using remote project gateway", slog.String("url", cfg.RemoteAPIURL))
		gw = gateway.NewRemote(cfg.RemoteAPIURL, cfg.RemoteAPIKey)
	} else {
		logger.Info("using local sqlite gateway", slog.String("path", cfg.DBPath))
		store, err := sqlite.Open(cfg.DBPath, logger)
		if err != nil {
			logger.Error("unable to open database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer store.Close()
		gw = store
	}

	store := board.New(gw, snapshots, logger, cfg.CacheTTL())
	srv := server.New(store, logger, cfg.StaticDir)

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Engine(),
	}

	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}

// newLogger writes text to stdout, or rotated JSON when a log file is
// configured.
func newLogger(logFile string) *slog.Logger {
	if logFile == "" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	sink := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100, // MB
		MaxBackups: 10,
		MaxAge:     30, // days
	}
	return slog.New(slog.NewJSONHandler(sink, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
