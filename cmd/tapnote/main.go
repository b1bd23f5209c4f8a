package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/yunseo/TapNote/internal/bridge"
	"github.com/yunseo/TapNote/internal/capture"
	"github.com/yunseo/TapNote/internal/config"
	"github.com/yunseo/TapNote/internal/logger"
	"github.com/yunseo/TapNote/internal/permissions"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("info")
		logger.Error("load config", "error", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel)

	logger.Info("TapNote backend starting",
		"listen", cfg.ListenAddr,
		"prime_delay", cfg.StartupPrimeDelay)

	// Startup permission snapshot. Checks never prompt.
	logger.Info("audio capture permission",
		"granted", permissions.Check(permissions.SystemAudioCapture))
	logger.Info("microphone permission",
		"granted", permissions.Check(permissions.Microphone))

	// Best-effort microphone priming off the startup path.
	primer := permissions.NewPrimer(permissions.Default, cfg.StartupPrimeDelay)
	primer.InitOnce()

	srv := bridge.NewServer(cfg.ListenAddr, permissions.Default, capture.NewSystemAudioEngine)
	if err := srv.Start(); err != nil {
		logger.Error("bridge start", "error", err)
		os.Exit(1)
	}
	defer srv.Close()

	logger.Info("bridge ready", "addr", srv.Addr())

	// Wait for interrupt.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")
}
