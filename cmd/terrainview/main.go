// Package main is the entry point for the terrain viewer.
package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/terrainview/internal/config"
	"github.com/Faultbox/terrainview/internal/engine/texture"
	"github.com/Faultbox/terrainview/internal/logger"
	"github.com/Faultbox/terrainview/internal/viewer"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		return 1
	}

	logCfg := logger.Config{Level: cfg.Logging.Level, Console: true}
	if cfg.Logging.LogFile != "" {
		logCfg.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.Init(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	logger.Info("=== Terrain Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	app, err := viewer.New(cfg)
	if err != nil {
		var loadErr *texture.LoadError
		var initErr *viewer.InitError
		switch {
		case errors.As(err, &loadErr):
			logger.Error("failed to load asset", zap.String("path", loadErr.Path), zap.Error(loadErr.Err))
		case errors.As(err, &initErr):
			logger.Error("failed to initialize", zap.String("stage", initErr.Stage), zap.Error(initErr.Err))
		default:
			logger.Error("failed to create viewer", zap.Error(err))
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer app.Close()

	if err := app.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		return 1
	}

	logger.Info("viewer closed normally")
	return 0
}
