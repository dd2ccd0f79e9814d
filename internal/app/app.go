package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/vk/uebridge/internal/bridge"
	"github.com/vk/uebridge/internal/config"
	"github.com/vk/uebridge/internal/ctxlog"
	"github.com/vk/uebridge/internal/dispatch"
	"github.com/vk/uebridge/internal/engine"
	"github.com/vk/uebridge/internal/registry"
	"github.com/vk/uebridge/modules/actor"
	"github.com/vk/uebridge/modules/asset"
	"github.com/vk/uebridge/modules/batch"
	"github.com/vk/uebridge/modules/level"
	"github.com/vk/uebridge/modules/material"
	"github.com/vk/uebridge/modules/system"
	"github.com/vk/uebridge/modules/viewport"
)

// Version is the bridge protocol version reported by status and
// system_test_connection.
const Version = "2.0.0"

// AppConfig holds all the necessary configuration for an App instance to run.
type AppConfig struct {
	ManifestPaths  []string
	Host           string
	Port           int
	QueueSize      int
	TickInterval   time.Duration
	RequestTimeout time.Duration
	LogFormat      string
	LogLevel       string
}

// App encapsulates the bridge's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	appConfig  *AppConfig
	registry   *registry.Registry
	config     *config.Model
	dispatcher *dispatch.Dispatcher
	server     *bridge.Server
	engine     engine.Engine
}

// NewApp is the constructor for the bridge application. It loads the command
// manifests, registers every module against the given engine, and validates
// that manifests and Go handlers agree.
func NewApp(outW io.Writer, appConfig *AppConfig, loader config.Loader, eng engine.Engine) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	cfgModel, converter, err := loader.Load(ctx, appConfig.ManifestPaths...)
	if err != nil {
		// A failure to load config is a fatal startup error.
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Command manifests loaded into unified model.")

	reg := registry.New()
	dispatcher := dispatch.New(reg, converter)
	server := bridge.NewServer(bridge.Options{
		Host:           appConfig.Host,
		Port:           appConfig.Port,
		QueueSize:      appConfig.QueueSize,
		TickInterval:   appConfig.TickInterval,
		RequestTimeout: appConfig.RequestTimeout,
		Version:        Version,
	}, dispatcher, reg)

	modules := []registry.Module{
		actor.New(eng, eng, eng),
		asset.New(eng),
		level.New(eng, eng),
		material.New(eng, eng),
		viewport.New(eng),
		system.New(eng, server, Version),
		batch.New(dispatcher),
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	reg.PopulateDefinitionsFromModel(cfgModel)
	logger.Debug("Registry definitions populated from config model.")

	if err := reg.ValidateRegistry(ctx); err != nil {
		// A mismatch between manifests and handlers is a programmer error.
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:       outW,
		logger:     logger,
		appConfig:  appConfig,
		registry:   reg,
		config:     cfgModel,
		dispatcher: dispatcher,
		server:     server,
		engine:     eng,
	}
}

// Run serves the bridge until ctx is cancelled. A restart requested through
// system_restart_listener tears the listener down and brings a fresh one up
// on the same port.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	for {
		err := a.server.Run(ctx)
		if errors.Is(err, bridge.ErrRestartRequested) {
			a.logger.Info("Relaunching bridge listener.")
			continue
		}
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Dispatcher returns the command dispatcher. This is primarily for testing.
func (a *App) Dispatcher() *dispatch.Dispatcher {
	return a.dispatcher
}

// Server returns the bridge listener.
func (a *App) Server() *bridge.Server {
	return a.server
}
