// Courserec - Content-Based Course Recommendation Service
// Copyright 2026 Recolab
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/recolab/courserec

// Package main is the entry point for the Courserec server.
//
// Courserec serves content-based course recommendations from a pre-trained
// similarity artifact. The server starts in the following order:
//
//  1. Configuration: layered Koanf v2 load (defaults, config file, env vars)
//  2. Artifact store: open the versioned artifact directory
//  3. Model: load the latest stored artifact, or train from the CSV sources
//     when MODEL_TRAIN_ON_STARTUP is set and no artifact exists
//  4. Supervisor tree: HTTP server plus the model lifecycle service
//
// The server handles graceful shutdown on SIGINT and SIGTERM: it stops
// accepting connections, drains in-flight requests within the shutdown
// timeout, and stops the model service.
//
// Example usage:
//
//	export COURSES_PATH=/data/courses.csv
//	export ENROLLMENTS_PATH=/data/enrollments.csv
//	export MODEL_TRAIN_ON_STARTUP=true
//	./courserec-server
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/recolab/courserec/internal/api"
	"github.com/recolab/courserec/internal/config"
	"github.com/recolab/courserec/internal/logging"
	"github.com/recolab/courserec/internal/metrics"
	"github.com/recolab/courserec/internal/recommend"
	"github.com/recolab/courserec/internal/recommend/storage"
	"github.com/recolab/courserec/internal/supervisor"
	"github.com/recolab/courserec/internal/supervisor/services"
	"github.com/recolab/courserec/internal/trainer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Config not yet available, use the default logger.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("addr", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)).
		Str("store_path", cfg.Model.StorePath).
		Bool("train_on_startup", cfg.Model.TrainOnStartup).
		Msg("Starting Courserec")

	store, err := storage.NewStore(cfg.Model.StorePath)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open artifact store")
	}

	handle := recommend.NewHandle(nil)
	servedVersion := loadInitialArtifact(store, handle, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog.
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.Timeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	trainerCfg := trainer.Config{
		CoursesPath:     cfg.Data.CoursesPath,
		EnrollmentsPath: cfg.Data.EnrollmentsPath,
		MaxFeatures:     cfg.Model.MaxFeatures,
		NumWorkers:      cfg.Model.NumWorkers,
		KeepVersions:    cfg.Model.KeepVersions,
	}
	tree.AddModelService(services.NewModelService(handle, store, services.ModelServiceConfig{
		ReloadInterval: cfg.Model.ReloadInterval,
		TrainInterval:  cfg.Model.TrainInterval,
		Trainer:        trainerCfg,
	}, servedVersion, logging.Logger()))

	handler := api.NewHandler(handle, store, cfg)
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           handler.NewRouter(),
		ReadHeaderTimeout: cfg.Server.Timeout,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.Timeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Server stopped gracefully")
}

// loadInitialArtifact fills the handle before serving begins. It prefers the
// latest stored artifact; when the store is empty and training on startup is
// enabled, it trains from the CSV sources. Returns the served artifact
// version, or zero when the server starts without a model (readiness reports
// 503 until the model service publishes one).
func loadInitialArtifact(store *storage.Store, handle *recommend.Handle, cfg *config.Config) int {
	ctx := context.Background()

	artifact, meta, err := store.Load(ctx, 0)
	if err == nil {
		handle.Swap(artifact)
		metrics.SetModelInfo(meta.Version, meta.CourseCount, meta.EnrollmentCount)
		logging.Info().
			Int("version", meta.Version).
			Int("courses", meta.CourseCount).
			Msg("Loaded stored artifact")
		return meta.Version
	}
	if !errors.Is(err, storage.ErrNoArtifact) {
		logging.Fatal().Err(err).Msg("Failed to load stored artifact")
	}

	if !cfg.Model.TrainOnStartup {
		logging.Warn().Msg("No stored artifact and startup training disabled, serving without a model")
		return 0
	}

	logging.Info().Msg("No stored artifact, training on startup")
	res, err := trainer.Run(ctx, store, trainer.Config{
		CoursesPath:     cfg.Data.CoursesPath,
		EnrollmentsPath: cfg.Data.EnrollmentsPath,
		MaxFeatures:     cfg.Model.MaxFeatures,
		NumWorkers:      cfg.Model.NumWorkers,
		KeepVersions:    cfg.Model.KeepVersions,
	}, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Startup training failed")
	}

	handle.Swap(res.Artifact)
	metrics.SetModelInfo(res.Metadata.Version, res.Metadata.CourseCount, res.Metadata.EnrollmentCount)
	return res.Metadata.Version
}
