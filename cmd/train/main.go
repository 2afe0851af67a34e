// Courserec - Content-Based Course Recommendation Service
// Copyright 2026 Recolab
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/recolab/courserec

// Package main is the offline training CLI.
//
// It loads the course catalog and enrollment table from CSV, builds the
// TF-IDF similarity artifact, and publishes it as a new version in the
// artifact store. A running server picks the new version up on its next
// reload check without restarting.
//
// Configuration comes from the same sources as the server (config file and
// environment variables), so a cron job can run it alongside the server
// container with the same environment:
//
//	export COURSES_PATH=/data/courses.csv
//	export ENROLLMENTS_PATH=/data/enrollments.csv
//	export MODEL_STORE_PATH=/data/models
//	./courserec-train
//
// Exits non-zero when training fails, leaving the store untouched.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/recolab/courserec/internal/config"
	"github.com/recolab/courserec/internal/logging"
	"github.com/recolab/courserec/internal/recommend/storage"
	"github.com/recolab/courserec/internal/trainer"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	store, err := storage.NewStore(cfg.Model.StorePath)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open artifact store")
	}

	// Let Ctrl-C abort a long-running matrix build cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := trainer.Run(ctx, store, trainer.Config{
		CoursesPath:     cfg.Data.CoursesPath,
		EnrollmentsPath: cfg.Data.EnrollmentsPath,
		MaxFeatures:     cfg.Model.MaxFeatures,
		NumWorkers:      cfg.Model.NumWorkers,
		KeepVersions:    cfg.Model.KeepVersions,
	}, logging.Logger())
	if err != nil {
		logging.Error().Err(err).Msg("Training failed")
		os.Exit(1)
	}

	logging.Info().
		Int("version", res.Metadata.Version).
		Int("courses", res.Metadata.CourseCount).
		Int("enrollments", res.Metadata.EnrollmentCount).
		Int("vocabulary_size", res.Metadata.VocabularySize).
		Int64("training_ms", res.Metadata.TrainingDurationMS).
		Msg("Artifact published")
}
