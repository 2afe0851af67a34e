// Courserec - Content-Based Course Recommendation Service
// Copyright 2026 Recolab
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/recolab/courserec

// Package trainer runs the full training pipeline: load the CSV catalog and
// enrollment table, build the similarity artifact, and publish it to the
// versioned store. It is shared by the train CLI and the periodic model
// service so both produce identical artifacts.
package trainer

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/recolab/courserec/internal/catalog"
	"github.com/recolab/courserec/internal/metrics"
	"github.com/recolab/courserec/internal/recommend"
	"github.com/recolab/courserec/internal/recommend/storage"
)

// Config holds the inputs for one training run.
type Config struct {
	// CoursesPath is the course catalog CSV.
	CoursesPath string

	// EnrollmentsPath is the enrollment table CSV.
	EnrollmentsPath string

	// MaxFeatures caps the TF-IDF vocabulary. Zero means the default cap.
	MaxFeatures int

	// NumWorkers controls similarity matrix parallelism. Zero means all CPUs.
	NumWorkers int

	// KeepVersions is how many stored artifact versions to retain after a
	// successful save. Zero disables pruning.
	KeepVersions int
}

// Result reports a completed training run.
type Result struct {
	Artifact *recommend.Artifact
	Metadata storage.ArtifactMetadata
}

// Run executes a full training pass and persists the resulting artifact.
// On success the store's latest version points at the new artifact and older
// versions beyond KeepVersions have been pruned. Training duration is
// recorded whether the run succeeds or fails.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Run(ctx context.Context, store *storage.Store, cfg Config, logger zerolog.Logger) (*Result, error) {
	start := time.Now()
	res, err := run(ctx, store, cfg, logger)
	metrics.ObserveTraining(time.Since(start), err)
	return res, err
}

func run(ctx context.Context, store *storage.Store, cfg Config, logger zerolog.Logger) (*Result, error) {
	trainedAt := time.Now().UTC()

	courses, err := catalog.LoadCourses(cfg.CoursesPath)
	if err != nil {
		return nil, fmt.Errorf("load courses: %w", err)
	}

	enrollments, err := catalog.LoadEnrollments(cfg.EnrollmentsPath)
	if err != nil {
		return nil, fmt.Errorf("load enrollments: %w", err)
	}

	logger.Info().
		Int("courses", len(courses)).
		Int("enrollments", len(enrollments)).
		Int("max_features", cfg.MaxFeatures).
		Msg("training started")

	modelCfg := recommend.DefaultModelConfig()
	if cfg.MaxFeatures > 0 {
		modelCfg.MaxFeatures = cfg.MaxFeatures
	}
	if cfg.NumWorkers > 0 {
		modelCfg.NumWorkers = cfg.NumWorkers
	}

	artifact, err := recommend.BuildArtifact(ctx, courses, enrollments, modelCfg)
	if err != nil {
		return nil, fmt.Errorf("build artifact: %w", err)
	}

	meta, err := store.Save(ctx, artifact, storage.ArtifactMetadata{
		TrainedAt:          trainedAt,
		CourseCount:        len(artifact.Courses),
		EnrollmentCount:    len(artifact.Enrollments),
		VocabularySize:     artifact.VocabularySize,
		TrainingDurationMS: time.Since(trainedAt).Milliseconds(),
	})
	if err != nil {
		return nil, fmt.Errorf("save artifact: %w", err)
	}

	if cfg.KeepVersions > 0 {
		if err := store.Prune(ctx, cfg.KeepVersions); err != nil {
			logger.Warn().Err(err).Msg("pruning old artifact versions failed")
		}
	}

	logger.Info().
		Int("version", meta.Version).
		Int("vocabulary_size", meta.VocabularySize).
		Int64("size_bytes", meta.SizeBytes).
		Dur("duration", time.Since(trainedAt)).
		Msg("training complete")

	return &Result{Artifact: artifact, Metadata: *meta}, nil
}
