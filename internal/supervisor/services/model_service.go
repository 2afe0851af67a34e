// Courserec - Content-Based Course Recommendation Service
// Copyright 2026 Recolab
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/recolab/courserec

// Package services provides suture service wrappers for application components.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/recolab/courserec/internal/metrics"
	"github.com/recolab/courserec/internal/recommend"
	"github.com/recolab/courserec/internal/recommend/storage"
	"github.com/recolab/courserec/internal/trainer"
)

// maxTrainDuration bounds a single training cycle.
const maxTrainDuration = 30 * time.Minute

// ModelServiceConfig holds configuration for the model lifecycle service.
type ModelServiceConfig struct {
	// ReloadInterval is how often to check the store for a newer artifact
	// version. Zero disables reload polling.
	ReloadInterval time.Duration

	// TrainInterval is how often to retrain from the CSV sources. Zero
	// disables periodic retraining.
	TrainInterval time.Duration

	// Trainer configures the training pipeline used for retraining.
	Trainer trainer.Config
}

// ModelService keeps the served artifact fresh. It polls the store for
// newer versions published by an external trainer and, when periodic
// retraining is enabled, runs the training pipeline itself. Each new
// artifact is swapped into the shared handle without interrupting queries.
type ModelService struct {
	handle *recommend.Handle
	store  *storage.Store
	config ModelServiceConfig
	logger zerolog.Logger
	name   string

	servedVersion int
}

// NewModelService creates a model lifecycle service. servedVersion is the
// artifact version currently loaded into the handle, or zero when the
// process started without one.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewModelService(handle *recommend.Handle, store *storage.Store, cfg ModelServiceConfig, servedVersion int, logger zerolog.Logger) *ModelService {
	return &ModelService{
		handle:        handle,
		store:         store,
		config:        cfg,
		logger:        logger.With().Str("service", "model").Logger(),
		name:          "model-service",
		servedVersion: servedVersion,
	}
}

// Serve implements the suture.Service interface. It runs the reload and
// retrain loops until the context is canceled.
func (s *ModelService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("reload_interval", s.config.ReloadInterval).
		Dur("train_interval", s.config.TrainInterval).
		Int("served_version", s.servedVersion).
		Msg("model service starting")

	if s.config.ReloadInterval <= 0 && s.config.TrainInterval <= 0 {
		// Nothing to do. Block until shutdown so the supervisor does not
		// treat an immediate return as a crash loop.
		<-ctx.Done()
		return ctx.Err()
	}

	reloadC := newTickChannel(s.config.ReloadInterval)
	trainC := newTickChannel(s.config.TrainInterval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("model service shutting down")
			return ctx.Err()

		case <-reloadC:
			if err := s.reload(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("artifact reload failed")
			}

		case <-trainC:
			s.logger.Debug().Msg("scheduled training triggered")
			if err := s.train(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("scheduled training failed")
			}
		}
	}
}

// newTickChannel returns a ticker channel, or nil (never ready) when the
// interval is non-positive. The ticker is intentionally not stopped: it
// lives for the duration of the process.
func newTickChannel(interval time.Duration) <-chan time.Time {
	if interval <= 0 {
		return nil
	}
	return time.NewTicker(interval).C
}

// reload loads the store's latest artifact into the handle if it is newer
// than the version currently served.
func (s *ModelService) reload(ctx context.Context) error {
	latest := s.store.LatestVersion()
	if latest <= s.servedVersion {
		return nil
	}

	artifact, meta, err := s.store.Load(ctx, latest)
	if err != nil {
		if errors.Is(err, storage.ErrNoArtifact) {
			return nil
		}
		return err
	}

	s.publish(artifact, meta.Version)
	s.logger.Info().
		Int("version", meta.Version).
		Int("courses", meta.CourseCount).
		Msg("loaded newer artifact")
	return nil
}

// train runs a full training cycle and serves the result immediately.
func (s *ModelService) train(ctx context.Context) error {
	trainCtx, cancel := context.WithTimeout(ctx, maxTrainDuration)
	defer cancel()

	res, err := trainer.Run(trainCtx, s.store, s.config.Trainer, s.logger)
	if err != nil {
		return err
	}

	s.publish(res.Artifact, res.Metadata.Version)
	return nil
}

func (s *ModelService) publish(artifact *recommend.Artifact, version int) {
	s.handle.Swap(artifact)
	s.servedVersion = version
	metrics.SetModelInfo(version, len(artifact.Courses), len(artifact.Enrollments))
}

// String returns the service name for logging.
func (s *ModelService) String() string {
	return s.name
}
