// Courserec - Content-Based Course Recommendation Service
// Copyright 2026 Recolab
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/recolab/courserec

// Package api provides the HTTP handlers and routing for Courserec.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_recommend.go: invocation and recommendation endpoints
//   - handlers_health.go: health and readiness endpoints
//   - handlers_model.go: model metadata endpoint
//   - handlers_helpers.go: shared response helpers
package api

import (
	"time"

	"github.com/recolab/courserec/internal/config"
	"github.com/recolab/courserec/internal/recommend"
	"github.com/recolab/courserec/internal/recommend/storage"
)

// Handler holds the dependencies of all API handlers. The artifact is read
// through a Handle so a background retrain can swap in a new model without
// touching the handlers.
type Handler struct {
	handle    *recommend.Handle
	store     *storage.Store
	cfg       *config.Config
	startTime time.Time
}

// NewHandler creates the API handler.
func NewHandler(handle *recommend.Handle, store *storage.Store, cfg *config.Config) *Handler {
	return &Handler{
		handle:    handle,
		store:     store,
		cfg:       cfg,
		startTime: time.Now(),
	}
}
