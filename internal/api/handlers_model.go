// Courserec - Content-Based Course Recommendation Service
// Copyright 2026 Recolab
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/recolab/courserec

package api

import (
	"net/http"
	"time"

	"github.com/recolab/courserec/internal/models"
)

// ModelInfo handles GET /api/v1/model, returning metadata for the served
// artifact.
func (h *Handler) ModelInfo(w http.ResponseWriter, r *http.Request) {
	artifact := h.handle.Current()
	if artifact == nil {
		respondError(w, http.StatusServiceUnavailable, "MODEL_NOT_READY", "No model is loaded", nil)
		return
	}

	start := time.Now()
	metas, err := h.store.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to read model store", err)
		return
	}
	if len(metas) == 0 {
		// An artifact is served but the store has no record of it, e.g.
		// trained in-process with persistence disabled.
		respondSuccess(w, http.StatusOK, models.ModelInfo{
			CourseCount:     len(artifact.Courses),
			EnrollmentCount: len(artifact.Enrollments),
		}, time.Since(start))
		return
	}

	latest := metas[0]
	respondSuccess(w, http.StatusOK, models.ModelInfo{
		Version:         latest.Version,
		TrainedAt:       latest.TrainedAt,
		CourseCount:     latest.CourseCount,
		EnrollmentCount: latest.EnrollmentCount,
		VocabularySize:  latest.VocabularySize,
		Checksum:        latest.Checksum,
		SizeBytes:       latest.SizeBytes,
	}, time.Since(start))
}
