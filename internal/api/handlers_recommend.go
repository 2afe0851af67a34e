// Courserec - Content-Based Course Recommendation Service
// Copyright 2026 Recolab
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/recolab/courserec

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/recolab/courserec/internal/logging"
	"github.com/recolab/courserec/internal/metrics"
	"github.com/recolab/courserec/internal/recommend"
)

// invocationRequest is the body of POST /invocations. Exactly one of
// CourseID and UserID must be set.
type invocationRequest struct {
	CourseID string `json:"course_id"`
	UserID   string `json:"user_id"`
	TopN     int    `json:"top_n" validate:"min=0"`
}

// invocationError is the bare error shape of the invocation contract.
type invocationError struct {
	Error string `json:"error"`
}

// Invocations handles POST /invocations, the original serving contract.
// The response body is the bare result, not the standard envelope: a JSON
// array for course queries, an object for user queries.
func (h *Handler) Invocations(w http.ResponseWriter, r *http.Request) {
	artifact := h.handle.Current()
	if artifact == nil {
		respondError(w, http.StatusServiceUnavailable, "MODEL_NOT_READY", "No model is loaded", nil)
		return
	}

	var req invocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}
	if (req.CourseID == "") == (req.UserID == "") {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Exactly one of course_id and user_id must be provided", nil)
		return
	}

	query := recommend.Query{TopN: h.clampTopN(req.TopN)}
	if req.CourseID != "" {
		query.Mode = recommend.QuerySimilarCourse
		query.CourseID = req.CourseID
	} else {
		query.Mode = recommend.QueryByUser
		query.UserID = req.UserID
	}

	start := time.Now()
	result, err := artifact.Execute(query)
	elapsed := time.Since(start)

	if err != nil {
		var noEnroll *recommend.NoEnrollmentsError
		if errors.As(err, &noEnroll) {
			metrics.ObserveQuery(query.Mode.String(), "no_history", elapsed)
			writeBareJSON(w, http.StatusOK, invocationError{Error: noEnroll.Error()})
			return
		}
		metrics.ObserveQuery(query.Mode.String(), "error", elapsed)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Query execution failed", err)
		return
	}

	switch query.Mode {
	case recommend.QuerySimilarCourse:
		outcome := "ok"
		if len(result.Similar) == 0 {
			outcome = "empty"
		}
		metrics.ObserveQuery(query.Mode.String(), outcome, elapsed)
		writeBareJSON(w, http.StatusOK, result.Similar)
	case recommend.QueryByUser:
		metrics.ObserveQuery(query.Mode.String(), "ok", elapsed)
		writeBareJSON(w, http.StatusOK, result.User)
	}
}

// SimilarCourses handles GET /api/v1/courses/{courseID}/similar.
func (h *Handler) SimilarCourses(w http.ResponseWriter, r *http.Request) {
	artifact := h.handle.Current()
	if artifact == nil {
		respondError(w, http.StatusServiceUnavailable, "MODEL_NOT_READY", "No model is loaded", nil)
		return
	}

	courseID := chi.URLParam(r, "courseID")
	topN := h.clampTopN(getIntParam(r, "k", 0))

	start := time.Now()
	similar := artifact.SimilarTo(courseID, topN)
	elapsed := time.Since(start)

	outcome := "ok"
	if len(similar) == 0 {
		outcome = "empty"
	}
	metrics.ObserveQuery(recommend.QuerySimilarCourse.String(), outcome, elapsed)

	logging.Ctx(r.Context()).Debug().
		Str("course_id", sanitizeLogValue(courseID)).
		Int("top_n", topN).
		Int("results", len(similar)).
		Msg("similar courses query")

	respondSuccess(w, http.StatusOK, similar, elapsed)
}

// UserRecommendations handles GET /api/v1/users/{userID}/recommendations.
func (h *Handler) UserRecommendations(w http.ResponseWriter, r *http.Request) {
	artifact := h.handle.Current()
	if artifact == nil {
		respondError(w, http.StatusServiceUnavailable, "MODEL_NOT_READY", "No model is loaded", nil)
		return
	}

	userID := chi.URLParam(r, "userID")
	topN := h.clampTopN(getIntParam(r, "k", 0))

	start := time.Now()
	recs, err := artifact.RecommendForUser(userID, topN)
	elapsed := time.Since(start)

	if err != nil {
		var noEnroll *recommend.NoEnrollmentsError
		if errors.As(err, &noEnroll) {
			metrics.ObserveQuery(recommend.QueryByUser.String(), "no_history", elapsed)
			respondError(w, http.StatusOK, "NO_ENROLLMENTS", noEnroll.Error(), nil)
			return
		}
		metrics.ObserveQuery(recommend.QueryByUser.String(), "error", elapsed)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Query execution failed", err)
		return
	}

	metrics.ObserveQuery(recommend.QueryByUser.String(), "ok", elapsed)

	logging.Ctx(r.Context()).Debug().
		Str("user_id", sanitizeLogValue(userID)).
		Int("top_n", topN).
		Int("results", len(recs.Recommendations)).
		Msg("user recommendations query")

	respondSuccess(w, http.StatusOK, recs, elapsed)
}

// writeBareJSON writes a payload without the standard envelope, for the
// invocation contract endpoints.
func writeBareJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}
