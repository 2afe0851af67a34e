// Courserec - Content-Based Course Recommendation Service
// Copyright 2026 Recolab
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/recolab/courserec

// Package models defines the shared API wire types.
package models

import "time"

// APIResponse is the standard wrapper for every HTTP response.
//
// Status is "success" or "error". On success Data carries the payload; on
// error the Error field is populated instead.
//
//	{
//	  "status": "success",
//	  "data": {"user_id": "U1", "recommendations": [...]},
//	  "metadata": {"timestamp": "2026-09-01T12:00:00Z", "query_time_ms": 2}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data,omitempty"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries per-response observability fields.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError is the structured error payload.
//
// Common codes: VALIDATION_ERROR, NOT_FOUND, NO_ENROLLMENTS,
// MODEL_NOT_READY, INTERNAL_ERROR.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ModelInfo describes the artifact currently being served.
type ModelInfo struct {
	Version         int       `json:"version"`
	TrainedAt       time.Time `json:"trained_at"`
	CourseCount     int       `json:"course_count"`
	EnrollmentCount int       `json:"enrollment_count"`
	VocabularySize  int       `json:"vocabulary_size"`
	Checksum        string    `json:"checksum,omitempty"`
	SizeBytes       int64     `json:"size_bytes"`
}
