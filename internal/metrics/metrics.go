// Courserec - Content-Based Course Recommendation Service
// Copyright 2026 Recolab
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/recolab/courserec

// Package metrics exposes Prometheus instrumentation for the service:
// HTTP traffic, recommendation query behavior, and model lifecycle.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics.

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of in-flight HTTP requests",
		},
	)

	// Recommendation query metrics.

	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_queries_total",
			Help: "Total number of recommendation queries",
		},
		[]string{"mode", "outcome"}, // outcome: "ok", "empty", "no_history", "error"
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_query_duration_seconds",
			Help:    "Duration of recommendation queries in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"mode"},
	)

	// Model lifecycle metrics.

	ModelVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_version",
			Help: "Version of the artifact currently being served",
		},
	)

	ModelCourses = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_courses",
			Help: "Number of courses in the served artifact",
		},
	)

	ModelEnrollments = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_enrollments",
			Help: "Number of enrollment rows in the served artifact",
		},
	)

	ModelLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_model_loaded",
			Help: "1 when an artifact is loaded and ready to serve, else 0",
		},
	)

	TrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_training_duration_seconds",
			Help:    "Duration of training runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300, 600},
		},
	)

	TrainingRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_training_runs_total",
			Help: "Total number of training runs",
		},
		[]string{"outcome"}, // "ok", "error"
	)
)

// ObserveHTTPRequest records one completed HTTP request.
func ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	HTTPRequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
	HTTPRequestsTotal.WithLabelValues(method, path, code).Inc()
}

// ObserveQuery records one recommendation query.
func ObserveQuery(mode, outcome string, duration time.Duration) {
	QueriesTotal.WithLabelValues(mode, outcome).Inc()
	QueryDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

// SetModelInfo publishes gauges for a newly served artifact.
func SetModelInfo(version, courses, enrollments int) {
	ModelVersion.Set(float64(version))
	ModelCourses.Set(float64(courses))
	ModelEnrollments.Set(float64(enrollments))
	ModelLoaded.Set(1)
}

// SetModelUnloaded marks the service as having no artifact to serve.
func SetModelUnloaded() {
	ModelLoaded.Set(0)
}

// ObserveTraining records one training run.
func ObserveTraining(duration time.Duration, err error) {
	TrainingDuration.Observe(duration.Seconds())
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	TrainingRuns.WithLabelValues(outcome).Inc()
}
