// Courserec - Content-Based Course Recommendation Service
// Copyright 2026 Recolab
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/recolab/courserec

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/recolab/courserec/internal/middleware"
)

// NewRouter wires all routes with the global middleware stack.
func (h *Handler) NewRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.cfg.API.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		MaxAge:         300,
	}))
	r.Use(middleware.PrometheusMetrics)

	// Health endpoints stay outside the rate limit so probes never get
	// throttled into flapping.
	r.Get("/ping", h.Ping)
	r.Get("/api/v1/health/live", h.HealthLive)
	r.Get("/api/v1/health/ready", h.HealthReady)

	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if h.cfg.API.RateLimitReqs > 0 {
			r.Use(httprate.LimitByIP(h.cfg.API.RateLimitReqs, h.cfg.API.RateLimitWindow))
		}

		r.Post("/invocations", h.Invocations)

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/courses/{courseID}/similar", h.SimilarCourses)
			r.Get("/users/{userID}/recommendations", h.UserRecommendations)
			r.Get("/model", h.ModelInfo)
		})
	})

	return r
}
