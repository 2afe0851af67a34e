// Courserec - Content-Based Course Recommendation Service
// Copyright 2026 Recolab
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/recolab/courserec

package api

import (
	"net/http"
	"time"
)

type healthStatus struct {
	Status        string  `json:"status"`
	ModelLoaded   bool    `json:"model_loaded"`
	ModelVersion  int     `json:"model_version,omitempty"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// Ping handles GET /ping: 200 when a model is loaded and servable, 503
// otherwise. This is the readiness signal of the serving contract.
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	status := h.currentHealth()
	code := http.StatusOK
	if !status.ModelLoaded {
		code = http.StatusServiceUnavailable
	}
	writeBareJSON(w, code, status)
}

// HealthLive handles GET /api/v1/health/live: the process is up.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	writeBareJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// HealthReady handles GET /api/v1/health/ready: same contract as /ping.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	h.Ping(w, r)
}

func (h *Handler) currentHealth() healthStatus {
	status := healthStatus{
		Status:        "ok",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	}
	if artifact := h.handle.Current(); artifact != nil {
		status.ModelLoaded = true
		status.ModelVersion = h.store.LatestVersion()
	} else {
		status.Status = "unavailable"
	}
	return status
}
