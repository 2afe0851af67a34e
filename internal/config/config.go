// Courserec - Content-Based Course Recommendation Service
// Copyright 2026 Recolab
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/recolab/courserec

// Package config loads and validates application configuration.
//
// Configuration is layered: built-in defaults, then an optional YAML file,
// then environment variables. Environment always wins.
package config

import (
	"fmt"
	"time"

	"github.com/recolab/courserec/internal/validation"
)

// Config is the root application configuration.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Data    DataConfig    `koanf:"data"`
	Model   ModelConfig   `koanf:"model"`
	API     APIConfig     `koanf:"api"`
	Logging LoggingConfig `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the listen address.
	Host string `koanf:"host" validate:"required"`

	// Port is the listen port.
	Port int `koanf:"port" validate:"min=1,max=65535"`

	// Timeout bounds request read/write plus graceful shutdown.
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`
}

// DataConfig locates the training input files.
type DataConfig struct {
	// CoursesPath is the course catalog CSV.
	CoursesPath string `koanf:"courses_path" validate:"required"`

	// EnrollmentsPath is the enrollment table CSV.
	EnrollmentsPath string `koanf:"enrollments_path" validate:"required"`
}

// ModelConfig holds training and artifact storage settings.
type ModelConfig struct {
	// StorePath is the directory holding versioned artifacts.
	StorePath string `koanf:"store_path" validate:"required"`

	// MaxFeatures caps the TF-IDF vocabulary.
	MaxFeatures int `koanf:"max_features" validate:"min=1"`

	// NumWorkers controls training parallelism. 0 means all CPUs.
	NumWorkers int `koanf:"num_workers" validate:"min=0"`

	// KeepVersions is how many artifact versions to retain on disk.
	KeepVersions int `koanf:"keep_versions" validate:"min=1"`

	// TrainOnStartup trains from the CSVs when no stored artifact exists.
	TrainOnStartup bool `koanf:"train_on_startup"`

	// TrainInterval is how often the model service retrains. 0 disables
	// periodic retraining.
	TrainInterval time.Duration `koanf:"train_interval" validate:"min=0"`

	// ReloadInterval is how often the model service checks the store for
	// a newer artifact version. 0 disables polling.
	ReloadInterval time.Duration `koanf:"reload_interval" validate:"min=0"`
}

// APIConfig holds request handling settings.
type APIConfig struct {
	// DefaultTopN is the result count when a request omits top_n.
	DefaultTopN int `koanf:"default_top_n" validate:"min=1"`

	// MaxTopN is the upper clamp for top_n.
	MaxTopN int `koanf:"max_top_n" validate:"min=1"`

	// CORSOrigins lists allowed CORS origins.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimitReqs is the allowed request count per window per client.
	// 0 disables rate limiting.
	RateLimitReqs int `koanf:"rate_limit_reqs" validate:"min=0"`

	// RateLimitWindow is the rate limit window.
	RateLimitWindow time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns the built-in defaults, applied before any file or
// environment overrides.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8080,
			Timeout: 30 * time.Second,
		},
		Data: DataConfig{
			CoursesPath:     "/data/courses.csv",
			EnrollmentsPath: "/data/enrollments.csv",
		},
		Model: ModelConfig{
			StorePath:      "/data/models",
			MaxFeatures:    5000,
			NumWorkers:     0,
			KeepVersions:   3,
			TrainOnStartup: false,
			TrainInterval:  0,
			ReloadInterval: time.Minute,
		},
		API: APIConfig{
			DefaultTopN:     5,
			MaxTopN:         50,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if err := validateStruct(c); err != nil {
		return err
	}
	if c.API.DefaultTopN > c.API.MaxTopN {
		return fmt.Errorf("api.default_top_n (%d) exceeds api.max_top_n (%d)", c.API.DefaultTopN, c.API.MaxTopN)
	}
	return nil
}

func validateStruct(c *Config) error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}
	return nil
}
