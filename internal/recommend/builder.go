// Courserec - Content-Based Course Recommendation Service
// Copyright 2026 Recolab
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/recolab/courserec

package recommend

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// ModelConfig contains training configuration.
type ModelConfig struct {
	// MaxFeatures caps the TF-IDF vocabulary size.
	// Default: 5000.
	MaxFeatures int

	// NumWorkers is the number of parallel workers used for similarity
	// matrix construction. Parallelism is a pure optimization: the output
	// is identical for any worker count.
	// Default: runtime.NumCPU().
	NumWorkers int
}

// DefaultModelConfig returns the default training configuration.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		MaxFeatures: 5000,
		NumWorkers:  runtime.NumCPU(),
	}
}

// BuildArtifact runs a full training pass: it vectorizes every course's
// feature blob, computes the all-pairs cosine similarity matrix, and bundles
// the result with the frozen course and enrollment tables.
//
// Input order is preserved: course i occupies matrix row i. For a fixed
// input order and configuration the output is bit-for-bit reproducible.
func BuildArtifact(ctx context.Context, courses []Course, enrollments []Enrollment, cfg ModelConfig) (*Artifact, error) {
	if len(courses) == 0 {
		return nil, fmt.Errorf("no courses to train on")
	}
	if cfg.MaxFeatures <= 0 {
		cfg.MaxFeatures = 5000
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = runtime.NumCPU()
	}

	index, err := NewCourseIndex(courses)
	if err != nil {
		return nil, err
	}

	blobs := make([]string, len(courses))
	for i, c := range courses {
		blobs[i] = FeatureBlob(c)
	}

	vectorizer := NewVectorizer(cfg.MaxFeatures)
	vectors := vectorizer.FitTransform(blobs)

	matrix, err := buildSimilarityMatrix(ctx, vectors, cfg.NumWorkers)
	if err != nil {
		return nil, err
	}

	a := &Artifact{
		Courses:        courses,
		Enrollments:    enrollments,
		Matrix:         matrix,
		Index:          index,
		VocabularySize: vectorizer.VocabularySize(),
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("built artifact failed validation: %w", err)
	}
	return a, nil
}

// buildSimilarityMatrix computes the symmetric all-pairs cosine matrix over
// L2-normalized vectors, so each cell is a plain dot product. Rows are
// distributed across workers in contiguous chunks; each cell above the
// diagonal is written exactly once by the worker owning its row, together
// with its mirror cell, so workers never contend.
func buildSimilarityMatrix(ctx context.Context, vectors []SparseVector, numWorkers int) ([][]float64, error) {
	n := len(vectors)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
		// Self-similarity is 1.0 by construction, including for
		// zero-norm vectors.
		matrix[i][i] = 1.0
	}

	if numWorkers > n {
		numWorkers = n
	}
	chunkSize := (n + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				if contextCancelled(ctx) {
					return
				}
				for j := i + 1; j < n; j++ {
					// Dot of zero vectors is 0; the 0/0 case never
					// divides because vectors are pre-normalized.
					sim := vectors[i].Dot(vectors[j])
					matrix[i][j] = sim
					matrix[j][i] = sim
				}
			}
		}(start, end)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return matrix, nil
}

// contextCancelled checks if the context has been canceled.
func contextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
