// Courserec - Content-Based Course Recommendation Service
// Copyright 2026 Recolab
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/recolab/courserec

// Package recommend implements the content-based course recommendation core.
//
// The package is split into an offline training path and an online query path:
//
//   - Training: course metadata is normalized (Normalize), concatenated into
//     per-course feature blobs (FeatureBlob), vectorized with TF-IDF over
//     unigrams and bigrams (Vectorizer), and reduced to an all-pairs cosine
//     similarity matrix with a course-id index (BuildArtifact).
//   - Serving: the trained Artifact answers two query modes: courses similar
//     to a given course (SimilarTo) and recommendations for a user derived
//     from their enrollment history (RecommendForUser).
//
// # Concurrency
//
// An Artifact is immutable after construction and safe for unlimited
// concurrent readers; no query mutates it. Handle provides an atomically
// swappable reference so a serving process can replace the model after a
// retrain without locking the query path.
//
// # Determinism
//
// For a fixed course order and configuration, training is bit-for-bit
// reproducible and both query modes return identical output across runs.
// All ranking ties are broken deterministically (matrix index order for
// similarity queries, first-insertion order for user recommendations).
package recommend
