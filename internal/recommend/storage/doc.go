// Courserec - Content-Based Course Recommendation Service
// Copyright 2026 Recolab
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/recolab/courserec

// Package storage persists trained recommendation artifacts.
//
// Artifacts are gob-encoded, gzip-compressed, and stored with metadata
// including a monotonically increasing version and a SHA-256 checksum so a
// serving process can detect corruption before swapping a model in.
//
// # Storage Format
//
// Each version is a single file named artifact_v{N}.gob.gz. The file holds
// one gob-encoded envelope containing the metadata and the compressed
// artifact payload.
//
// # Thread Safety
//
// All store operations are safe for concurrent use.
package storage
