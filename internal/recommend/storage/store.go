// Courserec - Content-Based Course Recommendation Service
// Copyright 2026 Recolab
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/recolab/courserec

package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/recolab/courserec/internal/recommend"
)

const (
	artifactName = "artifact"
	fileSuffix   = ".gob.gz"
)

// ErrNoArtifact is returned when the store holds no artifact version, a
// normal state for a deployment that has never trained.
var ErrNoArtifact = errors.New("no stored artifact")

// ArtifactMetadata describes a stored artifact version.
type ArtifactMetadata struct {
	// Version is the artifact version (monotonically increasing).
	Version int `json:"version"`

	// TrainedAt is when training started.
	TrainedAt time.Time `json:"trained_at"`

	// SavedAt is when the artifact was written to disk.
	SavedAt time.Time `json:"saved_at"`

	// CourseCount is the number of courses in the catalog snapshot.
	CourseCount int `json:"course_count"`

	// EnrollmentCount is the number of enrollment rows in the snapshot.
	EnrollmentCount int `json:"enrollment_count"`

	// VocabularySize is the number of learned TF-IDF features.
	VocabularySize int `json:"vocabulary_size"`

	// Checksum is the SHA-256 checksum of the raw artifact encoding.
	Checksum string `json:"checksum"`

	// SizeBytes is the compressed artifact size in bytes.
	SizeBytes int64 `json:"size_bytes"`

	// TrainingDurationMS is how long training took.
	TrainingDurationMS int64 `json:"training_duration_ms"`
}

// storedFile is the on-disk envelope for artifact files.
type storedFile struct {
	Metadata       ArtifactMetadata
	CompressedData []byte
}

// Store manages artifact persistence under a single directory.
type Store struct {
	baseDir string

	mu     sync.RWMutex
	latest int
}

// NewStore opens (creating if needed) an artifact store at the given
// directory and scans it for existing versions.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	s := &Store{baseDir: baseDir}
	if err := s.scan(); err != nil {
		return nil, fmt.Errorf("scan existing artifacts: %w", err)
	}
	return s, nil
}

func (s *Store) scan() error {
	versions, err := s.listVersions()
	if err != nil {
		return err
	}
	for _, v := range versions {
		if v > s.latest {
			s.latest = v
		}
	}
	return nil
}

// listVersions returns all artifact versions present on disk, unsorted.
// Caller must hold at least a read lock when racing writers matters.
func (s *Store) listVersions() ([]int, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, err
	}

	var versions []int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if v, ok := parseArtifactFilename(entry.Name()); ok {
			versions = append(versions, v)
		}
	}
	return versions, nil
}

// parseArtifactFilename extracts the version from a filename like
// "artifact_v3.gob.gz".
func parseArtifactFilename(name string) (int, bool) {
	if !strings.HasSuffix(name, fileSuffix) {
		return 0, false
	}
	name = strings.TrimSuffix(name, fileSuffix)

	prefix := artifactName + "_v"
	if !strings.HasPrefix(name, prefix) {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimPrefix(name, prefix))
	if err != nil || v < 1 {
		return 0, false
	}
	return v, true
}

// Save writes the artifact as the next version and returns its metadata.
// The write goes through a temp file and rename so a crash mid-write never
// leaves a half-written version behind.
func (s *Store) Save(ctx context.Context, artifact *recommend.Artifact, meta ArtifactMetadata) (*ArtifactMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := artifact.Validate(); err != nil {
		return nil, fmt.Errorf("refusing to save invalid artifact: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(artifact); err != nil {
		return nil, fmt.Errorf("encode artifact: %w", err)
	}
	rawData := buf.Bytes()

	hash := sha256.Sum256(rawData)
	meta.Checksum = hex.EncodeToString(hash[:])

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(rawData); err != nil {
		return nil, fmt.Errorf("compress artifact: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return nil, fmt.Errorf("finalize compression: %w", err)
	}

	version := s.latest + 1
	meta.Version = version
	meta.SavedAt = time.Now()
	meta.SizeBytes = int64(compressed.Len())
	meta.CourseCount = len(artifact.Courses)
	meta.EnrollmentCount = len(artifact.Enrollments)

	sf := storedFile{
		Metadata:       meta,
		CompressedData: compressed.Bytes(),
	}

	final := s.artifactPath(version)
	tmp := final + ".tmp"
	f, err := os.Create(tmp) //nolint:gosec // path is constructed from the store's own directory
	if err != nil {
		return nil, fmt.Errorf("create artifact file: %w", err)
	}
	if err := gob.NewEncoder(f).Encode(sf); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return nil, fmt.Errorf("write artifact file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return nil, fmt.Errorf("close artifact file: %w", err)
	}
	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return nil, fmt.Errorf("publish artifact file: %w", err)
	}

	s.latest = version
	return &meta, nil
}

// Load reads an artifact by version. Version 0 loads the latest. The
// checksum is verified and the artifact re-validated before it is returned,
// so a corrupt file can never reach the serving path.
func (s *Store) Load(ctx context.Context, version int) (*recommend.Artifact, *ArtifactMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if version == 0 {
		if s.latest == 0 {
			return nil, nil, ErrNoArtifact
		}
		version = s.latest
	}

	filename := s.artifactPath(version)
	f, err := os.Open(filename) //nolint:gosec // path is constructed from the store's own directory
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, ErrNoArtifact
		}
		return nil, nil, fmt.Errorf("open artifact file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var sf storedFile
	if err := gob.NewDecoder(f).Decode(&sf); err != nil {
		return nil, nil, fmt.Errorf("read artifact file: %w", err)
	}

	gzr, err := gzip.NewReader(bytes.NewReader(sf.CompressedData))
	if err != nil {
		return nil, nil, fmt.Errorf("decompress artifact: %w", err)
	}
	defer func() { _ = gzr.Close() }()

	rawData, err := io.ReadAll(gzr)
	if err != nil {
		return nil, nil, fmt.Errorf("read decompressed data: %w", err)
	}

	hash := sha256.Sum256(rawData)
	if checksum := hex.EncodeToString(hash[:]); checksum != sf.Metadata.Checksum {
		return nil, nil, fmt.Errorf("checksum mismatch: expected %s, got %s", sf.Metadata.Checksum, checksum)
	}

	var artifact recommend.Artifact
	if err := gob.NewDecoder(bytes.NewReader(rawData)).Decode(&artifact); err != nil {
		return nil, nil, fmt.Errorf("decode artifact: %w", err)
	}
	if err := artifact.Validate(); err != nil {
		return nil, nil, fmt.Errorf("stored artifact failed validation: %w", err)
	}

	return &artifact, &sf.Metadata, nil
}

// LatestVersion returns the newest stored version, or 0 if none exists.
func (s *Store) LatestVersion() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// List returns metadata for all stored artifact versions, newest first.
func (s *Store) List(ctx context.Context) ([]ArtifactMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	versions, err := s.listVersions()
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(versions)))

	metas := make([]ArtifactMetadata, 0, len(versions))
	for _, v := range versions {
		f, err := os.Open(s.artifactPath(v)) //nolint:gosec // path is constructed from the store's own directory
		if err != nil {
			continue
		}

		var sf storedFile
		err = gob.NewDecoder(f).Decode(&sf)
		_ = f.Close()
		if err != nil {
			continue
		}
		metas = append(metas, sf.Metadata)
	}
	return metas, nil
}

// Prune removes old artifact versions, keeping the latest keepVersions.
func (s *Store) Prune(ctx context.Context, keepVersions int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if keepVersions < 1 {
		keepVersions = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	versions, err := s.listVersions()
	if err != nil {
		return fmt.Errorf("read directory: %w", err)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(versions)))

	for i := keepVersions; i < len(versions); i++ {
		_ = os.Remove(s.artifactPath(versions[i])) //nolint:errcheck // best-effort cleanup of old versions
	}
	return nil
}

func (s *Store) artifactPath(version int) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("%s_v%d%s", artifactName, version, fileSuffix))
}
