// Courserec - Content-Based Course Recommendation Service
// Copyright 2026 Recolab
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/recolab/courserec

package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/recolab/courserec/internal/recommend"
)

func trainedArtifact(t *testing.T) *recommend.Artifact {
	t.Helper()
	courses := []recommend.Course{
		{ID: "C1", Title: "Python Basics", Description: "Learn Python programming", SkillTags: "python", Difficulty: "Beginner", Category: "programming"},
		{ID: "C2", Title: "Advanced Python", Description: "Python patterns in depth", SkillTags: "python", Difficulty: "Advanced", Category: "programming"},
	}
	enrollments := []recommend.Enrollment{{UserID: "U1", CourseID: "C1"}}

	a, err := recommend.BuildArtifact(context.Background(), courses, enrollments, recommend.DefaultModelConfig())
	if err != nil {
		t.Fatalf("BuildArtifact: %v", err)
	}
	return a
}

func TestStoreRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	original := trainedArtifact(t)
	meta, err := store.Save(context.Background(), original, ArtifactMetadata{
		TrainedAt:          time.Now(),
		VocabularySize:     42,
		TrainingDurationMS: 7,
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if meta.Version != 1 {
		t.Errorf("first save version = %d, want 1", meta.Version)
	}
	if meta.CourseCount != 2 || meta.EnrollmentCount != 1 {
		t.Errorf("metadata counts = %d/%d, want 2/1", meta.CourseCount, meta.EnrollmentCount)
	}
	if meta.Checksum == "" || meta.SizeBytes == 0 {
		t.Error("metadata missing checksum or size")
	}

	loaded, loadedMeta, err := store.Load(context.Background(), 0)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loadedMeta.Version != 1 {
		t.Errorf("loaded version = %d, want 1", loadedMeta.Version)
	}
	if !reflect.DeepEqual(loaded.Matrix, original.Matrix) {
		t.Error("matrix changed across save/load")
	}
	if !reflect.DeepEqual(loaded.Courses, original.Courses) {
		t.Error("courses changed across save/load")
	}
	if !reflect.DeepEqual(loaded.Index.IDs, original.Index.IDs) {
		t.Error("index changed across save/load")
	}
}

func TestStoreVersioning(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	a := trainedArtifact(t)
	for want := 1; want <= 3; want++ {
		meta, err := store.Save(context.Background(), a, ArtifactMetadata{})
		if err != nil {
			t.Fatalf("Save %d: %v", want, err)
		}
		if meta.Version != want {
			t.Errorf("version = %d, want %d", meta.Version, want)
		}
	}
	if got := store.LatestVersion(); got != 3 {
		t.Errorf("LatestVersion() = %d, want 3", got)
	}

	// An explicit version is honored.
	_, meta, err := store.Load(context.Background(), 2)
	if err != nil {
		t.Fatalf("Load version 2: %v", err)
	}
	if meta.Version != 2 {
		t.Errorf("loaded version = %d, want 2", meta.Version)
	}
}

func TestStoreRescanOnOpen(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	a := trainedArtifact(t)
	if _, err := store.Save(context.Background(), a, ArtifactMetadata{}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := store.Save(context.Background(), a, ArtifactMetadata{}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reopened, err := NewStore(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := reopened.LatestVersion(); got != 2 {
		t.Errorf("LatestVersion() after reopen = %d, want 2", got)
	}
}

func TestStoreLoadEmpty(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if _, _, err := store.Load(context.Background(), 0); !errors.Is(err, ErrNoArtifact) {
		t.Errorf("Load on empty store = %v, want ErrNoArtifact", err)
	}
	if _, _, err := store.Load(context.Background(), 7); !errors.Is(err, ErrNoArtifact) {
		t.Errorf("Load of missing version = %v, want ErrNoArtifact", err)
	}
}

func TestStoreDetectsCorruption(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if _, err := store.Save(context.Background(), trainedArtifact(t), ArtifactMetadata{}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	path := filepath.Join(dir, "artifact_v1.gob.gz")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read artifact file: %v", err)
	}
	// Flip a byte near the end of the payload.
	data[len(data)-10] ^= 0xFF
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write corrupted file: %v", err)
	}

	if _, _, err := store.Load(context.Background(), 1); err == nil {
		t.Error("Load accepted a corrupted artifact file")
	}
}

func TestStoreList(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	a := trainedArtifact(t)
	for i := 0; i < 3; i++ {
		if _, err := store.Save(context.Background(), a, ArtifactMetadata{}); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	metas, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(metas) != 3 {
		t.Fatalf("List returned %d entries, want 3", len(metas))
	}
	for i, want := range []int{3, 2, 1} {
		if metas[i].Version != want {
			t.Errorf("List[%d].Version = %d, want %d", i, metas[i].Version, want)
		}
	}
}

func TestStorePrune(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	a := trainedArtifact(t)
	for i := 0; i < 4; i++ {
		if _, err := store.Save(context.Background(), a, ArtifactMetadata{}); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	if err := store.Prune(context.Background(), 2); err != nil {
		t.Fatalf("Prune: %v", err)
	}

	metas, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("after prune %d versions remain, want 2", len(metas))
	}
	if metas[0].Version != 4 || metas[1].Version != 3 {
		t.Errorf("prune kept versions %d,%d, want 4,3", metas[0].Version, metas[1].Version)
	}

	// Latest must still load.
	if _, _, err := store.Load(context.Background(), 0); err != nil {
		t.Errorf("Load latest after prune: %v", err)
	}
}

func TestStoreRejectsInvalidArtifact(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	bad := trainedArtifact(t)
	bad.Matrix = bad.Matrix[:1]
	if _, err := store.Save(context.Background(), bad, ArtifactMetadata{}); err == nil {
		t.Error("Save accepted an invalid artifact")
	}
	if got := store.LatestVersion(); got != 0 {
		t.Errorf("failed save bumped version to %d", got)
	}
}

func TestParseArtifactFilename(t *testing.T) {
	tests := []struct {
		name    string
		version int
		ok      bool
	}{
		{"artifact_v1.gob.gz", 1, true},
		{"artifact_v12.gob.gz", 12, true},
		{"artifact_v0.gob.gz", 0, false},
		{"artifact_vx.gob.gz", 0, false},
		{"artifact_v1.gob", 0, false},
		{"other_v1.gob.gz", 0, false},
		{"artifact_v1.gob.gz.tmp", 0, false},
	}
	for _, tt := range tests {
		v, ok := parseArtifactFilename(tt.name)
		if v != tt.version || ok != tt.ok {
			t.Errorf("parseArtifactFilename(%q) = (%d, %v), want (%d, %v)", tt.name, v, ok, tt.version, tt.ok)
		}
	}
}
