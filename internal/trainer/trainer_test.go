// Courserec - Content-Based Course Recommendation Service
// Copyright 2026 Recolab
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/recolab/courserec

package trainer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/recolab/courserec/internal/recommend/storage"
)

const coursesCSV = `course_id,title,description,skill_tags,difficulty,category
C1,Intro to Python,Learn Python basics,python programming,Beginner,Programming
C2,Advanced Python,Deep Python internals,python advanced,Advanced,Programming
C3,Watercolor Painting,Paint with watercolors,art painting,Beginner,Art
`

const enrollmentsCSV = `user_id,course_id
U1,C1
U1,C3
U2,C2
`

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func testConfig(t *testing.T) (Config, *storage.Store) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewStore(filepath.Join(dir, "models"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return Config{
		CoursesPath:     writeFixture(t, dir, "courses.csv", coursesCSV),
		EnrollmentsPath: writeFixture(t, dir, "enrollments.csv", enrollmentsCSV),
		KeepVersions:    2,
	}, store
}

func TestRunProducesVersionedArtifact(t *testing.T) {
	cfg, store := testConfig(t)

	res, err := Run(context.Background(), store, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Metadata.Version != 1 {
		t.Errorf("version = %d, want 1", res.Metadata.Version)
	}
	if res.Metadata.CourseCount != 3 {
		t.Errorf("course count = %d, want 3", res.Metadata.CourseCount)
	}
	if res.Metadata.EnrollmentCount != 3 {
		t.Errorf("enrollment count = %d, want 3", res.Metadata.EnrollmentCount)
	}
	if res.Metadata.VocabularySize == 0 {
		t.Error("vocabulary size not recorded")
	}
	if res.Artifact == nil || len(res.Artifact.Matrix) != 3 {
		t.Fatalf("artifact matrix rows = %d, want 3", len(res.Artifact.Matrix))
	}

	loaded, meta, err := store.Load(context.Background(), 0)
	if err != nil {
		t.Fatalf("Load after Run: %v", err)
	}
	if meta.Version != 1 {
		t.Errorf("stored version = %d, want 1", meta.Version)
	}
	if _, ok := loaded.Course("C2"); !ok {
		t.Error("stored artifact missing course C2")
	}
}

func TestRunPrunesOldVersions(t *testing.T) {
	cfg, store := testConfig(t)

	for i := 0; i < 3; i++ {
		if _, err := Run(context.Background(), store, cfg, zerolog.Nop()); err != nil {
			t.Fatalf("Run %d: %v", i+1, err)
		}
	}

	if got := store.LatestVersion(); got != 3 {
		t.Fatalf("latest version = %d, want 3", got)
	}
	versions, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(versions) != 2 {
		t.Errorf("retained versions = %d, want 2 (keep_versions)", len(versions))
	}
}

func TestRunMissingCoursesFile(t *testing.T) {
	cfg, store := testConfig(t)
	cfg.CoursesPath = filepath.Join(t.TempDir(), "missing.csv")

	if _, err := Run(context.Background(), store, cfg, zerolog.Nop()); err == nil {
		t.Fatal("expected error for missing courses file")
	}
}

func TestRunMalformedEnrollments(t *testing.T) {
	cfg, store := testConfig(t)
	cfg.EnrollmentsPath = writeFixture(t, t.TempDir(), "bad.csv", "who,what\nU1,C1\n")

	if _, err := Run(context.Background(), store, cfg, zerolog.Nop()); err == nil {
		t.Fatal("expected error for enrollment CSV missing required columns")
	}
}
