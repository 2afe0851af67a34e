// Courserec - Content-Based Course Recommendation Service
// Copyright 2026 Recolab
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/recolab/courserec

package recommend

import (
	"strings"
	"testing"
)

func TestNewCourseIndex(t *testing.T) {
	courses := testCourses()
	idx, err := NewCourseIndex(courses)
	if err != nil {
		t.Fatalf("NewCourseIndex: %v", err)
	}
	if idx.Len() != len(courses) {
		t.Fatalf("Len() = %d, want %d", idx.Len(), len(courses))
	}
	for i, c := range courses {
		row, ok := idx.RowOf(c.ID)
		if !ok {
			t.Fatalf("RowOf(%q) missing", c.ID)
		}
		if row != i {
			t.Errorf("RowOf(%q) = %d, want %d", c.ID, row, i)
		}
		if idx.IDs[row] != c.ID {
			t.Errorf("IDs[%d] = %q, want %q", row, idx.IDs[row], c.ID)
		}
	}
	if _, ok := idx.RowOf("missing"); ok {
		t.Error("RowOf reported a row for an unknown id")
	}
}

func TestNewCourseIndexRejectsDuplicates(t *testing.T) {
	_, err := NewCourseIndex([]Course{{ID: "C1"}, {ID: "C2"}, {ID: "C1"}})
	if err == nil {
		t.Fatal("expected error for duplicate course id")
	}
	if !strings.Contains(err.Error(), "C1") {
		t.Errorf("error %q does not name the duplicate id", err)
	}
}

func TestNewCourseIndexRejectsEmptyID(t *testing.T) {
	if _, err := NewCourseIndex([]Course{{ID: ""}}); err == nil {
		t.Fatal("expected error for empty course id")
	}
}

func TestArtifactValidate(t *testing.T) {
	valid := mustBuild(t, testCourses(), testEnrollments())

	tests := []struct {
		name   string
		mutate func(a *Artifact)
	}{
		{
			name: "matrix row count mismatch",
			mutate: func(a *Artifact) {
				a.Matrix = a.Matrix[:2]
			},
		},
		{
			name: "matrix column count mismatch",
			mutate: func(a *Artifact) {
				a.Matrix[1] = a.Matrix[1][:1]
			},
		},
		{
			name: "index id count mismatch",
			mutate: func(a *Artifact) {
				a.Index.IDs = a.Index.IDs[:2]
			},
		},
		{
			name: "index disagrees with table order",
			mutate: func(a *Artifact) {
				ids := make([]string, len(a.Index.IDs))
				copy(ids, a.Index.IDs)
				ids[0], ids[1] = ids[1], ids[0]
				a.Index.IDs = ids
			},
		},
		{
			name: "index row out of order",
			mutate: func(a *Artifact) {
				rows := make(map[string]int, len(a.Index.Rows))
				for k, v := range a.Index.Rows {
					rows[k] = v
				}
				rows[a.Courses[0].ID] = 2
				rows[a.Courses[2].ID] = 0
				a.Index.Rows = rows
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustBuild(t, testCourses(), testEnrollments())
			if err := a.Validate(); err != nil {
				t.Fatalf("fresh artifact invalid: %v", err)
			}
			tt.mutate(a)
			if err := a.Validate(); err == nil {
				t.Error("Validate accepted a corrupted artifact")
			}
		})
	}

	if err := valid.Validate(); err != nil {
		t.Errorf("valid artifact rejected: %v", err)
	}
}

func TestArtifactCourseLookup(t *testing.T) {
	a := mustBuild(t, testCourses(), nil)

	c, ok := a.Course("C2")
	if !ok {
		t.Fatal("Course(C2) not found")
	}
	if c.Title != "Advanced Python" {
		t.Errorf("Course(C2).Title = %q", c.Title)
	}
	if _, ok := a.Course("nope"); ok {
		t.Error("Course returned a record for an unknown id")
	}
}

func TestHandleSwap(t *testing.T) {
	h := NewHandle(nil)
	if h.Current() != nil {
		t.Fatal("empty handle returned a non-nil artifact")
	}

	first := mustBuild(t, testCourses(), nil)
	h.Swap(first)
	if h.Current() != first {
		t.Fatal("Current() did not return the swapped-in artifact")
	}

	second := mustBuild(t, testCourses(), testEnrollments())
	h.Swap(second)
	if h.Current() != second {
		t.Fatal("Current() did not observe the second swap")
	}
}
