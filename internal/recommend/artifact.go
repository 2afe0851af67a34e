// Courserec - Content-Based Course Recommendation Service
// Copyright 2026 Recolab
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/recolab/courserec

package recommend

import (
	"fmt"
	"sync/atomic"
)

// CourseIndex is the bijection between course ids and similarity matrix
// rows. It is built once at training time and never mutated; the serving
// path must always use it rather than re-deriving positions from table
// iteration order.
type CourseIndex struct {
	// IDs maps a matrix row to its course id.
	IDs []string

	// Rows maps a course id to its matrix row.
	Rows map[string]int
}

// NewCourseIndex builds the index from the training input order.
// Duplicate course ids are rejected: the index must be collision-free.
func NewCourseIndex(courses []Course) (CourseIndex, error) {
	idx := CourseIndex{
		IDs:  make([]string, len(courses)),
		Rows: make(map[string]int, len(courses)),
	}
	for i, c := range courses {
		if c.ID == "" {
			return CourseIndex{}, fmt.Errorf("course at position %d has empty id", i)
		}
		if prev, ok := idx.Rows[c.ID]; ok {
			return CourseIndex{}, fmt.Errorf("duplicate course id %q at positions %d and %d", c.ID, prev, i)
		}
		idx.IDs[i] = c.ID
		idx.Rows[c.ID] = i
	}
	return idx, nil
}

// RowOf returns the matrix row for a course id.
func (x CourseIndex) RowOf(courseID string) (int, bool) {
	row, ok := x.Rows[courseID]
	return row, ok
}

// Len returns the number of indexed courses.
func (x CourseIndex) Len() int {
	return len(x.IDs)
}

// Artifact is the immutable trained bundle: the frozen course and enrollment
// tables, the all-pairs similarity matrix, and the course-index bijection.
// It is produced by one training run and then read-only for the lifetime of
// a serving process; refreshing recommendations requires a full
// retrain-and-reload cycle.
//
// An Artifact is safe for unlimited concurrent readers.
type Artifact struct {
	Courses     []Course
	Enrollments []Enrollment
	Matrix      [][]float64
	Index       CourseIndex

	// VocabularySize records how many TF-IDF features the vectorizer
	// learned during training. Informational only.
	VocabularySize int
}

// Validate checks the structural invariants that every query relies on:
// the index is exhaustive and collision-free over the course table, the
// matrix is square with one row per course, and table positions agree with
// the index. A bundle that fails validation must never be served.
func (a *Artifact) Validate() error {
	n := len(a.Courses)

	if len(a.Index.IDs) != n || len(a.Index.Rows) != n {
		return fmt.Errorf("index covers %d/%d ids and %d/%d rows", len(a.Index.IDs), n, len(a.Index.Rows), n)
	}
	if len(a.Matrix) != n {
		return fmt.Errorf("matrix has %d rows for %d courses", len(a.Matrix), n)
	}

	for i, c := range a.Courses {
		if a.Index.IDs[i] != c.ID {
			return fmt.Errorf("index row %d maps to %q but course table holds %q", i, a.Index.IDs[i], c.ID)
		}
		row, ok := a.Index.Rows[c.ID]
		if !ok {
			return fmt.Errorf("course %q missing from index", c.ID)
		}
		if row != i {
			return fmt.Errorf("course %q indexed at row %d but stored at position %d", c.ID, row, i)
		}
		if len(a.Matrix[i]) != n {
			return fmt.Errorf("matrix row %d has %d columns for %d courses", i, len(a.Matrix[i]), n)
		}
	}

	return nil
}

// Course returns the course record for an id.
func (a *Artifact) Course(courseID string) (Course, bool) {
	row, ok := a.Index.RowOf(courseID)
	if !ok {
		return Course{}, false
	}
	return a.Courses[row], true
}

// Handle is an atomically swappable reference to the current Artifact.
// The serving path reads through a Handle so a retrain can publish a new
// model without locking in-flight queries; readers always see either the
// old or the new Artifact, never a partial state.
type Handle struct {
	p atomic.Pointer[Artifact]
}

// NewHandle creates a handle. The initial artifact may be nil when the
// serving process starts before a model exists.
func NewHandle(a *Artifact) *Handle {
	h := &Handle{}
	if a != nil {
		h.p.Store(a)
	}
	return h
}

// Current returns the artifact currently being served, or nil if no model
// has been loaded yet.
func (h *Handle) Current() *Artifact {
	return h.p.Load()
}

// Swap atomically replaces the served artifact.
func (h *Handle) Swap(a *Artifact) {
	h.p.Store(a)
}
