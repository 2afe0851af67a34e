// Courserec - Content-Based Course Recommendation Service
// Copyright 2026 Recolab
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/recolab/courserec

package recommend

import "fmt"

// Course is a single catalog entry. Courses are immutable once loaded; the
// full course set is a frozen input to a training run.
type Course struct {
	// ID is the unique course identifier.
	ID string `json:"course_id"`

	// Title is the course title.
	Title string `json:"title"`

	// Description is the free-text course description.
	Description string `json:"description"`

	// SkillTags is a free-text list of skills covered by the course.
	SkillTags string `json:"skill_tags"`

	// Difficulty is the free-text difficulty label (e.g. "Beginner").
	Difficulty string `json:"difficulty"`

	// Category is the catalog category (e.g. "programming").
	Category string `json:"category"`
}

// Enrollment records that a user took a course. Enrollments are historical
// facts: immutable, many-to-many, loaded once per training run.
type Enrollment struct {
	UserID   string `json:"user_id"`
	CourseID string `json:"course_id"`
}

// SimilarCourse is one entry of a similarity query result, carrying enough
// metadata for a caller to render a course card.
type SimilarCourse struct {
	CourseID   string  `json:"course_id"`
	Title      string  `json:"title"`
	Difficulty string  `json:"difficulty"`
	Category   string  `json:"category"`
	Score      float64 `json:"score"`
}

// Recommendation is one entry of a user recommendation result. Score is the
// aggregate vote count: the number of enrolled courses whose neighborhoods
// contained this candidate.
type Recommendation struct {
	CourseID string `json:"course_id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Score    int    `json:"score"`
}

// UserRecommendations is the result of a user recommendation query.
type UserRecommendations struct {
	UserID          string           `json:"user_id"`
	Recommendations []Recommendation `json:"recommendations"`
}

// QueryMode selects which of the two query variants a request carries.
type QueryMode int

const (
	// QuerySimilarCourse asks for courses similar to a given course.
	QuerySimilarCourse QueryMode = iota
	// QueryByUser asks for recommendations derived from a user's history.
	QueryByUser
)

// String returns a human-readable mode name.
func (m QueryMode) String() string {
	switch m {
	case QuerySimilarCourse:
		return "similar_course"
	case QueryByUser:
		return "by_user"
	default:
		return "unknown"
	}
}

// Query is a validated recommendation request. Exactly one of CourseID and
// UserID is set, as selected by Mode; the API boundary is responsible for
// rejecting requests that supply both or neither before a Query is built.
type Query struct {
	Mode     QueryMode
	CourseID string
	UserID   string
	TopN     int
}

// NoEnrollmentsError reports that a user has no enrollment history. This is
// an expected state for new users, not a failure of the engine.
type NoEnrollmentsError struct {
	UserID string
}

// Error implements the error interface, matching the serving contract's
// message shape.
func (e *NoEnrollmentsError) Error() string {
	return fmt.Sprintf("no enrollments found for user %s", e.UserID)
}
