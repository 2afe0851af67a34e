// Courserec - Content-Based Course Recommendation Service
// Copyright 2026 Recolab
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/recolab/courserec

package recommend

import "fmt"

// QueryResult holds the answer to one Query. Exactly one of the two
// payload fields is populated, matching the query mode.
type QueryResult struct {
	Mode    QueryMode
	Similar []SimilarCourse
	User    *UserRecommendations
}

// Execute dispatches a Query against the artifact.
func (a *Artifact) Execute(q Query) (*QueryResult, error) {
	switch q.Mode {
	case QuerySimilarCourse:
		return &QueryResult{
			Mode:    q.Mode,
			Similar: a.SimilarTo(q.CourseID, q.TopN),
		}, nil
	case QueryByUser:
		recs, err := a.RecommendForUser(q.UserID, q.TopN)
		if err != nil {
			return nil, err
		}
		return &QueryResult{Mode: q.Mode, User: recs}, nil
	default:
		return nil, fmt.Errorf("unknown query mode %d", q.Mode)
	}
}
