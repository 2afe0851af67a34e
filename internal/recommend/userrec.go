// Courserec - Content-Based Course Recommendation Service
// Copyright 2026 Recolab
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/recolab/courserec

package recommend

import "sort"

// NeighborBreadth is how many similar courses are gathered per enrolled
// course before vote aggregation. It is deliberately wider than the
// typical response size so votes can accumulate across enrollments.
const NeighborBreadth = 10

// RecommendForUser aggregates neighbor votes across everything the user
// has taken: each enrolled course contributes its NeighborBreadth nearest
// neighbors, and candidates are ranked by how many enrolled courses voted
// for them. Courses the user already took are never recommended.
//
// A user with no enrollment rows gets a *NoEnrollmentsError.
//
// Determinism: enrolled courses are walked in first-appearance order of
// the enrollment table, vote ties are broken by first insertion into the
// scoreboard, and candidate metadata is frozen at first occurrence.
func (a *Artifact) RecommendForUser(userID string, topN int) (*UserRecommendations, error) {
	enrolled := make(map[string]struct{})
	var order []string
	for _, e := range a.Enrollments {
		if e.UserID != userID {
			continue
		}
		if _, seen := enrolled[e.CourseID]; seen {
			continue
		}
		enrolled[e.CourseID] = struct{}{}
		order = append(order, e.CourseID)
	}
	if len(order) == 0 {
		return nil, &NoEnrollmentsError{UserID: userID}
	}

	type candidate struct {
		rec   Recommendation
		first int
	}
	votes := make(map[string]*candidate)
	seq := 0

	for _, courseID := range order {
		for _, sim := range a.SimilarTo(courseID, NeighborBreadth) {
			if _, taken := enrolled[sim.CourseID]; taken {
				continue
			}
			if c, ok := votes[sim.CourseID]; ok {
				c.rec.Score++
				continue
			}
			votes[sim.CourseID] = &candidate{
				rec: Recommendation{
					CourseID: sim.CourseID,
					Title:    sim.Title,
					Category: sim.Category,
					Score:    1,
				},
				first: seq,
			}
			seq++
		}
	}

	ranked := make([]*candidate, 0, len(votes))
	for _, c := range votes {
		ranked = append(ranked, c)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].rec.Score != ranked[j].rec.Score {
			return ranked[i].rec.Score > ranked[j].rec.Score
		}
		return ranked[i].first < ranked[j].first
	})

	if topN < 0 {
		topN = 0
	}
	if topN < len(ranked) {
		ranked = ranked[:topN]
	}

	recs := make([]Recommendation, 0, len(ranked))
	for _, c := range ranked {
		recs = append(recs, c.rec)
	}
	return &UserRecommendations{UserID: userID, Recommendations: recs}, nil
}
