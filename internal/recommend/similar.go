// Courserec - Content-Based Course Recommendation Service
// Copyright 2026 Recolab
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/recolab/courserec

package recommend

import "sort"

// SimilarTo returns the topN courses most similar to courseID, ranked by
// similarity score descending. The queried course itself is excluded. An
// unknown course id yields an empty slice, not an error: content lookups
// are best-effort by contract.
//
// Ties are broken by ascending matrix row so results are deterministic
// across runs.
func (a *Artifact) SimilarTo(courseID string, topN int) []SimilarCourse {
	row, ok := a.Index.RowOf(courseID)
	if !ok {
		return []SimilarCourse{}
	}
	if topN <= 0 {
		return []SimilarCourse{}
	}

	scores := a.Matrix[row]
	candidates := make([]int, 0, len(scores)-1)
	for j := range scores {
		if j == row {
			continue
		}
		candidates = append(candidates, j)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		si, sj := scores[candidates[i]], scores[candidates[j]]
		if si != sj {
			return si > sj
		}
		return candidates[i] < candidates[j]
	})

	if topN < len(candidates) {
		candidates = candidates[:topN]
	}

	out := make([]SimilarCourse, 0, len(candidates))
	for _, j := range candidates {
		c := a.Courses[j]
		out = append(out, SimilarCourse{
			CourseID:   c.ID,
			Title:      c.Title,
			Difficulty: c.Difficulty,
			Category:   c.Category,
			Score:      scores[j],
		})
	}
	return out
}
