// Courserec - Content-Based Course Recommendation Service
// Copyright 2026 Recolab
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/recolab/courserec

package recommend

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes a free-text course field: lower-cases the input,
// replaces every character that is not a lowercase ASCII letter, digit, or
// whitespace with a space, collapses consecutive whitespace to a single
// space, and trims. A missing field normalizes to the empty string.
//
// The function is pure and total; it never fails.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	pendingSpace := false
	for _, r := range s {
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
			continue
		}
		// Punctuation, symbols, and whitespace all act as separators.
		pendingSpace = true
	}

	return b.String()
}

// FeatureBlob builds the combined text feature for a course: the normalized
// title, description, skill tags, and difficulty joined with single spaces.
// The field order is fixed because it determines which cross-field bigrams the
// vectorizer sees, so changing it changes the trained model.
func FeatureBlob(c Course) string {
	return strings.Join([]string{
		Normalize(c.Title),
		Normalize(c.Description),
		Normalize(c.SkillTags),
		Normalize(c.Difficulty),
	}, " ")
}
