// Courserec - Content-Based Course Recommendation Service
// Copyright 2026 Recolab
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/recolab/courserec

package recommend

import (
	"math"
	"sort"
	"strings"
)

// Vectorizer converts course feature blobs into L2-normalized TF-IDF
// vectors over a bounded vocabulary of unigrams and bigrams.
//
// The weighting matches the original pipeline's vectorizer:
//
//	weight(t, d) = count(t, d) * (ln((1 + N) / (1 + df(t))) + 1)
//
// followed by L2 normalization of each document vector. N is the number of
// documents and df(t) the number of documents containing term t.
type Vectorizer struct {
	// vocabulary maps a term to its column index. Columns are assigned in
	// ascending term order for reproducibility.
	vocabulary map[string]int

	// idf holds the smoothed inverse document frequency per column.
	idf []float64

	maxFeatures int
}

// NewVectorizer creates a vectorizer with the given vocabulary cap.
// A cap of zero or less applies the default of 5000 features.
func NewVectorizer(maxFeatures int) *Vectorizer {
	if maxFeatures <= 0 {
		maxFeatures = 5000
	}
	return &Vectorizer{maxFeatures: maxFeatures}
}

// SparseVector is a sparse document vector. Indices are strictly ascending
// column indices into the vectorizer's vocabulary; Values holds the matching
// weights. A document with no in-vocabulary terms is the zero vector
// (both slices empty).
type SparseVector struct {
	Indices []int
	Values  []float64
}

// Dot returns the dot product of two sparse vectors.
func (v SparseVector) Dot(o SparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(o.Indices) {
		switch {
		case v.Indices[i] == o.Indices[j]:
			sum += v.Values[i] * o.Values[j]
			i++
			j++
		case v.Indices[i] < o.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Norm returns the Euclidean norm of the vector.
func (v SparseVector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// tokenize splits a normalized blob into analysis terms: whitespace-split
// tokens of at least two characters with stop words removed, then unigrams
// plus bigrams over the filtered sequence. Bigrams therefore never span a
// removed stop word, matching the original vectorizer.
func tokenize(blob string) []string {
	fields := strings.Fields(blob)

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		if _, stop := englishStopWords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}

	terms := make([]string, 0, 2*len(tokens))
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

// Fit learns the vocabulary and IDF statistics from the given corpus.
// When the corpus contains more distinct terms than the feature cap, the
// most frequent terms (by corpus-wide occurrence count, ties broken by
// ascending term) are kept.
func (v *Vectorizer) Fit(docs []string) {
	termCounts := make(map[string]int)
	docFreq := make(map[string]int)

	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, term := range tokenize(doc) {
			termCounts[term]++
			if _, ok := seen[term]; !ok {
				docFreq[term]++
				seen[term] = struct{}{}
			}
		}
	}

	terms := make([]string, 0, len(termCounts))
	for term := range termCounts {
		terms = append(terms, term)
	}

	if len(terms) > v.maxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if termCounts[terms[i]] != termCounts[terms[j]] {
				return termCounts[terms[i]] > termCounts[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:v.maxFeatures]
	}

	// Columns in ascending term order for reproducible output.
	sort.Strings(terms)

	v.vocabulary = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	n := float64(len(docs))
	for col, term := range terms {
		v.vocabulary[term] = col
		v.idf[col] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}
}

// Transform converts a blob into its L2-normalized TF-IDF vector using the
// fitted vocabulary. Terms outside the vocabulary are ignored.
func (v *Vectorizer) Transform(doc string) SparseVector {
	counts := make(map[int]float64)
	for _, term := range tokenize(doc) {
		if col, ok := v.vocabulary[term]; ok {
			counts[col]++
		}
	}
	if len(counts) == 0 {
		return SparseVector{}
	}

	cols := make([]int, 0, len(counts))
	for col := range counts {
		cols = append(cols, col)
	}
	sort.Ints(cols)

	vec := SparseVector{
		Indices: cols,
		Values:  make([]float64, len(cols)),
	}
	var norm float64
	for i, col := range cols {
		w := counts[col] * v.idf[col]
		vec.Values[i] = w
		norm += w * w
	}

	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec.Values {
			vec.Values[i] /= norm
		}
	}
	return vec
}

// FitTransform fits the vectorizer on the corpus and returns the vector for
// every document, in input order.
func (v *Vectorizer) FitTransform(docs []string) []SparseVector {
	v.Fit(docs)
	vectors := make([]SparseVector, len(docs))
	for i, doc := range docs {
		vectors[i] = v.Transform(doc)
	}
	return vectors
}

// VocabularySize returns the number of learned features.
func (v *Vectorizer) VocabularySize() int {
	return len(v.vocabulary)
}
