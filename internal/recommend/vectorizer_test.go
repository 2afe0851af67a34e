// Courserec - Content-Based Course Recommendation Service
// Copyright 2026 Recolab
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/recolab/courserec

package recommend

import (
	"math"
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		blob string
		want []string
	}{
		{
			name: "unigrams and bigrams",
			blob: "machine learning basics",
			want: []string{"machine", "learning", "basics", "machine learning", "learning basics"},
		},
		{
			name: "stop words removed before bigrams",
			blob: "intro to python",
			want: []string{"intro", "python", "intro python"},
		},
		{
			name: "single char tokens dropped",
			blob: "c programming",
			want: []string{"programming"},
		},
		{
			name: "empty",
			blob: "",
			want: []string{},
		},
		{
			name: "all stop words",
			blob: "the and of",
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenize(tt.blob)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("tokenize(%q) = %v, want %v", tt.blob, got, tt.want)
			}
		})
	}
}

func TestVectorizerIDF(t *testing.T) {
	v := NewVectorizer(0)
	docs := []string{
		"python programming",
		"python scripting",
	}
	v.Fit(docs)

	// "python" appears in both docs, "programming" in one.
	colPython, ok := v.vocabulary["python"]
	if !ok {
		t.Fatal("vocabulary missing term python")
	}
	colProg, ok := v.vocabulary["programming"]
	if !ok {
		t.Fatal("vocabulary missing term programming")
	}

	wantPython := math.Log(3.0/3.0) + 1
	wantProg := math.Log(3.0/2.0) + 1
	if got := v.idf[colPython]; math.Abs(got-wantPython) > 1e-12 {
		t.Errorf("idf(python) = %v, want %v", got, wantPython)
	}
	if got := v.idf[colProg]; math.Abs(got-wantProg) > 1e-12 {
		t.Errorf("idf(programming) = %v, want %v", got, wantProg)
	}
}

func TestVectorizerTransformL2Normalized(t *testing.T) {
	v := NewVectorizer(0)
	docs := []string{
		"data analysis with python",
		"data visualization",
		"web development",
	}
	vectors := v.FitTransform(docs)

	for i, vec := range vectors {
		if len(vec.Indices) == 0 {
			t.Fatalf("doc %d produced an empty vector", i)
		}
		if norm := vec.Norm(); math.Abs(norm-1.0) > 1e-9 {
			t.Errorf("doc %d norm = %v, want 1.0", i, norm)
		}
	}
}

func TestVectorizerTransformUnknownTerms(t *testing.T) {
	v := NewVectorizer(0)
	v.Fit([]string{"python programming"})

	vec := v.Transform("quantum chemistry")
	if len(vec.Indices) != 0 || len(vec.Values) != 0 {
		t.Errorf("out-of-vocabulary doc produced %v, want empty vector", vec)
	}
	if vec.Norm() != 0 {
		t.Errorf("zero vector norm = %v, want 0", vec.Norm())
	}
}

func TestVectorizerMaxFeatures(t *testing.T) {
	v := NewVectorizer(2)
	// "common" occurs in all three docs; "shared" in two; the rest once.
	docs := []string{
		"common shared alpha",
		"common shared beta",
		"common gamma delta",
	}
	v.Fit(docs)

	if got := v.VocabularySize(); got != 2 {
		t.Fatalf("VocabularySize() = %d, want 2", got)
	}
	if _, ok := v.vocabulary["common"]; !ok {
		t.Error("vocabulary dropped the most frequent term")
	}
	// "common shared" and "shared" both occur twice; the tie breaks on
	// ascending term order.
	if _, ok := v.vocabulary["common shared"]; !ok {
		t.Error("vocabulary dropped the second slot tie winner")
	}
}

func TestVectorizerDefaultCap(t *testing.T) {
	if v := NewVectorizer(0); v.maxFeatures != 5000 {
		t.Errorf("maxFeatures = %d, want 5000", v.maxFeatures)
	}
	if v := NewVectorizer(-3); v.maxFeatures != 5000 {
		t.Errorf("maxFeatures = %d, want 5000", v.maxFeatures)
	}
}

func TestSparseVectorDot(t *testing.T) {
	a := SparseVector{Indices: []int{0, 2, 5}, Values: []float64{1, 2, 3}}
	b := SparseVector{Indices: []int{2, 3, 5}, Values: []float64{4, 5, 6}}

	want := 2.0*4 + 3.0*6
	if got := a.Dot(b); got != want {
		t.Errorf("Dot = %v, want %v", got, want)
	}
	if got := b.Dot(a); got != want {
		t.Errorf("Dot is not symmetric: %v vs %v", got, want)
	}

	empty := SparseVector{}
	if got := a.Dot(empty); got != 0 {
		t.Errorf("Dot with empty vector = %v, want 0", got)
	}
}
