package similarity

import (
	"math"
	"sort"
)

// Vector is a dense term-weight vector aligned with a Model's Terms.
type Vector []float64

// Model is a TF-IDF model fitted jointly over a small corpus of tokenized documents.
type Model struct {
	// Terms is the joint vocabulary in sorted order.
	Terms []string
	// IDF holds the smoothed inverse document frequency per term.
	IDF []float64
	// Vectors holds one L2-normalized weight vector per input document.
	Vectors []Vector
}

// Fit builds a TF-IDF model over docs.
//
// Term frequency is the raw count. IDF is smoothed as ln((1+n)/(1+df)) + 1, where n
// is the number of documents and df the number of documents containing the term,
// so terms present in every document keep a weight of 1 rather than vanishing.
// Each document vector is then scaled to unit length; a document with no terms
// yields an all-zero vector.
func Fit(docs [][]string) *Model {
	counts := make([]map[string]int, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		counts[i] = make(map[string]int, len(doc))
		for _, tok := range doc {
			counts[i][tok]++
		}
		for term := range counts[i] {
			df[term]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	n := float64(len(docs))
	idf := make([]float64, len(terms))
	for j, term := range terms {
		idf[j] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	vectors := make([]Vector, len(docs))
	for i := range docs {
		vec := make(Vector, len(terms))
		for j, term := range terms {
			vec[j] = float64(counts[i][term]) * idf[j]
		}
		vectors[i] = normalize(vec)
	}

	return &Model{Terms: terms, IDF: idf, Vectors: vectors}
}

// Norm returns the Euclidean length of v.
func (v Vector) Norm() float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Cosine returns the cosine similarity of a and b. Vectors of different length are
// compared over their common prefix. If either vector has zero length the result is 0.
func Cosine(a, b Vector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}

	dot := 0.0
	for i := 0; i < len(a) && i < len(b); i++ {
		dot += a[i] * b[i]
	}
	return dot / (na * nb)
}

func normalize(v Vector) Vector {
	norm := v.Norm()
	if norm == 0 {
		return v
	}
	for i := range v {
		v[i] /= norm
	}
	return v
}
