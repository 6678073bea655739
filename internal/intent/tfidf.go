package intent

import (
	"math"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// termSplitRe strips everything outside word characters and the Han
// range; whatever remains is split on the resulting whitespace.
var termSplitRe = regexp.MustCompile(`[^\w\p{Han}]+`)

// Vector is a sparse TF-IDF vector. Absent terms weigh zero.
type Vector map[string]float64

// Tokenize lower-cases text, folds it to NFKC (full-width punctuation and
// letters are common in catalog entries), and splits it into terms.
func Tokenize(text string) []string {
	text = norm.NFKC.String(text)
	text = strings.ToLower(text)
	text = termSplitRe.ReplaceAllString(text, " ")
	return strings.Fields(text)
}

// BuildModel computes one TF-IDF vector per document over exactly the
// supplied snapshot. The caller must include the live query as one of the
// documents; IDF is never carried over from a previous call, so the query
// cannot pollute a shared model.
func BuildModel(docs [][]string) []Vector {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool, len(doc))
		for _, term := range doc {
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
	}

	total := float64(len(docs))
	idf := make(map[string]float64, len(df))
	for term, count := range df {
		idf[term] = math.Log(total / float64(count))
	}

	vectors := make([]Vector, len(docs))
	for i, doc := range docs {
		vec := make(Vector)
		if len(doc) > 0 {
			counts := make(map[string]int, len(doc))
			for _, term := range doc {
				counts[term]++
			}
			docLen := float64(len(doc))
			for term, count := range counts {
				vec[term] = float64(count) / docLen * idf[term]
			}
		}
		vectors[i] = vec
	}
	return vectors
}

// Cosine computes cosine similarity between two sparse vectors. Returns 0
// when either norm is zero, so the result is always in [0, 1] and never
// NaN.
func Cosine(a, b Vector) float64 {
	var dot, normA, normB float64
	for term, av := range a {
		normA += av * av
		if bv, ok := b[term]; ok {
			dot += av * bv
		}
	}
	for _, bv := range b {
		normB += bv * bv
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim > 1 {
		sim = 1
	}
	return sim
}
