package similarity

import "math"

// Scorer computes a percentage similarity between two texts.
// A Scorer holds only read-only data and is safe for concurrent use.
type Scorer struct {
	stop StopWords
}

// NewScorer returns a Scorer that ignores the given stop words.
// A nil table disables stop-word filtering.
func NewScorer(stop StopWords) *Scorer {
	return &Scorer{stop: stop}
}

// Score returns the TF-IDF cosine similarity of a and b as a percentage in [0, 100],
// rounded to two decimal places. Texts without any weighted term score 0.
func (s *Scorer) Score(a, b string) float64 {
	model := Fit([][]string{Tokenize(a, s.stop), Tokenize(b, s.stop)})
	return toPercent(Cosine(model.Vectors[0], model.Vectors[1]))
}

func toPercent(cosine float64) float64 {
	if math.IsNaN(cosine) || cosine <= 0 {
		return 0
	}
	if cosine >= 1 {
		return 100
	}
	return math.Round(cosine*100*100) / 100
}
