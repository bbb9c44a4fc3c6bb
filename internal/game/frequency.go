package game

import "math"

const (
	MinBaseScore = 1.0
	MaxBaseScore = 10.0
)

// FrequencyScorer maps corpus frequencies to base scores. Common words score low, rare words high,
// on a log10 scale between the smallest and largest matched frequency.
type FrequencyScorer struct {
	logMin float64
	logMax float64
}

// NewFrequencyScorer builds a scorer from the observed frequency range. Non-positive values are ignored.
func NewFrequencyScorer(freqs []int64) FrequencyScorer {
	var lo, hi int64
	for _, f := range freqs {
		if f <= 0 {
			continue
		}
		if lo == 0 || f < lo {
			lo = f
		}
		if f > hi {
			hi = f
		}
	}
	return FrequencyScorer{
		logMin: math.Log10(float64(lo) + 1),
		logMax: math.Log10(float64(hi) + 1),
	}
}

// Score returns a base score in [1, 10] with one decimal. Words without a frequency score 10.
func (s FrequencyScorer) Score(freq int64) float64 {
	if freq <= 0 {
		return MaxBaseScore
	}
	normalized := 0.5
	if s.logMax != s.logMin {
		normalized = 1 - (math.Log10(float64(freq)+1)-s.logMin)/(s.logMax-s.logMin)
	}
	normalized = math.Max(0, math.Min(1, normalized))
	score := MinBaseScore + normalized*(MaxBaseScore-MinBaseScore)
	return math.Round(score*10) / 10
}
