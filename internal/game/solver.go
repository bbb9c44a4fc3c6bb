package game

import (
	"math"
	"sort"
)

// Feedback is one evaluated guess, used to narrow the candidate set.
type Feedback struct {
	Guess string
	Marks []LetterStatus
}

// FilterCandidates keeps the words that would have produced every recorded feedback.
func FilterCandidates(candidates []string, history []Feedback) []string {
	out := make([]string, 0, len(candidates))
next:
	for _, c := range candidates {
		for _, fb := range history {
			marks, err := Evaluate(fb.Guess, c)
			if err != nil || Pattern(marks) != Pattern(fb.Marks) {
				continue next
			}
		}
		out = append(out, c)
	}
	return out
}

// Entropy is the expected information in bits of guessing word against candidates.
func Entropy(word string, candidates []string) float64 {
	if len(candidates) == 0 {
		return 0
	}
	buckets := make(map[int]int)
	for _, c := range candidates {
		marks, err := Evaluate(word, c)
		if err != nil {
			continue
		}
		buckets[Pattern(marks)]++
	}
	total := float64(len(candidates))
	var h float64
	for _, n := range buckets {
		p := float64(n) / total
		h -= p * math.Log2(p)
	}
	return h
}

// RankedGuess is a guess with its entropy against the candidate set.
type RankedGuess struct {
	Word    string  `json:"word"`
	Entropy float64 `json:"entropy"`
}

// BestGuesses ranks pool by entropy against candidates, highest first, and returns the top n.
// Ties prefer words that are still candidates, then alphabetical order.
func BestGuesses(pool, candidates []string, n int) []RankedGuess {
	isCandidate := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		isCandidate[c] = true
	}
	ranked := make([]RankedGuess, 0, len(pool))
	for _, w := range pool {
		ranked = append(ranked, RankedGuess{Word: w, Entropy: Entropy(w, candidates)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Entropy != ranked[j].Entropy {
			return ranked[i].Entropy > ranked[j].Entropy
		}
		ci, cj := isCandidate[ranked[i].Word], isCandidate[ranked[j].Word]
		if ci != cj {
			return ci
		}
		return ranked[i].Word < ranked[j].Word
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// SamplePool returns at most n words spread evenly over words.
func SamplePool(words []string, n int) []string {
	if n <= 0 || len(words) <= n {
		return words
	}
	step := len(words) / n
	out := make([]string, 0, n)
	for i := 0; i < len(words) && len(out) < n; i += step {
		out = append(out, words[i])
	}
	return out
}
