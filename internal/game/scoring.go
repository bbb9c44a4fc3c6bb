package game

import "math"

// DefaultBaseScore is used when the lexicon has no score for a secret.
const DefaultBaseScore = 5.0

var attemptMultipliers = [...]float64{
	1: 1.50,
	2: 1.20,
	3: 1.02,
	4: 0.98,
	5: 0.80,
	6: 0.50,
}

// Multiplier returns the curve value for attemptsUsed clamped to [1, 6].
func Multiplier(attemptsUsed int) float64 {
	if attemptsUsed < 1 {
		attemptsUsed = 1
	}
	if attemptsUsed > 6 {
		attemptsUsed = 6
	}
	return attemptMultipliers[attemptsUsed]
}

// Score returns ceil(base * multiplier).
func Score(base float64, attemptsUsed int) int {
	product := base * Multiplier(attemptsUsed)
	// 10*1.02 is 10.200000000000001 in float64; round away the noise before ceil
	product = math.Round(product*1e9) / 1e9
	return int(math.Ceil(product))
}
