package game

import "testing"

func TestScore(t *testing.T) {
	cases := []struct {
		base     float64
		attempts int
		want     int
	}{
		{5.0, 1, 8},
		{5.0, 2, 6},
		{5.0, 6, 3},
		{10.0, 3, 11},
		{10.0, 1, 15},
		{1.0, 6, 1},
		{5.0, 0, 8},
		{5.0, 7, 3},
		{5.0, -3, 8},
	}

	for _, tc := range cases {
		if got := Score(tc.base, tc.attempts); got != tc.want {
			t.Fatalf("Score(%v,%d) = %d; want %d", tc.base, tc.attempts, got, tc.want)
		}
	}
}

func TestMultiplierClamp(t *testing.T) {
	if Multiplier(0) != Multiplier(1) {
		t.Fatalf("Multiplier(0) = %v; want %v", Multiplier(0), Multiplier(1))
	}
	if Multiplier(7) != Multiplier(6) {
		t.Fatalf("Multiplier(7) = %v; want %v", Multiplier(7), Multiplier(6))
	}
	for n := 1; n < 6; n++ {
		if Multiplier(n) <= Multiplier(n+1) {
			t.Fatalf("Multiplier(%d) = %v not above Multiplier(%d) = %v", n, Multiplier(n), n+1, Multiplier(n+1))
		}
	}
}

func TestFrequencyScorer(t *testing.T) {
	s := NewFrequencyScorer([]int64{0, 9, 99999, 999})

	cases := []struct {
		freq int64
		want float64
	}{
		{0, 10},
		{99999, 1},
		{9, 10},
		{999, 5.5},
	}
	for _, tc := range cases {
		if got := s.Score(tc.freq); got != tc.want {
			t.Fatalf("Score(%d) = %v; want %v", tc.freq, got, tc.want)
		}
	}
}

func TestFrequencyScorerSingleValue(t *testing.T) {
	s := NewFrequencyScorer([]int64{50})
	if got := s.Score(50); got != 5.5 {
		t.Fatalf("Score(50) = %v; want 5.5", got)
	}
}
