package game

import "errors"

var ErrLengthMismatch = errors.New("guess and secret differ in length")

// LetterStatus is the verdict for one position of a guess.
type LetterStatus string

const (
	Absent  LetterStatus = "absent"
	Present LetterStatus = "present"
	Correct LetterStatus = "correct"
)

func (s LetterStatus) rank() int {
	switch s {
	case Correct:
		return 3
	case Present:
		return 2
	case Absent:
		return 1
	}
	return 0
}

// Evaluate marks each letter of guess against secret. Both must be upper-case A-Z.
//
// Exact matches are marked first and consume their letter, so a duplicate in the guess is only
// Present while the secret still has an unmatched copy of that letter.
func Evaluate(guess, secret string) ([]LetterStatus, error) {
	if len(guess) != len(secret) {
		return nil, ErrLengthMismatch
	}

	var remaining [26]int
	for i := 0; i < len(secret); i++ {
		remaining[letterIndex(secret[i])]++
	}

	marks := make([]LetterStatus, len(guess))
	for i := 0; i < len(guess); i++ {
		if guess[i] == secret[i] {
			marks[i] = Correct
			remaining[letterIndex(guess[i])]--
		}
	}

	for i := 0; i < len(guess); i++ {
		if marks[i] == Correct {
			continue
		}
		idx := letterIndex(guess[i])
		if remaining[idx] > 0 {
			marks[i] = Present
			remaining[idx]--
		} else {
			marks[i] = Absent
		}
	}
	return marks, nil
}

// AllCorrect reports whether every mark is Correct.
func AllCorrect(marks []LetterStatus) bool {
	if len(marks) == 0 {
		return false
	}
	for _, m := range marks {
		if m != Correct {
			return false
		}
	}
	return true
}

// Pattern encodes marks as a base-3 number, used to bucket candidate words.
func Pattern(marks []LetterStatus) int {
	p := 0
	for _, m := range marks {
		p *= 3
		switch m {
		case Present:
			p++
		case Correct:
			p += 2
		}
	}
	return p
}

func letterIndex(b byte) int {
	if b >= 'a' && b <= 'z' {
		b -= 'a' - 'A'
	}
	if b < 'A' || b > 'Z' {
		return 0
	}
	return int(b - 'A')
}
