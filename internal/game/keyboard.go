package game

// Keyboard is the best status seen so far for each guessed letter.
type Keyboard map[string]LetterStatus

// Apply folds one evaluated guess into the keyboard. A letter never moves to a lower status.
func (k Keyboard) Apply(guess string, marks []LetterStatus) {
	for i := 0; i < len(guess) && i < len(marks); i++ {
		letter := string(guess[i])
		if cur, ok := k[letter]; ok && cur.rank() >= marks[i].rank() {
			continue
		}
		k[letter] = marks[i]
	}
}

// BuildKeyboard evaluates every guess against secret and aggregates the result.
// Guesses whose length does not match the secret are skipped.
func BuildKeyboard(secret string, guesses []string) Keyboard {
	k := Keyboard{}
	for _, g := range guesses {
		marks, err := Evaluate(g, secret)
		if err != nil {
			continue
		}
		k.Apply(g, marks)
	}
	return k
}
