package main

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `# word counts
crane 1200
SLATE,800
crane,1500
toolong 10
ab1cd 5
stair	abc
adieu
`
	words, skipped, err := parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if skipped != 3 {
		t.Fatalf("skipped = %d; want 3", skipped)
	}
	want := map[string]int64{"CRANE": 1500, "SLATE": 800, "ADIEU": 0}
	if len(words) != len(want) {
		t.Fatalf("words = %+v; want %d entries", words, len(want))
	}
	for _, w := range words {
		if f, ok := want[w.Text]; !ok || f != w.Frequency {
			t.Fatalf("word %s freq %d; want %d", w.Text, w.Frequency, f)
		}
	}
}
