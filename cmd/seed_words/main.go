package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"wordle_duel/internal/db"
	"wordle_duel/internal/domain"
	"wordle_duel/internal/game"
	"wordle_duel/internal/repository"
	"wordle_duel/internal/service"

	"github.com/joho/godotenv"
)

// seed_words loads a frequency list ("WORD COUNT" or "WORD,COUNT" per line) into the words table.
// Base scores are derived from the counts of the whole file.
func main() {
	path := flag.String("file", "", "frequency list to load (default: stdin)")
	dryRun := flag.Bool("dry-run", false, "print scored words without writing")
	flag.Parse()

	in := io.Reader(os.Stdin)
	if *path != "" {
		f, err := os.Open(*path)
		if err != nil {
			log.Fatalf("open %s: %v", *path, err)
		}
		defer f.Close()
		in = f
	}

	words, skipped, err := parse(in)
	if err != nil {
		log.Fatalf("parse: %v", err)
	}
	if len(words) == 0 {
		log.Fatal("no valid words found")
	}

	freqs := make([]int64, len(words))
	for i, w := range words {
		freqs[i] = w.Frequency
	}
	scorer := game.NewFrequencyScorer(freqs)
	for i := range words {
		words[i].Score = scorer.Score(words[i].Frequency)
	}

	if *dryRun {
		for _, w := range words {
			fmt.Printf("%s\t%d\t%.1f\n", w.Text, w.Frequency, w.Score)
		}
		log.Printf("%d words, %d lines skipped", len(words), skipped)
		return
	}

	_ = godotenv.Load()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}
	pool := db.Connect(dsn, 4)
	defer pool.Close()

	ctx := context.Background()
	wordRepo := repository.NewWordRepository(pool)
	if err := wordRepo.Upsert(ctx, words); err != nil {
		log.Fatalf("upsert words: %v", err)
	}

	rdb := db.ConnectRedis(os.Getenv("REDIS_ADDR"), os.Getenv("REDIS_PASSWORD"), 0)
	if rdb != nil {
		defer rdb.Close()
		texts := make([]string, len(words))
		for i, w := range words {
			texts[i] = w.Text
		}
		if err := service.NewLexicon(wordRepo, rdb, service.LexiconConfig{}).Forget(ctx, texts); err != nil {
			log.Printf("lexicon cache not cleared: %v", err)
		}
	}

	log.Printf("seeded %d words, %d lines skipped", len(words), skipped)
}

// parse reads one word per line with an optional count. Duplicate words keep the highest count.
func parse(r io.Reader) ([]domain.Word, int, error) {
	index := make(map[string]int)
	var (
		words   []domain.Word
		skipped int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
		text := domain.NormalizeWord(fields[0])
		if domain.ValidateWord(text) != nil {
			skipped++
			continue
		}
		var freq int64
		if len(fields) > 1 {
			n, err := strconv.ParseInt(fields[1], 10, 64)
			if err != nil || n < 0 {
				skipped++
				continue
			}
			freq = n
		}

		if i, ok := index[text]; ok {
			if freq > words[i].Frequency {
				words[i].Frequency = freq
			}
			continue
		}
		index[text] = len(words)
		words = append(words, domain.Word{Text: text, Frequency: freq})
	}
	return words, skipped, sc.Err()
}
