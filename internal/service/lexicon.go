package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"wordle_duel/internal/db"
	"wordle_duel/internal/domain"
	"wordle_duel/internal/game"
	"wordle_duel/internal/logger"
	"wordle_duel/internal/repository"

	"github.com/jackc/pgx/v5"
	redis "github.com/redis/go-redis/v9"
)

var ErrLexiconEmpty = errors.New("lexicon has no eligible words")

type LexiconConfig struct {
	MinFrequency     int64
	RecentWindowDays int
	ChoiceCount      int
	CacheTTL         time.Duration
}

// Lexicon picks secrets, validates guesses and resolves base scores.
// Membership lookups go through Redis when a client is configured; the words table stays authoritative.
type Lexicon struct {
	words *repository.WordRepository
	cache *redis.Client
	cfg   LexiconConfig

	mu        sync.Mutex
	gameWords []string
	loadedAt  time.Time
}

func NewLexicon(words *repository.WordRepository, cache *redis.Client, cfg LexiconConfig) *Lexicon {
	if cfg.ChoiceCount <= 0 {
		cfg.ChoiceCount = 12
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	return &Lexicon{words: words, cache: cache, cfg: cfg}
}

func wordCacheKey(word string) string {
	return "lexicon:word:" + word
}

// IsWord reports whether word (upper-case) is in the dictionary.
func (l *Lexicon) IsWord(ctx context.Context, q db.DBTX, word string) (bool, error) {
	if l.cache != nil {
		v, err := l.cache.Get(ctx, wordCacheKey(word)).Result()
		switch {
		case err == nil:
			return v == "1", nil
		case !errors.Is(err, redis.Nil):
			logger.WithContext(ctx).Warn("lexicon cache read failed", "error", err)
		}
	}

	w, err := l.words.Get(ctx, q, word)
	if err != nil {
		return false, err
	}
	ok := w != nil

	if l.cache != nil {
		v := "0"
		if ok {
			v = "1"
		}
		if err := l.cache.Set(ctx, wordCacheKey(word), v, l.cfg.CacheTTL).Err(); err != nil {
			logger.WithContext(ctx).Warn("lexicon cache write failed", "error", err)
		}
	}
	return ok, nil
}

// BaseScore returns the word's score, or game.DefaultBaseScore when the lexicon cannot resolve it.
func (l *Lexicon) BaseScore(ctx context.Context, q db.DBTX, word string) float64 {
	w, err := l.words.Get(ctx, q, word)
	if err == nil && w != nil {
		return w.Score
	}
	BaseScoreFallbacks.Inc()
	logger.WithContext(ctx).Warn("base score unresolved, using default",
		"word_len", len(word), "default", game.DefaultBaseScore, "fallback", true, "error", err)
	return game.DefaultBaseScore
}

// SecretForPlayer picks a word the player has not finished within the recency window.
// When the window excludes every word, the exclusion is dropped rather than failing the session.
func (l *Lexicon) SecretForPlayer(ctx context.Context, q db.DBTX, userID int64) (string, error) {
	word, err := l.words.RandomForPlayer(ctx, q, userID, l.cfg.MinFrequency, l.cfg.RecentWindowDays)
	if errors.Is(err, pgx.ErrNoRows) {
		logger.WithContext(ctx).Warn("recency window exhausted the lexicon", "user_id", userID)
		word, err = l.words.RandomForPlayer(ctx, q, userID, l.cfg.MinFrequency, 0)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrLexiconEmpty
	}
	if err != nil {
		return "", fmt.Errorf("pick secret: %w", err)
	}
	return word, nil
}

// Candidates returns the word choices offered to a challenger, easiest first.
func (l *Lexicon) Candidates(ctx context.Context, q db.DBTX, a, b int64) ([]domain.Word, error) {
	words, err := l.words.CandidatesForPair(ctx, q, a, b, l.cfg.MinFrequency, l.cfg.RecentWindowDays, l.cfg.ChoiceCount)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		logger.WithContext(ctx).Warn("recency window exhausted the lexicon", "player1_id", a, "player2_id", b)
		return l.words.CandidatesForPair(ctx, q, a, b, l.cfg.MinFrequency, 0, l.cfg.ChoiceCount)
	}
	return words, nil
}

// RecentlyPlayed reports whether the pair finished a turn on word inside the recency window.
// Once the window has exhausted the lexicon it no longer applies, matching Candidates.
func (l *Lexicon) RecentlyPlayed(ctx context.Context, q db.DBTX, a, b int64, word string) (bool, error) {
	if l.cfg.RecentWindowDays <= 0 {
		return false, nil
	}
	played, err := l.words.PlayedByPair(ctx, q, a, b, word, l.cfg.RecentWindowDays)
	if err != nil || !played {
		return false, err
	}
	left, err := l.words.CandidatesForPair(ctx, q, a, b, l.cfg.MinFrequency, l.cfg.RecentWindowDays, 1)
	if err != nil {
		return false, err
	}
	return len(left) > 0, nil
}

// GameWords lists secret-eligible words, reloaded at most once per cache TTL.
func (l *Lexicon) GameWords(ctx context.Context) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.gameWords != nil && time.Since(l.loadedAt) < l.cfg.CacheTTL {
		return l.gameWords, nil
	}
	words, err := l.words.GameWords(ctx, l.cfg.MinFrequency)
	if err != nil {
		return nil, err
	}
	l.gameWords = words
	l.loadedAt = time.Now()
	return words, nil
}

// Forget drops cached membership answers for words, e.g. after a reseed.
func (l *Lexicon) Forget(ctx context.Context, words []string) error {
	l.mu.Lock()
	l.gameWords = nil
	l.mu.Unlock()

	if l.cache == nil || len(words) == 0 {
		return nil
	}
	keys := make([]string, len(words))
	for i, w := range words {
		keys[i] = wordCacheKey(w)
	}
	return l.cache.Del(ctx, keys...).Err()
}
