package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"wordle_duel/internal/repository"
	"wordle_duel/internal/service"

	redis "github.com/redis/go-redis/v9"
)

func TestLexiconRedisCache(t *testing.T) {
	pool := openDB(t)
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: os.Getenv("REDIS_PASSWORD")})
	t.Cleanup(func() { rdb.Close() })
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Fatalf("redis ping: %v", err)
	}

	lex := service.NewLexicon(repository.NewWordRepository(pool), rdb, service.LexiconConfig{MinFrequency: 20, CacheTTL: time.Minute})
	if err := lex.Forget(ctx, []string{"CRANE", "QQQQQ"}); err != nil {
		t.Fatalf("Forget: %v", err)
	}

	for _, tt := range []struct {
		word string
		want bool
	}{{"CRANE", true}, {"QQQQQ", false}} {
		got, err := lex.IsWord(ctx, pool, tt.word)
		if err != nil || got != tt.want {
			t.Fatalf("IsWord(%s) = %t, %v; want %t", tt.word, got, err, tt.want)
		}
		cached, err := rdb.Get(ctx, "lexicon:word:"+tt.word).Result()
		if err != nil {
			t.Fatalf("cache entry for %s: %v", tt.word, err)
		}
		if (cached == "1") != tt.want {
			t.Fatalf("cache entry for %s = %q", tt.word, cached)
		}
	}

	// a cached answer is served without the database
	got, err := lex.IsWord(ctx, nil, "CRANE")
	if err != nil || !got {
		t.Fatalf("cached IsWord(CRANE) = %t, %v", got, err)
	}
}
