package integration

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"wordle_duel/internal/domain"
	"wordle_duel/internal/migrations"
	"wordle_duel/internal/repository"
	"wordle_duel/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

var testWords = []domain.Word{
	{Text: "CRANE", Frequency: 5000, Score: 3.5},
	{Text: "SLATE", Frequency: 4000, Score: 4.0},
	{Text: "STEAK", Frequency: 3000, Score: 6.0},
	{Text: "ROBOT", Frequency: 2500, Score: 5.0},
	{Text: "FLOOR", Frequency: 2000, Score: 5.5},
	{Text: "ADIEU", Frequency: 1500, Score: 7.0},
	{Text: "PIOUS", Frequency: 1200, Score: 7.5},
	{Text: "GHOST", Frequency: 1100, Score: 6.5},
}

// openDB connects to DATABASE_URL, applies migrations and seeds testWords. Skips without a database.
func openDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := migrations.Apply(ctx, pool, nil); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := repository.NewWordRepository(pool).Upsert(ctx, testWords); err != nil {
		t.Fatalf("seed words: %v", err)
	}
	return pool
}

// newPlayer inserts a player with a unique name.
func newPlayer(t *testing.T, pool *pgxpool.Pool, prefix string) int64 {
	t.Helper()
	u := &domain.User{
		Username:     fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano()),
		PasswordHash: "x",
	}
	if err := repository.NewUserRepository(pool).Create(context.Background(), u); err != nil {
		t.Fatalf("create player: %v", err)
	}
	return u.ID
}

// recorder collects turn events in publish order.
type recorder struct {
	mu     sync.Mutex
	events []service.TurnEvent
}

func (r *recorder) PublishTurn(_ context.Context, ev service.TurnEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Event
	}
	return out
}

func newGameService(pool *pgxpool.Pool, n service.TurnNotifier) *service.GameService {
	lexicon := service.NewLexicon(repository.NewWordRepository(pool), nil, service.LexiconConfig{
		MinFrequency:     20,
		RecentWindowDays: 365,
		ChoiceCount:      12,
		CacheTTL:         time.Minute,
	})
	return service.NewGameService(pool, lexicon, n, service.GameServiceConfig{PollInterval: 5 * time.Second})
}

func countRows(t *testing.T, pool *pgxpool.Pool, query string, args ...any) int {
	t.Helper()
	var n int
	if err := pool.QueryRow(context.Background(), query, args...).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
