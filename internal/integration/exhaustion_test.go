package integration

import (
	"context"
	"errors"
	"testing"

	"wordle_duel/internal/domain"
	"wordle_duel/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

func singleSecret(t *testing.T, pool *pgxpool.Pool, id int64) string {
	t.Helper()
	var w string
	if err := pool.QueryRow(context.Background(), `SELECT word FROM single_player_games WHERE id = $1`, id).Scan(&w); err != nil {
		t.Fatalf("read secret: %v", err)
	}
	return w
}

// wrongGuesses returns n seeded words other than secret.
func wrongGuesses(t *testing.T, secret string, n int) []string {
	t.Helper()
	var out []string
	for _, w := range testWords {
		if w.Text != secret {
			out = append(out, w.Text)
		}
	}
	if len(out) < n {
		t.Fatalf("only %d wrong words available; want %d", len(out), n)
	}
	return out[:n]
}

func TestMultiplayerSixMissesHandOffTurn(t *testing.T) {
	pool := openDB(t)
	ctx := context.Background()
	a := newPlayer(t, pool, "ex_a")
	b := newPlayer(t, pool, "ex_b")
	events := &recorder{}
	svc := newGameService(pool, events)

	s, err := svc.GetOrCreateMultiplayer(ctx, a, b)
	if err != nil {
		t.Fatalf("GetOrCreateMultiplayer: %v", err)
	}
	id := multiView(t, s.Game).GameID
	if _, err := svc.ChooseWord(ctx, a, id, "GHOST"); err != nil {
		t.Fatalf("ChooseWord: %v", err)
	}

	var res *service.AttemptResult
	for i, g := range wrongGuesses(t, "GHOST", domain.MaxAttempts) {
		res, err = svc.SubmitAttempt(ctx, b, service.AttemptRequest{GameID: id, Mode: domain.GameModeMultiplayer, Guess: g, AttemptNum: i + 1})
		if err != nil {
			t.Fatalf("guess %d (%s): %v", i+1, g, err)
		}
		if res.IsCorrect {
			t.Fatalf("guess %d (%s) marked correct", i+1, g)
		}
		if last := i+1 == domain.MaxAttempts; res.Completed != last {
			t.Fatalf("guess %d completed = %t; want %t", i+1, res.Completed, last)
		}
	}
	if res.Won || res.PointsEarned != 0 || len(res.Attempts) != domain.MaxAttempts {
		t.Fatalf("final miss = %+v", res)
	}
	next := multiView(t, res.Game)
	if next.GameID == id || next.TurnNum != 2 || next.PlayerTurn != b || next.TurnState != domain.TurnAwaitingWord {
		t.Fatalf("next turn = %+v", next)
	}
	if next.Player1Score != 0 || next.Player2Score != 0 {
		t.Fatalf("scores after a lost turn = %d/%d; want 0/0", next.Player1Score, next.Player2Score)
	}

	if _, err := svc.SubmitAttempt(ctx, b, service.AttemptRequest{GameID: id, Mode: domain.GameModeMultiplayer, Guess: "CRANE"}); !errors.Is(err, domain.ErrGameCompleted) && !errors.Is(err, domain.ErrAttemptLimit) {
		t.Fatalf("seventh guess err = %v; want ErrGameCompleted or ErrAttemptLimit", err)
	}
	if n := countRows(t, pool, `SELECT count(*) FROM multiplayer_attempts WHERE game_id = $1`, id); n != domain.MaxAttempts {
		t.Fatalf("stored attempts = %d; want %d", n, domain.MaxAttempts)
	}

	names := events.names()
	if len(names) == 0 || names[len(names)-1] != service.EventTurnCompleted {
		t.Fatalf("events = %v; want turn_completed last", names)
	}
}

func TestSinglePlayerSixMissesLoses(t *testing.T) {
	pool := openDB(t)
	ctx := context.Background()
	p := newPlayer(t, pool, "exs")
	svc := newGameService(pool, nil)

	s, err := svc.GetOrCreateSinglePlayer(ctx, p)
	if err != nil {
		t.Fatalf("GetOrCreateSinglePlayer: %v", err)
	}
	id := s.Game.(*service.SingleGameView).GameID
	secret := singleSecret(t, pool, id)

	var res *service.AttemptResult
	for i, g := range wrongGuesses(t, secret, domain.MaxAttempts) {
		res, err = svc.SubmitAttempt(ctx, p, service.AttemptRequest{GameID: id, Mode: domain.GameModeSingle, Guess: g})
		if err != nil {
			t.Fatalf("guess %d (%s): %v", i+1, g, err)
		}
		if last := i+1 == domain.MaxAttempts; res.Completed != last {
			t.Fatalf("guess %d completed = %t; want %t", i+1, res.Completed, last)
		}
	}
	if res.Won || res.PointsEarned != 0 {
		t.Fatalf("final miss = %+v", res)
	}
	done := res.Game.(*service.SingleGameView)
	if done.Status != domain.GameStatusCompleted || done.Won == nil || *done.Won || done.Points != 0 {
		t.Fatalf("lost session view = %+v", done)
	}
	if done.Word == nil || *done.Word != secret {
		t.Fatalf("completed session should reveal the secret: %+v", done)
	}

	if _, err := svc.SubmitAttempt(ctx, p, service.AttemptRequest{GameID: id, Mode: domain.GameModeSingle, Guess: secret}); !errors.Is(err, domain.ErrGameCompleted) && !errors.Is(err, domain.ErrAttemptLimit) {
		t.Fatalf("seventh guess err = %v; want ErrGameCompleted or ErrAttemptLimit", err)
	}
}
