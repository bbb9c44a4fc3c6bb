package integration

import (
	"context"
	"errors"
	"testing"

	"wordle_duel/internal/domain"
	"wordle_duel/internal/game"
	"wordle_duel/internal/service"
)

func TestSinglePlayerSession(t *testing.T) {
	pool := openDB(t)
	ctx := context.Background()
	p := newPlayer(t, pool, "sp")
	svc := newGameService(pool, nil)

	s, err := svc.GetOrCreateSinglePlayer(ctx, p)
	if err != nil {
		t.Fatalf("GetOrCreateSinglePlayer: %v", err)
	}
	view, ok := s.Game.(*service.SingleGameView)
	if !ok || !s.IsNew || view.TurnNum != 0 || view.Word != nil {
		t.Fatalf("new session = %+v", s.Game)
	}

	again, err := svc.GetOrCreateSinglePlayer(ctx, p)
	if err != nil {
		t.Fatalf("GetOrCreateSinglePlayer: %v", err)
	}
	if again.IsNew || again.Game.(*service.SingleGameView).GameID != view.GameID {
		t.Fatalf("second call opened another session")
	}

	var secret string
	if err := pool.QueryRow(ctx, `SELECT word FROM single_player_games WHERE id = $1`, view.GameID).Scan(&secret); err != nil {
		t.Fatalf("read secret: %v", err)
	}

	other := newPlayer(t, pool, "sp_other")
	if _, err := svc.SubmitAttempt(ctx, other, service.AttemptRequest{GameID: view.GameID, Mode: domain.GameModeSingle, Guess: secret}); !errors.Is(err, domain.ErrNotParticipant) {
		t.Fatalf("foreign guess err = %v; want ErrNotParticipant", err)
	}

	wrong := "CRANE"
	if secret == wrong {
		wrong = "SLATE"
	}
	res, err := svc.SubmitAttempt(ctx, p, service.AttemptRequest{GameID: view.GameID, Mode: domain.GameModeSingle, Guess: wrong})
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}
	if res.Completed || len(res.Keyboard) == 0 {
		t.Fatalf("wrong guess result = %+v", res)
	}

	if _, err := svc.CompleteSinglePlayer(ctx, p, view.GameID, true); !errors.Is(err, domain.ErrWonWithoutCorrect) {
		t.Fatalf("unbacked win err = %v; want ErrWonWithoutCorrect", err)
	}

	res, err = svc.SubmitAttempt(ctx, p, service.AttemptRequest{GameID: view.GameID, Mode: domain.GameModeSingle, Guess: secret})
	if err != nil {
		t.Fatalf("winning guess: %v", err)
	}
	var base float64
	if err := pool.QueryRow(ctx, `SELECT score FROM words WHERE word = $1`, secret).Scan(&base); err != nil {
		t.Fatalf("read score: %v", err)
	}
	if !res.Completed || !res.Won || res.PointsEarned != game.Score(base, 2) {
		t.Fatalf("winning result = %+v; want %d points", res, game.Score(base, 2))
	}
	done := res.Game.(*service.SingleGameView)
	if done.Word == nil || *done.Word != secret || done.Status != domain.GameStatusCompleted {
		t.Fatalf("completed view = %+v", done)
	}

	// completing again returns the stored outcome
	c, err := svc.CompleteSinglePlayer(ctx, p, view.GameID, false)
	if err != nil {
		t.Fatalf("CompleteSinglePlayer: %v", err)
	}
	if !c.Won || c.PointsEarned != res.PointsEarned {
		t.Fatalf("replayed completion = %+v", c)
	}

	if _, err := svc.SubmitAttempt(ctx, p, service.AttemptRequest{GameID: view.GameID, Mode: domain.GameModeSingle, Guess: wrong}); !errors.Is(err, domain.ErrGameCompleted) {
		t.Fatalf("guess after completion err = %v; want ErrGameCompleted", err)
	}

	hint, err := svc.Hint(ctx, p, view.GameID)
	if err == nil {
		t.Fatalf("hint on completed session = %+v; want error", hint)
	}

	next, err := svc.GetOrCreateSinglePlayer(ctx, p)
	if err != nil {
		t.Fatalf("GetOrCreateSinglePlayer after completion: %v", err)
	}
	if !next.IsNew || next.Game.(*service.SingleGameView).GameID == view.GameID {
		t.Fatalf("expected a new session after completion")
	}
}
