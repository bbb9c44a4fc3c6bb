package integration

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"wordle_duel/internal/domain"
	"wordle_duel/internal/game"
	"wordle_duel/internal/service"
)

func multiView(t *testing.T, v service.GameView) *service.MultiplayerGameView {
	t.Helper()
	mv, ok := v.(*service.MultiplayerGameView)
	if !ok {
		t.Fatalf("view is %T; want *MultiplayerGameView", v)
	}
	return mv
}

func TestMultiplayerTurnLifecycle(t *testing.T) {
	pool := openDB(t)
	ctx := context.Background()
	a := newPlayer(t, pool, "mp_a")
	b := newPlayer(t, pool, "mp_b")
	events := &recorder{}
	svc := newGameService(pool, events)

	session, err := svc.GetOrCreateMultiplayer(ctx, a, b)
	if err != nil {
		t.Fatalf("GetOrCreateMultiplayer: %v", err)
	}
	turn := multiView(t, session.Game)
	if !session.IsNew || turn.TurnNum != 1 || turn.PlayerTurn != a || turn.TurnState != domain.TurnAwaitingWord {
		t.Fatalf("new turn = %+v (new=%t)", turn, session.IsNew)
	}
	if session.Attempts != nil {
		t.Fatalf("awaiting turn attempts = %v; want nil", session.Attempts)
	}

	again, err := svc.GetOrCreateMultiplayer(ctx, b, a)
	if err != nil {
		t.Fatalf("GetOrCreateMultiplayer (opponent): %v", err)
	}
	if again.IsNew || multiView(t, again.Game).GameID != turn.GameID {
		t.Fatalf("opponent got a different turn: %+v", again.Game)
	}

	// the guesser cannot pick the word and the row is unchanged
	if _, err := svc.ChooseWord(ctx, b, turn.GameID, "STEAK"); !errors.Is(err, domain.ErrNotYourTurn) {
		t.Fatalf("ChooseWord by guesser err = %v; want ErrNotYourTurn", err)
	}
	st, err := svc.CheckStatus(ctx, a, turn.GameID)
	if err != nil {
		t.Fatalf("CheckStatus: %v", err)
	}
	if st.HasWord || st.PlayerTurn != a {
		t.Fatalf("status after rejected ChooseWord = %+v", st)
	}

	chosen, err := svc.ChooseWord(ctx, a, turn.GameID, "steak")
	if err != nil {
		t.Fatalf("ChooseWord: %v", err)
	}
	if v := multiView(t, chosen); v.PlayerTurn != b || v.Word == nil || *v.Word != "STEAK" {
		t.Fatalf("challenger view after ChooseWord = %+v", v)
	}
	if _, err := svc.ChooseWord(ctx, a, turn.GameID, "CRANE"); !errors.Is(err, domain.ErrWordAlreadyChosen) {
		t.Fatalf("second ChooseWord err = %v; want ErrWordAlreadyChosen", err)
	}

	// guesser's session hides the secret
	guesserSession, err := svc.GetOrCreateMultiplayer(ctx, b, a)
	if err != nil {
		t.Fatalf("GetOrCreateMultiplayer: %v", err)
	}
	if multiView(t, guesserSession.Game).Word != nil {
		t.Fatalf("guesser sees the secret")
	}

	if _, err := svc.SubmitAttempt(ctx, a, service.AttemptRequest{GameID: turn.GameID, Mode: domain.GameModeMultiplayer, Guess: "CRANE"}); !errors.Is(err, domain.ErrNotYourTurn) {
		t.Fatalf("challenger guess err = %v; want ErrNotYourTurn", err)
	}
	if _, err := svc.SubmitAttempt(ctx, b, service.AttemptRequest{GameID: turn.GameID, Mode: domain.GameModeMultiplayer, Guess: "QQQQQ"}); !errors.Is(err, domain.ErrNotInWordList) {
		t.Fatalf("unknown word err = %v; want ErrNotInWordList", err)
	}

	first, err := svc.SubmitAttempt(ctx, b, service.AttemptRequest{GameID: turn.GameID, Mode: domain.GameModeMultiplayer, Guess: "CRANE", AttemptNum: 1})
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}
	if first.IsCorrect || first.Completed || len(first.Attempts) != 1 {
		t.Fatalf("first guess = %+v", first)
	}
	if _, err := svc.SubmitAttempt(ctx, b, service.AttemptRequest{GameID: turn.GameID, Mode: domain.GameModeMultiplayer, Guess: "SLATE", AttemptNum: 1}); !errors.Is(err, domain.ErrStaleAttempt) {
		t.Fatalf("replayed attempt_num err = %v; want ErrStaleAttempt", err)
	}

	// polling is read-only
	s1, err := svc.CheckStatus(ctx, a, turn.GameID)
	if err != nil {
		t.Fatalf("CheckStatus: %v", err)
	}
	s2, _ := svc.CheckStatus(ctx, a, turn.GameID)
	if !reflect.DeepEqual(s1, s2) {
		t.Fatalf("CheckStatus not idempotent: %+v vs %+v", s1, s2)
	}

	won, err := svc.SubmitAttempt(ctx, b, service.AttemptRequest{GameID: turn.GameID, Mode: domain.GameModeMultiplayer, Guess: "STEAK"})
	if err != nil {
		t.Fatalf("winning guess: %v", err)
	}
	if !won.Completed || !won.Won {
		t.Fatalf("winning guess result = %+v", won)
	}
	if want := game.Score(6.0, 2); won.PointsEarned != want {
		t.Fatalf("points = %d; want %d", won.PointsEarned, want)
	}
	next := multiView(t, won.Game)
	if next.TurnNum != 2 || next.PlayerTurn != b || next.TurnState != domain.TurnAwaitingWord || next.Player1ID != a {
		t.Fatalf("next turn = %+v", next)
	}
	if got := next.Player2Score; got != won.PointsEarned {
		t.Fatalf("guesser score = %d; want %d", got, won.PointsEarned)
	}

	if n := countRows(t, pool, `SELECT count(*) FROM multiplayer_games WHERE player1_id = $1 AND player2_id = $2 AND status = 'in_progress'`, a, b); n != 1 {
		t.Fatalf("in-progress rows = %d; want 1", n)
	}

	old, err := svc.CheckStatus(ctx, a, turn.GameID)
	if err != nil {
		t.Fatalf("CheckStatus on closed turn: %v", err)
	}
	if !old.TurnCompleted || old.GameID == nil || *old.GameID != next.GameID || old.PlayerTurn != b {
		t.Fatalf("closed turn status = %+v", old)
	}

	prev, err := svc.ListAttempts(ctx, a, domain.GameModeMultiplayer, turn.GameID, nil)
	if err != nil || len(prev) != 2 {
		t.Fatalf("previous turn attempts = %v, %v; want 2", prev, err)
	}
	fresh, err := svc.ListAttempts(ctx, b, domain.GameModeMultiplayer, next.GameID, nil)
	if err != nil || len(fresh) != 0 {
		t.Fatalf("new turn attempts = %v, %v; want none", fresh, err)
	}

	// repeating the completion returns the same hand-off
	replay, err := svc.CompleteTurn(ctx, b, service.CompleteTurnRequest{GameID: turn.GameID, AttemptsUsed: 2, Won: true})
	if err != nil {
		t.Fatalf("replayed CompleteTurn: %v", err)
	}
	if multiView(t, replay.Game).GameID != next.GameID || replay.PointsEarned != won.PointsEarned {
		t.Fatalf("replay = %+v", replay)
	}

	want := []string{service.EventTurnCreated, service.EventWordChosen, service.EventGuess, service.EventTurnCompleted}
	if got := events.names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %v; want %v", got, want)
	}
}

func TestMultiplayerGiveUp(t *testing.T) {
	pool := openDB(t)
	ctx := context.Background()
	a := newPlayer(t, pool, "gu_a")
	b := newPlayer(t, pool, "gu_b")
	svc := newGameService(pool, nil)

	s, err := svc.GetOrCreateMultiplayer(ctx, a, b)
	if err != nil {
		t.Fatalf("GetOrCreateMultiplayer: %v", err)
	}
	id := multiView(t, s.Game).GameID
	if _, err := svc.ChooseWord(ctx, a, id, "GHOST"); err != nil {
		t.Fatalf("ChooseWord: %v", err)
	}

	outsider := newPlayer(t, pool, "gu_c")
	if _, err := svc.CompleteTurn(ctx, outsider, service.CompleteTurnRequest{GameID: id}); !errors.Is(err, domain.ErrNotParticipant) {
		t.Fatalf("outsider CompleteTurn err = %v; want ErrNotParticipant", err)
	}
	if _, err := svc.CompleteTurn(ctx, b, service.CompleteTurnRequest{GameID: id, Won: true}); !errors.Is(err, domain.ErrWonWithoutCorrect) {
		t.Fatalf("claimed win err = %v; want ErrWonWithoutCorrect", err)
	}

	res, err := svc.CompleteTurn(ctx, b, service.CompleteTurnRequest{GameID: id})
	if err != nil {
		t.Fatalf("CompleteTurn: %v", err)
	}
	next := multiView(t, res.Game)
	if !res.TurnCompleted || res.PointsEarned != 0 || next.PlayerTurn != b || next.Player1Score != 0 || next.Player2Score != 0 {
		t.Fatalf("give-up result = %+v, next = %+v", res, next)
	}

	// the next get-or-create by either player returns the same awaiting row
	s2, err := svc.GetOrCreateMultiplayer(ctx, a, b)
	if err != nil {
		t.Fatalf("GetOrCreateMultiplayer: %v", err)
	}
	if s2.IsNew || multiView(t, s2.Game).GameID != next.GameID {
		t.Fatalf("get-or-create after hand-off = %+v", s2.Game)
	}
}

func TestConcurrentCreateYieldsOneTurn(t *testing.T) {
	pool := openDB(t)
	ctx := context.Background()
	a := newPlayer(t, pool, "cc_a")
	b := newPlayer(t, pool, "cc_b")
	svc := newGameService(pool, nil)

	const callers = 8
	ids := make([]int64, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req, opp := a, b
			if i%2 == 1 {
				req, opp = b, a
			}
			s, err := svc.GetOrCreateMultiplayer(ctx, req, opp)
			errs[i] = err
			if err == nil {
				ids[i] = s.Game.(*service.MultiplayerGameView).GameID
			}
		}(i)
	}
	wg.Wait()

	for i := range ids {
		if errs[i] != nil {
			t.Fatalf("caller %d: %v", i, errs[i])
		}
		if ids[i] != ids[0] {
			t.Fatalf("caller %d got game %d; caller 0 got %d", i, ids[i], ids[0])
		}
	}
	if n := countRows(t, pool, `SELECT count(*) FROM multiplayer_games WHERE LEAST(player1_id, player2_id) = LEAST($1::bigint, $2::bigint) AND GREATEST(player1_id, player2_id) = GREATEST($1::bigint, $2::bigint)`, a, b); n != 1 {
		t.Fatalf("rows for pair = %d; want 1", n)
	}
}

func TestWordChoices(t *testing.T) {
	pool := openDB(t)
	ctx := context.Background()
	a := newPlayer(t, pool, "wc_a")
	b := newPlayer(t, pool, "wc_b")
	svc := newGameService(pool, nil)

	if _, err := svc.WordChoices(ctx, a, a); !errors.Is(err, domain.ErrSamePlayer) {
		t.Fatalf("self pair err = %v; want ErrSamePlayer", err)
	}

	words, err := svc.WordChoices(ctx, a, b)
	if err != nil {
		t.Fatalf("WordChoices: %v", err)
	}
	if len(words) == 0 || len(words) > 12 {
		t.Fatalf("got %d choices; want 1..12", len(words))
	}
	for i := 1; i < len(words); i++ {
		if words[i].Score < words[i-1].Score {
			t.Fatalf("choices not ordered by score: %v", words)
		}
	}
}
