package service

import (
	"context"

	"wordle_duel/internal/domain"
	"wordle_duel/internal/game"
	"wordle_duel/internal/logger"

	"github.com/jackc/pgx/v5"
)

// ChooseWord sets the secret of an awaiting turn and hands the turn to the guesser.
func (s *GameService) ChooseWord(ctx context.Context, playerID, gameID int64, rawWord string) (GameView, error) {
	word, err := s.normalizeGuess(ctx, rawWord)
	if err != nil {
		return nil, err
	}

	var g *domain.MultiplayerGame
	err = s.inTx(ctx, func(tx pgx.Tx) error {
		g, err = s.multis.GetForUpdate(ctx, tx, gameID)
		if err != nil {
			return err
		}
		if err := g.ChooseWord(playerID, word, s.now()); err != nil {
			return err
		}
		recent, err := s.lexicon.RecentlyPlayed(ctx, tx, g.Player1ID, g.Player2ID, word)
		if err != nil {
			return err
		}
		if recent {
			return domain.ErrWordRecentlyUsed
		}
		if err := s.multis.UpdateWithTx(ctx, tx, g); err != nil {
			return err
		}
		return s.audit.LogGameWithTx(ctx, tx, playerID, g.ID, domain.AuditActionWordChosen, map[string]interface{}{
			"turn_num": g.TurnNum,
			"guesser":  g.PlayerTurn,
		})
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, turnEvent(EventWordChosen, g))
	return NewGameView(g, playerID), nil
}

// AttemptRequest is a guess submission. AttemptNum and TurnNum are optional staleness checks.
type AttemptRequest struct {
	GameID     int64
	Mode       domain.GameMode
	Guess      string
	AttemptNum int
	TurnNum    *int
}

// SubmitAttempt evaluates a guess, appends it to the log and completes the session or turn when
// the guess is correct or the last one allowed.
func (s *GameService) SubmitAttempt(ctx context.Context, playerID int64, req AttemptRequest) (*AttemptResult, error) {
	switch req.Mode {
	case domain.GameModeSingle, domain.GameModeMultiplayer:
	default:
		return nil, domain.ErrUnknownGameMode
	}

	word, err := s.normalizeGuess(ctx, req.Guess)
	if err != nil {
		return nil, err
	}

	switch req.Mode {
	case domain.GameModeSingle:
		return s.submitSingle(ctx, playerID, req, word)
	default:
		return s.submitMulti(ctx, playerID, req, word)
	}
}

func (s *GameService) submitSingle(ctx context.Context, playerID int64, req AttemptRequest, word string) (*AttemptResult, error) {
	res := &AttemptResult{}
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		g, err := s.singles.GetForUpdate(ctx, tx, req.GameID)
		if err != nil {
			return err
		}
		prior, err := s.attempts.ListSingle(ctx, tx, g.ID)
		if err != nil {
			return err
		}
		next := len(prior) + 1
		if err := g.CanGuess(playerID, next); err != nil {
			return err
		}
		if req.AttemptNum != 0 && req.AttemptNum != next {
			return domain.ErrStaleAttempt
		}

		a, marks, err := s.evaluate(word, g.SecretWord(), g.ID, 0, playerID, next)
		if err != nil {
			return err
		}
		if err := s.attempts.AppendSingleWithTx(ctx, tx, a); err != nil {
			return err
		}

		res.Marks, res.IsCorrect = marks, a.IsCorrect
		if a.IsCorrect || next == domain.MaxAttempts {
			points, err := s.finishSingle(ctx, tx, g, a.IsCorrect, next)
			if err != nil {
				return err
			}
			res.Completed, res.Won, res.PointsEarned = true, a.IsCorrect, points
		} else {
			g.LastTurnTime = s.now()
			if err := s.singles.TouchWithTx(ctx, tx, g); err != nil {
				return err
			}
		}

		res.Attempts, res.Keyboard = attemptViews(append(prior, a), g.SecretWord())
		res.Game = NewGameView(g, playerID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	GuessesTotal.WithLabelValues(string(domain.GameModeSingle), guessLabel(res.IsCorrect)).Inc()
	if res.Completed {
		recordCompletion(domain.GameModeSingle, res.Won, res.PointsEarned)
	}
	return res, nil
}

func (s *GameService) submitMulti(ctx context.Context, playerID int64, req AttemptRequest, word string) (*AttemptResult, error) {
	var (
		res    = &AttemptResult{}
		events []TurnEvent
	)
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		g, err := s.multis.GetForUpdate(ctx, tx, req.GameID)
		if err != nil {
			return err
		}
		if !g.IsPlayer(playerID) {
			return domain.ErrNotParticipant
		}
		if req.TurnNum != nil && *req.TurnNum != g.TurnNum {
			return domain.ErrStaleTurn
		}

		prior, err := s.attempts.ListMulti(ctx, tx, g.ID, g.TurnNum)
		if err != nil {
			return err
		}
		next := len(prior) + 1
		if err := g.CanGuess(playerID, next); err != nil {
			return err
		}
		if req.AttemptNum != 0 && req.AttemptNum != next {
			return domain.ErrStaleAttempt
		}

		secret := g.SecretWord()
		a, marks, err := s.evaluate(word, secret, g.ID, g.TurnNum, playerID, next)
		if err != nil {
			return err
		}
		if err := s.attempts.AppendMultiWithTx(ctx, tx, a); err != nil {
			return err
		}

		res.Marks, res.IsCorrect = marks, a.IsCorrect
		res.Attempts, res.Keyboard = attemptViews(append(prior, a), secret)

		if a.IsCorrect || next == domain.MaxAttempts {
			nextTurn, points, err := s.completeTurnTx(ctx, tx, g, playerID, next, a.IsCorrect)
			if err != nil {
				return err
			}
			res.Completed, res.Won, res.PointsEarned = true, a.IsCorrect, points
			res.Game = NewGameView(nextTurn, playerID)

			ev := turnEvent(EventTurnCompleted, g)
			ev.NewGameID = &nextTurn.ID
			ev.PlayerTurn, ev.HasWord = nextTurn.PlayerTurn, nextTurn.HasWord()
			events = append(events, ev)
			return nil
		}

		g.LastTurnTime = s.now()
		if err := s.multis.TouchWithTx(ctx, tx, g); err != nil {
			return err
		}
		res.Game = NewGameView(g, playerID)
		ev := turnEvent(EventGuess, g)
		ev.AttemptNum = next
		events = append(events, ev)
		return nil
	})
	if err != nil {
		return nil, err
	}

	GuessesTotal.WithLabelValues(string(domain.GameModeMultiplayer), guessLabel(res.IsCorrect)).Inc()
	if res.Completed {
		recordCompletion(domain.GameModeMultiplayer, res.Won, res.PointsEarned)
	}
	for _, ev := range events {
		s.notify(ctx, ev)
	}
	return res, nil
}

func (s *GameService) evaluate(word, secret string, gameID int64, turnNum int, playerID int64, attemptNum int) (*domain.Attempt, []game.LetterStatus, error) {
	marks, err := game.Evaluate(word, secret)
	if err != nil {
		return nil, nil, domain.ErrGuessLength
	}
	return &domain.Attempt{
		GameID:     gameID,
		TurnNum:    turnNum,
		UserID:     playerID,
		AttemptNum: attemptNum,
		Word:       word,
		IsCorrect:  game.AllCorrect(marks),
	}, marks, nil
}

// CompleteTurnRequest is the explicit completion call. AttemptsUsed is checked against the log when non-zero.
type CompleteTurnRequest struct {
	GameID       int64
	AttemptsUsed int
	Won          bool
}

// CompleteTurn closes the acting guesser's turn, which is how a guesser gives up. A correct guess
// or the sixth attempt already completes the turn; repeating the call then returns the hand-off.
func (s *GameService) CompleteTurn(ctx context.Context, actingID int64, req CompleteTurnRequest) (*TurnCompletion, error) {
	var (
		res      *TurnCompletion
		events   []TurnEvent
		finished bool
	)
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		g, err := s.multis.GetForUpdate(ctx, tx, req.GameID)
		if err != nil {
			return err
		}
		if !g.IsPlayer(actingID) {
			return domain.ErrNotParticipant
		}

		attempts, err := s.attempts.ListMulti(ctx, tx, g.ID, g.TurnNum)
		if err != nil {
			return err
		}
		used := len(attempts)
		correct := used > 0 && attempts[used-1].IsCorrect

		if g.Completed() {
			res, err = s.replayCompletion(ctx, tx, g, actingID, used, correct)
			return err
		}
		if err := g.CanGuess(actingID, 0); err != nil {
			return err
		}
		if req.AttemptsUsed != 0 && req.AttemptsUsed != used {
			return domain.ErrAttemptsMismatch
		}
		if req.Won && !correct {
			return domain.ErrWonWithoutCorrect
		}

		nextTurn, points, err := s.completeTurnTx(ctx, tx, g, actingID, used, req.Won)
		if err != nil {
			return err
		}
		res = &TurnCompletion{Game: NewGameView(nextTurn, actingID), TurnCompleted: true, PointsEarned: points}
		finished = true

		ev := turnEvent(EventTurnCompleted, g)
		ev.NewGameID = &nextTurn.ID
		ev.PlayerTurn, ev.HasWord = nextTurn.PlayerTurn, nextTurn.HasWord()
		events = append(events, ev)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if finished {
		recordCompletion(domain.GameModeMultiplayer, req.Won, res.PointsEarned)
	}
	for _, ev := range events {
		s.notify(ctx, ev)
	}
	return res, nil
}

// replayCompletion answers a completion call for a turn that is already closed, as long as the
// caller is the player who closed it and the hand-off row is still current.
func (s *GameService) replayCompletion(ctx context.Context, tx pgx.Tx, g *domain.MultiplayerGame, actingID int64, used int, won bool) (*TurnCompletion, error) {
	next, err := s.multis.ActiveForPair(ctx, tx, g.Player1ID, g.Player2ID)
	if err != nil {
		return nil, err
	}
	if next == nil || next.TurnNum != g.TurnNum+1 || next.PlayerTurn != actingID || next.HasWord() {
		return nil, domain.ErrGameCompleted
	}
	points := 0
	if won {
		points = game.Score(s.lexicon.BaseScore(ctx, tx, g.SecretWord()), used)
	}
	return &TurnCompletion{Game: NewGameView(next, actingID), TurnCompleted: true, PointsEarned: points}, nil
}

// completeTurnTx scores the turn, closes g and inserts the next awaiting row, all inside tx.
func (s *GameService) completeTurnTx(ctx context.Context, tx pgx.Tx, g *domain.MultiplayerGame, actingID int64, attemptsUsed int, won bool) (*domain.MultiplayerGame, int, error) {
	points := 0
	if won && attemptsUsed >= 1 {
		points = game.Score(s.lexicon.BaseScore(ctx, tx, g.SecretWord()), attemptsUsed)
	}

	next, err := g.CompleteTurn(actingID, points, s.now())
	if err != nil {
		return nil, 0, err
	}
	if err := s.multis.UpdateWithTx(ctx, tx, g); err != nil {
		return nil, 0, err
	}
	if err := s.multis.CreateWithTx(ctx, tx, next); err != nil {
		return nil, 0, err
	}
	if err := s.audit.LogGameWithTx(ctx, tx, actingID, g.ID, domain.AuditActionTurnComplete, map[string]interface{}{
		"turn_num":      g.TurnNum,
		"won":           won,
		"attempts_used": attemptsUsed,
		"points":        points,
		"next_game_id":  next.ID,
	}); err != nil {
		return nil, 0, err
	}

	logger.WithContext(ctx).Info("turn completed",
		"game_id", g.ID, "next_game_id", next.ID, "acting", actingID, "won", won, "points", points)
	return next, points, nil
}

func guessLabel(correct bool) string {
	if correct {
		return "correct"
	}
	return "incorrect"
}
