package service

import (
	"context"

	"wordle_duel/internal/db"
	"wordle_duel/internal/domain"
	"wordle_duel/internal/game"
	"wordle_duel/internal/logger"

	"github.com/jackc/pgx/v5"
)

// GetOrCreateSinglePlayer returns the player's in-progress session or starts one at turn 0.
func (s *GameService) GetOrCreateSinglePlayer(ctx context.Context, playerID int64) (*SessionView, error) {
	var (
		view    *SessionView
		created bool
	)
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		if err := db.LockKey(ctx, tx, singleLockKey(playerID)); err != nil {
			return err
		}

		g, err := s.singles.Active(ctx, tx, playerID)
		if err != nil {
			return err
		}
		if g == nil {
			if err := s.requirePlayer(ctx, tx, playerID); err != nil {
				return err
			}
			word, err := s.lexicon.SecretForPlayer(ctx, tx, playerID)
			if err != nil {
				return err
			}
			g = domain.NewSinglePlayerGame(playerID, word, s.now())
			if err := s.singles.CreateWithTx(ctx, tx, g); err != nil {
				return err
			}
			if err := s.audit.LogGameWithTx(ctx, tx, playerID, g.ID, domain.AuditActionGameStart, map[string]interface{}{
				"game_type": domain.GameModeSingle,
			}); err != nil {
				return err
			}
			created = true
		}

		attempts, err := s.attempts.ListSingle(ctx, tx, g.ID)
		if err != nil {
			return err
		}
		view = newSessionView(g, attempts, playerID, created)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if created {
		SessionsCreated.WithLabelValues(string(domain.GameModeSingle)).Inc()
		logger.WithContext(ctx).Info("single-player session created", "user_id", playerID)
	}
	return view, nil
}

// GetOrCreateMultiplayer returns the pair's in-progress turn or opens the next one with the
// requester as challenger. Ordering and scores come from the pair's latest row.
func (s *GameService) GetOrCreateMultiplayer(ctx context.Context, requesterID, opponentID int64) (*SessionView, error) {
	if requesterID == opponentID {
		return nil, domain.ErrSamePlayer
	}

	var (
		view *SessionView
		turn *domain.MultiplayerGame
	)
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		// serializes creation for the pair; the partial unique index backs this up
		if err := db.LockKey(ctx, tx, pairLockKey(requesterID, opponentID)); err != nil {
			return err
		}

		g, err := s.multis.ActiveForPair(ctx, tx, requesterID, opponentID)
		if err != nil {
			return err
		}
		created := false
		if g == nil {
			if err := s.requirePlayer(ctx, tx, requesterID); err != nil {
				return err
			}
			if err := s.requirePlayer(ctx, tx, opponentID); err != nil {
				return err
			}
			prev, err := s.multis.LatestForPair(ctx, tx, requesterID, opponentID)
			if err != nil {
				return err
			}

			p1, p2 := domain.CanonicalPair(requesterID, opponentID, prev)
			turnNum, score1, score2 := 1, 0, 0
			if prev != nil {
				turnNum = prev.TurnNum + 1
				score1, score2 = prev.Player1Score, prev.Player2Score
			}
			g = domain.NewMultiplayerTurn(p1, p2, requesterID, turnNum, score1, score2, s.now())
			if err := s.multis.CreateWithTx(ctx, tx, g); err != nil {
				return err
			}
			if err := s.audit.LogGameWithTx(ctx, tx, requesterID, g.ID, domain.AuditActionGameStart, map[string]interface{}{
				"game_type": domain.GameModeMultiplayer,
				"opponent":  opponentID,
				"turn_num":  g.TurnNum,
			}); err != nil {
				return err
			}
			created = true
			turn = g
		}

		var attempts []*domain.Attempt
		if g.HasWord() {
			attempts, err = s.attempts.ListMulti(ctx, tx, g.ID, g.TurnNum)
			if err != nil {
				return err
			}
		}
		view = newSessionView(g, attempts, requesterID, created)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if turn != nil {
		SessionsCreated.WithLabelValues(string(domain.GameModeMultiplayer)).Inc()
		s.notify(ctx, turnEvent(EventTurnCreated, turn))
	}
	return view, nil
}

// CompleteSinglePlayer closes a session. A win must be backed by a correct attempt in the log.
// Completing an already closed session returns its stored outcome.
func (s *GameService) CompleteSinglePlayer(ctx context.Context, playerID, gameID int64, won bool) (*SingleCompletion, error) {
	var (
		res      *SingleCompletion
		finished bool
	)
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		g, err := s.singles.GetForUpdate(ctx, tx, gameID)
		if err != nil {
			return err
		}
		if g.UserID != playerID {
			return domain.ErrNotParticipant
		}
		if g.Completed() {
			res = &SingleCompletion{Success: true, Won: g.Won != nil && *g.Won, PointsEarned: g.Points}
			return nil
		}

		attempts, err := s.attempts.ListSingle(ctx, tx, g.ID)
		if err != nil {
			return err
		}
		if won && (len(attempts) == 0 || !attempts[len(attempts)-1].IsCorrect) {
			return domain.ErrWonWithoutCorrect
		}

		points, err := s.finishSingle(ctx, tx, g, won, len(attempts))
		if err != nil {
			return err
		}
		res = &SingleCompletion{Success: true, Won: won, PointsEarned: points}
		finished = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if finished {
		recordCompletion(domain.GameModeSingle, res.Won, res.PointsEarned)
	}
	return res, nil
}

// finishSingle scores and closes g inside tx.
func (s *GameService) finishSingle(ctx context.Context, tx pgx.Tx, g *domain.SinglePlayerGame, won bool, attemptsUsed int) (int, error) {
	points := 0
	if won && attemptsUsed >= 1 {
		points = game.Score(s.lexicon.BaseScore(ctx, tx, g.SecretWord()), attemptsUsed)
	}
	if err := g.Complete(won, points, s.now()); err != nil {
		return 0, err
	}
	if err := s.singles.UpdateWithTx(ctx, tx, g); err != nil {
		return 0, err
	}

	action := domain.AuditActionGameLose
	if won {
		action = domain.AuditActionGameWin
	}
	if err := s.audit.LogGameWithTx(ctx, tx, g.UserID, g.ID, action, map[string]interface{}{
		"game_type":     domain.GameModeSingle,
		"attempts_used": attemptsUsed,
		"points":        points,
	}); err != nil {
		return 0, err
	}
	return points, nil
}

func recordCompletion(mode domain.GameMode, won bool, points int) {
	TurnsCompleted.WithLabelValues(string(mode), outcomeLabel(won)).Inc()
	if points > 0 {
		PointsAwarded.WithLabelValues(string(mode)).Add(float64(points))
	}
}
