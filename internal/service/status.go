package service

import (
	"context"
	"errors"

	"wordle_duel/internal/domain"
	"wordle_duel/internal/game"

	"github.com/jackc/pgx/v5"
)

// CheckStatus reports who may act on a turn. A completed turn resolves to the pair's current row,
// so a poller follows the hand-off without knowing the new id. It never writes.
func (s *GameService) CheckStatus(ctx context.Context, viewerID, gameID int64) (*TurnStatus, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, domain.StorageError(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	g, err := s.multis.GetByID(ctx, tx, gameID)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	if !g.IsPlayer(viewerID) {
		return nil, domain.ErrNotParticipant
	}

	st := &TurnStatus{
		PlayerTurn:     g.PlayerTurn,
		HasWord:        g.HasWord(),
		TurnNum:        g.TurnNum,
		PollIntervalMS: s.cfg.PollInterval.Milliseconds(),
	}
	if g.Completed() {
		st.TurnCompleted = true
		latest, err := s.multis.ActiveForPair(ctx, tx, g.Player1ID, g.Player2ID)
		if err != nil {
			return nil, domain.StorageError(err)
		}
		if latest != nil {
			st.PlayerTurn = latest.PlayerTurn
			st.HasWord = latest.HasWord()
			st.TurnNum = latest.TurnNum
			st.GameID = &latest.ID
		}
	}
	return st, nil
}

// WordChoices offers the challenger words the pair has not played recently.
func (s *GameService) WordChoices(ctx context.Context, requesterID, opponentID int64) ([]domain.Word, error) {
	if requesterID == opponentID {
		return nil, domain.ErrSamePlayer
	}
	if err := s.requirePlayer(ctx, s.db, opponentID); err != nil {
		return nil, domain.StorageError(err)
	}
	words, err := s.lexicon.Candidates(ctx, s.db, requesterID, opponentID)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	return words, nil
}

// ListAttempts returns one session's or turn's attempts in order. For multiplayer the turn
// defaults to the row's own turn number.
func (s *GameService) ListAttempts(ctx context.Context, viewerID int64, mode domain.GameMode, gameID int64, turnNum *int) ([]AttemptView, error) {
	switch mode {
	case domain.GameModeSingle:
		g, err := s.singles.GetByID(ctx, gameID)
		if err != nil {
			return nil, domain.StorageError(err)
		}
		if g.UserID != viewerID {
			return nil, domain.ErrNotParticipant
		}
		attempts, err := s.attempts.ListSingle(ctx, s.db, g.ID)
		if err != nil {
			return nil, domain.StorageError(err)
		}
		views, _ := attemptViews(attempts, g.SecretWord())
		return views, nil

	case domain.GameModeMultiplayer:
		g, err := s.multis.GetByID(ctx, s.db, gameID)
		if err != nil {
			return nil, domain.StorageError(err)
		}
		if !g.IsPlayer(viewerID) {
			return nil, domain.ErrNotParticipant
		}
		turn := g.TurnNum
		if turnNum != nil {
			turn = *turnNum
		}
		if !g.HasWord() {
			return []AttemptView{}, nil
		}
		attempts, err := s.attempts.ListMulti(ctx, s.db, g.ID, turn)
		if err != nil {
			return nil, domain.StorageError(err)
		}
		views, _ := attemptViews(attempts, g.SecretWord())
		return views, nil
	}
	return nil, domain.ErrUnknownGameMode
}

const maxHintPool = 300

// Hint suggests the guess that splits the remaining candidates best. Single-player only.
func (s *GameService) Hint(ctx context.Context, playerID, gameID int64) (*Hint, error) {
	g, err := s.singles.GetByID(ctx, gameID)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	if g.UserID != playerID {
		return nil, domain.ErrNotParticipant
	}
	if g.Completed() {
		return nil, domain.ErrGameCompleted
	}

	attempts, err := s.attempts.ListSingle(ctx, s.db, g.ID)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	history := make([]game.Feedback, 0, len(attempts))
	for _, a := range attempts {
		marks, err := game.Evaluate(a.Word, g.SecretWord())
		if err != nil {
			continue
		}
		history = append(history, game.Feedback{Guess: a.Word, Marks: marks})
	}

	words, err := s.lexicon.GameWords(ctx)
	if err != nil {
		return nil, domain.StorageError(err)
	}
	candidates := game.FilterCandidates(words, history)
	if len(candidates) == 0 {
		return &Hint{}, nil
	}

	best := game.BestGuesses(game.SamplePool(candidates, maxHintPool), candidates, 1)
	return &Hint{Hint: best[0].Word, Entropy: best[0].Entropy, CandidatesLeft: len(candidates)}, nil
}

// CheckWord reports whether raw is an accepted guess. Shape errors are returned as validation errors.
func (s *GameService) CheckWord(ctx context.Context, raw string) (string, bool, error) {
	word, err := s.normalizeGuess(ctx, raw)
	if errors.Is(err, domain.ErrNotInWordList) {
		return domain.NormalizeWord(raw), false, nil
	}
	if err != nil {
		return "", false, err
	}
	return word, true, nil
}
