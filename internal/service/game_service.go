package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wordle_duel/internal/db"
	"wordle_duel/internal/domain"
	"wordle_duel/internal/logger"
	"wordle_duel/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GameServiceConfig holds the knobs of the game engine
type GameServiceConfig struct {
	PollInterval time.Duration
}

// GameService runs sessions, turns and guesses. Every mutation is one transaction that locks the
// row it changes, so concurrent requests for the same game are serialized by the store.
type GameService struct {
	db       *pgxpool.Pool
	singles  *repository.SingleGameRepository
	multis   *repository.MultiplayerGameRepository
	attempts *repository.AttemptRepository
	users    *repository.UserRepository
	lexicon  *Lexicon
	audit    *AuditService
	notifier TurnNotifier
	cfg      GameServiceConfig
	now      func() time.Time
}

// NewGameService creates a new game service
func NewGameService(pool *pgxpool.Pool, lexicon *Lexicon, notifier TurnNotifier, cfg GameServiceConfig) *GameService {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	return &GameService{
		db:       pool,
		singles:  repository.NewSingleGameRepository(pool),
		multis:   repository.NewMultiplayerGameRepository(pool),
		attempts: repository.NewAttemptRepository(pool),
		users:    repository.NewUserRepository(pool),
		lexicon:  lexicon,
		audit:    NewAuditService(pool),
		notifier: notifier,
		cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// inTx runs fn in a transaction. Errors without a domain kind come back as storage errors.
func (s *GameService) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	err := domain.StorageError(db.WithTx(ctx, s.db, fn))
	if err != nil {
		s.recordRejection(ctx, err)
	}
	return err
}

func (s *GameService) recordRejection(ctx context.Context, err error) {
	kind := domain.KindCode(err)
	if errors.Is(err, domain.ErrStorage) {
		logger.WithContext(ctx).Error("game transaction failed", "error", err)
		return
	}
	RejectedTransitions.WithLabelValues(kind).Inc()
	logger.WithContext(ctx).Debug("game transition rejected", "kind", kind, "error", err)
}

func (s *GameService) notify(ctx context.Context, ev TurnEvent) {
	if s.notifier == nil {
		return
	}
	s.notifier.PublishTurn(ctx, ev)
}

func turnEvent(name string, g *domain.MultiplayerGame) TurnEvent {
	return TurnEvent{
		Event:         name,
		GameID:        g.ID,
		Player1ID:     g.Player1ID,
		Player2ID:     g.Player2ID,
		PlayerTurn:    g.PlayerTurn,
		HasWord:       g.HasWord(),
		TurnCompleted: g.Completed(),
		TurnNum:       g.TurnNum,
	}
}

func (s *GameService) requirePlayer(ctx context.Context, q db.DBTX, id int64) error {
	ok, err := s.users.Exists(ctx, q, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrPlayerNotFound
	}
	return nil
}

// normalizeGuess checks shape and dictionary membership before any row is touched.
func (s *GameService) normalizeGuess(ctx context.Context, raw string) (string, error) {
	word := domain.NormalizeWord(raw)
	if err := domain.ValidateWord(word); err != nil {
		return "", err
	}
	ok, err := s.lexicon.IsWord(ctx, s.db, word)
	if err != nil {
		return "", domain.StorageError(err)
	}
	if !ok {
		return "", domain.ErrNotInWordList
	}
	return word, nil
}

func singleLockKey(userID int64) string {
	return fmt.Sprintf("single:%d", userID)
}

func pairLockKey(a, b int64) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("pair:%d:%d", a, b)
}
