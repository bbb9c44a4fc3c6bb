package service

import (
	"context"

	"wordle_duel/internal/domain"
	"wordle_duel/internal/logger"
	"wordle_duel/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditService handles audit logging
type AuditService struct {
	repo *repository.AuditRepository
}

// NewAuditService creates a new audit service
func NewAuditService(db *pgxpool.Pool) *AuditService {
	return &AuditService{
		repo: repository.NewAuditRepository(db),
	}
}

// Log creates a new audit log entry outside any transaction. Failures are logged, not returned.
func (s *AuditService) Log(ctx context.Context, userID int64, action, category string, details map[string]interface{}) {
	log := &domain.AuditLog{
		UserID:   userID,
		Action:   action,
		Category: category,
		Details:  details,
	}

	if err := s.repo.Create(ctx, log); err != nil {
		logger.WithContext(ctx).Error("failed to create audit log", "error", err, "action", action, "user_id", userID)
	}
}

// LogGameWithTx records a game action as part of tx, so it commits or rolls back with the change.
func (s *AuditService) LogGameWithTx(ctx context.Context, tx pgx.Tx, userID, gameID int64, action string, details map[string]interface{}) error {
	return s.repo.CreateWithTx(ctx, tx, &domain.AuditLog{
		UserID:   userID,
		GameID:   &gameID,
		Action:   action,
		Category: domain.AuditCategoryGame,
		Details:  details,
	})
}

// Recent returns the latest entries for a player.
func (s *AuditService) Recent(ctx context.Context, userID int64, limit int) ([]*domain.AuditLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.GetByUserID(ctx, userID, limit)
}
