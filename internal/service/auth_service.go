package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"wordle_duel/internal/domain"
	"wordle_duel/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidUsername    = fmt.Errorf("%w: username must be 3-32 letters, digits or underscores", domain.ErrValidation)
	ErrWeakPassword       = fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,32}$`)

// AuthService registers players and issues tokens.
type AuthService struct {
	users *repository.UserRepository
	audit *AuditService
}

func NewAuthService(db *pgxpool.Pool) *AuthService {
	return &AuthService{
		users: repository.NewUserRepository(db),
		audit: NewAuditService(db),
	}
}

// Register creates a player and returns it with a fresh token.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, string, error) {
	if !usernamePattern.MatchString(username) {
		return nil, "", ErrInvalidUsername
	}
	if len(password) < 8 || len(password) > 72 {
		return nil, "", ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	u := &domain.User{Username: username, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, "", err
	}
	s.audit.Log(ctx, u.ID, domain.AuditActionRegister, domain.AuditCategoryAuth, nil)

	token, err := GenerateJWT(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login checks credentials. Unknown users and wrong passwords fail the same way.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, domain.ErrPlayerNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	s.audit.Log(ctx, u.ID, domain.AuditActionLogin, domain.AuditCategoryAuth, nil)

	token, err := GenerateJWT(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *AuthService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}
