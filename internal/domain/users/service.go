package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/citynights/server/internal/auth"
	"github.com/citynights/server/internal/domain/ids"
)

// Service handles credential checks and admin bootstrap. Tokens are minted
// through the shared JWT manager so login and gentoken stay in sync.
type Service struct {
	repo   Repository
	tokens *auth.JWTManager
}

func NewService(repo Repository, tokens *auth.JWTManager) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Login verifies the username/password pair and returns a signed token.
// Unknown users and wrong passwords both map to ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password, clientType string) (string, *User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Role, clientType)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}
	return token, user, nil
}

// Bootstrap ensures the configured admin account exists. A no-op when the
// credentials are unset or the account is already present.
func (s *Service) Bootstrap(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil
	}

	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	id, err := ids.NewULID()
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	user := &User{
		ID:           id,
		Username:     username,
		PasswordHash: string(hash),
		Role:         string(auth.RoleAdmin),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	return nil
}
