package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mailtriage/triagem-backend/internal/domain"
)

// Register creates a new collaborator profile with email + password.
// Returns ErrAlreadyExists if the email is already taken.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	// Normalize input before validation.
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Nome = strings.TrimSpace(input.Nome)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth.Register hash password: %w", err)
	}

	// Email uniqueness is enforced by the DB constraint.
	newProfile := &domain.Profile{
		ID:          uuid.New(),
		Email:       input.Email,
		Nome:        input.Nome,
		TipoUsuario: domain.RoleColaborador,
		SenhaHash:   string(hash),
	}

	created, err := s.profiles.Create(ctx, newProfile)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("auth.Register: %w", domain.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	accessToken, err := s.jwt.GenerateAccessToken(created.ID, created.TipoUsuario.String())
	if err != nil {
		return nil, fmt.Errorf("auth.Register issue token: %w", err)
	}

	s.log.InfoContext(ctx, "profile registered",
		slog.String("profile_id", created.ID.String()))

	return &AuthResult{AccessToken: accessToken, Profile: created}, nil
}
