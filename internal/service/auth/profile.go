package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mailtriage/triagem-backend/internal/domain"
	"github.com/mailtriage/triagem-backend/pkg/ctxutil"
)

// GetProfile returns the authenticated collaborator's profile.
// Returns ErrUnauthorized if no profile ID is found in context.
func (s *Service) GetProfile(ctx context.Context) (*domain.Profile, error) {
	profileID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("auth.GetProfile: %w", err)
	}

	return profile, nil
}

// UpdateProfile updates the authenticated collaborator's display name.
// Returns ErrUnauthorized if no profile ID is found in context.
func (s *Service) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.Profile, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	profileID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	update := domain.ProfileUpdate{}
	if input.Nome != nil {
		trimmed := strings.TrimSpace(*input.Nome)
		update.Nome = &trimmed
	}

	profile, err := s.profiles.Update(ctx, profileID, update)
	if err != nil {
		return nil, fmt.Errorf("auth.UpdateProfile: %w", err)
	}

	s.log.InfoContext(ctx, "profile updated",
		slog.String("profile_id", profileID.String()))

	return profile, nil
}
