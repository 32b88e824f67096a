package auth

import "github.com/mailtriage/triagem-backend/internal/domain"

// AuthResult is returned by Register and Login operations.
type AuthResult struct {
	AccessToken string
	Profile     *domain.Profile
}
