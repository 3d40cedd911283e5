package usecase

import (
	"strings"

	pkgAuth "github.com/polkiloo/storeadmin/internal/pkg/auth"
)

// AuthUseCase verifies admin bearer tokens.
type AuthUseCase struct {
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{tokens: strategy}
}

// ParseToken extracts the admin subject from provided token.
func (u *AuthUseCase) ParseToken(token string) (string, error) {
	if token == "" {
		return "", pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// IssueToken creates a token for the admin subject.
func (u *AuthUseCase) IssueToken(subject string) (string, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", pkgAuth.ErrInvalidToken
	}
	return u.tokens.IssueToken(subject)
}
