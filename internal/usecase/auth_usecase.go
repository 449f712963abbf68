package usecase

import (
	"context"
	"strings"

	"peopleconnect/internal/domain/service"
	"peopleconnect/pkg/errors"
	"peopleconnect/pkg/logger"
)

type AuthUseCase struct {
	identity service.IdentityService
}

func NewAuthUseCase(identity service.IdentityService) *AuthUseCase {
	return &AuthUseCase{identity: identity}
}

type AuthResult struct {
	UID          string `json:"uid"`
	Email        string `json:"email"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// Login checks the password with the identity service and admits only
// accounts carrying the admin claim.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	signIn, err := uc.identity.SignInWithEmailPassword(ctx, email, password)
	if err != nil {
		logger.Warn("Login failed for %s: %v", email, err)
		return nil, err
	}

	claims, err := uc.identity.VerifyToken(ctx, signIn.IDToken)
	if err != nil {
		return nil, errors.Internal("Failed to verify token", err)
	}
	if !claims.IsAdmin {
		logger.Warn("Login refused for %s: not an admin", email)
		return nil, errors.Forbidden("Admin access required", nil)
	}

	logger.Info("Admin %s signed in", email)
	return &AuthResult{
		UID:          claims.UID,
		Email:        claims.Email,
		IDToken:      signIn.IDToken,
		RefreshToken: signIn.RefreshToken,
		ExpiresIn:    signIn.ExpiresIn,
	}, nil
}

// Logout revokes every refresh token of uid. ID tokens already issued stay
// valid until they expire.
func (uc *AuthUseCase) Logout(ctx context.Context, uid string) error {
	if err := uc.identity.RevokeSessions(ctx, uid); err != nil {
		return errors.Internal("Failed to revoke sessions", err)
	}
	logger.Info("Admin %s signed out", uid)
	return nil
}

func (uc *AuthUseCase) VerifyAdmin(ctx context.Context, idToken string) (*service.TokenClaims, error) {
	claims, err := uc.identity.VerifyToken(ctx, idToken)
	if err != nil {
		return nil, errors.Unauthorized("Invalid or expired token", err)
	}
	if !claims.IsAdmin {
		return nil, errors.Forbidden("Admin access required", nil)
	}
	return claims, nil
}
