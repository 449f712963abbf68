package service

import "context"

// SignInResult is what the identity service hands back for a verified password.
type SignInResult struct {
	UID          string
	IDToken      string
	RefreshToken string
	ExpiresIn    int64
}

type TokenClaims struct {
	UID     string
	Email   string
	IsAdmin bool
}

type IdentityService interface {
	SignInWithEmailPassword(ctx context.Context, email, password string) (*SignInResult, error)
	VerifyToken(ctx context.Context, idToken string) (*TokenClaims, error)
	RevokeSessions(ctx context.Context, uid string) error
	DisableUserByEmail(ctx context.Context, email string) error
	EnableUserByEmail(ctx context.Context, email string) error
	DeleteUserByEmail(ctx context.Context, email string) error
	GrantAdmin(ctx context.Context, email string) error
}
