package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"firebase.google.com/go/v4/auth"

	"peopleconnect/internal/domain/service"
	"peopleconnect/pkg/errors"
	"peopleconnect/pkg/logger"
)

const (
	identityToolkitURL = "https://identitytoolkit.googleapis.com/v1"
	adminClaim         = "admin"
)

// adminAuth is the slice of *auth.Client this package calls.
type adminAuth interface {
	GetUserByEmail(ctx context.Context, email string) (*auth.UserRecord, error)
	UpdateUser(ctx context.Context, uid string, user *auth.UserToUpdate) (*auth.UserRecord, error)
	DeleteUser(ctx context.Context, uid string) error
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
	SetCustomUserClaims(ctx context.Context, uid string, customClaims map[string]interface{}) error
}

type FirebaseAuthClient struct {
	client     adminAuth
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewFirebaseAuthClient(client *auth.Client, apiKey string) *FirebaseAuthClient {
	return newFirebaseAuthClient(client, apiKey, identityToolkitURL)
}

func newFirebaseAuthClient(client adminAuth, apiKey, baseURL string) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client:     client,
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

var _ service.IdentityService = (*FirebaseAuthClient)(nil)

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID      string `json:"localId"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type identityErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SignInWithEmailPassword asks the identity service to check the password.
// The Admin SDK cannot verify passwords, so this goes through the REST API.
func (f *FirebaseAuthClient) SignInWithEmailPassword(ctx context.Context, email, password string) (*service.SignInResult, error) {
	if f.apiKey == "" {
		return nil, errors.Internal("Identity service API key is not configured", nil)
	}

	body, err := json.Marshal(signInRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return nil, errors.Internal("Failed to encode sign-in request", err)
	}

	url := fmt.Sprintf("%s/accounts:signInWithPassword?key=%s", f.baseURL, f.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Internal("Failed to build sign-in request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, errors.BadGateway("Identity service unavailable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var idErr identityErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&idErr)
		logger.Warn("Sign-in rejected for %s: %s", email, idErr.Error.Message)
		if resp.StatusCode == http.StatusBadRequest {
			return nil, errors.Unauthorized("Invalid email or password", nil)
		}
		return nil, errors.BadGateway("Identity service error", fmt.Errorf("status %d: %s", resp.StatusCode, idErr.Error.Message))
	}

	var out signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.BadGateway("Invalid identity service response", err)
	}
	expiresIn, _ := strconv.ParseInt(out.ExpiresIn, 10, 64)

	return &service.SignInResult{
		UID:          out.LocalID,
		IDToken:      out.IDToken,
		RefreshToken: out.RefreshToken,
		ExpiresIn:    expiresIn,
	}, nil
}

func (f *FirebaseAuthClient) VerifyToken(ctx context.Context, idToken string) (*service.TokenClaims, error) {
	token, err := f.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, errors.Unauthorized("Invalid or expired token", err)
	}

	claims := &service.TokenClaims{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		claims.Email = email
	}
	if isAdmin, ok := token.Claims[adminClaim].(bool); ok {
		claims.IsAdmin = isAdmin
	}
	return claims, nil
}

func (f *FirebaseAuthClient) RevokeSessions(ctx context.Context, uid string) error {
	if err := f.client.RevokeRefreshTokens(ctx, uid); err != nil {
		return errors.Internal("Failed to revoke sessions", err)
	}
	return nil
}

func (f *FirebaseAuthClient) DisableUserByEmail(ctx context.Context, email string) error {
	return f.setDisabled(ctx, email, true)
}

func (f *FirebaseAuthClient) EnableUserByEmail(ctx context.Context, email string) error {
	return f.setDisabled(ctx, email, false)
}

func (f *FirebaseAuthClient) setDisabled(ctx context.Context, email string, disabled bool) error {
	user, err := f.lookup(ctx, email)
	if err != nil {
		return err
	}

	logger.Info("Setting disabled=%v for identity account %s", disabled, user.Email)
	if _, err := f.client.UpdateUser(ctx, user.UID, (&auth.UserToUpdate{}).Disabled(disabled)); err != nil {
		return errors.Internal("Failed to update identity account", err)
	}
	return nil
}

// DeleteUserByEmail removes the identity account. A missing account is not an
// error since marketplace records can outlive their sign-in.
func (f *FirebaseAuthClient) DeleteUserByEmail(ctx context.Context, email string) error {
	user, err := f.lookup(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil
		}
		return err
	}

	if err := f.client.DeleteUser(ctx, user.UID); err != nil {
		return errors.Internal("Failed to delete identity account", err)
	}
	return nil
}

func (f *FirebaseAuthClient) GrantAdmin(ctx context.Context, email string) error {
	user, err := f.lookup(ctx, email)
	if err != nil {
		return err
	}

	claims := map[string]interface{}{}
	for k, v := range user.CustomClaims {
		claims[k] = v
	}
	claims[adminClaim] = true

	if err := f.client.SetCustomUserClaims(ctx, user.UID, claims); err != nil {
		return errors.Internal("Failed to set admin claim", err)
	}
	return nil
}

func (f *FirebaseAuthClient) lookup(ctx context.Context, email string) (*auth.UserRecord, error) {
	user, err := f.client.GetUserByEmail(ctx, email)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil, errors.NotFound("Identity account", err)
		}
		return nil, errors.Internal("Failed to look up identity account", err)
	}
	return user, nil
}
