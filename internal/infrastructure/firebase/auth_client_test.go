package firebase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peopleconnect/pkg/errors"
)

type fakeAdminAuth struct {
	users       map[string]*auth.UserRecord
	updatedUIDs []string
	deletedUIDs []string
	claims      map[string]map[string]interface{}
	token       *auth.Token
	updateErr   error
}

func (f *fakeAdminAuth) GetUserByEmail(_ context.Context, email string) (*auth.UserRecord, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, assert.AnError
}

func (f *fakeAdminAuth) UpdateUser(_ context.Context, uid string, _ *auth.UserToUpdate) (*auth.UserRecord, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updatedUIDs = append(f.updatedUIDs, uid)
	return &auth.UserRecord{UserInfo: &auth.UserInfo{UID: uid}}, nil
}

func (f *fakeAdminAuth) DeleteUser(_ context.Context, uid string) error {
	f.deletedUIDs = append(f.deletedUIDs, uid)
	return nil
}

func (f *fakeAdminAuth) VerifyIDToken(_ context.Context, _ string) (*auth.Token, error) {
	if f.token == nil {
		return nil, assert.AnError
	}
	return f.token, nil
}

func (f *fakeAdminAuth) RevokeRefreshTokens(_ context.Context, _ string) error { return nil }

func (f *fakeAdminAuth) SetCustomUserClaims(_ context.Context, uid string, claims map[string]interface{}) error {
	if f.claims == nil {
		f.claims = map[string]map[string]interface{}{}
	}
	f.claims[uid] = claims
	return nil
}

func userRecord(uid, email string) *auth.UserRecord {
	return &auth.UserRecord{UserInfo: &auth.UserInfo{UID: uid, Email: email}}
}

func TestSignInWithEmailPassword(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts:signInWithPassword", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req signInRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "correct horse" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":400,"message":"INVALID_PASSWORD"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"localId":"admin-1","idToken":"id-tok","refreshToken":"ref-tok","expiresIn":"3600"}`))
	}))
	defer server.Close()

	client := newFirebaseAuthClient(&fakeAdminAuth{}, "test-key", server.URL)

	result, err := client.SignInWithEmailPassword(context.Background(), "ops@peopleconnect.app", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "admin-1", result.UID)
	assert.Equal(t, "id-tok", result.IDToken)
	assert.Equal(t, int64(3600), result.ExpiresIn)

	_, err = client.SignInWithEmailPassword(context.Background(), "ops@peopleconnect.app", "123")
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestSignInRequiresAPIKey(t *testing.T) {
	client := newFirebaseAuthClient(&fakeAdminAuth{}, "", "http://unused")
	_, err := client.SignInWithEmailPassword(context.Background(), "a@b.c", "x")
	assert.True(t, errors.Is(err, "INTERNAL_ERROR"))
}

func TestVerifyTokenReadsAdminClaim(t *testing.T) {
	fake := &fakeAdminAuth{token: &auth.Token{UID: "admin-1", Claims: map[string]interface{}{"admin": true, "email": "ops@peopleconnect.app"}}}
	client := newFirebaseAuthClient(fake, "k", "http://unused")

	claims, err := client.VerifyToken(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.UID)
	assert.Equal(t, "ops@peopleconnect.app", claims.Email)
	assert.True(t, claims.IsAdmin)

	fake.token = nil
	_, err = client.VerifyToken(context.Background(), "tok")
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestDisableAndGrantAdminByEmail(t *testing.T) {
	fake := &fakeAdminAuth{users: map[string]*auth.UserRecord{"u@x.com": userRecord("uid-u", "u@x.com")}}
	client := newFirebaseAuthClient(fake, "k", "http://unused")

	require.NoError(t, client.DisableUserByEmail(context.Background(), "u@x.com"))
	require.NoError(t, client.EnableUserByEmail(context.Background(), "u@x.com"))
	assert.Equal(t, []string{"uid-u", "uid-u"}, fake.updatedUIDs)

	require.NoError(t, client.GrantAdmin(context.Background(), "u@x.com"))
	assert.Equal(t, true, fake.claims["uid-u"]["admin"])

	fake.updateErr = assert.AnError
	assert.Error(t, client.DisableUserByEmail(context.Background(), "u@x.com"))
	assert.Error(t, client.DisableUserByEmail(context.Background(), "missing@x.com"))
}
