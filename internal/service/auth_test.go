package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shopapi/internal/cache"
	"github.com/Skotchmaster/shopapi/internal/models"
	"github.com/Skotchmaster/shopapi/internal/tokens"
)

func newTestAuthService(t *testing.T) (*AuthService, *recordingPublisher) {
	t.Helper()

	events := &recordingPublisher{}
	return &AuthService{
		Repo:      newTestRepo(t),
		JWTSecret: []byte("test-jwt-secret"),
		Denylist:  cache.NewMemoryDenylist(),
		Events:    events,
	}, events
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{name: "empty username", username: "", email: "a@b.c", password: "secret"},
		{name: "empty email", username: "user", email: " ", password: "secret"},
		{name: "empty password", username: "user", email: "a@b.c", password: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.username, tt.email, tt.password)
			require.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, "username, email and password are required", Message(err))
		})
	}
}

func TestAuthService_Register(t *testing.T) {
	svc, events := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "ann", "ann@example.com", "secret")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.NotEqual(t, "secret", user.Password)
	assert.Equal(t, []string{"user_registered"}, events.types())

	_, err = svc.Register(ctx, "other", "ann@example.com", "secret")
	require.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "Username or email already exists", Message(err))

	_, err = svc.Register(ctx, "ann", "other@example.com", "secret")
	require.ErrorIs(t, err, ErrConflict)
}

func TestAuthService_Login(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "ann", "ann@example.com", "secret")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "", "secret")
	require.ErrorIs(t, err, ErrValidation)

	_, unknownErr := svc.Login(ctx, "nobody@example.com", "secret")
	_, wrongErr := svc.Login(ctx, "ann@example.com", "wrong")
	require.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	require.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())

	res, err := svc.Login(ctx, "ann@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "ann", res.User.Username)

	claims, err := tokens.AccessClaimsFromToken(res.Token, svc.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, "ann", claims.Username)
	assert.Equal(t, models.RoleCustomer, claims.Role)
	assert.WithinDuration(t, time.Now().Add(tokens.AccessTTL), res.ExpiresAt, 5*time.Second)
}

func TestAuthService_AuthenticateAndLogout(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "ann", "ann@example.com", "secret")
	require.NoError(t, err)
	res, err := svc.Login(ctx, "ann@example.com", "secret")
	require.NoError(t, err)

	claims, err := svc.Authenticate(ctx, res.Token)
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, res.Token+"x")
	require.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, svc.Logout(ctx, claims))

	_, err = svc.Authenticate(ctx, res.Token)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, RequireRole(nil, models.RoleAdmin), ErrUnauthorized)
	require.ErrorIs(t, RequireRole(&tokens.AccessClaims{Role: models.RoleCustomer}, models.RoleAdmin), ErrForbidden)
	require.NoError(t, RequireRole(&tokens.AccessClaims{Role: models.RoleAdmin}, models.RoleAdmin))
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	created, err := svc.EnsureAdmin(ctx, "", "")
	require.NoError(t, err)
	assert.False(t, created)

	created, err = svc.EnsureAdmin(ctx, "root@shop.local", "s3cret")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureAdmin(ctx, "root@shop.local", "s3cret")
	require.NoError(t, err)
	assert.False(t, created)

	res, err := svc.Login(ctx, "root@shop.local", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, res.User.Role)
}
