package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/shopapi/internal/cache"
	"github.com/Skotchmaster/shopapi/internal/hash"
	"github.com/Skotchmaster/shopapi/internal/logging"
	"github.com/Skotchmaster/shopapi/internal/models"
	"github.com/Skotchmaster/shopapi/internal/mykafka"
	"github.com/Skotchmaster/shopapi/internal/repo"
	"github.com/Skotchmaster/shopapi/internal/tokens"
)

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
	Denylist  cache.Denylist
	Events    mykafka.Publisher
	Now       func() time.Time
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("username, email and password are required: %w", ErrValidation)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: pwHash,
		Role:     models.RoleCustomer,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if repo.IsDuplicate(err) {
			return nil, fmt.Errorf("Username or email already exists: %w", ErrConflict)
		}
		return nil, err
	}

	publish(ctx, s.Events, mykafka.TopicUserEvents, strconv.FormatUint(uint64(user.ID), 10), "user_registered", map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return &user, nil
}

// Login returns the same ErrInvalidCredentials for an unknown email and a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required: %w", ErrValidation)
	}

	user, err := s.Repo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !hash.CheckPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	token, claims, err := tokens.NewAccessToken(s.JWTSecret, user.ID, user.Username, user.Role, s.now())
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: claims.ExpiresAt.Time, User: user}, nil
}

// Authenticate checks signature, expiry and revocation of a bearer token.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*tokens.AccessClaims, error) {
	claims, err := tokens.AccessClaimsFromToken(token, s.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrUnauthorized)
	}

	if s.Denylist != nil && claims.ID != "" {
		revoked, err := s.Denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return nil, fmt.Errorf("token revoked: %w", ErrUnauthorized)
		}
	}
	return claims, nil
}

// Logout revokes the token until it would have expired on its own.
func (s *AuthService) Logout(ctx context.Context, claims *tokens.AccessClaims) error {
	if s.Denylist == nil || claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	ttl := claims.ExpiresAt.Time.Sub(s.now())
	return s.Denylist.Revoke(ctx, claims.ID, ttl)
}

func RequireRole(claims *tokens.AccessClaims, role string) error {
	if claims == nil {
		return ErrUnauthorized
	}
	if claims.Role != role {
		return fmt.Errorf("role %q: %w", claims.Role, ErrForbidden)
	}
	return nil
}

// EnsureAdmin creates the bootstrap admin account when no user holds that email yet.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return false, nil
	}

	_, err := s.Repo.UserByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return false, err
	}
	username, _, _ := strings.Cut(email, "@")
	admin := models.User{Username: username, Email: email, Password: pwHash, Role: models.RoleAdmin}
	if err := s.Repo.CreateUser(ctx, &admin); err != nil {
		if repo.IsDuplicate(err) {
			return false, fmt.Errorf("admin username %q is taken: %w", username, ErrConflict)
		}
		return false, err
	}
	return true, nil
}
