// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/minevale/api/internal/platform/apperr"
	"github.com/minevale/api/internal/platform/sec"
	"github.com/minevale/api/pkg/uuidv7"
)

// # Contracts & Types

// TokenProvider defines the contract for generating session tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	GenerateAccessToken(userID, nickname, email string, timeToLive time.Duration) (string, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed before merging.
type Service struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	tokenProvider     TokenProvider
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(userRepo UserRepository, sessionRepo SessionRepository, tokenProv TokenProvider) *Service {
	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		tokenProvider:     tokenProv,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new player.
type RegisterInput struct {
	Nickname        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Register validates uniqueness, hashes the password, and persists a brand
// new account. The account row carries the profile role, so the profile
// exists from the moment the identity does.
func (service *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {

	// Verify email uniqueness. Return a client-safe Conflict error.
	_, err := service.userRepository.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Este e-mail já está cadastrado")
	}

	// Verify nickname uniqueness. Return a client-safe Conflict error.
	_, err = service.userRepository.FindByNickname(ctx, input.Nickname)
	if err == nil {
		return nil, apperr.Conflict("Este nickname já está em uso")
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuidv7.New(),
		Nickname:     input.Nickname,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         sec.RoleUser,
	}

	if err := service.userRepository.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

// Login validates credentials and issues a session token pair.
//
// Lookup misses and wrong passwords share one generic denial to prevent
// account enumeration.
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginSession, error) {
	user, err := service.userRepository.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, apperr.Unauthorized("E-mail ou senha incorretos")
	}

	// bcrypt comparison is constant-time, mitigating timing attacks.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("E-mail ou senha incorretos")
	}

	return service.establishSession(ctx, user)
}

// Logout permanently revokes the session bound to refreshToken.
//
// Revoking an unknown or expired token still succeeds (idempotent).
func (service *Service) Logout(ctx context.Context, refreshToken string) error {
	tokenHash := sec.HashToken(refreshToken)

	if err := service.sessionRepository.Delete(ctx, tokenHash); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	return nil
}

// # Session Management

// RefreshSession implements the refresh token rotation mechanism.
//
// The presented token is revoked before a new pair is issued, so a replayed
// token is dead on arrival.
func (service *Service) RefreshSession(ctx context.Context, refreshToken string) (*LoginSession, error) {
	tokenHash := sec.HashToken(refreshToken)

	userID, err := service.sessionRepository.Find(ctx, tokenHash)
	if err != nil {
		return nil, apperr.Unauthorized("Sessão inválida ou expirada")
	}

	// Rotation: revoke the old session to prevent replay attacks.
	if err := service.sessionRepository.Delete(ctx, tokenHash); err != nil {
		return nil, fmt.Errorf("auth_service_refresh_revoke_failed: %w", err)
	}

	user, err := service.userRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.Unauthorized("Sessão inválida ou expirada")
	}

	return service.establishSession(ctx, user)
}

// establishSession signs a fresh access token and persists a new refresh
// session for the user.
func (service *Service) establishSession(ctx context.Context, user *User) (*LoginSession, error) {
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.ID, user.Nickname, user.Email, SessionTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	expiresAt := time.Now().Add(RefreshTokenTTL)
	if err := service.sessionRepository.Create(ctx, sec.HashToken(refreshToken), user.ID, RefreshTokenTTL); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}
