package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"stocks-api/auth"
	"stocks-api/dto"
	"stocks-api/logger"
	"stocks-api/models"
	"stocks-api/repository"
)

// AccountService defines the interface for registration and token handling.
type AccountService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.NewUserResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.NewUserResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.NewUserResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}

// NewAccountService creates a new account service. Refresh tokens live for
// refreshTTL in tokens.
func NewAccountService(
	userRepo repository.UserRepository,
	issuer *auth.TokenIssuer,
	tokens auth.TokenStore,
	refreshTTL time.Duration,
	logger *logger.Logger,
) AccountService {
	return &accountService{
		userRepo:   userRepo,
		issuer:     issuer,
		tokens:     tokens,
		refreshTTL: refreshTTL,
		logger:     logger,
	}
}

type accountService struct {
	userRepo   repository.UserRepository
	issuer     *auth.TokenIssuer
	tokens     auth.TokenStore
	refreshTTL time.Duration
	logger     *logger.Logger
}

// Register creates the user and signs them in.
func (s *accountService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.NewUserResponse, error) {
	userName := strings.TrimSpace(req.UserName)

	taken, err := s.userRepo.ExistsByUserNameOrEmail(ctx, userName, req.Email)
	if err != nil {
		return nil, storeError(err, "look up user")
	}
	if taken {
		return nil, fmt.Errorf("user %q: %w", userName, ErrConflict)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.AppUser{
		UserName:     userName,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, storeError(err, fmt.Sprintf("create user %q", userName))
	}

	s.logger.Info("User registered", logger.StringField("user", user.UserName))
	return s.signIn(ctx, user)
}

// Login checks the credentials. Unknown users and wrong passwords fail the
// same way.
func (s *accountService) Login(ctx context.Context, req dto.LoginRequest) (*dto.NewUserResponse, error) {
	user, err := s.userRepo.FindByUserName(ctx, strings.TrimSpace(req.UserName))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("invalid username or password: %w", ErrUnauthorized)
	}
	if err != nil {
		return nil, storeError(err, "look up user")
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Warn("Failed login", logger.StringField("user", user.UserName))
		return nil, fmt.Errorf("invalid username or password: %w", ErrUnauthorized)
	}

	return s.signIn(ctx, user)
}

// Refresh exchanges a refresh token for a new token pair. The presented token
// is revoked.
func (s *accountService) Refresh(ctx context.Context, refreshToken string) (*dto.NewUserResponse, error) {
	userID, err := s.tokens.Take(ctx, refreshToken)
	if errors.Is(err, auth.ErrTokenNotFound) {
		return nil, fmt.Errorf("refresh token: %w", ErrUnauthorized)
	}
	if err != nil {
		return nil, fmt.Errorf("redeem refresh token: %w", err)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("refresh token owner: %w", ErrUnauthorized)
	}
	if err != nil {
		return nil, storeError(err, "look up user")
	}

	return s.signIn(ctx, user)
}

// Logout revokes the refresh token. Unknown tokens are ignored.
func (s *accountService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.tokens.Delete(ctx, refreshToken); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

func (s *accountService) signIn(ctx context.Context, user *models.AppUser) (*dto.NewUserResponse, error) {
	token, err := s.issuer.CreateToken(user)
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	refresh := auth.NewRefreshToken()
	if err := s.tokens.Save(ctx, refresh, user.ID, s.refreshTTL); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &dto.NewUserResponse{
		UserName:     user.UserName,
		Email:        user.Email,
		Token:        token,
		RefreshToken: refresh,
	}, nil
}
