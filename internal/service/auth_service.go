package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"carrental/internal/auth"
	"carrental/internal/model"
	"carrental/internal/repository"
)

const bcryptCost = 10

var (
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUsernameTaken is returned when the username already belongs to a user or an admin.
	ErrUsernameTaken = errors.New("username is not available")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// AuthService handles authentication for both directories. A login
// resolves the username against users first, then admins.
type AuthService interface {
	Register(ctx context.Context, name, email, username, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, principal auth.Principal, err error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	userRepo   repository.UserRepository
	adminRepo  repository.AdminRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	log        *logrus.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	adminRepo repository.AdminRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	log *logrus.Logger,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		adminRepo:  adminRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
		log:        log,
	}
}

// Register creates a rider account with a hashed password. The username
// must be free in both the user and the admin directory.
func (s *authService) Register(ctx context.Context, name, email, username, password string) (*model.User, error) {
	if taken, err := s.usernameTaken(ctx, username); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Username: username,
		Password: string(hashed),
		Role:     model.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.WithField("username", username).Info("user registered")
	return user, nil
}

// Login authenticates a principal and returns access and refresh tokens.
func (s *authService) Login(ctx context.Context, username, password string) (string, string, auth.Principal, error) {
	principal, hash, err := s.resolvePrincipal(ctx, username)
	if err != nil {
		return "", "", auth.Principal{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", "", auth.Principal{}, ErrInvalidCredentials
	}

	accessToken, err := s.jwtService.GenerateAccessToken(principal.Username, principal.Role)
	if err != nil {
		return "", "", auth.Principal{}, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(principal.Username, principal.Role)
	if err != nil {
		return "", "", auth.Principal{}, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, principal, auth.RefreshTokenExpiry); err != nil {
		return "", "", auth.Principal{}, fmt.Errorf("store refresh token: %w", err)
	}

	s.log.WithFields(logrus.Fields{"username": principal.Username, "role": principal.Role}).Info("login")
	return accessToken, refreshToken, principal, nil
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil || claims.ID == "" {
		return "", ErrInvalidRefreshToken
	}

	stored, err := s.tokenStore.GetRefreshToken(ctx, claims.ID)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}
	if stored.Username != claims.Username || stored.Role != claims.Role {
		return "", ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(claims.Username, claims.Role)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout invalidates a refresh token.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return ErrInvalidRefreshToken
	}
	return s.tokenStore.DeleteRefreshToken(ctx, tokenID)
}

// resolvePrincipal looks the username up across both directories and
// returns the principal together with its password hash.
func (s *authService) resolvePrincipal(ctx context.Context, username string) (auth.Principal, string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil {
		return auth.Principal{Username: user.Username, Role: user.Role}, user.Password, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return auth.Principal{}, "", fmt.Errorf("find user: %w", err)
	}

	admin, err := s.adminRepo.FindByUsername(ctx, username)
	if err == nil {
		return auth.Principal{Username: admin.Username, Role: model.RoleAdmin}, admin.Password, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return auth.Principal{}, "", fmt.Errorf("find admin: %w", err)
	}

	return auth.Principal{}, "", ErrInvalidCredentials
}

func (s *authService) usernameTaken(ctx context.Context, username string) (bool, error) {
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return true, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("check username: %w", err)
	}

	if _, err := s.adminRepo.FindByUsername(ctx, username); err == nil {
		return true, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("check username: %w", err)
	}
	return false, nil
}
