package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ferhatb/enrollio/internal/app/models"
	"github.com/ferhatb/enrollio/internal/app/models/dto"
	"github.com/ferhatb/enrollio/internal/app/repositories"
	"github.com/ferhatb/enrollio/internal/pkg/apperrors"
	"github.com/ferhatb/enrollio/internal/pkg/auth"
)

// AuthService handles authentication: credential verification through the
// principal contract and JWT issuance.
type AuthService struct {
	principals  PrincipalLoader
	studentRepo repositories.IStudentRepository
	tokenRepo   repositories.ITokenRepository
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	principals PrincipalLoader,
	studentRepo repositories.IStudentRepository,
	tokenRepo repositories.ITokenRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		principals:  principals,
		studentRepo: studentRepo,
		tokenRepo:   tokenRepo,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// Login authenticates a student by username and password. An unknown
// principal and a wrong password both surface as ErrInvalidCredentials so
// callers cannot probe which usernames exist.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	principal, err := s.principals.LoadPrincipal(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrPrincipalNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading principal: %w", err)
	}

	if !auth.CheckPassword(principal.PasswordHash, req.Password) {
		s.logger.Warn().Str("username", req.Username).Msg("Login failed: wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	student, err := s.studentRepo.GetStudentByName(ctx, principal.Username)
	if err != nil {
		return nil, fmt.Errorf("error loading student for token: %w", err)
	}

	return s.generateTokenResponse(ctx, student)
}

// Refresh rotates a refresh token: the old token is revoked and a new pair
// is issued. Expired, revoked and unknown tokens each fail with their own
// typed error.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	studentID, _, _, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) ||
			errors.Is(err, apperrors.ErrTokenExpired) ||
			errors.Is(err, apperrors.ErrTokenRevoked) {
			return nil, err
		}
		return nil, fmt.Errorf("token validation error: %w", err)
	}

	student, err := s.studentRepo.GetStudentByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("student not found for token: %w", err)
	}

	// Revoke before reissuing so the old token cannot be replayed
	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke old token: %w", err)
	}

	return s.generateTokenResponse(ctx, student)
}

// generateTokenResponse creates the token pair and persists the refresh token
func (s *AuthService) generateTokenResponse(ctx context.Context, student *models.Student) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(student)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	tokenExpiry := s.jwtService.GetRefreshTokenExpiry()

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, student.ID, tokenExpiry); err != nil {
		return nil, fmt.Errorf("token saving error: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		TokenType:        "Bearer",
		ExpiresIn:        int64(expiresIn),
		RefreshExpiresIn: int64(refreshExpiresIn),
	}, nil
}
