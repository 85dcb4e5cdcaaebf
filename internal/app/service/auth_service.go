package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"prepforge/internal/common"
	"prepforge/internal/common/security"
	"prepforge/internal/domain/model"
	"prepforge/internal/domain/repository"
	"prepforge/internal/platform/config"
	"prepforge/internal/platform/tokenstore"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type AuthService struct {
	userRepo    repository.UserRepository
	resetTokens tokenstore.ResetTokenStore
	oauth       *oauth2.Config
}

func NewAuthService(userRepo repository.UserRepository, resetTokens tokenstore.ResetTokenStore) *AuthService {
	cfg := config.AppConfig
	return &AuthService{
		userRepo:    userRepo,
		resetTokens: resetTokens,
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Success bool        `json:"success"`
	User    *model.User `json:"user"`
	Token   string      `json:"token"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("name, email and password are required: %w", common.ErrBadRequest)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: hashedPassword,
		AuthProvider:   model.ProviderLocal,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.respondWithToken(user, config.AppConfig.JWTExp)
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required: %w", common.ErrBadRequest)
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized // generic message for security
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.AuthProvider != model.ProviderLocal || !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	return s.respondWithToken(user, config.AppConfig.JWTExp)
}

// ExternalLoginURL starts the delegated identity provider flow.
func (s *AuthService) ExternalLoginURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

type googleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// ExternalCallback exchanges the provider code, upserts the user and mints
// the short-lived external-login token.
func (s *AuthService) ExternalCallback(ctx context.Context, code string) (*AuthResponse, error) {
	if code == "" {
		return nil, fmt.Errorf("missing authorization code: %w", common.ErrBadRequest)
	}

	tok, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", common.ErrUnauthorized)
	}

	info, err := s.fetchUserInfo(ctx, tok)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByExternalID(ctx, info.ID)
	if errors.Is(err, common.ErrNotFound) {
		user = &model.User{
			ID:           uuid.NewString(),
			Name:         info.Name,
			Email:        info.Email,
			AuthProvider: model.ProviderGoogle,
			ExternalID:   &info.ID,
		}
		if info.Picture != "" {
			user.PhotoURL = &info.Picture
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create external user: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return s.respondWithToken(user, config.AppConfig.JWTExternalExp)
}

func (s *AuthService) fetchUserInfo(ctx context.Context, tok *oauth2.Token) (*googleUserInfo, error) {
	resp, err := s.oauth.Client(ctx, tok).Get(googleUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info request returned %d: %w", resp.StatusCode, common.ErrUnauthorized)
	}

	info := &googleUserInfo{}
	if err := json.NewDecoder(resp.Body).Decode(info); err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	}
	if info.ID == "" || info.Email == "" {
		return nil, fmt.Errorf("incomplete user info from provider: %w", common.ErrUnauthorized)
	}
	return info, nil
}

// ForgotPassword issues a reset token for local accounts. The response is the
// same whether or not the email exists, so accounts cannot be enumerated.
// There is no mail delivery here; the reset link is logged server-side.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("email is required: %w", common.ErrBadRequest)
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user.AuthProvider != model.ProviderLocal {
		return nil
	}

	token, digest, err := security.NewResetToken()
	if err != nil {
		return err
	}
	if err := s.resetTokens.Save(ctx, digest, user.ID, config.AppConfig.ResetTokenTTL); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	log.Printf("Password reset requested for %s: %s/reset-password?token=%s", email, config.AppConfig.BaseURL, token)
	return nil
}

// ResetPassword redeems a token exactly once and replaces the password.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return fmt.Errorf("token and password are required: %w", common.ErrBadRequest)
	}

	userID, err := s.resetTokens.Consume(ctx, security.HashResetToken(token))
	if err != nil {
		return err
	}

	hashedPassword, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (s *AuthService) respondWithToken(user *model.User, ttl time.Duration) (*AuthResponse, error) {
	token, err := security.GenerateToken(user.ID, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = ""
	return &AuthResponse{Success: true, User: user, Token: token}, nil
}
