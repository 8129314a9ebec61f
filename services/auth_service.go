package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"jewels-backend/models"
	apperrors "jewels-backend/pkg/errors"
	"jewels-backend/pkg/oauth"
	"jewels-backend/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserRepo interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
}

type Blacklist interface {
	Add(ctx context.Context, token string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}

type OAuthProvider interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth.UserInfo, error)
}

// AuthService handles signup, login and logout for both password and
// Google accounts.
type AuthService struct {
	users     UserRepo
	tokens    *TokenService
	blacklist Blacklist
	google    OAuthProvider
	logger    *zap.Logger
}

func NewAuthService(users UserRepo, tokens *TokenService, blacklist Blacklist, google OAuthProvider, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, blacklist: blacklist, google: google, logger: logger}
}

type SignupInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup registers a password account. Duplicate emails are rejected.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &models.User{
		Name:      strings.TrimSpace(input.Name),
		Email:     email,
		Password:  string(hash),
		Role:      models.RoleUser,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.Conflict("Email already registered")
		}
		return nil, apperrors.Internal(err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.Hex()))
	return user, nil
}

// Login verifies the credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (string, *models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, apperrors.Unauthorized("Invalid credentials")
		}
		return "", nil, apperrors.Internal(err)
	}
	if user.Password == "" {
		// Google-provisioned account with no password set.
		return "", nil, apperrors.Unauthorized("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return "", nil, apperrors.Unauthorized("Invalid credentials")
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return "", nil, apperrors.Internal(err)
	}
	return token, user, nil
}

// Logout revokes the token by blacklisting it until its natural expiry.
// Tokens that are already invalid have nothing to revoke.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	identity, err := s.tokens.Validate(token)
	if err != nil {
		return nil
	}
	if err := s.blacklist.Add(ctx, token, time.Until(identity.ExpiresAt)); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// GoogleAuthURL returns the consent URL for the given state.
func (s *AuthService) GoogleAuthURL(state string) string {
	return s.google.AuthURL(state)
}

// LoginWithGoogle exchanges the OAuth code, provisioning a local account on
// first login, and issues an access token.
func (s *AuthService) LoginWithGoogle(ctx context.Context, code string) (string, *models.User, error) {
	info, err := s.google.Exchange(ctx, code)
	if err != nil {
		return "", nil, apperrors.Unauthorized("Google authentication failed")
	}

	email := strings.ToLower(info.Email)
	user, err := s.users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		user = &models.User{
			Name:      info.Name,
			Email:     email,
			Role:      models.RoleUser,
			Picture:   info.Picture,
			IsGoogle:  true,
			CreatedAt: time.Now().UTC(),
		}
		insertErr := s.users.Insert(ctx, user)
		if errors.Is(insertErr, repository.ErrDuplicate) {
			// Concurrent first login for the same account.
			user, err = s.users.FindByEmail(ctx, email)
			if err != nil {
				return "", nil, apperrors.Internal(err)
			}
		} else if insertErr != nil {
			return "", nil, apperrors.Internal(insertErr)
		} else {
			s.logger.Info("google user provisioned", zap.String("user_id", user.ID.Hex()))
		}
	case err != nil:
		return "", nil, apperrors.Internal(err)
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return "", nil, apperrors.Internal(err)
	}
	return token, user, nil
}
