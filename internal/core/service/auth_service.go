package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/storemgmt/store-management-api/internal/api/metrics"
	"github.com/storemgmt/store-management-api/internal/core/domain"
	"github.com/storemgmt/store-management-api/internal/core/ports"
)

// LoginLimiter abstracts the failed-login lockout store (Redis).
type LoginLimiter interface {
	IsLocked(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// AuthService implements credential validation and stateless token handling.
type AuthService struct {
	users     ports.UserRepository
	limiter   LoginLimiter // optional; nil disables lockout
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, limiter LoginLimiter, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, limiter: limiter, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

// Login validates the credentials and issues a signed bearer token.
// Unknown usernames, wrong passwords, and disabled accounts are all reported
// as ErrInvalidCredentials so callers cannot probe which usernames exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		locked, err := s.limiter.IsLocked(ctx, username)
		if err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("login limiter check failed, continuing")
		} else if locked {
			metrics.LoginsTotal.WithLabelValues("locked").Inc()
			return nil, domain.ErrTooManyLoginAttempts
		}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, username)
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.Enabled {
		s.log.Warn().Str("username", username).Msg("login attempt for disabled account")
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.log.Warn().Str("username", username).Msg("invalid password attempt")
		s.recordFailure(ctx, username)
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, username); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("failed to reset login limiter")
		}
	}

	s.log.Info().Str("username", user.Username).Str("role", user.Role).Msg("user authenticated")
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return &ports.AuthResult{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int(s.tokenTTL.Seconds()),
		Username:  user.Username,
		Role:      user.Role,
	}, nil
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to record login failure")
	}
}

// issueToken signs an HS256 token carrying subject, role, and user id.
func (s *AuthService) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     user.Username,
		"role":    user.Role,
		"user_id": user.ID,
		"iat":     now.Unix(),
		"exp":     now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// ParseToken verifies the token's signature, structure, and expiry.
func (s *AuthService) ParseToken(token string) (*ports.TokenClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	username, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	userID, _ := claims["user_id"].(float64)

	return &ports.TokenClaims{
		Username: username,
		Role:     role,
		UserID:   int64(userID),
	}, nil
}

// IsValid reports whether the token parses and has not expired.
func (s *AuthService) IsValid(token string) bool {
	_, err := s.ParseToken(token)
	return err == nil
}
