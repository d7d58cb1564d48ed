package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/visitorgate/visitor-admin/internal/core/domain"
	"github.com/visitorgate/visitor-admin/internal/core/ports"
)

// AuthService implements operator login.
type AuthService struct {
	repo      ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
	logger    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    logger,
	}
}

// Login checks the credentials and returns a signed token. Unknown emails
// and wrong passwords both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.UserAccount, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	now := s.now()
	token, err := s.generateToken(user, now)
	if err != nil {
		return "", nil, err
	}

	if err := s.repo.TouchLogin(ctx, user.UID, now); err != nil {
		s.logger.Warn().Err(err).Str("uid", user.UID).Msg("failed to record last login")
	} else {
		user.LastLoginAt = &now
	}

	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.UserAccount, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"uid":   user.UID,
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
