package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/visitorgate/visitor-admin/internal/core/domain"
	"github.com/visitorgate/visitor-admin/internal/core/ports"
	"github.com/visitorgate/visitor-admin/internal/core/presence"
)

type UserService struct {
	repo     ports.UserRepository
	presence ports.PresenceStore
	now      func() time.Time
	logger   zerolog.Logger
}

func NewUserService(repo ports.UserRepository, presence ports.PresenceStore, logger zerolog.Logger) *UserService {
	return &UserService{
		repo:     repo,
		presence: presence,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   logger,
	}
}

// Create provisions an operator account with a hashed password.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.UserAccount, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.UserAccount{
		UID:          uuid.New().String(),
		Email:        email,
		DisplayName:  strings.TrimSpace(input.DisplayName),
		PasswordHash: string(hash),
		Role:         role,
		Platform:     presence.EffectivePlatform(role, input.Platform, ""),
		CreatedAt:    s.now(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("uid", user.UID).Str("role", user.Role).Msg("user created")
	return user, nil
}

// List returns every account merged with its latest heartbeat.
func (s *UserService) List(ctx context.Context) (*ports.UserList, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	heartbeats, err := s.presence.All(ctx)
	if err != nil {
		// Accounts are still useful without presence; show everyone offline.
		s.logger.Warn().Err(err).Msg("presence unavailable, listing users offline")
		heartbeats = nil
	}

	now := s.now()
	out := &ports.UserList{Users: make([]ports.UserView, len(users)), Total: len(users)}
	for i, u := range users {
		var hb *domain.PresenceHeartbeat
		if h, ok := heartbeats[u.UID]; ok {
			hb = &h
		}
		merged := presence.Merge(u, hb, now)
		if merged.IsOnline {
			out.Online++
		}
		out.Users[i] = ports.UserView{
			User:  merged,
			Label: presence.StatusLabel(merged, now),
			Color: presence.StatusColor(merged, now),
		}
	}
	return out, nil
}

// Update applies the optional role and display name changes.
func (s *UserService) Update(ctx context.Context, input ports.UpdateUserInput) (*domain.UserAccount, error) {
	if input.Role != nil && !domain.ValidRole(*input.Role) {
		return nil, domain.ErrInvalidRole
	}

	if _, err := s.repo.FindByUID(ctx, input.UID); err != nil {
		return nil, err
	}

	if input.Role != nil {
		if err := s.repo.UpdateRole(ctx, input.UID, *input.Role); err != nil {
			return nil, fmt.Errorf("update role: %w", err)
		}
		s.logger.Info().Str("uid", input.UID).Str("role", *input.Role).Msg("user role changed")
	}
	if input.DisplayName != nil {
		if err := s.repo.UpdateDisplayName(ctx, input.UID, strings.TrimSpace(*input.DisplayName)); err != nil {
			return nil, fmt.Errorf("update display name: %w", err)
		}
	}

	return s.repo.FindByUID(ctx, input.UID)
}

// Delete removes the account and its presence state.
func (s *UserService) Delete(ctx context.Context, uid string) error {
	if err := s.repo.Delete(ctx, uid); err != nil {
		return err
	}
	if err := s.presence.Delete(ctx, uid); err != nil {
		s.logger.Warn().Err(err).Str("uid", uid).Msg("failed to clear presence for deleted user")
	}
	s.logger.Info().Str("uid", uid).Msg("user deleted")
	return nil
}
