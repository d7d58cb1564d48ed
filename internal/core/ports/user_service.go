package ports

import (
	"context"
	"time"

	"github.com/visitorgate/visitor-admin/internal/core/domain"
	"github.com/visitorgate/visitor-admin/internal/core/presence"
)

// CreateUserInput carries the data needed to provision an operator.
type CreateUserInput struct {
	Email       string
	Password    string
	DisplayName string
	Role        string
	Platform    string
}

// UpdateUserInput carries optional changes; nil fields are left untouched.
type UpdateUserInput struct {
	UID         string
	Role        *string
	DisplayName *string
}

// UserView is an account merged with its live presence.
type UserView struct {
	User  domain.UserAccount
	Label presence.Label
	Color presence.Color
}

// UserList is the users page: accounts plus the live online count.
type UserList struct {
	Users  []UserView
	Online int
	Total  int
}

// UserService defines use-case operations for operator accounts.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.UserAccount, error)
	List(ctx context.Context) (*UserList, error)
	Update(ctx context.Context, input UpdateUserInput) (*domain.UserAccount, error)
	Delete(ctx context.Context, uid string) error
}

// HeartbeatInput is a presence signal as received from a client.
type HeartbeatInput struct {
	UID         string
	State       string
	LastChanged any // optional; any representation timeutil.ToInstant accepts
	Platform    string
	DeviceInfo  string
	Email       string
	DisplayName string
	ReceivedAt  time.Time
}

// PresenceService ingests heartbeats and reports the online set.
type PresenceService interface {
	Record(ctx context.Context, input HeartbeatInput) error
	OnlineCount(ctx context.Context) (int, error)
}

// AuthService authenticates operators.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.UserAccount, error)
}
