package ports

import (
	"context"
	"time"

	"github.com/visitorgate/visitor-admin/internal/core/domain"
)

// UserRepository defines persistence operations for operator accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.UserAccount) error
	FindByUID(ctx context.Context, uid string) (*domain.UserAccount, error)
	FindByEmail(ctx context.Context, email string) (*domain.UserAccount, error)
	// List returns every account ordered by email.
	List(ctx context.Context) ([]domain.UserAccount, error)
	UpdateRole(ctx context.Context, uid, role string) error
	UpdateDisplayName(ctx context.Context, uid, displayName string) error
	TouchLogin(ctx context.Context, uid string, at time.Time) error
	Delete(ctx context.Context, uid string) error
}

// PresenceStore keeps the latest heartbeat per user.
type PresenceStore interface {
	Save(ctx context.Context, hb domain.PresenceHeartbeat) error
	// Get returns nil without error when the user has no heartbeat.
	Get(ctx context.Context, uid string) (*domain.PresenceHeartbeat, error)
	All(ctx context.Context) (map[string]domain.PresenceHeartbeat, error)
	Delete(ctx context.Context, uid string) error
}
