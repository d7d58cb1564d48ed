package ports

import (
	"context"
	"time"

	"github.com/visitorgate/visitor-admin/internal/core/domain"
)

// ListVisitorsFilter carries query parameters for listing visitors.
type ListVisitorsFilter struct {
	DateFrom   time.Time // optional: time_in >= DateFrom
	DateTo     time.Time // optional: time_in < DateTo
	Category   string    // optional: foot | vehicle
	CheckedOut *bool     // optional
}

// VisitorRepository defines persistence operations for visitor records.
type VisitorRepository interface {
	Create(ctx context.Context, v *domain.VisitorRecord) error
	FindByID(ctx context.Context, id string) (*domain.VisitorRecord, error)
	// List returns matching visitors, most recent check-in first.
	List(ctx context.Context, filter ListVisitorsFilter) ([]domain.VisitorRecord, error)

	// ApplyEdit atomically sets field to value, stamps the editor and appends
	// entry to the edit history.
	ApplyEdit(ctx context.Context, id, field string, value any, entry domain.EditHistoryEntry) error

	// Checkout atomically marks an active visitor as checked out and appends
	// entry. It returns domain.ErrAlreadyCheckedOut when the stored record is
	// already checked out.
	Checkout(ctx context.Context, id, operator string, at time.Time, entry domain.EditHistoryEntry) error
}
