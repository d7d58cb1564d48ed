package ports

import (
	"bytes"
	"context"
	"time"

	"github.com/visitorgate/visitor-admin/internal/core/domain"
	"github.com/visitorgate/visitor-admin/internal/core/status"
)

// CheckInInput carries the data captured at the gate.
type CheckInInput struct {
	VisitorName           string
	PhoneNumber           string
	IDNumber              string
	Gender                string
	Category              string
	VehiclePlate          string
	PurposeOfVisit        string
	Residence             string
	InstitutionOccupation string
	TagNumber             string
	TagNotGiven           bool
	CheckedInBy           string
}

// ListVisitorsInput carries all parameters for the list endpoints.
type ListVisitorsInput struct {
	DateFrom    time.Time
	DateTo      time.Time
	Category    string
	Status      string // optional: active | overdue | checked_out
	Search      string
	SearchField string // all | name | phone | id | tag
}

// VisitorView is a visitor plus the fields derived from it at one instant.
type VisitorView struct {
	Record      domain.VisitorRecord
	Status      domain.VisitorStatus
	Duration    string
	HoursOnSite int
	Severity    status.Severity // set only when Status is overdue
}

// VisitorGroup is one bucket of visitors: a calendar day for GroupByDay, or a
// gender/type key for GroupBy.
type VisitorGroup struct {
	Key      string
	Visitors []VisitorView
	Total    int
	Active   int
	Overdue  int
}

// OverdueAlert describes one visitor past the overdue threshold.
type OverdueAlert struct {
	Visitor      VisitorView
	HoursOverdue int
	Severity     status.Severity
	DurationText string
}

// OverdueSummary is the alert list plus per-severity counts.
type OverdueSummary struct {
	Alerts   []OverdueAlert
	Critical int
	High     int
	Medium   int
}

// EditFieldInput is a single-cell edit made by an operator.
type EditFieldInput struct {
	VisitorID string
	Field     string
	Value     string
	Editor    string
}

// EditFieldResult reports the outcome of EditField. Changed is false when the
// new value equals the stored one and nothing was written.
type EditFieldResult struct {
	Visitor VisitorView
	Entry   *domain.EditHistoryEntry
	Changed bool
}

// VisitorReporter renders visitor views into a downloadable document.
type VisitorReporter interface {
	Render(rows []VisitorView, stats status.Stats, generatedAt time.Time) (*bytes.Buffer, error)
}

// VisitorService defines use-case operations for visitors.
type VisitorService interface {
	CheckIn(ctx context.Context, input CheckInInput) (*VisitorView, error)
	Get(ctx context.Context, id string) (*VisitorView, error)
	List(ctx context.Context, input ListVisitorsInput) ([]VisitorView, error)
	GroupByDay(ctx context.Context, input ListVisitorsInput) ([]VisitorGroup, error)
	GroupBy(ctx context.Context, input ListVisitorsInput, key status.GroupKey) ([]VisitorGroup, error)
	Stats(ctx context.Context) (status.Stats, error)
	Overdue(ctx context.Context) (*OverdueSummary, error)
	History(ctx context.Context, id string) ([]domain.EditHistoryEntry, error)
	EditField(ctx context.Context, input EditFieldInput) (*EditFieldResult, error)
	Checkout(ctx context.Context, id, operator string) (*VisitorView, error)
	// Export returns the report content and a suggested file name.
	Export(ctx context.Context, input ListVisitorsInput) (*bytes.Buffer, string, error)
}
