package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/visitorgate/visitor-admin/internal/core/audit"
	"github.com/visitorgate/visitor-admin/internal/core/domain"
	"github.com/visitorgate/visitor-admin/internal/core/ports"
	"github.com/visitorgate/visitor-admin/internal/core/status"
)

type VisitorService struct {
	repo     ports.VisitorRepository
	reporter ports.VisitorReporter
	loc      *time.Location
	now      func() time.Time
	logger   zerolog.Logger
}

// NewVisitorService wires the visitor use cases. loc decides which calendar
// day a check-in belongs to; nil means UTC.
func NewVisitorService(repo ports.VisitorRepository, reporter ports.VisitorReporter, loc *time.Location, logger zerolog.Logger) *VisitorService {
	if loc == nil {
		loc = time.UTC
	}
	return &VisitorService{
		repo:     repo,
		reporter: reporter,
		loc:      loc,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   logger,
	}
}

// CheckIn registers a new visit starting now.
func (s *VisitorService) CheckIn(ctx context.Context, input ports.CheckInInput) (*ports.VisitorView, error) {
	category := domain.VisitorCategory(strings.ToLower(strings.TrimSpace(input.Category)))
	if strings.TrimSpace(input.VisitorName) == "" {
		return nil, fmt.Errorf("%w: visitor name is required", domain.ErrInvalidVisitor)
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown visitor type %q", domain.ErrInvalidVisitor, input.Category)
	}
	plate := strings.TrimSpace(input.VehiclePlate)
	if category == domain.CategoryVehicle && plate == "" {
		return nil, fmt.Errorf("%w: vehicle plate is required for vehicle visitors", domain.ErrInvalidVisitor)
	}
	if category == domain.CategoryFoot {
		plate = ""
	}

	now := s.now()
	v := &domain.VisitorRecord{
		ID:                    uuid.New().String(),
		VisitorName:           strings.TrimSpace(input.VisitorName),
		PhoneNumber:           input.PhoneNumber,
		IDNumber:              input.IDNumber,
		Gender:                input.Gender,
		Category:              category,
		VehiclePlate:          plate,
		PurposeOfVisit:        input.PurposeOfVisit,
		Residence:             input.Residence,
		InstitutionOccupation: input.InstitutionOccupation,
		TagNumber:             input.TagNumber,
		TagNotGiven:           input.TagNotGiven && input.TagNumber == "",
		TimeIn:                now,
		CheckedInBy:           input.CheckedInBy,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		s.logger.Error().Err(err).Msg("failed to check in visitor")
		return nil, err
	}

	s.logger.Info().Str("visitor_id", v.ID).Str("checked_in_by", v.CheckedInBy).Str("type", string(v.Category)).Msg("visitor checked in")

	view := s.view(*v, now)
	return &view, nil
}

// Get returns one visitor with its derived fields.
func (s *VisitorService) Get(ctx context.Context, id string) (*ports.VisitorView, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := s.view(*v, s.now())
	return &view, nil
}

// List returns visitors matching input, most recent first. Status and search
// filters are applied after derivation since they depend on now.
func (s *VisitorService) List(ctx context.Context, input ports.ListVisitorsInput) ([]ports.VisitorView, error) {
	now := s.now()
	records, err := s.list(ctx, input, now)
	if err != nil {
		return nil, err
	}
	out := make([]ports.VisitorView, len(records))
	for i, v := range records {
		out[i] = s.view(v, now)
	}
	return out, nil
}

// GroupByDay returns the listed visitors bucketed by local check-in day.
func (s *VisitorService) GroupByDay(ctx context.Context, input ports.ListVisitorsInput) ([]ports.VisitorGroup, error) {
	now := s.now()
	records, err := s.list(ctx, input, now)
	if err != nil {
		return nil, err
	}
	return s.summarize(status.GroupByCalendarDay(records, now, s.loc), now), nil
}

// GroupBy returns the listed visitors bucketed by gender, type or both.
func (s *VisitorService) GroupBy(ctx context.Context, input ports.ListVisitorsInput, key status.GroupKey) ([]ports.VisitorGroup, error) {
	now := s.now()
	records, err := s.list(ctx, input, now)
	if err != nil {
		return nil, err
	}
	return s.summarize(status.GroupBy(records, key), now), nil
}

func (s *VisitorService) summarize(groups []status.Group, now time.Time) []ports.VisitorGroup {
	out := make([]ports.VisitorGroup, len(groups))
	for i, g := range groups {
		vg := ports.VisitorGroup{Key: g.Key, Visitors: make([]ports.VisitorView, len(g.Visitors))}
		for j, v := range g.Visitors {
			view := s.view(v, now)
			vg.Visitors[j] = view
			vg.Total++
			switch view.Status {
			case domain.StatusOverdue:
				vg.Active++
				vg.Overdue++
			case domain.StatusActive:
				vg.Active++
			}
		}
		out[i] = vg
	}
	return out
}

// Stats computes the dashboard counters over every visitor.
func (s *VisitorService) Stats(ctx context.Context) (status.Stats, error) {
	records, err := s.repo.List(ctx, ports.ListVisitorsFilter{})
	if err != nil {
		return status.Stats{}, err
	}
	return status.ComputeStats(records, s.now(), s.loc), nil
}

// Overdue returns every overdue visitor, oldest check-in first.
func (s *VisitorService) Overdue(ctx context.Context) (*ports.OverdueSummary, error) {
	active := false
	records, err := s.repo.List(ctx, ports.ListVisitorsFilter{CheckedOut: &active})
	if err != nil {
		return nil, err
	}

	now := s.now()
	overdue := status.Overdue(records, now)
	summary := &ports.OverdueSummary{Alerts: make([]ports.OverdueAlert, len(overdue))}
	for i, v := range overdue {
		view := s.view(v, now)
		hours := status.HoursOverdue(v, now)
		summary.Alerts[i] = ports.OverdueAlert{
			Visitor:      view,
			HoursOverdue: hours,
			Severity:     view.Severity,
			DurationText: status.FormatElapsedHours(hours),
		}
		switch view.Severity {
		case status.SeverityCritical:
			summary.Critical++
		case status.SeverityHigh:
			summary.High++
		default:
			summary.Medium++
		}
	}
	return summary, nil
}

// History returns the visitor's edit history in chronological order.
func (s *VisitorService) History(ctx context.Context, id string) ([]domain.EditHistoryEntry, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.EditHistory == nil {
		return []domain.EditHistoryEntry{}, nil
	}
	return v.EditHistory, nil
}

// EditField changes one visitor field and records it in the history. Edits
// that do not change the value are skipped so history only holds real
// changes. When the write fails the stored record is returned untouched along
// with the error, so the caller can roll back its optimistic copy.
func (s *VisitorService) EditField(ctx context.Context, input ports.EditFieldInput) (*ports.EditFieldResult, error) {
	if !audit.Editable(input.Field) {
		return nil, fmt.Errorf("edit visitor: %w: %s", domain.ErrFieldNotEditable, input.Field)
	}

	current, err := s.repo.FindByID(ctx, input.VisitorID)
	if err != nil {
		return nil, fmt.Errorf("edit visitor: %w", err)
	}

	oldValue, err := audit.FieldValue(*current, input.Field)
	if err != nil {
		return nil, fmt.Errorf("edit visitor: %w", err)
	}
	now := s.now()
	if oldValue == input.Value {
		return &ports.EditFieldResult{Visitor: s.view(*current, now)}, nil
	}

	updated, entry, err := audit.RecordEdit(*current, input.Field, oldValue, input.Value, input.Editor, now)
	if err != nil {
		return nil, fmt.Errorf("edit visitor: %w", err)
	}

	if err := s.repo.ApplyEdit(ctx, input.VisitorID, input.Field, input.Value, entry); err != nil {
		s.logger.Error().Err(err).Str("visitor_id", input.VisitorID).Str("field", input.Field).Msg("edit not persisted, rolling back")
		return &ports.EditFieldResult{Visitor: s.view(*current, now)}, fmt.Errorf("edit visitor: persist: %w", err)
	}

	s.logger.Info().
		Str("visitor_id", input.VisitorID).
		Str("field", input.Field).
		Str("edited_by", input.Editor).
		Msg("visitor field edited")

	return &ports.EditFieldResult{Visitor: s.view(updated, now), Entry: &entry, Changed: true}, nil
}

// Checkout ends an active visit. A second checkout returns
// domain.ErrAlreadyCheckedOut.
func (s *VisitorService) Checkout(ctx context.Context, id, operator string) (*ports.VisitorView, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}

	now := s.now()
	updated, entry, err := audit.Checkout(*current, operator, now)
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}

	if err := s.repo.Checkout(ctx, id, operator, *updated.TimeOut, entry); err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}

	s.logger.Info().Str("visitor_id", id).Str("checked_out_by", operator).Msg("visitor checked out")

	view := s.view(updated, now)
	return &view, nil
}

// Export renders the listed visitors as a report.
func (s *VisitorService) Export(ctx context.Context, input ports.ListVisitorsInput) (*bytes.Buffer, string, error) {
	now := s.now()
	records, err := s.list(ctx, input, now)
	if err != nil {
		return nil, "", err
	}

	rows := make([]ports.VisitorView, len(records))
	for i, v := range records {
		rows[i] = s.view(v, now)
	}

	buf, err := s.reporter.Render(rows, status.ComputeStats(records, now, s.loc), now.In(s.loc))
	if err != nil {
		s.logger.Error().Err(err).Int("rows", len(rows)).Msg("failed to render visitor report")
		return nil, "", fmt.Errorf("export visitors: %w", err)
	}

	filename := fmt.Sprintf("visitors-report-%s.xlsx", now.In(s.loc).Format("20060102-150405"))
	return buf, filename, nil
}

func (s *VisitorService) list(ctx context.Context, input ports.ListVisitorsInput, now time.Time) ([]domain.VisitorRecord, error) {
	records, err := s.repo.List(ctx, ports.ListVisitorsFilter{
		DateFrom: input.DateFrom,
		DateTo:   input.DateTo,
		Category: input.Category,
	})
	if err != nil {
		return nil, err
	}

	if input.Status != "" {
		want := domain.VisitorStatus(input.Status)
		filtered := make([]domain.VisitorRecord, 0, len(records))
		for _, v := range records {
			if status.Classify(v, now) == want {
				filtered = append(filtered, v)
			}
		}
		records = filtered
	}

	return status.Search(records, input.Search, status.SearchField(input.SearchField)), nil
}

func (s *VisitorService) view(v domain.VisitorRecord, now time.Time) ports.VisitorView {
	st := status.Classify(v, now)
	view := ports.VisitorView{
		Record:   v,
		Status:   st,
		Duration: status.Duration(v),
	}
	if st != domain.StatusCheckedOut {
		view.HoursOnSite = status.HoursOverdue(v, now)
	}
	if st == domain.StatusOverdue {
		view.Severity = status.SeverityOf(status.Elapsed(v, now))
	}
	return view
}
