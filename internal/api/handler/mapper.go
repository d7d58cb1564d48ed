package handler

import (
	"fmt"
	"time"

	"github.com/visitorgate/visitor-admin/internal/core/domain"
	"github.com/visitorgate/visitor-admin/internal/core/ports"
)

const dateLayout = "2006-01-02"

// --- Request → Service input ---

func toCheckInInput(req checkInRequest, operator string) ports.CheckInInput {
	return ports.CheckInInput{
		VisitorName:           req.VisitorName,
		PhoneNumber:           req.PhoneNumber,
		IDNumber:              req.IDNumber,
		Gender:                req.Gender,
		Category:              req.VisitorType,
		VehiclePlate:          req.VehiclePlate,
		PurposeOfVisit:        req.PurposeOfVisit,
		Residence:             req.Residence,
		InstitutionOccupation: req.InstitutionOccupation,
		TagNumber:             req.TagNumber,
		TagNotGiven:           req.TagNotGiven,
		CheckedInBy:           operator,
	}
}

// toListInput resolves the day bounds in loc. dateTo is inclusive, so the
// upper bound is the start of the following day.
func toListInput(q listVisitorsQuery, loc *time.Location) (ports.ListVisitorsInput, error) {
	in := ports.ListVisitorsInput{
		Category:    q.VisitorType,
		Status:      q.Status,
		Search:      q.Search,
		SearchField: q.SearchField,
	}
	if q.DateFrom != "" {
		from, err := time.ParseInLocation(dateLayout, q.DateFrom, loc)
		if err != nil {
			return in, fmt.Errorf("dateFrom: %w", err)
		}
		in.DateFrom = from
	}
	if q.DateTo != "" {
		to, err := time.ParseInLocation(dateLayout, q.DateTo, loc)
		if err != nil {
			return in, fmt.Errorf("dateTo: %w", err)
		}
		in.DateTo = to.AddDate(0, 0, 1)
	}
	if !in.DateFrom.IsZero() && !in.DateTo.IsZero() && !in.DateFrom.Before(in.DateTo) {
		return in, fmt.Errorf("dateFrom must not be after dateTo")
	}
	return in, nil
}

// --- Service result → HTTP response ---

func toVisitorResponse(v ports.VisitorView) visitorResponse {
	r := v.Record
	return visitorResponse{
		ID:                    r.ID,
		VisitorName:           r.VisitorName,
		PhoneNumber:           r.PhoneNumber,
		IDNumber:              r.IDNumber,
		Gender:                r.Gender,
		VisitorType:           string(r.Category),
		VehiclePlate:          r.VehiclePlate,
		PurposeOfVisit:        r.PurposeOfVisit,
		Residence:             r.Residence,
		InstitutionOccupation: r.InstitutionOccupation,
		TagNumber:             r.TagNumber,
		TagNotGiven:           r.TagNotGiven,
		TagDisplay:            r.TagDisplay(),
		TimeIn:                r.TimeIn.UTC(),
		TimeOut:               r.TimeOut,
		IsCheckedOut:          r.CheckedOut,
		CheckedInBy:           r.CheckedInBy,
		CheckedOutBy:          r.CheckedOutBy,
		LastEditedBy:          r.LastEditedBy,
		LastEditedAt:          r.LastEditedAt,
		Status:                string(v.Status),
		StatusLabel:           v.Status.Label(),
		Duration:              v.Duration,
		HoursOnSite:           v.HoursOnSite,
		Severity:              string(v.Severity),
	}
}

func toVisitorResponses(views []ports.VisitorView) []visitorResponse {
	out := make([]visitorResponse, len(views))
	for i, v := range views {
		out[i] = toVisitorResponse(v)
	}
	return out
}

func toHistoryResponse(e domain.EditHistoryEntry) editHistoryResponse {
	return editHistoryResponse{
		Field:    e.Field,
		OldValue: e.OldValue,
		NewValue: e.NewValue,
		EditedBy: e.EditedBy,
		EditedAt: e.EditedAt.UTC(),
	}
}

func toOverdueResponse(s *ports.OverdueSummary) overdueResponse {
	out := overdueResponse{
		Alerts:   make([]overdueAlertResponse, len(s.Alerts)),
		Total:    len(s.Alerts),
		Critical: s.Critical,
		High:     s.High,
		Medium:   s.Medium,
	}
	for i, a := range s.Alerts {
		out.Alerts[i] = overdueAlertResponse{
			Visitor:       toVisitorResponse(a.Visitor),
			HoursOverdue:  a.HoursOverdue,
			Severity:      string(a.Severity),
			SeverityLabel: a.Severity.Label(),
			DurationText:  a.DurationText,
		}
	}
	return out
}

func toUserResponse(u domain.UserAccount) userResponse {
	return userResponse{
		UID:         u.UID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		Platform:    u.Platform,
		IsOnline:    u.IsOnline,
		LastSeen:    u.LastSeen,
		LastLoginAt: u.LastLoginAt,
		DeviceInfo:  u.DeviceInfo,
		CreatedAt:   u.CreatedAt,
	}
}

func toUserListResponse(l *ports.UserList) userListResponse {
	out := userListResponse{Users: make([]userResponse, len(l.Users)), Online: l.Online, Total: l.Total}
	for i, v := range l.Users {
		r := toUserResponse(v.User)
		r.StatusLabel = v.Label.String()
		r.StatusColor = string(v.Color)
		out.Users[i] = r
	}
	return out
}
