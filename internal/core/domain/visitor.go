package domain

import (
	"errors"
	"time"
)

// VisitorCategory tells how the visitor arrived on site.
type VisitorCategory string

const (
	CategoryFoot    VisitorCategory = "foot"
	CategoryVehicle VisitorCategory = "vehicle"
)

// Valid reports whether c is a known category.
func (c VisitorCategory) Valid() bool {
	return c == CategoryFoot || c == CategoryVehicle
}

// VisitorStatus is the derived lifecycle state of a visit. Only CheckedOut is
// stored (via VisitorRecord.CheckedOut); Active and Overdue are computed.
type VisitorStatus string

const (
	StatusActive     VisitorStatus = "active"
	StatusOverdue    VisitorStatus = "overdue"
	StatusCheckedOut VisitorStatus = "checked_out"
)

// Label is the human-readable status used by reports.
func (s VisitorStatus) Label() string {
	switch s {
	case StatusOverdue:
		return "Overdue"
	case StatusCheckedOut:
		return "Checked Out"
	default:
		return "Active"
	}
}

// CheckoutField is the history field name recorded by the checkout transition.
const CheckoutField = "checkout"

var (
	ErrVisitorNotFound   = errors.New("visitor not found")
	ErrAlreadyCheckedOut = errors.New("visitor already checked out")
	ErrFieldNotEditable  = errors.New("field is not editable")
	ErrInvalidVisitor    = errors.New("invalid visitor")
	ErrForbidden         = errors.New("access forbidden")
)

// EditHistoryEntry records one field-level change to a visitor. Entries are
// append-only and never rewritten.
type EditHistoryEntry struct {
	Field    string    `json:"field" bson:"field"`
	OldValue any       `json:"oldValue" bson:"oldValue"`
	NewValue any       `json:"newValue" bson:"newValue"`
	EditedBy string    `json:"editedBy" bson:"editedBy"`
	EditedAt time.Time `json:"editedAt" bson:"editedAt"`
}

// VisitorRecord is one visit, from check-in to (optional) check-out.
//
// CheckedOut is true iff TimeOut is set, and TimeOut is never before TimeIn.
// VehiclePlate is only meaningful when Category is CategoryVehicle.
type VisitorRecord struct {
	ID                    string
	VisitorName           string
	PhoneNumber           string
	IDNumber              string
	Gender                string
	Category              VisitorCategory
	VehiclePlate          string
	PurposeOfVisit        string
	Residence             string
	InstitutionOccupation string
	TagNumber             string
	TagNotGiven           bool
	TimeIn                time.Time
	TimeOut               *time.Time
	CheckedOut            bool
	CheckedInBy           string
	CheckedOutBy          string
	LastEditedBy          string
	LastEditedAt          *time.Time
	EditHistory           []EditHistoryEntry
}

// Clone returns a copy that shares no mutable state with v.
func (v VisitorRecord) Clone() VisitorRecord {
	out := v
	if v.TimeOut != nil {
		t := *v.TimeOut
		out.TimeOut = &t
	}
	if v.LastEditedAt != nil {
		t := *v.LastEditedAt
		out.LastEditedAt = &t
	}
	if v.EditHistory != nil {
		out.EditHistory = make([]EditHistoryEntry, len(v.EditHistory))
		copy(out.EditHistory, v.EditHistory)
	}
	return out
}

// TagDisplay renders the tag column the way reports show it.
func (v VisitorRecord) TagDisplay() string {
	switch {
	case v.TagNotGiven:
		return "Not given"
	case v.TagNumber == "":
		return "-"
	default:
		return v.TagNumber
	}
}
