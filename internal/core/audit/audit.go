// Package audit applies field edits and the checkout transition to visitor
// records, producing one history entry per change.
//
// Functions never modify their input; they return a new record. Callers that
// persist the result can roll back by discarding it.
package audit

import (
	"fmt"
	"time"

	"github.com/visitorgate/visitor-admin/internal/core/domain"
)

// EditableFields lists the visitor fields that may be changed by RecordEdit,
// keyed by their stored name.
var EditableFields = map[string]struct{}{
	"visitorName":           {},
	"phoneNumber":           {},
	"idNumber":              {},
	"gender":                {},
	"visitorType":           {},
	"vehiclePlate":          {},
	"purposeOfVisit":        {},
	"residence":             {},
	"institutionOccupation": {},
	"tagNumber":             {},
}

// Editable reports whether field can be passed to RecordEdit.
func Editable(field string) bool {
	_, ok := EditableFields[field]
	return ok
}

// FieldValue returns the current value of an editable field.
func FieldValue(v domain.VisitorRecord, field string) (string, error) {
	switch field {
	case "visitorName":
		return v.VisitorName, nil
	case "phoneNumber":
		return v.PhoneNumber, nil
	case "idNumber":
		return v.IDNumber, nil
	case "gender":
		return v.Gender, nil
	case "visitorType":
		return string(v.Category), nil
	case "vehiclePlate":
		return v.VehiclePlate, nil
	case "purposeOfVisit":
		return v.PurposeOfVisit, nil
	case "residence":
		return v.Residence, nil
	case "institutionOccupation":
		return v.InstitutionOccupation, nil
	case "tagNumber":
		return v.TagNumber, nil
	}
	return "", fmt.Errorf("%w: %s", domain.ErrFieldNotEditable, field)
}

func setField(v *domain.VisitorRecord, field, value string) error {
	switch field {
	case "visitorName":
		v.VisitorName = value
	case "phoneNumber":
		v.PhoneNumber = value
	case "idNumber":
		v.IDNumber = value
	case "gender":
		v.Gender = value
	case "visitorType":
		c := domain.VisitorCategory(value)
		if !c.Valid() {
			return fmt.Errorf("%w: unknown visitor type %q", domain.ErrInvalidVisitor, value)
		}
		if c == domain.CategoryVehicle && v.VehiclePlate == "" {
			return fmt.Errorf("%w: vehicle plate is required for vehicle visitors", domain.ErrInvalidVisitor)
		}
		if c != domain.CategoryVehicle {
			v.VehiclePlate = ""
		}
		v.Category = c
	case "vehiclePlate":
		if value == "" && v.Category == domain.CategoryVehicle {
			return fmt.Errorf("%w: vehicle plate is required for vehicle visitors", domain.ErrInvalidVisitor)
		}
		v.VehiclePlate = value
	case "purposeOfVisit":
		v.PurposeOfVisit = value
	case "residence":
		v.Residence = value
	case "institutionOccupation":
		v.InstitutionOccupation = value
	case "tagNumber":
		v.TagNumber = value
		if value != "" {
			v.TagNotGiven = false
		}
	default:
		return fmt.Errorf("%w: %s", domain.ErrFieldNotEditable, field)
	}
	return nil
}

// RecordEdit sets field to newValue and appends an entry to the history.
//
// It does not compare oldValue and newValue; callers skip no-op edits so that
// history only holds real changes.
func RecordEdit(
	v domain.VisitorRecord,
	field, oldValue, newValue, editor string,
	now time.Time,
) (domain.VisitorRecord, domain.EditHistoryEntry, error) {
	out := v.Clone()
	if err := setField(&out, field, newValue); err != nil {
		return v, domain.EditHistoryEntry{}, err
	}

	entry := domain.EditHistoryEntry{
		Field:    field,
		OldValue: oldValue,
		NewValue: newValue,
		EditedBy: editor,
		EditedAt: now,
	}
	stamp(&out, entry)
	return out, entry, nil
}

// Checkout moves an active visit to checked out. The transition is terminal:
// calling it on a checked-out record returns domain.ErrAlreadyCheckedOut and
// the record unchanged.
func Checkout(v domain.VisitorRecord, operator string, now time.Time) (domain.VisitorRecord, domain.EditHistoryEntry, error) {
	if v.CheckedOut {
		return v, domain.EditHistoryEntry{}, domain.ErrAlreadyCheckedOut
	}
	out := v.Clone()
	at := now
	if !out.TimeIn.IsZero() && at.Before(out.TimeIn) {
		at = out.TimeIn
	}
	out.CheckedOut = true
	out.TimeOut = &at
	out.CheckedOutBy = operator

	entry := domain.EditHistoryEntry{
		Field:    domain.CheckoutField,
		OldValue: false,
		NewValue: true,
		EditedBy: operator,
		EditedAt: now,
	}
	stamp(&out, entry)
	return out, entry, nil
}

func stamp(v *domain.VisitorRecord, entry domain.EditHistoryEntry) {
	at := entry.EditedAt
	v.LastEditedBy = entry.EditedBy
	v.LastEditedAt = &at
	v.EditHistory = append(v.EditHistory, entry)
}
