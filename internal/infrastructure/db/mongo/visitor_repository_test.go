package mongo

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/visitorgate/visitor-admin/internal/core/domain"
)

func TestVisitorDoc_RoundTrip(t *testing.T) {
	in := time.Date(2025, 2, 28, 8, 30, 0, 0, time.UTC)
	out := in.Add(3*time.Hour + 15*time.Minute)
	v := &domain.VisitorRecord{
		ID:          "v-1",
		VisitorName: "Amina",
		Category:    domain.CategoryVehicle,
		TimeIn:      in,
		TimeOut:     &out,
		CheckedOut:  true,
	}

	raw, err := bson.Marshal(toVisitorDoc(v))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc visitorDoc
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	repo := &VisitorRepository{log: zerolog.Nop()}
	got := repo.fromDoc(doc)
	if !got.TimeIn.Equal(in) || got.TimeOut == nil || !got.TimeOut.Equal(out) {
		t.Fatalf("times not preserved: %v %v", got.TimeIn, got.TimeOut)
	}
	if got.Category != domain.CategoryVehicle || got.EditHistory == nil {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestVisitorDoc_LegacyTimes(t *testing.T) {
	want := time.Date(2025, 2, 28, 8, 30, 0, 0, time.UTC)
	repo := &VisitorRepository{log: zerolog.Nop()}

	cases := map[string]any{
		"bson date":    primitive.NewDateTimeFromTime(want),
		"epoch millis": want.UnixMilli(),
		"iso string":   "2025-02-28T08:30:00Z",
		"ms string":    "1740731400000",
	}
	for name, value := range cases {
		got := repo.fromDoc(visitorDoc{ID: name, TimeIn: value})
		if !got.TimeIn.Equal(want) {
			t.Errorf("%s: expected %v, got %v", name, want, got.TimeIn)
		}
		if got.TimeOut != nil {
			t.Errorf("%s: timeOut must stay nil", name)
		}
	}
}

func TestVisitorDoc_UnparseableTimeInFallsBackToNow(t *testing.T) {
	repo := &VisitorRepository{log: zerolog.Nop()}
	before := time.Now().UTC()

	got := repo.fromDoc(visitorDoc{ID: "bad", TimeIn: "not a time"})
	if got.TimeIn.Before(before) || got.TimeIn.After(time.Now().UTC()) {
		t.Fatalf("expected now, got %v", got.TimeIn)
	}
}

func TestEditUpdate_SideEffects(t *testing.T) {
	entry := domain.EditHistoryEntry{Field: "visitorType", EditedBy: "admin", EditedAt: time.Now()}

	set := editUpdate("visitorType", "foot", entry)["$set"].(bson.M)
	if plate, ok := set["vehiclePlate"]; !ok || plate != "" {
		t.Fatalf("move to foot must clear the plate, got %+v", set)
	}
	set = editUpdate("visitorType", "vehicle", entry)["$set"].(bson.M)
	if _, ok := set["vehiclePlate"]; ok {
		t.Fatalf("move to vehicle must keep the plate, got %+v", set)
	}

	set = editUpdate("tagNumber", "T-9", entry)["$set"].(bson.M)
	if set["tagNotGiven"] != false {
		t.Fatalf("setting a tag must clear tagNotGiven, got %+v", set)
	}
	set = editUpdate("visitorName", "Amina", entry)["$set"].(bson.M)
	if len(set) != 3 {
		t.Fatalf("unexpected fields %+v", set)
	}
}
