package export

import (
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/visitorgate/visitor-admin/internal/core/domain"
	"github.com/visitorgate/visitor-admin/internal/core/ports"
	"github.com/visitorgate/visitor-admin/internal/core/status"
)

func TestXLSXReporter_Render(t *testing.T) {
	now := time.Date(2025, 6, 11, 15, 0, 0, 0, time.UTC)
	out := now.Add(-time.Hour)
	rows := []ports.VisitorView{
		{
			Record: domain.VisitorRecord{
				VisitorName: "Amina", Category: domain.CategoryVehicle, VehiclePlate: "KDA 123X",
				Gender: "FEMALE", TimeIn: now.Add(-4*time.Hour - 15*time.Minute), TimeOut: &out,
				CheckedOut: true, CheckedOutBy: "guard-2",
			},
			Status:   domain.StatusCheckedOut,
			Duration: "3h 15m",
		},
		{
			Record:   domain.VisitorRecord{VisitorName: "Brian", Category: domain.CategoryFoot, TagNotGiven: true, TimeIn: now.Add(-13 * time.Hour)},
			Status:   domain.StatusOverdue,
			Duration: "Active",
			Severity: status.SeverityMedium,
		},
	}
	stats := status.Stats{Total: 2, Active: 1, Overdue: 1, CheckedOut: 1, Vehicle: 1, Foot: 1, Today: 2}

	buf, err := NewXLSXReporter(nil).Render(rows, stats, now)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	got, err := f.GetRows(visitorsSheet)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(got))
	}
	if got[0][0] != "Visitor Name" || got[0][15] != "Checked Out By" {
		t.Errorf("unexpected header: %v", got[0])
	}
	first := got[1]
	if first[0] != "Amina" || first[3] != "Female" || first[6] != "KDA 123X" || first[12] != "Checked Out" || first[13] != "3h 15m" {
		t.Errorf("unexpected first row: %v", first)
	}
	second := got[2]
	if second[4] != "Not given" || second[6] != "-" || second[11] != "-" || second[12] != "Overdue" {
		t.Errorf("unexpected second row: %v", second)
	}

	summary, err := f.GetRows(summarySheet)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	values := make(map[string]string)
	for _, line := range summary {
		if len(line) == 2 {
			values[line[0]] = line[1]
		}
	}
	if values["Total Visitors"] != "2" || values["Overdue Visitors"] != "1" || values["Checked Out Today"] != "1" {
		t.Errorf("unexpected summary: %v", values)
	}
	if values["Average Duration"] != "3h 15m" {
		t.Errorf("unexpected average %q", values["Average Duration"])
	}
}

func TestAverageDuration_NoCompletedVisits(t *testing.T) {
	if got := averageDuration(nil); got != "0h 0m" {
		t.Fatalf("expected 0h 0m, got %s", got)
	}
}
