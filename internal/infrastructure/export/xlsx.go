// Package export renders visitor reports as Excel workbooks.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/visitorgate/visitor-admin/internal/core/domain"
	"github.com/visitorgate/visitor-admin/internal/core/ports"
	"github.com/visitorgate/visitor-admin/internal/core/status"
)

const (
	visitorsSheet = "Visitors"
	summarySheet  = "Summary"
	timeLayout    = "2006-01-02 15:04"
)

var columns = []struct {
	title string
	width float64
}{
	{"Visitor Name", 24},
	{"Phone", 16},
	{"ID Number", 16},
	{"Gender", 10},
	{"Tag", 10},
	{"Type", 10},
	{"Vehicle Plate", 14},
	{"Residence", 18},
	{"Occupation/Institution", 24},
	{"Purpose", 24},
	{"Check In", 18},
	{"Check Out", 18},
	{"Status", 14},
	{"Duration", 12},
	{"Checked In By", 18},
	{"Checked Out By", 18},
}

// XLSXReporter implements ports.VisitorReporter.
type XLSXReporter struct {
	loc *time.Location
}

func NewXLSXReporter(loc *time.Location) *XLSXReporter {
	if loc == nil {
		loc = time.UTC
	}
	return &XLSXReporter{loc: loc}
}

// Render writes one row per visitor in the given order plus a summary sheet.
func (r *XLSXReporter) Render(rows []ports.VisitorView, stats status.Stats, generatedAt time.Time) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(visitorsSheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("xlsx: %w", err)
	}

	styles, err := newStyles(f)
	if err != nil {
		return nil, fmt.Errorf("xlsx: styles: %w", err)
	}

	for i, col := range columns {
		name := colName(i)
		_ = f.SetColWidth(visitorsSheet, name, name, col.width)
		_ = f.SetCellValue(visitorsSheet, cell(name, 1), col.title)
	}
	_ = f.SetCellStyle(visitorsSheet, "A1", cell(colName(len(columns)-1), 1), styles.header)
	_ = f.SetPanes(visitorsSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	for i, row := range rows {
		values := r.rowValues(row)
		if err := f.SetSheetRow(visitorsSheet, cell("A", i+2), &values); err != nil {
			return nil, fmt.Errorf("xlsx: row %d: %w", i+2, err)
		}
		statusCell := cell(colName(12), i+2)
		switch row.Status {
		case domain.StatusOverdue:
			_ = f.SetCellStyle(visitorsSheet, statusCell, statusCell, styles.overdue)
		case domain.StatusCheckedOut:
			_ = f.SetCellStyle(visitorsSheet, statusCell, statusCell, styles.checkedOut)
		default:
			_ = f.SetCellStyle(visitorsSheet, statusCell, statusCell, styles.active)
		}
	}

	if err := r.writeSummary(f, rows, stats, generatedAt, styles.header); err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("xlsx: write: %w", err)
	}
	return buf, nil
}

func (r *XLSXReporter) rowValues(row ports.VisitorView) []any {
	v := row.Record
	timeOut := "-"
	if v.TimeOut != nil {
		timeOut = v.TimeOut.In(r.loc).Format(timeLayout)
	}
	plate := v.VehiclePlate
	if v.Category != domain.CategoryVehicle || plate == "" {
		plate = "-"
	}
	checkedOutBy := v.CheckedOutBy
	if checkedOutBy == "" {
		checkedOutBy = "-"
	}
	return []any{
		v.VisitorName,
		v.PhoneNumber,
		v.IDNumber,
		status.NormalizeGender(v.Gender),
		v.TagDisplay(),
		string(v.Category),
		plate,
		v.Residence,
		v.InstitutionOccupation,
		v.PurposeOfVisit,
		v.TimeIn.In(r.loc).Format(timeLayout),
		timeOut,
		row.Status.Label(),
		row.Duration,
		v.CheckedInBy,
		checkedOutBy,
	}
}

func (r *XLSXReporter) writeSummary(f *excelize.File, rows []ports.VisitorView, stats status.Stats, generatedAt time.Time, header int) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	_ = f.SetColWidth(summarySheet, "A", "A", 24)
	_ = f.SetColWidth(summarySheet, "B", "B", 22)

	lines := [][]any{
		{"Report Summary", ""},
		{"Generated", generatedAt.In(r.loc).Format(timeLayout)},
		{"Total Visitors", stats.Total},
		{"Today's Visitors", stats.Today},
		{"Active Visitors", stats.Active},
		{"Overdue Visitors", stats.Overdue},
		{"Checked Out", stats.CheckedOut},
		{"Checked Out Today", checkedOutOn(rows, generatedAt, r.loc)},
		{"Foot Visitors", stats.Foot},
		{"Vehicle Visitors", stats.Vehicle},
		{"Average Duration", averageDuration(rows)},
	}
	for i, line := range lines {
		if err := f.SetSheetRow(summarySheet, cell("A", i+1), &line); err != nil {
			return fmt.Errorf("xlsx: summary: %w", err)
		}
	}
	_ = f.MergeCell(summarySheet, "A1", "B1")
	_ = f.SetCellStyle(summarySheet, "A1", "B1", header)
	return nil
}

// checkedOutOn counts visits whose check-out falls on the same local day as at.
func checkedOutOn(rows []ports.VisitorView, at time.Time, loc *time.Location) int {
	day := at.In(loc).Format(status.DayKeyLayout)
	n := 0
	for _, row := range rows {
		if row.Record.CheckedOut && row.Record.TimeOut != nil &&
			row.Record.TimeOut.In(loc).Format(status.DayKeyLayout) == day {
			n++
		}
	}
	return n
}

// averageDuration renders the mean length of completed visits as "3h 15m".
func averageDuration(rows []ports.VisitorView) string {
	var total time.Duration
	n := 0
	for _, row := range rows {
		v := row.Record
		if !v.CheckedOut || v.TimeOut == nil {
			continue
		}
		if d := v.TimeOut.Sub(v.TimeIn); d > 0 {
			total += d
		}
		n++
	}
	if n == 0 {
		return "0h 0m"
	}
	avg := total / time.Duration(n)
	return fmt.Sprintf("%dh %dm", int(avg/time.Hour), int((avg%time.Hour)/time.Minute))
}

type reportStyles struct {
	header, active, overdue, checkedOut int
}

func newStyles(f *excelize.File) (reportStyles, error) {
	var s reportStyles
	var err error
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}); err != nil {
		return s, err
	}
	if s.active, err = fillStyle(f, "#DCFCE7"); err != nil {
		return s, err
	}
	if s.overdue, err = fillStyle(f, "#FEE2E2"); err != nil {
		return s, err
	}
	s.checkedOut, err = fillStyle(f, "#E5E7EB")
	return s, err
}

func fillStyle(f *excelize.File, color string) (int, error) {
	return f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
