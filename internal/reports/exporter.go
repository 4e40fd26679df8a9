package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/clubhubdev/clubhub-backend/internal/analytics"
	"github.com/clubhubdev/clubhub-backend/internal/registration"
)

// BuildAttendanceXLSX renders event attendance as an Excel workbook
func BuildAttendanceXLSX(rows []analytics.EventAttendanceResponse) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"Event ID", "Event", "Date", "Club", "Category",
		"Registrations", "Checked In", "Cancelled", "Attendance %", "No-show %",
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		_ = f.SetCellStyle(sheet, "A1", "J1", style)
	}

	for i, row := range rows {
		values := []interface{}{
			row.EventID, row.EventTitle, row.EventDate, row.ClubName, row.ClubCategory,
			row.TotalRegistrations, row.CheckedInCount, row.CancelledCount,
			row.AttendanceRate, row.NoShowRate,
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f.WriteToBuffer()
}

// BuildAttendancePDF renders event attendance as a one-table PDF
func BuildAttendancePDF(rows []analytics.EventAttendanceResponse, overview *analytics.Overview) (*bytes.Buffer, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "ClubHub Attendance Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Clubs: %d   Events: %d   Active registrations: %d",
		overview.TotalClubs, overview.TotalEvents, overview.TotalRegistrations))
	pdf.Ln(10)

	headers := []string{"Event", "Date", "Club", "Regs", "Checked in", "Cancelled", "Attendance %"}
	widths := []float64{70, 25, 60, 20, 25, 25, 30}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range rows {
		cells := []string{
			row.EventTitle,
			row.EventDate,
			row.ClubName,
			strconv.FormatInt(row.TotalRegistrations, 10),
			strconv.FormatInt(row.CheckedInCount, 10),
			strconv.FormatInt(row.CancelledCount, 10),
			fmt.Sprintf("%.2f", row.AttendanceRate),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}

// BuildRosterCSV renders an event roster as CSV
func BuildRosterCSV(entries []registration.RosterEntry) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Registration ID", "Name", "Email", "Checked In", "Registered At"}); err != nil {
		return nil, err
	}

	for _, e := range entries {
		record := []string{
			strconv.FormatUint(uint64(e.ID), 10),
			e.ParticipantName,
			e.Email,
			strconv.FormatBool(e.CheckedIn),
			e.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return &buf, nil
}
