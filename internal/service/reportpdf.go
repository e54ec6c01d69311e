package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"fleettrack-backend/internal/domain"
)

// PeriodReportPDF renders the day-granularity period report as an A4
// document for download or printing.
func (s *reportService) PeriodReportPDF(ctx context.Context, periodName, customStart, customEnd string) ([]byte, string, error) {
	report, err := s.PeriodReport(ctx, periodName, customStart, customEnd, string(domain.GranularityDay))
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Fleet Usage Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Period: %s to %s (%d days)", report.Start, report.End, report.Days), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total distance: %.1f km", report.TotalKM), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Events: %d", report.Events), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Average per event: %.1f km", report.AvgPerEvent), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Average per day: %.1f km", report.AvgPerDay), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	writeTableHeader := func(headers []string, widths []float64) {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(230, 230, 230)
		for i, h := range headers {
			pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 10)
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "By Vehicle", "", 1, "L", false, 0, "")
	vehicleWidths := []float64{35, 55, 30, 20, 30}
	writeTableHeader([]string{"Plate", "Vehicle", "Total km", "Events", "Avg km/day"}, vehicleWidths)
	for _, v := range report.Vehicles {
		pdf.CellFormat(vehicleWidths[0], 7, v.Plate, "1", 0, "L", false, 0, "")
		pdf.CellFormat(vehicleWidths[1], 7, fmt.Sprintf("%s %s", v.Make, v.Model), "1", 0, "L", false, 0, "")
		pdf.CellFormat(vehicleWidths[2], 7, fmt.Sprintf("%.1f", v.TotalKM), "1", 0, "R", false, 0, "")
		pdf.CellFormat(vehicleWidths[3], 7, fmt.Sprintf("%d", v.Events), "1", 0, "R", false, 0, "")
		pdf.CellFormat(vehicleWidths[4], 7, fmt.Sprintf("%.1f", v.AvgPerDay), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "By Driver", "", 1, "L", false, 0, "")
	userWidths := []float64{35, 75, 30, 30}
	writeTableHeader([]string{"Code", "Name", "Total km", "Events"}, userWidths)
	for _, u := range report.Users {
		pdf.CellFormat(userWidths[0], 7, u.Code, "1", 0, "L", false, 0, "")
		pdf.CellFormat(userWidths[1], 7, u.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(userWidths[2], 7, fmt.Sprintf("%.1f", u.TotalKM), "1", 0, "R", false, 0, "")
		pdf.CellFormat(userWidths[3], 7, fmt.Sprintf("%d", u.Events), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Daily Breakdown", "", 1, "L", false, 0, "")
	bucketWidths := []float64{40, 35, 25, 35, 35}
	writeTableHeader([]string{"Day", "Total km", "Events", "Vehicles", "Drivers"}, bucketWidths)
	for _, b := range report.Buckets {
		pdf.CellFormat(bucketWidths[0], 7, b.Key, "1", 0, "L", false, 0, "")
		pdf.CellFormat(bucketWidths[1], 7, fmt.Sprintf("%.1f", b.TotalKM), "1", 0, "R", false, 0, "")
		pdf.CellFormat(bucketWidths[2], 7, fmt.Sprintf("%d", b.Events), "1", 0, "R", false, 0, "")
		pdf.CellFormat(bucketWidths[3], 7, fmt.Sprintf("%d", b.Vehicles), "1", 0, "R", false, 0, "")
		pdf.CellFormat(bucketWidths[4], 7, fmt.Sprintf("%d", b.Users), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render report pdf: %w", err)
	}

	filename := fmt.Sprintf("fleet-report_%s_%s.pdf", report.Start, report.End)
	return buf.Bytes(), filename, nil
}
