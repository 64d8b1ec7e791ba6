// Package report renders printable artifacts for organizers.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/campustix/portal/internal/domain"
	"github.com/go-pdf/fpdf"
)

// AttendancePDF builds an A4 attendance record for one event: a header
// bar, the event title, and one row per registration carrying the
// registration number and its check-in status.
func AttendancePDF(event *domain.Event, regs []domain.Registration) ([]byte, error) {
	const op = "report.AttendancePDF"

	const margin = 20.0

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()

	// Header bar
	pdf.SetFillColor(255, 87, 34)
	pdf.Rect(0, 0, pageW, 14, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.Text(margin, 9, "CAMPUS EVENTS PORTAL")
	pdf.SetX(-margin)
	pdf.Text(pageW-margin-pdf.GetStringWidth("ATTENDANCE RECORD"), 9, "ATTENDANCE RECORD")

	// Event title
	y := 26.0
	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(margin, y, event.Name)
	y += 7

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.Text(margin, y, fmt.Sprintf(
		"Generated: %s  -  Total: %d student(s)",
		time.Now().Format("02 Jan 2006 15:04"),
		len(regs),
	))
	y += 4

	pdf.SetDrawColor(220, 220, 220)
	pdf.Line(margin, y, pageW-margin, y)
	y += 8

	// Column header
	pdf.SetFillColor(245, 245, 245)
	pdf.Rect(margin, y-4, pageW-margin*2, 8, "F")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(80, 80, 80)
	pdf.Text(margin+2, y+1, "#")
	pdf.Text(margin+14, y+1, "Registration Number")
	pdf.Text(pageW-margin-pdf.GetStringWidth("Status")-2, y+1, "Status")
	y += 10

	pdf.SetFont("Helvetica", "", 9)
	for i, r := range regs {
		if y > 270 {
			pdf.AddPage()
			y = margin
		}

		pdf.SetTextColor(60, 60, 60)
		pdf.Text(margin+2, y, fmt.Sprintf("%d", i+1))
		pdf.Text(margin+14, y, r.RegistrationNumber)

		status := "Booked"
		pdf.SetTextColor(150, 150, 150)
		if r.Status == domain.StatusUsed {
			status = "Attended"
			pdf.SetTextColor(16, 150, 70)
		}
		pdf.Text(pageW-margin-pdf.GetStringWidth(status)-2, y, status)

		y += 6
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return buf.Bytes(), nil
}
