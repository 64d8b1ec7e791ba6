package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/campustix/portal/internal/domain"
	"github.com/google/uuid"
)

func TestAttendancePDF(t *testing.T) {
	event := &domain.Event{
		ID:   uuid.New(),
		Name: "Hack the Campus",
		Date: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
	}
	regs := []domain.Registration{
		{RegistrationNumber: "21BCE1234", Status: domain.StatusUsed},
		{RegistrationNumber: "21BEE5678", Status: domain.StatusConfirmed},
	}

	pdf, err := AttendancePDF(event, regs)
	if err != nil {
		t.Fatalf("AttendancePDF: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Fatalf("output does not look like a PDF: % x", pdf[:8])
	}
}

func TestAttendancePDFManyRowsPaginates(t *testing.T) {
	event := &domain.Event{ID: uuid.New(), Name: "Symposium"}
	regs := make([]domain.Registration, 200)
	for i := range regs {
		regs[i] = domain.Registration{RegistrationNumber: "REG", Status: domain.StatusConfirmed}
	}

	if _, err := AttendancePDF(event, regs); err != nil {
		t.Fatalf("AttendancePDF: %v", err)
	}
}
