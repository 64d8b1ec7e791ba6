package admin

import (
	"testing"

	"github.com/campustix/portal/internal/domain"
)

func sampleRegs() []domain.Registration {
	return []domain.Registration{
		{StudentName: "Priya Sharma", RegistrationNumber: "21BCE1234", Course: "CSE", Status: domain.StatusConfirmed},
		{StudentName: "Arjun Nair", RegistrationNumber: "21BEE5678", Course: "EEE", Status: domain.StatusUsed},
		{StudentName: "Meera Pillai", RegistrationNumber: "22BCE9012", Course: "CSE", Status: domain.StatusConfirmed},
	}
}

func TestFilterAttendeesBySearch(t *testing.T) {
	got := filterAttendees(sampleRegs(), "priya", "")
	if len(got) != 1 || got[0].StudentName != "Priya Sharma" {
		t.Fatalf("got %+v", got)
	}

	// matches registration number and course too, case-insensitively
	if got := filterAttendees(sampleRegs(), "21bee", ""); len(got) != 1 {
		t.Fatalf("reg number search: got %d rows", len(got))
	}
	if got := filterAttendees(sampleRegs(), "cse", ""); len(got) != 2 {
		t.Fatalf("course search: got %d rows", len(got))
	}
}

func TestFilterAttendeesByStatus(t *testing.T) {
	got := filterAttendees(sampleRegs(), "", domain.StatusUsed)
	if len(got) != 1 || got[0].StudentName != "Arjun Nair" {
		t.Fatalf("got %+v", got)
	}
}

func TestFilterAttendeesCombined(t *testing.T) {
	if got := filterAttendees(sampleRegs(), "cse", domain.StatusUsed); len(got) != 0 {
		t.Fatalf("got %d rows, want 0", len(got))
	}
	if got := filterAttendees(sampleRegs(), "", ""); len(got) != 3 {
		t.Fatalf("no filters: got %d rows, want 3", len(got))
	}
}
