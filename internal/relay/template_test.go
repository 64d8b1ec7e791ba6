package relay

import (
	"strings"
	"testing"
)

func TestRenderEmailIncludesBookingDetails(t *testing.T) {
	body, err := renderEmail(emailData{
		StudentName: "Priya Sharma",
		EventName:   "Hack the Campus",
		TicketID:    "TKT-1700000000000",
		RegNumber:   "21BCE1234",
	})
	if err != nil {
		t.Fatalf("renderEmail: %v", err)
	}

	for _, want := range []string{
		"Priya Sharma",
		"Hack the Campus",
		"TKT-1700000000000",
		"21BCE1234",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestRenderEmailEscapesHTML(t *testing.T) {
	body, err := renderEmail(emailData{StudentName: `<script>alert(1)</script>`})
	if err != nil {
		t.Fatalf("renderEmail: %v", err)
	}
	if strings.Contains(body, "<script>") {
		t.Fatal("student name was not escaped")
	}
}
