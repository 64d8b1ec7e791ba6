package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSendConfirmation(t *testing.T) {
	var got Confirmation
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/send-ticket" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.SendConfirmation(context.Background(), Confirmation{
		StudentName:        "Priya Sharma",
		EventName:          "Hack the Campus",
		TicketID:           "TKT-1",
		RegistrationNumber: "21BCE1234",
		StudentEmail:       "priya@example.edu",
	})
	if err != nil {
		t.Fatalf("SendConfirmation: %v", err)
	}
	if got.StudentEmail != "priya@example.edu" {
		t.Fatalf("relay saw email %q", got.StudentEmail)
	}
}

func TestSendConfirmationRelayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "smtp timeout"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.SendConfirmation(context.Background(), Confirmation{})
	if err == nil {
		t.Fatal("expected error for a 500 response")
	}
	if !strings.Contains(err.Error(), "smtp timeout") {
		t.Fatalf("err = %v, want relay error message included", err)
	}
}
