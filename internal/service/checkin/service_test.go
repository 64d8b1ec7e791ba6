package checkin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/campustix/portal/internal/domain"
	"github.com/campustix/portal/internal/repository"
	"github.com/google/uuid"
)

type fakeTicketStore struct {
	ticket      *domain.VerifiedTicket
	findErr     error
	markErr     error
	findCalls   int
	markCalls   int
	lastQuery   string
	lastMarkeID uuid.UUID
}

func (f *fakeTicketStore) FindTicket(ctx context.Context, query string) (*domain.VerifiedTicket, error) {
	f.findCalls++
	f.lastQuery = query
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.ticket, nil
}

func (f *fakeTicketStore) MarkUsed(ctx context.Context, id uuid.UUID) error {
	f.markCalls++
	f.lastMarkeID = id
	return f.markErr
}

func confirmedTicket() *domain.VerifiedTicket {
	return &domain.VerifiedTicket{
		Registration: domain.Registration{
			ID:                 uuid.New(),
			StudentName:        "Priya Sharma",
			RegistrationNumber: "21BCE1234",
			Course:             "CSE",
			Status:             domain.StatusConfirmed,
			VerificationCode:   "48213",
		},
		EventName: "Hack the Campus",
		EventDate: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
	}
}

func TestVerifySuccessMarksUsed(t *testing.T) {
	store := &fakeTicketStore{ticket: confirmedTicket()}
	svc := New(store, nil, Config{})

	out, err := svc.Verify(context.Background(), "", "48213")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if out.Status != StatusSuccess {
		t.Fatalf("status = %q, want %q", out.Status, StatusSuccess)
	}
	if store.markCalls != 1 {
		t.Fatalf("MarkUsed calls = %d, want 1", store.markCalls)
	}
	if store.lastMarkeID != store.ticket.ID {
		t.Fatalf("MarkUsed id = %s, want %s", store.lastMarkeID, store.ticket.ID)
	}
	if out.Ticket == nil || out.Ticket.StudentName != "Priya Sharma" {
		t.Fatalf("ticket details missing or wrong: %+v", out.Ticket)
	}

	authorized, rejected := svc.Tally()
	if authorized != 1 || rejected != 0 {
		t.Fatalf("tally = (%d, %d), want (1, 0)", authorized, rejected)
	}
}

func TestVerifyAlreadyUsedIsReadOnly(t *testing.T) {
	ticket := confirmedTicket()
	ticket.Status = domain.StatusUsed
	store := &fakeTicketStore{ticket: ticket}
	svc := New(store, nil, Config{})

	out, err := svc.Verify(context.Background(), "", "48213")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if out.Status != StatusAlreadyUsed {
		t.Fatalf("status = %q, want %q", out.Status, StatusAlreadyUsed)
	}
	if store.markCalls != 0 {
		t.Fatalf("MarkUsed calls = %d, want 0 for a used ticket", store.markCalls)
	}
	if out.Ticket == nil {
		t.Fatal("already-used outcome should still carry ticket details")
	}
}

func TestVerifyFormatGatePrecedesLookup(t *testing.T) {
	for _, candidate := range []string{
		"1234",      // too short for a code
		"123456",    // too long for a code
		"abcdefghi", // 9 chars
		"not-a-uuid-at-all-xxxxxxxxxxxxxxxxxxx",
	} {
		store := &fakeTicketStore{ticket: confirmedTicket()}
		svc := New(store, nil, Config{})

		out, err := svc.Verify(context.Background(), "", candidate)
		if err != nil {
			t.Fatalf("Verify(%q): %v", candidate, err)
		}
		if out.Status != StatusInvalid {
			t.Fatalf("Verify(%q) status = %q, want %q", candidate, out.Status, StatusInvalid)
		}
		if store.findCalls != 0 {
			t.Fatalf("Verify(%q) hit the store %d times, want 0", candidate, store.findCalls)
		}
	}
}

func TestVerifyAcceptedFormats(t *testing.T) {
	id := uuid.New()
	for _, candidate := range []string{
		"48213",
		id.String(),
		id.String()[:8],
		"  48213  ", // trimmed before the gate
	} {
		store := &fakeTicketStore{ticket: confirmedTicket()}
		svc := New(store, nil, Config{})

		if _, err := svc.Verify(context.Background(), "", candidate); err != nil {
			t.Fatalf("Verify(%q): %v", candidate, err)
		}
		if store.findCalls != 1 {
			t.Fatalf("Verify(%q) store calls = %d, want 1", candidate, store.findCalls)
		}
	}
}

func TestVerifyNotFound(t *testing.T) {
	store := &fakeTicketStore{findErr: repository.ErrNotFound}
	svc := New(store, nil, Config{})

	out, err := svc.Verify(context.Background(), "", "99999")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if out.Status != StatusInvalid {
		t.Fatalf("status = %q, want %q", out.Status, StatusInvalid)
	}
	if out.Ticket != nil {
		t.Fatal("not-found outcome should carry no ticket details")
	}
}

func TestVerifyStoreErrorBecomesInvalid(t *testing.T) {
	store := &fakeTicketStore{findErr: errors.New("connection refused")}
	svc := New(store, nil, Config{})

	out, err := svc.Verify(context.Background(), "", "48213")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if out.Status != StatusInvalid {
		t.Fatalf("status = %q, want %q", out.Status, StatusInvalid)
	}
}

func TestVerifyMarkUsedErrorBecomesInvalid(t *testing.T) {
	store := &fakeTicketStore{ticket: confirmedTicket(), markErr: errors.New("write failed")}
	svc := New(store, nil, Config{})

	out, err := svc.Verify(context.Background(), "", "48213")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if out.Status != StatusInvalid {
		t.Fatalf("status = %q, want %q", out.Status, StatusInvalid)
	}
}

func TestVerifyEmptyQuery(t *testing.T) {
	svc := New(&fakeTicketStore{}, nil, Config{})

	if _, err := svc.Verify(context.Background(), "", "   "); !errors.Is(err, ErrEmptyQuery) {
		t.Fatalf("err = %v, want ErrEmptyQuery", err)
	}
}

func TestVerifyMissingFieldsRenderNA(t *testing.T) {
	ticket := confirmedTicket()
	ticket.Course = ""
	ticket.EventName = "  "
	ticket.EventDate = time.Time{}
	store := &fakeTicketStore{ticket: ticket}
	svc := New(store, nil, Config{})

	out, err := svc.Verify(context.Background(), "", "48213")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if out.Ticket.Course != "N/A" {
		t.Fatalf("course = %q, want N/A", out.Ticket.Course)
	}
	if out.Ticket.EventName != "N/A" {
		t.Fatalf("event name = %q, want N/A", out.Ticket.EventName)
	}
	if out.Ticket.EventDate != "N/A" {
		t.Fatalf("event date = %q, want N/A", out.Ticket.EventDate)
	}
}
