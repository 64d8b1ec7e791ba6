package booking

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/campustix/portal/internal/domain"
	"github.com/campustix/portal/internal/mail"
	"github.com/campustix/portal/internal/repository"
	"github.com/google/uuid"
)

type fakeRegistrar struct {
	regID uuid.UUID
	err   error
	calls int
}

func (f *fakeRegistrar) BookTicket(ctx context.Context, eventID, studentID uuid.UUID, name, regNumber, course string) (uuid.UUID, error) {
	f.calls++
	return f.regID, f.err
}

type fakeEventGetter struct {
	event *domain.Event
	err   error
}

func (f *fakeEventGetter) GetEvent(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

type fakeNotifier struct {
	err   error
	calls int
	last  mail.Confirmation
}

func (f *fakeNotifier) SendConfirmation(ctx context.Context, c mail.Confirmation) error {
	f.calls++
	f.last = c
	return f.err
}

func validRequest() Request {
	return Request{
		EventID:            uuid.New(),
		StudentID:          uuid.New(),
		StudentName:        "Priya Sharma",
		RegistrationNumber: "21BCE1234",
		Course:             "CSE",
		StudentEmail:       "priya@example.edu",
	}
}

func TestBookSuccessSendsEmail(t *testing.T) {
	regID := uuid.New()
	registrar := &fakeRegistrar{regID: regID}
	notifier := &fakeNotifier{}
	events := &fakeEventGetter{event: &domain.Event{Name: "Hack the Campus"}}
	svc := New(registrar, events, notifier, nil, nil, nil, Config{})

	res, err := svc.Book(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if res.TicketID != regID.String() {
		t.Fatalf("ticket id = %q, want registration id %q", res.TicketID, regID)
	}
	if !res.EmailSent {
		t.Fatal("EmailSent = false, want true")
	}
	if notifier.calls != 1 {
		t.Fatalf("notifier calls = %d, want 1", notifier.calls)
	}
	if notifier.last.EventName != "Hack the Campus" {
		t.Fatalf("email event name = %q", notifier.last.EventName)
	}
}

func TestBookEmailFailureDoesNotFailBooking(t *testing.T) {
	registrar := &fakeRegistrar{regID: uuid.New()}
	notifier := &fakeNotifier{err: errors.New("relay down")}
	svc := New(registrar, &fakeEventGetter{event: &domain.Event{}}, notifier, nil, nil, nil, Config{})

	res, err := svc.Book(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if res.EmailSent {
		t.Fatal("EmailSent = true after a relay failure")
	}
}

func TestBookNoEmailWithoutAddress(t *testing.T) {
	registrar := &fakeRegistrar{regID: uuid.New()}
	notifier := &fakeNotifier{}
	svc := New(registrar, &fakeEventGetter{event: &domain.Event{}}, notifier, nil, nil, nil, Config{})

	req := validRequest()
	req.StudentEmail = ""

	res, err := svc.Book(context.Background(), req)
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if res.EmailSent || notifier.calls != 0 {
		t.Fatalf("email dispatched without an address: sent=%v calls=%d", res.EmailSent, notifier.calls)
	}
}

func TestBookNoEmailOnBookingFailure(t *testing.T) {
	registrar := &fakeRegistrar{err: repository.ErrSoldOut}
	notifier := &fakeNotifier{}
	svc := New(registrar, &fakeEventGetter{event: &domain.Event{}}, notifier, nil, nil, nil, Config{})

	_, err := svc.Book(context.Background(), validRequest())
	if !errors.Is(err, ErrSoldOut) {
		t.Fatalf("err = %v, want ErrSoldOut", err)
	}
	if notifier.calls != 0 {
		t.Fatalf("notifier calls = %d, want 0 after a failed booking", notifier.calls)
	}
}

func TestBookErrorMapping(t *testing.T) {
	cases := []struct {
		storeErr error
		want     error
	}{
		{repository.ErrNotFound, ErrEventNotFound},
		{repository.ErrSalesPaused, ErrSalesPaused},
		{repository.ErrSoldOut, ErrSoldOut},
		{repository.ErrAlreadyBooked, ErrAlreadyBooked},
	}
	for _, tc := range cases {
		svc := New(&fakeRegistrar{err: tc.storeErr}, nil, nil, nil, nil, nil, Config{})
		_, err := svc.Book(context.Background(), validRequest())
		if !errors.Is(err, tc.want) {
			t.Errorf("store error %v mapped to %v, want %v", tc.storeErr, err, tc.want)
		}
	}
}

func TestBookIncompleteForm(t *testing.T) {
	registrar := &fakeRegistrar{}
	svc := New(registrar, nil, nil, nil, nil, nil, Config{})

	req := validRequest()
	req.Course = "   "

	_, err := svc.Book(context.Background(), req)
	if !errors.Is(err, ErrIncompleteForm) {
		t.Fatalf("err = %v, want ErrIncompleteForm", err)
	}
	if registrar.calls != 0 {
		t.Fatalf("store called %d times on an incomplete form", registrar.calls)
	}
}

func TestBookTicketIDFallback(t *testing.T) {
	// A zero registration ID gets a timestamp-based label instead of a
	// nil UUID string.
	registrar := &fakeRegistrar{regID: uuid.Nil}
	svc := New(registrar, nil, nil, nil, nil, nil, Config{})

	res, err := svc.Book(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if !strings.HasPrefix(res.TicketID, "TKT-") {
		t.Fatalf("ticket id = %q, want TKT- prefix", res.TicketID)
	}
}
