package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/campustix/portal/internal/domain"
	"github.com/campustix/portal/internal/mail"
	"github.com/campustix/portal/internal/repository"
	redisrepo "github.com/campustix/portal/internal/repository/redis"
	"github.com/google/uuid"
)

// Registrar is the slice of the registration store the booking workflow
// needs: the single transactional booking write.
type Registrar interface {
	BookTicket(ctx context.Context, eventID, studentID uuid.UUID, name, regNumber, course string) (uuid.UUID, error)
}

// EventGetter resolves the event being booked, for the confirmation email.
type EventGetter interface {
	GetEvent(ctx context.Context, id uuid.UUID) (*domain.Event, error)
}

// Notifier dispatches the confirmation email. Failures are downgraded to
// "email not sent" by the workflow and never fail the booking.
type Notifier interface {
	SendConfirmation(ctx context.Context, c mail.Confirmation) error
}

type Request struct {
	EventID            uuid.UUID
	StudentID          uuid.UUID
	StudentName        string
	RegistrationNumber string
	Course             string
	StudentEmail       string
	RateKey            string
}

type Result struct {
	RegistrationID uuid.UUID `json:"registration_id"`
	TicketID       string    `json:"ticket_id"`
	EmailSent      bool      `json:"email_sent"`
}

type Config struct {
	// EmailTimeout bounds the best-effort confirmation email call so a
	// slow relay cannot stall the booking response.
	EmailTimeout time.Duration
}

type Service struct {
	store    Registrar
	events   EventGetter
	notifier Notifier
	limiter  *redisrepo.SlidingWindowLimiter
	cache    *redisrepo.Cache
	pubsub   *redisrepo.EventsPubSub
	cfg      Config
}

func New(
	store Registrar,
	events EventGetter,
	notifier Notifier,
	limiter *redisrepo.SlidingWindowLimiter,
	cache *redisrepo.Cache,
	pubsub *redisrepo.EventsPubSub,
	cfg Config,
) *Service {
	if cfg.EmailTimeout <= 0 {
		cfg.EmailTimeout = 10 * time.Second
	}

	return &Service{
		store:    store,
		events:   events,
		notifier: notifier,
		limiter:  limiter,
		cache:    cache,
		pubsub:   pubsub,
		cfg:      cfg,
	}
}

// Book registers a student for an event and attempts a confirmation email.
//
// The booking write is the only authority on capacity and duplicates; its
// failure aborts the workflow with no side effects. The email step runs
// strictly after a successful booking and is best-effort: any relay error
// is recorded as EmailSent=false and never rolls the booking back.
//
// Returns:
//   - *Result: registration ID, the ticket ID shown to the student, and
//     whether the confirmation email went out.
//   - error: booking.ErrIncompleteForm if the required triple is missing.
//   - error: booking.ErrEventNotFound if the event does not exist.
//   - error: booking.ErrSalesPaused if sales are paused.
//   - error: booking.ErrSoldOut if no capacity remains.
//   - error: booking.ErrAlreadyBooked on a duplicate booking.
func (s *Service) Book(ctx context.Context, req Request) (*Result, error) {
	const op = "service.booking.Book"

	name := strings.TrimSpace(req.StudentName)
	regNumber := strings.TrimSpace(req.RegistrationNumber)
	course := strings.TrimSpace(req.Course)

	if name == "" || regNumber == "" || course == "" {
		return nil, fmt.Errorf("%s:%w", op, ErrIncompleteForm)
	}

	if s.limiter != nil && req.RateKey != "" {
		ok, _, retry, err := s.limiter.Allow(ctx, "book:"+req.RateKey)
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}
		if !ok {
			return nil, fmt.Errorf("%s:%w (retry in %s)", op, ErrRateLimited, retry)
		}
	}

	regID, err := s.store.BookTicket(ctx, req.EventID, req.StudentID, name, regNumber, course)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("%s:%w", op, ErrEventNotFound)
		case errors.Is(err, repository.ErrSalesPaused):
			return nil, fmt.Errorf("%s:%w", op, ErrSalesPaused)
		case errors.Is(err, repository.ErrSoldOut):
			return nil, fmt.Errorf("%s:%w", op, ErrSoldOut)
		case errors.Is(err, repository.ErrAlreadyBooked):
			return nil, fmt.Errorf("%s:%w", op, ErrAlreadyBooked)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	// Stopgap labeling when the store response carries no ID. Not a real
	// identifier scheme; the registration itself is already committed.
	ticketID := regID.String()
	if regID == uuid.Nil {
		ticketID = fmt.Sprintf("TKT-%d", time.Now().UnixMilli())
	}

	result := &Result{
		RegistrationID: regID,
		TicketID:       ticketID,
		EmailSent:      s.sendConfirmation(ctx, req, name, regNumber, ticketID),
	}

	if s.cache != nil {
		_ = s.cache.InvalidateEvent(ctx, req.EventID)
	}
	if s.pubsub != nil {
		_ = s.pubsub.PublishEventChanged(ctx, req.EventID)
	}

	return result, nil
}

func (s *Service) sendConfirmation(ctx context.Context, req Request, name, regNumber, ticketID string) bool {
	if s.notifier == nil || req.StudentEmail == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.EmailTimeout)
	defer cancel()

	eventName := ""
	if s.events != nil {
		if e, err := s.events.GetEvent(ctx, req.EventID); err == nil {
			eventName = e.Name
		}
	}

	err := s.notifier.SendConfirmation(ctx, mail.Confirmation{
		StudentName:        name,
		EventName:          eventName,
		TicketID:           ticketID,
		RegistrationNumber: regNumber,
		StudentEmail:       req.StudentEmail,
	})

	return err == nil
}
