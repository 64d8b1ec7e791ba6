package checkin

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/campustix/portal/internal/domain"
	"github.com/campustix/portal/internal/repository"
	redisrepo "github.com/campustix/portal/internal/repository/redis"
	"github.com/google/uuid"
)

// TicketStore is the slice of the registration store the check-in workflow
// needs: one lookup and one status write.
type TicketStore interface {
	FindTicket(ctx context.Context, query string) (*domain.VerifiedTicket, error)
	MarkUsed(ctx context.Context, id uuid.UUID) error
}

type Status string

const (
	StatusSuccess     Status = "success"
	StatusAlreadyUsed Status = "already_used"
	StatusInvalid     Status = "invalid"
)

// TicketDetails is what the gate operator sees on the result panel. Fields
// missing from the store render as "N/A" rather than failing the scan.
type TicketDetails struct {
	TicketID           string `json:"ticket_id"`
	StudentName        string `json:"student_name"`
	RegistrationNumber string `json:"registration_number"`
	Course             string `json:"course"`
	EventName          string `json:"event_name"`
	EventDate          string `json:"event_date"`
	VerificationCode   string `json:"verification_code"`
}

// Outcome is the tri-state result of one verification attempt.
type Outcome struct {
	Status  Status         `json:"status"`
	Message string         `json:"message,omitempty"`
	Ticket  *TicketDetails `json:"ticket,omitempty"`
}

var (
	reFiveDigits = regexp.MustCompile(`^\d{5}$`)
	reUUID       = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
)

type Config struct {
	HistorySize int
}

type Service struct {
	store   TicketStore
	limiter *redisrepo.SlidingWindowLimiter
	history *History
}

func New(store TicketStore, limiter *redisrepo.SlidingWindowLimiter, cfg Config) *Service {
	return &Service{
		store:   store,
		limiter: limiter,
		history: NewHistory(cfg.HistorySize),
	}
}

// Verify resolves a human-entered candidate to a registration and
// transitions it to used at most once.
//
// The candidate must pass the format gate (exactly 5 digits, a canonical
// UUID, or exactly 8 characters) before any store call is made. Lookup
// and write failures are converted into an invalid outcome, never
// propagated: the only errors returned are an empty candidate and rate
// limiting.
//
// Parameters:
//   - ctx: request-scoped context.
//   - operator: rate-limit key for the scanning device; empty disables it.
//   - candidate: the raw scanned or typed string.
//
// Returns:
//   - *Outcome: the terminal tri-state result, also appended to history.
//   - error: checkin.ErrEmptyQuery or checkin.ErrRateLimited.
func (s *Service) Verify(ctx context.Context, operator, candidate string) (*Outcome, error) {
	const op = "service.checkin.Verify"

	query := strings.TrimSpace(candidate)
	if query == "" {
		return nil, fmt.Errorf("%s:%w", op, ErrEmptyQuery)
	}

	if !validFormat(query) {
		return s.reject(query, "Invalid format. Please enter the 5-digit verification code or ticket ID."), nil
	}

	if s.limiter != nil && operator != "" {
		ok, _, _, err := s.limiter.Allow(ctx, "scan:"+operator)
		if err == nil && !ok {
			return nil, fmt.Errorf("%s:%w", op, ErrRateLimited)
		}
	}

	ticket, err := s.store.FindTicket(ctx, query)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return s.reject(query, "No ticket found with this code. Please check and try again."), nil
		}
		return s.reject(query, "Error: "+err.Error()), nil
	}

	details := detailsOf(ticket)

	if ticket.Status == domain.StatusUsed {
		s.history.Add(ScanRecord{
			Query:       query,
			Success:     false,
			StudentName: ticket.StudentName,
			EventName:   ticket.EventName,
			At:          time.Now(),
		})
		return &Outcome{
			Status:  StatusAlreadyUsed,
			Message: "This ticket has already been scanned and used.",
			Ticket:  details,
		}, nil
	}

	if err := s.store.MarkUsed(ctx, ticket.ID); err != nil {
		return s.reject(query, "Error: "+err.Error()), nil
	}

	s.history.Add(ScanRecord{
		Query:       query,
		Success:     true,
		StudentName: ticket.StudentName,
		EventName:   ticket.EventName,
		At:          time.Now(),
	})

	return &Outcome{
		Status:  StatusSuccess,
		Message: "Entry authorized. Ticket marked as used.",
		Ticket:  details,
	}, nil
}

// History returns the operator's scan log, most recent first.
func (s *Service) History() []ScanRecord {
	return s.history.Snapshot()
}

// Tally returns the authorized/rejected counters for the scan log.
func (s *Service) Tally() (authorized, rejected int) {
	return s.history.Tally()
}

func (s *Service) reject(query, msg string) *Outcome {
	s.history.Add(ScanRecord{Query: query, Success: false, At: time.Now()})
	return &Outcome{Status: StatusInvalid, Message: msg}
}

func validFormat(query string) bool {
	if reFiveDigits.MatchString(query) {
		return true
	}
	if reUUID.MatchString(strings.ToLower(query)) {
		return true
	}
	return len(query) == 8
}

func detailsOf(t *domain.VerifiedTicket) *TicketDetails {
	eventDate := ""
	if !t.EventDate.IsZero() {
		eventDate = t.EventDate.Format("02 Jan 2006")
	}
	return &TicketDetails{
		TicketID:           t.ID.String(),
		StudentName:        orNA(t.StudentName),
		RegistrationNumber: orNA(t.RegistrationNumber),
		Course:             orNA(t.Course),
		EventName:          orNA(t.EventName),
		EventDate:          orNA(eventDate),
		VerificationCode:   orNA(t.VerificationCode),
	}
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
