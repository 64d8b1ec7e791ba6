package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campustix/portal/internal/domain"
	"github.com/campustix/portal/internal/repository"
	postgresrepo "github.com/campustix/portal/internal/repository/postgres"
	redisrepo "github.com/campustix/portal/internal/repository/redis"
	"github.com/google/uuid"
)

// Availability is the capacity snapshot a booking form uses to disable
// its submit control. Advisory only: the booking transaction is the
// authority on capacity.
type Availability struct {
	TotalCapacity int  `json:"total_capacity"`
	TicketsBooked int  `json:"tickets_booked"`
	Remaining     int  `json:"remaining"`
	SoldOut       bool `json:"sold_out"`
	SalesPaused   bool `json:"sales_paused"`
}

type Config struct {
	ListTTL         time.Duration
	SummaryTTL      time.Duration
	AvailabilityTTL time.Duration
}

type Service struct {
	store *postgresrepo.Store
	cache *redisrepo.Cache
	cfg   Config
}

func New(store *postgresrepo.Store, cache *redisrepo.Cache, cfg Config) *Service {
	if cfg.ListTTL <= 0 {
		cfg.ListTTL = 30 * time.Second
	}
	if cfg.SummaryTTL <= 0 {
		cfg.SummaryTTL = 60 * time.Second
	}
	if cfg.AvailabilityTTL <= 0 {
		cfg.AvailabilityTTL = 15 * time.Second
	}

	return &Service{store: store, cache: cache, cfg: cfg}
}

// ListEvents lists the catalog ordered by date, optionally filtered by
// category. The default (unpaginated) listing per category is cached.
//
// Returns:
//   - error: catalog.ErrInvalidCategory for an unknown category filter.
func (s *Service) ListEvents(
	ctx context.Context,
	category domain.Category,
	limit, offset int,
) ([]domain.Event, error) {
	const op = "service.catalog.ListEvents"

	if category != "" && !category.Valid() {
		return nil, fmt.Errorf("%s:%w", op, ErrInvalidCategory)
	}

	if limit <= 0 || limit > 100 {
		limit = 100
	}

	load := func(ctx context.Context) ([]domain.Event, error) {
		return s.store.Query().ListEvents(ctx, category, limit, offset)
	}

	if s.cache == nil || offset != 0 || limit != 100 {
		events, err := load(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}
		return events, nil
	}

	events, err := redisrepo.GetOrSetJSON(ctx, s.cache, redisrepo.KeyEventList(category), s.cfg.ListTTL, load)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return events, nil
}

// GetEvent retrieves one event.
//
// Returns:
//   - error: catalog.ErrEventNotFound if the event does not exist.
func (s *Service) GetEvent(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	const op = "service.catalog.GetEvent"

	load := func(ctx context.Context) (*domain.Event, error) {
		return s.store.Query().GetEvent(ctx, id)
	}

	var (
		event *domain.Event
		err   error
	)

	if s.cache != nil {
		event, err = redisrepo.GetOrSetJSON(ctx, s.cache, redisrepo.KeyEventSummary(id), s.cfg.SummaryTTL, load)
	} else {
		event, err = load(ctx)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrEventNotFound)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return event, nil
}

// Availability returns the remaining-capacity snapshot for an event.
//
// Returns:
//   - error: catalog.ErrEventNotFound if the event does not exist.
func (s *Service) Availability(ctx context.Context, id uuid.UUID) (*Availability, error) {
	const op = "service.catalog.Availability"

	load := func(ctx context.Context) (*Availability, error) {
		e, err := s.store.Query().GetEvent(ctx, id)
		if err != nil {
			return nil, err
		}
		return availabilityOf(e), nil
	}

	var (
		avail *Availability
		err   error
	)

	if s.cache != nil {
		avail, err = redisrepo.GetOrSetJSON(ctx, s.cache, redisrepo.KeyEventAvailability(id), s.cfg.AvailabilityTTL, load)
	} else {
		avail, err = load(ctx)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrEventNotFound)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return avail, nil
}

// MyTickets lists a student's registrations with their events.
func (s *Service) MyTickets(ctx context.Context, studentID uuid.UUID) ([]domain.TicketWithEvent, error) {
	const op = "service.catalog.MyTickets"

	tickets, err := s.store.Query().MyTickets(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return tickets, nil
}

func availabilityOf(e *domain.Event) *Availability {
	return &Availability{
		TotalCapacity: e.TotalCapacity,
		TicketsBooked: e.TicketsBooked,
		Remaining:     e.Remaining(),
		SoldOut:       e.SoldOut(),
		SalesPaused:   e.SalesPaused,
	}
}
