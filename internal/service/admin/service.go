package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/campustix/portal/internal/domain"
	"github.com/campustix/portal/internal/report"
	"github.com/campustix/portal/internal/repository"
	postgresrepo "github.com/campustix/portal/internal/repository/postgres"
	redisrepo "github.com/campustix/portal/internal/repository/redis"
	"github.com/campustix/portal/internal/uow"
	"github.com/google/uuid"
)

type Service struct {
	store  *postgresrepo.Store
	cache  *redisrepo.Cache
	pubsub *redisrepo.EventsPubSub
	uow    *uow.UoW
}

func New(
	store *postgresrepo.Store,
	cache *redisrepo.Cache,
	pubsub *redisrepo.EventsPubSub,
) *Service {
	return &Service{
		store:  store,
		cache:  cache,
		pubsub: pubsub,
		uow:    uow.NewUoW(store),
	}
}

// CreateEvent creates an organizer-owned event with zero booked tickets.
// When no image URL is given a category-themed placeholder is used, as the
// portal UI expects every card to carry an image.
//
// Returns:
//   - uuid.UUID: the new event ID.
//   - error: admin.ErrMissingFields, admin.ErrInvalidCategory,
//     admin.ErrInvalidCapacity or admin.ErrEventConflict.
func (s *Service) CreateEvent(ctx context.Context, e *domain.Event) (uuid.UUID, error) {
	const op = "service.admin.CreateEvent"

	if strings.TrimSpace(e.Name) == "" || strings.TrimSpace(e.Venue) == "" || e.Date.IsZero() {
		return uuid.Nil, fmt.Errorf("%s:%w", op, ErrMissingFields)
	}

	if !e.Category.Valid() {
		return uuid.Nil, fmt.Errorf("%s:%w", op, ErrInvalidCategory)
	}

	if e.TotalCapacity <= 0 {
		return uuid.Nil, fmt.Errorf("%s:%w", op, ErrInvalidCapacity)
	}

	if strings.TrimSpace(e.ImageURL) == "" {
		e.ImageURL = fmt.Sprintf(
			"https://source.unsplash.com/800x600/?%s",
			strings.ToLower(string(e.Category)),
		)
	}

	id, err := s.store.Events().Create(ctx, e)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return uuid.Nil, fmt.Errorf("%s:%w", op, ErrEventConflict)
		}
		return uuid.Nil, fmt.Errorf("%s:%w", op, err)
	}

	s.invalidate(ctx, id)

	return id, nil
}

// UpdateEvent rewrites the editable fields of an organizer's event.
//
// Returns:
//   - error: admin.ErrEventNotFound or admin.ErrInvalidCategory.
func (s *Service) UpdateEvent(ctx context.Context, e *domain.Event) error {
	const op = "service.admin.UpdateEvent"

	if !e.Category.Valid() {
		return fmt.Errorf("%s:%w", op, ErrInvalidCategory)
	}

	if err := s.store.Events().Update(ctx, e); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s:%w", op, ErrEventNotFound)
		}
		return fmt.Errorf("%s:%w", op, err)
	}

	s.invalidate(ctx, e.ID)

	return nil
}

// DeleteEvent removes an event and all of its registrations in one
// transaction.
//
// Returns:
//   - error: admin.ErrEventNotFound if the event does not exist.
func (s *Service) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	const op = "service.admin.DeleteEvent"

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		if _, err := s.store.Registrations().With(tx).DeleteByEvent(ctx, id); err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		if err := s.store.Events().With(tx).Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s:%w", op, ErrEventNotFound)
			}
			return fmt.Errorf("%s:%w", op, err)
		}

		after(func(ctx context.Context) {
			s.invalidate(ctx, id)
		})

		return nil
	})

	return err
}

// SetSalesPaused flips the sales-paused flag of an event. Issued tickets
// stay valid either way.
//
// Returns:
//   - error: admin.ErrEventNotFound if the event does not exist.
func (s *Service) SetSalesPaused(ctx context.Context, id uuid.UUID, paused bool) error {
	const op = "service.admin.SetSalesPaused"

	if err := s.store.Events().SetSalesPaused(ctx, id, paused); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s:%w", op, ErrEventNotFound)
		}
		return fmt.Errorf("%s:%w", op, err)
	}

	s.invalidate(ctx, id)

	return nil
}

// SetCapacity changes an event's total capacity.
//
// Returns:
//   - error: admin.ErrInvalidCapacity, admin.ErrCapacityBelow or
//     admin.ErrEventNotFound.
func (s *Service) SetCapacity(ctx context.Context, id uuid.UUID, capacity int) error {
	const op = "service.admin.SetCapacity"

	if capacity <= 0 {
		return fmt.Errorf("%s:%w", op, ErrInvalidCapacity)
	}

	if err := s.store.Events().SetCapacity(ctx, id, capacity); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return fmt.Errorf("%s:%w", op, ErrEventNotFound)
		case errors.Is(err, repository.ErrCapacityBelow):
			return fmt.Errorf("%s:%w", op, ErrCapacityBelow)
		}
		return fmt.Errorf("%s:%w", op, err)
	}

	s.invalidate(ctx, id)

	return nil
}

// MyEvents lists the events owned by one organizer.
func (s *Service) MyEvents(ctx context.Context, organizerID uuid.UUID) ([]domain.Event, error) {
	const op = "service.admin.MyEvents"

	events, err := s.store.Query().ListEventsByOrganizer(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return events, nil
}

// Attendees lists an event's registrations, optionally narrowed by a
// case-insensitive search over name/registration number/course and by
// registration status.
func (s *Service) Attendees(
	ctx context.Context,
	eventID uuid.UUID,
	search string,
	status domain.RegistrationStatus,
) ([]domain.Registration, error) {
	const op = "service.admin.Attendees"

	regs, err := s.store.Registrations().ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return filterAttendees(regs, search, status), nil
}

// Stats returns booked/attended counters for one event.
//
// Returns:
//   - error: admin.ErrEventNotFound if the event does not exist.
func (s *Service) Stats(ctx context.Context, eventID uuid.UUID) (*domain.EventStats, error) {
	const op = "service.admin.Stats"

	stats, err := s.store.Query().EventStats(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrEventNotFound)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return stats, nil
}

// DashboardTotals aggregates portal-wide counters.
func (s *Service) DashboardTotals(ctx context.Context) (*domain.DashboardTotals, error) {
	const op = "service.admin.DashboardTotals"

	totals, err := s.store.Query().DashboardTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return totals, nil
}

// AttendancePDF renders the printable attendance record for an event.
//
// Returns:
//   - error: admin.ErrEventNotFound if the event does not exist.
func (s *Service) AttendancePDF(ctx context.Context, eventID uuid.UUID) ([]byte, error) {
	const op = "service.admin.AttendancePDF"

	event, err := s.store.Query().GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrEventNotFound)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	regs, err := s.store.Registrations().ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	pdf, err := report.AttendancePDF(event, regs)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return pdf, nil
}

func (s *Service) invalidate(ctx context.Context, eventID uuid.UUID) {
	if s.cache != nil {
		_ = s.cache.InvalidateEvent(ctx, eventID)
	}
	if s.pubsub != nil {
		_ = s.pubsub.PublishEventChanged(ctx, eventID)
	}
}

func filterAttendees(
	regs []domain.Registration,
	search string,
	status domain.RegistrationStatus,
) []domain.Registration {
	search = strings.ToLower(strings.TrimSpace(search))

	out := make([]domain.Registration, 0, len(regs))
	for _, r := range regs {
		if status != "" && r.Status != status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(r.StudentName), search) &&
			!strings.Contains(strings.ToLower(r.RegistrationNumber), search) &&
			!strings.Contains(strings.ToLower(r.Course), search) {
			continue
		}
		out = append(out, r)
	}
	return out
}
