package postgres

import (
	"context"
	"fmt"

	"github.com/campustix/portal/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const eventColumns = `id, event_name, description, category, event_date, event_time,
	venue, image_url, organizer_id, total_capacity, tickets_booked,
	sales_paused, created_at`

type QueryRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *QueryRepo) With(db DB) *QueryRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *QueryRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// GetEvent retrieves an event by its ID.
//
// Parameters:
//   - ctx: request-scoped context for cancellation and timeouts.
//   - id: unique identifier of the event to retrieve.
//
// Returns:
//   - *domain.Event: the event when found.
//   - error: repository.ErrNotFound if the event is not found.
func (r *QueryRepo) GetEvent(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	const op = "postgres.QueryRepo.GetEvent"

	db := r.handle()

	var e domain.Event
	err := db.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`,
		id,
	).Scan(
		&e.ID, &e.Name, &e.Description, &e.Category, &e.Date, &e.Time,
		&e.Venue, &e.ImageURL, &e.OrganizerID, &e.TotalCapacity,
		&e.TicketsBooked, &e.SalesPaused, &e.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &e, nil
}

// ListEvents lists events ordered by date, optionally filtered by category.
//
// Parameters:
//   - ctx: request-scoped context for cancellation and timeouts.
//   - category: category filter; empty string means all categories.
//   - limit, offset: pagination parameters.
func (r *QueryRepo) ListEvents(
	ctx context.Context,
	category domain.Category,
	limit, offset int,
) ([]domain.Event, error) {
	const op = "postgres.QueryRepo.ListEvents"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT `+eventColumns+`
		   FROM events
		  WHERE ($1 = '' OR category = $1)
		  ORDER BY event_date
		  LIMIT $2 OFFSET $3`,
		string(category), limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	out, err := scanEvents(rows)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return out, nil
}

// ListEventsByOrganizer lists an organizer's own events, newest date first.
func (r *QueryRepo) ListEventsByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]domain.Event, error) {
	const op = "postgres.QueryRepo.ListEventsByOrganizer"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT `+eventColumns+`
		   FROM events
		  WHERE organizer_id = $1
		  ORDER BY event_date DESC`,
		organizerID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	out, err := scanEvents(rows)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return out, nil
}

// MyTickets lists a student's registrations with their events, newest first.
func (r *QueryRepo) MyTickets(ctx context.Context, studentID uuid.UUID) ([]domain.TicketWithEvent, error) {
	const op = "postgres.QueryRepo.MyTickets"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT r.id, r.event_id, r.student_id, r.student_name,
		        r.registration_number, r.course, r.status,
		        r.verification_code, r.created_at,
		        e.id, e.event_name, e.description, e.category, e.event_date,
		        e.event_time, e.venue, e.image_url, e.organizer_id,
		        e.total_capacity, e.tickets_booked, e.sales_paused, e.created_at
		   FROM registrations r
		   JOIN events e ON e.id = r.event_id
		  WHERE r.student_id = $1
		  ORDER BY r.created_at DESC`,
		studentID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.TicketWithEvent
	for rows.Next() {
		var t domain.TicketWithEvent
		if err := rows.Scan(
			&t.Registration.ID, &t.Registration.EventID, &t.Registration.StudentID,
			&t.Registration.StudentName, &t.Registration.RegistrationNumber,
			&t.Registration.Course, &t.Registration.Status,
			&t.Registration.VerificationCode, &t.Registration.CreatedAt,
			&t.Event.ID, &t.Event.Name, &t.Event.Description, &t.Event.Category,
			&t.Event.Date, &t.Event.Time, &t.Event.Venue, &t.Event.ImageURL,
			&t.Event.OrganizerID, &t.Event.TotalCapacity, &t.Event.TicketsBooked,
			&t.Event.SalesPaused, &t.Event.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return out, nil
}

// EventStats returns booked/attended counters for one event.
//
// Returns:
//   - error: repository.ErrNotFound if the event is not found.
func (r *QueryRepo) EventStats(ctx context.Context, eventID uuid.UUID) (*domain.EventStats, error) {
	const op = "postgres.QueryRepo.EventStats"

	db := r.handle()

	var s domain.EventStats
	err := db.QueryRow(ctx,
		`SELECT e.id, e.tickets_booked, e.total_capacity,
		        (SELECT count(*) FROM registrations r
		          WHERE r.event_id = e.id AND r.status = 'used')
		   FROM events e
		  WHERE e.id = $1`,
		eventID,
	).Scan(&s.EventID, &s.TicketsBooked, &s.TotalCapacity, &s.Attended)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &s, nil
}

// DashboardTotals aggregates portal-wide counters for the organizer
// dashboard header.
func (r *QueryRepo) DashboardTotals(ctx context.Context) (*domain.DashboardTotals, error) {
	const op = "postgres.QueryRepo.DashboardTotals"

	db := r.handle()

	var t domain.DashboardTotals
	err := db.QueryRow(ctx,
		`SELECT (SELECT count(*) FROM events),
		        coalesce((SELECT sum(tickets_booked) FROM events), 0),
		        (SELECT count(*) FROM registrations WHERE status = 'used')`,
	).Scan(&t.Events, &t.TicketsSold, &t.CheckedIn)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &t, nil
}

func scanEvents(rows pgx.Rows) ([]domain.Event, error) {
	var out []domain.Event
	for rows.Next() {
		var e domain.Event
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Description, &e.Category, &e.Date, &e.Time,
			&e.Venue, &e.ImageURL, &e.OrganizerID, &e.TotalCapacity,
			&e.TicketsBooked, &e.SalesPaused, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
