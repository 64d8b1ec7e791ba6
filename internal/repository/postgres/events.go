package postgres

import (
	"context"
	"fmt"

	"github.com/campustix/portal/internal/domain"
	"github.com/campustix/portal/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *EventRepo) With(db DB) *EventRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *EventRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Create inserts a new event with zero booked tickets.
//
// Returns:
//   - uuid.UUID: the event ID when successful.
//   - error: repository.ErrConflict on a duplicate event.
func (r *EventRepo) Create(ctx context.Context, e *domain.Event) (uuid.UUID, error) {
	const op = "postgres.EventRepo.Create"

	db := r.handle()

	id := uuid.New()

	_, err := db.Exec(ctx,
		`INSERT INTO events(
		    id, event_name, description, category, event_date, event_time,
		    venue, image_url, organizer_id, total_capacity,
		    tickets_booked, sales_paused
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 0, false)`,
		id, e.Name, e.Description, e.Category, e.Date, e.Time,
		e.Venue, e.ImageURL, e.OrganizerID, e.TotalCapacity,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return id, nil
}

// Update rewrites the editable fields of an event. The booked counter is
// never touched here.
//
// Returns:
//   - error: repository.ErrNotFound if the event does not exist.
func (r *EventRepo) Update(ctx context.Context, e *domain.Event) error {
	const op = "postgres.EventRepo.Update"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE events
		    SET event_name = $2, description = $3, category = $4,
		        event_date = $5, event_time = $6, venue = $7, image_url = $8
		  WHERE id = $1`,
		e.ID, e.Name, e.Description, e.Category,
		e.Date, e.Time, e.Venue, e.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

// Delete removes an event row. Registrations must be removed first; the
// admin service runs both inside one transaction.
//
// Returns:
//   - error: repository.ErrNotFound if the event does not exist.
func (r *EventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "postgres.EventRepo.Delete"

	db := r.handle()

	tag, err := db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

// SetSalesPaused flips the sales-paused flag. Already-issued registrations
// are unaffected.
//
// Returns:
//   - error: repository.ErrNotFound if the event does not exist.
func (r *EventRepo) SetSalesPaused(ctx context.Context, id uuid.UUID, paused bool) error {
	const op = "postgres.EventRepo.SetSalesPaused"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE events SET sales_paused = $2 WHERE id = $1`,
		id, paused,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}

// SetCapacity changes the total capacity of an event. The update is
// guarded so the capacity can never drop below the tickets already sold.
//
// Returns:
//   - error: repository.ErrNotFound if the event does not exist.
//   - error: repository.ErrCapacityBelow if capacity < tickets_booked.
func (r *EventRepo) SetCapacity(ctx context.Context, id uuid.UUID, capacity int) error {
	const op = "postgres.EventRepo.SetCapacity"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE events
		    SET total_capacity = $2
		  WHERE id = $1 AND tickets_booked <= $2`,
		id, capacity,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		if err := db.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`, id,
		).Scan(&exists); err != nil {
			return fmt.Errorf("%s:%w", op, translateDBErr(err))
		}
		if !exists {
			return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
		}
		return fmt.Errorf("%s:%w", op, repository.ErrCapacityBelow)
	}

	return nil
}
