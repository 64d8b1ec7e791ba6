package postgres

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/campustix/portal/internal/domain"
	"github.com/campustix/portal/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RegistrationRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *RegistrationRepo) With(db DB) *RegistrationRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *RegistrationRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// BookTicket registers a student for an event. The capacity check, the
// registration insert and the booked-counter increment run in one
// serializable transaction: this is the single authority on whether a
// booking happened.
//
// Parameters:
//   - ctx: request-scoped context for cancellation and timeouts.
//   - eventID: unique identifier of the event being booked.
//   - studentID: unique identifier of the authenticated student.
//   - name, regNumber, course: the student details printed on the ticket.
//
// Returns:
//   - uuid.UUID: the registration ID when successful.
//   - error: repository.ErrNotFound if the event does not exist.
//   - error: repository.ErrSalesPaused if sales are paused for the event.
//   - error: repository.ErrSoldOut if no capacity remains.
//   - error: repository.ErrAlreadyBooked if the student already holds a ticket.
func (r *RegistrationRepo) BookTicket(
	ctx context.Context,
	eventID, studentID uuid.UUID,
	name, regNumber, course string,
) (uuid.UUID, error) {
	const op = "postgres.RegistrationRepo.BookTicket"

	if r.db != nil {
		id, err := r.bookTicketCore(ctx, r.db, eventID, studentID, name, regNumber, course)
		if err != nil {
			return uuid.Nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}
		return id, nil
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer tx.Rollback(ctx)

	regID, err := r.bookTicketCore(ctx, tx, eventID, studentID, name, regNumber, course)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return regID, nil
}

// FindTicket resolves a human-entered candidate string to at most one
// registration joined with its event fields. The candidate matches the
// registration ID, the 5-digit verification code, or the first 8
// characters of the registration ID.
//
// Returns:
//   - *domain.VerifiedTicket: the matching ticket when found.
//   - error: repository.ErrNotFound if no registration matches.
func (r *RegistrationRepo) FindTicket(ctx context.Context, query string) (*domain.VerifiedTicket, error) {
	const op = "postgres.RegistrationRepo.FindTicket"

	db := r.handle()

	var t domain.VerifiedTicket
	err := db.QueryRow(ctx,
		`SELECT r.id, r.event_id, r.student_id, r.student_name,
		        r.registration_number, r.course, r.status,
		        r.verification_code, r.created_at,
		        e.event_name, e.event_date
		   FROM registrations r
		   JOIN events e ON e.id = r.event_id
		  WHERE r.verification_code = $1
		     OR r.id::text = $1
		     OR left(r.id::text, 8) = $1
		  LIMIT 1`,
		query,
	).Scan(
		&t.ID, &t.EventID, &t.StudentID, &t.StudentName,
		&t.RegistrationNumber, &t.Course, &t.Status,
		&t.VerificationCode, &t.CreatedAt,
		&t.EventName, &t.EventDate,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &t, nil
}

// MarkUsed transitions a registration from confirmed to used. The guard on
// the current status makes a concurrent double check-in lose the race at
// the database rather than in the client.
//
// Returns:
//   - error: repository.ErrAlreadyUsed if the registration was not in the
//     confirmed state anymore.
func (r *RegistrationRepo) MarkUsed(ctx context.Context, id uuid.UUID) error {
	const op = "postgres.RegistrationRepo.MarkUsed"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE registrations
		    SET status = 'used'
		  WHERE id = $1 AND status = 'confirmed'`,
		id,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrAlreadyUsed)
	}

	return nil
}

// ListByEvent lists the registrations for one event, newest first.
func (r *RegistrationRepo) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Registration, error) {
	const op = "postgres.RegistrationRepo.ListByEvent"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, event_id, student_id, student_name, registration_number,
		        course, status, verification_code, created_at
		   FROM registrations
		  WHERE event_id = $1
		  ORDER BY created_at DESC`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.Registration
	for rows.Next() {
		var reg domain.Registration
		if err := rows.Scan(
			&reg.ID, &reg.EventID, &reg.StudentID, &reg.StudentName,
			&reg.RegistrationNumber, &reg.Course, &reg.Status,
			&reg.VerificationCode, &reg.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}
		out = append(out, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return out, nil
}

// DeleteByEvent removes all registrations of an event. Used by the
// event-deletion transaction before the event row itself goes away.
func (r *RegistrationRepo) DeleteByEvent(ctx context.Context, eventID uuid.UUID) (int64, error) {
	const op = "postgres.RegistrationRepo.DeleteByEvent"

	db := r.handle()

	tag, err := db.Exec(ctx, `DELETE FROM registrations WHERE event_id = $1`, eventID)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return tag.RowsAffected(), nil
}

func (r *RegistrationRepo) bookTicketCore(
	ctx context.Context,
	db DB,
	eventID, studentID uuid.UUID,
	name, regNumber, course string,
) (uuid.UUID, error) {
	const op = "postgres.RegistrationRepo.bookTicketCore"

	var (
		capacity int
		booked   int
		paused   bool
	)

	err := db.QueryRow(ctx,
		`SELECT total_capacity, tickets_booked, sales_paused
		   FROM events
		  WHERE id = $1
		    FOR UPDATE`,
		eventID,
	).Scan(&capacity, &booked, &paused)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, fmt.Errorf("%s:%w", op, repository.ErrNotFound)
		}
		return uuid.Nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if paused {
		return uuid.Nil, fmt.Errorf("%s:%w", op, repository.ErrSalesPaused)
	}

	if booked >= capacity {
		return uuid.Nil, fmt.Errorf("%s:%w", op, repository.ErrSoldOut)
	}

	var exists bool
	err = db.QueryRow(ctx,
		`SELECT EXISTS (
		    SELECT 1 FROM registrations
		     WHERE event_id = $1 AND student_id = $2
		 )`,
		eventID, studentID,
	).Scan(&exists)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if exists {
		return uuid.Nil, fmt.Errorf("%s:%w", op, repository.ErrAlreadyBooked)
	}

	regID := uuid.New()

	if _, err := db.Exec(ctx,
		`INSERT INTO registrations(
		    id, event_id, student_id, student_name,
		    registration_number, course, status, verification_code
		 ) VALUES ($1, $2, $3, $4, $5, $6, 'confirmed', $7)`,
		regID, eventID, studentID, name, regNumber, course, genVerificationCode(),
	); err != nil {
		return uuid.Nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if _, err := db.Exec(ctx,
		`UPDATE events
		    SET tickets_booked = tickets_booked + 1
		  WHERE id = $1`,
		eventID,
	); err != nil {
		return uuid.Nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return regID, nil
}

// genVerificationCode returns a 5-digit code, zero-padded. Uniqueness is
// not required: the code is an alternate lookup key and FindTicket takes
// the first match.
func genVerificationCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(100000))
	if err != nil {
		return "00000"
	}
	return fmt.Sprintf("%05d", n.Int64())
}
