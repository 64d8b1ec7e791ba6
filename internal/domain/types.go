package domain

import (
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryHackathon Category = "Hackathon"
	CategorySymposium Category = "Symposium"
	CategoryCultural  Category = "Cultural"
	CategoryWorkshop  Category = "Workshop"
	CategorySeminar   Category = "Seminar"
)

// Valid reports whether c is one of the known event categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryHackathon, CategorySymposium, CategoryCultural,
		CategoryWorkshop, CategorySeminar:
		return true
	}
	return false
}

type RegistrationStatus string

const (
	StatusConfirmed RegistrationStatus = "confirmed"
	StatusUsed      RegistrationStatus = "used"
)

type Event struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"event_name"`
	Description   string    `json:"description"`
	Category      Category  `json:"category"`
	Date          time.Time `json:"event_date"`
	Time          string    `json:"event_time"`
	Venue         string    `json:"venue"`
	ImageURL      string    `json:"image_url"`
	OrganizerID   uuid.UUID `json:"organizer_id"`
	TotalCapacity int       `json:"total_capacity"`
	TicketsBooked int       `json:"tickets_booked"`
	SalesPaused   bool      `json:"sales_paused"`
	CreatedAt     time.Time `json:"created_at"`
}

// Remaining returns the number of unsold tickets.
func (e *Event) Remaining() int {
	return e.TotalCapacity - e.TicketsBooked
}

// SoldOut reports whether no capacity remains.
func (e *Event) SoldOut() bool {
	return e.Remaining() <= 0
}

type Registration struct {
	ID                 uuid.UUID          `json:"id"`
	EventID            uuid.UUID          `json:"event_id"`
	StudentID          uuid.UUID          `json:"student_id"`
	StudentName        string             `json:"student_name"`
	RegistrationNumber string             `json:"registration_number"`
	Course             string             `json:"course"`
	Status             RegistrationStatus `json:"status"`
	VerificationCode   string             `json:"verification_code"`
	CreatedAt          time.Time          `json:"created_at"`
}

// VerifiedTicket is the row shape returned by a ticket lookup: the
// registration joined with the event fields a gate operator needs.
type VerifiedTicket struct {
	Registration
	EventName string    `json:"event_name"`
	EventDate time.Time `json:"event_date"`
}

// TicketWithEvent pairs a student's registration with its event for
// the "my tickets" listing.
type TicketWithEvent struct {
	Registration Registration `json:"registration"`
	Event        Event        `json:"event"`
}

type EventStats struct {
	EventID       uuid.UUID `json:"event_id"`
	TicketsBooked int       `json:"tickets_booked"`
	Attended      int       `json:"attended"`
	TotalCapacity int       `json:"total_capacity"`
}

type DashboardTotals struct {
	Events      int `json:"events"`
	TicketsSold int `json:"tickets_sold"`
	CheckedIn   int `json:"checked_in"`
}
