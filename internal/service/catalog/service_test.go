package catalog

import (
	"testing"

	"github.com/campustix/portal/internal/domain"
)

func TestAvailabilityOf(t *testing.T) {
	e := &domain.Event{TotalCapacity: 100, TicketsBooked: 98, SalesPaused: true}

	a := availabilityOf(e)
	if a.Remaining != 2 {
		t.Fatalf("remaining = %d, want 2", a.Remaining)
	}
	if a.SoldOut {
		t.Fatal("sold out with 2 tickets left")
	}
	if !a.SalesPaused {
		t.Fatal("sales paused flag lost")
	}

	e.TicketsBooked = 100
	if !availabilityOf(e).SoldOut {
		t.Fatal("not sold out at full capacity")
	}
}
