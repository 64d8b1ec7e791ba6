package domain

import "testing"

func TestCategoryValid(t *testing.T) {
	for _, c := range []Category{
		CategoryHackathon, CategorySymposium, CategoryCultural,
		CategoryWorkshop, CategorySeminar,
	} {
		if !c.Valid() {
			t.Errorf("%q should be valid", c)
		}
	}
	for _, c := range []Category{"", "hackathon", "Concert"} {
		if c.Valid() {
			t.Errorf("%q should be invalid", c)
		}
	}
}

func TestEventRemainingAndSoldOut(t *testing.T) {
	e := &Event{TotalCapacity: 100, TicketsBooked: 97}
	if e.Remaining() != 3 {
		t.Fatalf("Remaining = %d, want 3", e.Remaining())
	}
	if e.SoldOut() {
		t.Fatal("SoldOut = true with capacity left")
	}

	e.TicketsBooked = 100
	if !e.SoldOut() {
		t.Fatal("SoldOut = false at capacity")
	}
}
