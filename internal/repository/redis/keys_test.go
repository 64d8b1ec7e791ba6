package redis

import (
	"testing"

	"github.com/campustix/portal/internal/domain"
	"github.com/google/uuid"
)

func TestKeysAreNamespaced(t *testing.T) {
	id := uuid.New()
	for _, key := range []string{
		KeyEventSummary(id),
		KeyEventAvailability(id),
		KeyEventList(""),
		KeyEventList(domain.CategoryCultural),
		KeyIdemBooking(id, "abc"),
		ChannelEventsChanged(),
	} {
		if len(key) <= len(ns) || key[:len(ns)] != ns {
			t.Errorf("key %q not under namespace %q", key, ns)
		}
	}
}

func TestListKeysCoverEveryCategory(t *testing.T) {
	keys := listKeys()

	// the unfiltered list plus one entry per category
	if len(keys) != 6 {
		t.Fatalf("len = %d, want 6", len(keys))
	}

	seen := map[string]bool{}
	for _, k := range keys {
		seen[k] = true
	}
	for _, c := range []domain.Category{
		domain.CategoryHackathon,
		domain.CategorySymposium,
		domain.CategoryCultural,
		domain.CategoryWorkshop,
		domain.CategorySeminar,
	} {
		if !seen[KeyEventList(c)] {
			t.Errorf("missing list key for %q", c)
		}
	}
}
