package redis

import (
	"fmt"

	"github.com/campustix/portal/internal/domain"
	"github.com/google/uuid"
)

const ns = "campustix:v1"

func KeyEventSummary(eventID uuid.UUID) string {
	return fmt.Sprintf("%s:event:%s:summary", ns, eventID)
}

func KeyEventAvailability(eventID uuid.UUID) string {
	return fmt.Sprintf("%s:event:%s:availability", ns, eventID)
}

func KeyEventList(category domain.Category) string {
	if category == "" {
		return ns + ":events:all"
	}
	return fmt.Sprintf("%s:events:category:%s", ns, category)
}

func KeyIdemBooking(eventID uuid.UUID, idemKey string) string {
	return fmt.Sprintf("%s:idem:bookings:%s:%s", ns, eventID, idemKey)
}

func ChannelEventsChanged() string {
	return ns + ":events:changed"
}

// listKeys enumerates every cached catalog listing, for invalidation.
func listKeys() []string {
	keys := []string{KeyEventList("")}
	for _, c := range []domain.Category{
		domain.CategoryHackathon,
		domain.CategorySymposium,
		domain.CategoryCultural,
		domain.CategoryWorkshop,
		domain.CategorySeminar,
	} {
		keys = append(keys, KeyEventList(c))
	}
	return keys
}
