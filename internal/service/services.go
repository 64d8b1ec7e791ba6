package service

import (
	postgres "github.com/campustix/portal/internal/repository/postgres"
	redis "github.com/campustix/portal/internal/repository/redis"
	"github.com/campustix/portal/internal/service/admin"
	"github.com/campustix/portal/internal/service/booking"
	"github.com/campustix/portal/internal/service/catalog"
	"github.com/campustix/portal/internal/service/checkin"
)

type Services struct {
	Booking *booking.Service
	Checkin *checkin.Service
	Catalog *catalog.Service
	Admin   *admin.Service
}

type Config struct {
	Booking booking.Config
	Catalog catalog.Config
	Checkin checkin.Config
}

func NewServices(
	store *postgres.Store,
	cache *redis.Cache,
	pubsub *redis.EventsPubSub,
	limiter *redis.SlidingWindowLimiter,
	notifier booking.Notifier,
	cfg Config,
) *Services {
	cat := catalog.New(store, cache, cfg.Catalog)

	return &Services{
		Booking: booking.New(store.Registrations(), store.Query(), notifier, limiter, cache, pubsub, cfg.Booking),
		Checkin: checkin.New(store.Registrations(), limiter, cfg.Checkin),
		Catalog: cat,
		Admin:   admin.New(store, cache, pubsub),
	}
}
