//go:build wireinject
// +build wireinject

package di

import (
	"trek/config"
	"trek/infras/authgate"
	"trek/infras/jwt"
	"trek/infras/kafka"
	"trek/infras/otel"
	"trek/infras/paygate"
	"trek/infras/postgres"
	"trek/infras/redis"
	"trek/shared/bus"
	"trek/shared/cache"
	"trek/transport/http"
	"trek/transport/http/middleware"
	"trek/transport/http/router"

	draftStore "trek/internal/domains/draft/store"

	bookingService "trek/internal/domains/booking/service"
	checkoutService "trek/internal/domains/checkout/service"
	identityService "trek/internal/domains/identity/service"
	tourService "trek/internal/domains/tour/service"

	bookingRepository "trek/internal/domains/booking/repository"
	tourRepository "trek/internal/domains/tour/repository"

	bookingHandler "trek/internal/handlers/booking"
	checkoutHandler "trek/internal/handlers/checkout"
	healthHandler "trek/internal/handlers/health"
	identityHandler "trek/internal/handlers/identity"
	tourHandler "trek/internal/handlers/tour"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	authgate.NewLocalProvider,
	authgate.New,
	paygate.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	bus.NewRedisBus,
	draftStore.New,
)

var tourDomain = wire.NewSet(
	tourRepository.New,
	tourRepository.NewAddOn,
	tourService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingRepository.NewTraveler,
	bookingService.New,
)

var identityDomain = wire.NewSet(
	identityService.New,
)

var checkoutDomain = wire.NewSet(
	checkoutService.New,
)

var domains = wire.NewSet(
	tourDomain,
	bookingDomain,
	identityDomain,
	checkoutDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	tourHandler.New,
	checkoutHandler.New,
	bookingHandler.New,
	identityHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
