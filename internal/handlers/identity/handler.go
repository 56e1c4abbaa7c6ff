package identity

import (
	"net/http"
	"trek/config"
	"trek/infras/authgate"
	"trek/infras/otel"
	"trek/shared/bus"
	"trek/shared/constant"
	"trek/shared/validator"
	"trek/transport/http/middleware"
	"trek/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

// Handler receives webhooks from the identity provider and republishes them
// on the event bus so every instance sees the ambient signal, not just the
// one that happened to take the HTTP call.
type Handler struct {
	bus  bus.Bus
	auth middleware.Auth
	cfg  *config.Config
	otel otel.Otel
}

func New(eventBus bus.Bus, auth middleware.Auth, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		bus:  eventBus,
		auth: auth,
		cfg:  cfg,
		otel: otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/identity", func(routerGroup chi.Router) {
		routerGroup.With(handler.auth.APIKey).Post("/events", handler.Authenticated)
	})
}

// Authenticated ingests a "session became authenticated" event.
func (handler *Handler) Authenticated(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Authenticated")
	defer scope.End()

	event := authgate.AuthenticatedEvent{}
	if err := validator.Validate(r.Body, &event); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate identity event")

		response.WithError(w, err)

		return
	}

	if err := handler.bus.Publish(ctx, handler.cfg.Checkout.AuthenticatedChannel, event); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to publish identity event")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Authenticated event published")

	response.WithMessage(w, http.StatusAccepted, "Event accepted")
}
