package checkout

import (
	"net/http"
	"trek/infras/otel"
	"trek/internal/domains/checkout/model/dto"
	"trek/internal/domains/checkout/service"
	"trek/shared/constant"
	"trek/shared/failure"
	"trek/shared/validator"
	"trek/transport/http/middleware"
	"trek/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Checkout
	app     middleware.AppMiddleware
	otel    otel.Otel
}

func New(service service.Checkout, app middleware.AppMiddleware, otel otel.Otel) Handler {
	return Handler{
		service: service,
		app:     app,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/checkout/{session}", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetStatus)
		routerGroup.Put("/draft", handler.UpsertDraft)
		routerGroup.Delete("/", handler.Abandon)
		routerGroup.Post("/submit", handler.Submit)
		routerGroup.With(handler.app.RateLimit()).Post("/resend", handler.Resend)
		routerGroup.With(handler.app.RateLimit()).Post("/verify", handler.Verify)
		routerGroup.Post("/confirm", handler.Confirm)
		routerGroup.Post("/cancel", handler.Cancel)
	})
}

func (handler *Handler) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	session := chi.URLParam(r, constant.RequestParamSession)
	if session == "" {
		response.WithError(w, failure.BadRequestFromString("a session identifier is required"))

		return "", false
	}

	return session, true
}

// GetStatus returns the current checkout state, resuming a previously
// verified session at payment authorization when possible.
func (handler *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStatus")
	defer scope.End()

	session, ok := handler.sessionID(w, r)
	if !ok {
		return
	}

	status, err := handler.service.Status(ctx, session)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get checkout status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, status)
}

// UpsertDraft stores partial form state and returns the repriced draft.
func (handler *Handler) UpsertDraft(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpsertDraft")
	defer scope.End()

	session, ok := handler.sessionID(w, r)
	if !ok {
		return
	}

	req := dto.UpsertDraftRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	status, err := handler.service.UpsertDraft(ctx, session, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upsert checkout draft")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Checkout draft stored for session " + session)

	response.WithJSON(w, http.StatusOK, status)
}

// Submit validates the draft and starts identity verification.
func (handler *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Submit")
	defer scope.End()

	session, ok := handler.sessionID(w, r)
	if !ok {
		return
	}

	status, err := handler.service.Submit(ctx, session)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to submit checkout")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Checkout submitted for session " + session)

	response.WithJSON(w, http.StatusOK, status)
}

// Resend reissues the pending one-time code, subject to the cooldown.
func (handler *Handler) Resend(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Resend")
	defer scope.End()

	session, ok := handler.sessionID(w, r)
	if !ok {
		return
	}

	status, err := handler.service.Resend(ctx, session)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to resend verification code")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, status)
}

// Verify checks the submitted code and, on success, advances the session to
// payment authorization and returns the session tokens.
func (handler *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Verify")
	defer scope.End()

	session, ok := handler.sessionID(w, r)
	if !ok {
		return
	}

	req := dto.VerifyRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Verify(ctx, session, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to verify checkout identity")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Checkout identity verified for session " + session)

	response.WithJSON(w, http.StatusOK, res)
}

// Confirm completes the payment and finalizes the booking.
func (handler *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Confirm")
	defer scope.End()

	session, ok := handler.sessionID(w, r)
	if !ok {
		return
	}

	req := dto.ConfirmRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	status, err := handler.service.Confirm(ctx, session, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to confirm checkout payment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Checkout completed for session " + session)

	response.WithJSON(w, http.StatusOK, status)
}

// Cancel drops in-flight verification and authorization but keeps the draft.
func (handler *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Cancel")
	defer scope.End()

	session, ok := handler.sessionID(w, r)
	if !ok {
		return
	}

	status, err := handler.service.Cancel(ctx, session)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel checkout")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, status)
}

// Abandon clears the session slot entirely.
func (handler *Handler) Abandon(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Abandon")
	defer scope.End()

	session, ok := handler.sessionID(w, r)
	if !ok {
		return
	}

	if err := handler.service.Abandon(ctx, session); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to abandon checkout")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Checkout abandoned")
}
