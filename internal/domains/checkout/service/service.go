package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"trek/config"
	"trek/infras/authgate"
	"trek/infras/otel"
	"trek/infras/paygate"
	bookingService "trek/internal/domains/booking/service"
	"trek/internal/domains/checkout/model/dto"
	draftModel "trek/internal/domains/draft/model"
	"trek/internal/domains/draft/store"
	identityModel "trek/internal/domains/identity/model"
	identityService "trek/internal/domains/identity/service"
	"trek/internal/domains/pricing"
	tourService "trek/internal/domains/tour/service"
	"trek/shared/bus"
	"trek/shared/constant"
	"trek/shared/failure"

	"github.com/rs/zerolog/log"
)

const claimAuthorize = "authorize"

// Checkout is the state machine coordinating draft persistence, identity
// verification, payment authorization and booking finalization. It enforces
// the strict order verify before authorize before confirm before finalize.
type Checkout interface {
	UpsertDraft(ctx context.Context, sessionID string, req dto.UpsertDraftRequest) (dto.StatusResponse, error)
	Status(ctx context.Context, sessionID string) (dto.StatusResponse, error)
	Submit(ctx context.Context, sessionID string) (dto.StatusResponse, error)
	Resend(ctx context.Context, sessionID string) (dto.StatusResponse, error)
	Verify(ctx context.Context, sessionID string, req dto.VerifyRequest) (dto.VerifyResponse, error)
	Confirm(ctx context.Context, sessionID string, req dto.ConfirmRequest) (dto.StatusResponse, error)
	Cancel(ctx context.Context, sessionID string) (dto.StatusResponse, error)
	Abandon(ctx context.Context, sessionID string) error
	HandleAuthenticated(ctx context.Context, payload []byte)
	Start(ctx context.Context)
}

type serviceImpl struct {
	store     store.Store
	tours     tourService.Tour
	identity  identityService.Identity
	gateway   paygate.Gateway
	finalizer bookingService.Finalizer
	bus       bus.Bus
	cfg       *config.Config
	otel      otel.Otel
}

func New(
	store store.Store,
	tours tourService.Tour,
	identity identityService.Identity,
	gateway paygate.Gateway,
	finalizer bookingService.Finalizer,
	eventBus bus.Bus,
	cfg *config.Config,
	otel otel.Otel,
) Checkout {
	return &serviceImpl{
		store:     store,
		tours:     tours,
		identity:  identity,
		gateway:   gateway,
		finalizer: finalizer,
		bus:       eventBus,
		cfg:       cfg,
		otel:      otel,
	}
}

// Start subscribes the state machine to the ambient authentication channel.
func (s *serviceImpl) Start(ctx context.Context) {
	s.bus.Subscribe(ctx, s.cfg.Checkout.AuthenticatedChannel, s.HandleAuthenticated)
}

func (s *serviceImpl) UpsertDraft(ctx context.Context, sessionID string, req dto.UpsertDraftRequest) (res dto.StatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpsertDraft")
	defer scope.End()
	defer scope.TraceIfError(err)

	env, err := s.store.Load(ctx, sessionID)
	if err != nil {
		if err != store.ErrNotFound {
			// A failing load degrades to a fresh in-memory draft rather
			// than blocking the user.
			log.Warn().Err(err).Str("session", sessionID).Msg("failed to load envelope, starting fresh")
		}

		env = draftModel.Envelope{SessionID: sessionID, State: draftModel.StateDrafting}
	}

	if env.State == draftModel.StateDone {
		return res, failure.Validation("this checkout is already completed") // nolint:wrapcheck
	}

	draft := req.ToDraft()

	// The email is pinned while a one-time code is in flight. Verifying or
	// cancelling unpins it.
	if env.VerificationInFlight() && draft.Email != env.Draft.Email {
		return res, failure.Validation("email cannot change while a verification code is pending", failure.FieldError{ // nolint:wrapcheck
			Field:   "email",
			Message: "cancel the pending verification to use a different email",
		})
	}

	breakdown, err := s.reprice(ctx, draft)
	if err != nil {
		return res, err
	}

	// Any repricing invalidates an existing authorization; it is single-use
	// and bound to the amount it was created for.
	if env.Authorization != nil && env.Authorization.AmountCents != breakdown.AmountDue(draft.PaymentPlan) {
		env.Authorization = nil
	}

	env.Draft = draft
	env.Pricing = &breakdown

	if !env.VerificationInFlight() && (env.State != draftModel.StateConfirming || env.Authorization == nil) {
		env.State = draftModel.StateDrafting
	}

	s.persist(ctx, &env)

	res.FromEnvelope(env)

	return res, nil
}

func (s *serviceImpl) Status(ctx context.Context, sessionID string) (res dto.StatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Status")
	defer scope.End()
	defer scope.TraceIfError(err)

	env, err := s.store.Load(ctx, sessionID)
	if err != nil {
		if err == store.ErrNotFound {
			return res, failure.NotFound("checkout session not found") // nolint:wrapcheck
		}

		return res, fmt.Errorf("failed to load checkout session: %w", err)
	}

	// A session verified in a prior visit resumes directly at authorization,
	// repriced first so the authorized amount matches the current draft.
	if s.resumable(env) {
		if err := s.advanceToAuthorization(ctx, &env); err != nil {
			res.FromEnvelope(env)

			return res, err
		}
	}

	res.FromEnvelope(env)

	return res, nil
}

func (s *serviceImpl) Submit(ctx context.Context, sessionID string) (res dto.StatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Submit")
	defer scope.End()
	defer scope.TraceIfError(err)

	env, err := s.store.Load(ctx, sessionID)
	if err != nil {
		if err == store.ErrNotFound {
			return res, failure.NotFound("checkout session not found") // nolint:wrapcheck
		}

		return res, fmt.Errorf("failed to load checkout session: %w", err)
	}

	switch env.State {
	case draftModel.StateDrafting, draftModel.StateSubmitting, draftModel.StateIdentityBlocked:
	case draftModel.StateVerifying:
		// Re-submitting while a code is pending is a no-op.
		res.FromEnvelope(env)

		return res, nil
	default:
		return res, failure.Validation("this checkout is already past submission") // nolint:wrapcheck
	}

	env.State = draftModel.StateSubmitting

	breakdown, err := s.reprice(ctx, env.Draft)
	if err != nil {
		env.State = draftModel.StateDrafting
		s.persist(ctx, &env)

		return res, err
	}

	env.Pricing = &breakdown

	if fields := validateForSubmit(env.Draft, breakdown); len(fields) > 0 {
		env.State = draftModel.StateDrafting
		s.persist(ctx, &env)

		return res, failure.Validation("please correct the highlighted fields", fields...) // nolint:wrapcheck
	}

	// The optimistic email-only classification from earlier edits is never
	// trusted; the mismatch check re-runs here with the full name present.
	if s.identity.Classify(ctx, env.Draft.Email, env.Draft.LeadName) == identityModel.ClassificationExistingMismatch {
		env.State = draftModel.StateIdentityBlocked
		s.persist(ctx, &env)

		return res, failure.IdentityMismatch("this email belongs to an existing account under a different name, sign in or use another email") // nolint:wrapcheck
	}

	if err := s.store.IndexEmail(ctx, env.Draft.Email, sessionID); err != nil {
		log.Error().Err(err).Str("session", sessionID).Msg("failed to index checkout email")
	}

	if env.Verified() {
		// Identity carried over from a prior session: skip verification.
		if err := s.advanceToAuthorization(ctx, &env); err != nil {
			return res, err
		}

		res.FromEnvelope(env)

		return res, nil
	}

	attempt, err := s.identity.Issue(ctx, env.Draft.Email, map[string]string{"session": sessionID})
	if err != nil {
		env.State = draftModel.StateDrafting
		s.persist(ctx, &env)

		return res, err
	}

	env.Verification = &attempt
	env.State = draftModel.StateVerifying
	s.persist(ctx, &env)

	res.FromEnvelope(env)

	return res, nil
}

func (s *serviceImpl) Resend(ctx context.Context, sessionID string) (res dto.StatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Resend")
	defer scope.End()
	defer scope.TraceIfError(err)

	env, err := s.store.Load(ctx, sessionID)
	if err != nil {
		if err == store.ErrNotFound {
			return res, failure.NotFound("checkout session not found") // nolint:wrapcheck
		}

		return res, fmt.Errorf("failed to load checkout session: %w", err)
	}

	if !env.VerificationInFlight() {
		return res, failure.Verification("no verification is in progress") // nolint:wrapcheck
	}

	attempt, err := s.identity.Resend(ctx, *env.Verification)
	if err != nil {
		return res, err
	}

	env.Verification = &attempt
	s.persist(ctx, &env)

	res.FromEnvelope(env)

	return res, nil
}

func (s *serviceImpl) Verify(ctx context.Context, sessionID string, req dto.VerifyRequest) (res dto.VerifyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Verify")
	defer scope.End()
	defer scope.TraceIfError(err)

	env, err := s.store.Load(ctx, sessionID)
	if err != nil {
		if err == store.ErrNotFound {
			return res, failure.NotFound("checkout session not found") // nolint:wrapcheck
		}

		return res, fmt.Errorf("failed to load checkout session: %w", err)
	}

	if env.State != draftModel.StateVerifying || !env.VerificationInFlight() {
		return res, failure.Verification("no verification is in progress") // nolint:wrapcheck
	}

	user, tokens, err := s.identity.Verify(ctx, *env.Verification, req.Code)
	if err != nil {
		// The attempt stays pending; the user may retry or resend.
		return res, err
	}

	res.Tokens = tokens

	// The ambient signal for this same verification may be racing us; only
	// one path gets to run the side effects.
	claimed, err := s.store.ClaimTransition(ctx, sessionID, claimAuthorize)
	if err != nil {
		return res, fmt.Errorf("failed to claim authorize transition: %w", err)
	}

	if !claimed {
		env, err = s.store.Load(ctx, sessionID)
		if err != nil {
			return res, fmt.Errorf("failed to reload checkout session: %w", err)
		}

		res.FromEnvelope(env)

		return res, nil
	}

	if err := s.bindUser(ctx, &env, draftModel.UserRef{ID: user.ID, Email: user.Email, Name: user.Name}); err != nil {
		return res, err
	}

	res.FromEnvelope(env)

	return res, nil
}

// HandleAuthenticated consumes the ambient "became authenticated" signal. A
// magic link opened in another tab, or against another instance, lands here.
// Redundant deliveries are no-ops via the transition claim, and stale signals
// after cancellation fail the state compatibility check.
func (s *serviceImpl) HandleAuthenticated(ctx context.Context, payload []byte) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".HandleAuthenticated")
	defer scope.End()

	var event authgate.AuthenticatedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		log.Error().Err(err).Msg("failed to decode authenticated event")

		return
	}

	if event.Email == constant.Empty || event.UserID == constant.Empty {
		log.Warn().Msg("authenticated event missing email or user id, ignoring")

		return
	}

	sessionID, err := s.store.SessionByEmail(ctx, event.Email)
	if err != nil {
		if err != store.ErrNotFound {
			log.Error().Err(err).Msg("failed to resolve session for authenticated event")
		}

		return
	}

	env, err := s.store.Load(ctx, sessionID)
	if err != nil {
		log.Error().Err(err).Str("session", sessionID).Msg("failed to load session for authenticated event")

		return
	}

	if env.State != draftModel.StateVerifying || !env.VerificationInFlight() {
		log.Info().Str("session", sessionID).Str("state", string(env.State)).Msg("authenticated event arrived in incompatible state, ignoring")

		return
	}

	claimed, err := s.store.ClaimTransition(ctx, sessionID, claimAuthorize)
	if err != nil {
		log.Error().Err(err).Str("session", sessionID).Msg("failed to claim authorize transition")

		return
	}

	if !claimed {
		log.Info().Str("session", sessionID).Msg("authorize transition already claimed, ignoring redundant signal")

		return
	}

	if err := s.bindUser(ctx, &env, draftModel.UserRef{ID: event.UserID, Email: event.Email, Name: event.Name}); err != nil {
		log.Error().Err(err).Str("session", sessionID).Msg("failed to advance checkout from authenticated event")
	}
}

func (s *serviceImpl) Confirm(ctx context.Context, sessionID string, req dto.ConfirmRequest) (res dto.StatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()
	defer scope.TraceIfError(err)

	env, err := s.store.Load(ctx, sessionID)
	if err != nil {
		if err == store.ErrNotFound {
			return res, failure.NotFound("checkout session not found") // nolint:wrapcheck
		}

		return res, fmt.Errorf("failed to load checkout session: %w", err)
	}

	if !env.Verified() {
		return res, failure.Verification("identity must be verified before payment") // nolint:wrapcheck
	}

	if env.State != draftModel.StateConfirming || env.Authorization == nil {
		return res, failure.Validation("payment is not ready to confirm") // nolint:wrapcheck
	}

	result, err := s.gateway.ConfirmAuthorization(ctx, *env.Authorization, req.ToInstrument())
	if err != nil {
		// Draft, pricing and authorization stay intact for a retry; no
		// charge occurred.
		log.Error().Err(err).Str("session", sessionID).Msg("payment confirmation failed")

		return res, failure.Payment("the payment could not be completed, please check your details and try again") // nolint:wrapcheck
	}

	if result.Status != paygate.ConfirmStatusSucceeded {
		return res, failure.Payment(fmt.Sprintf("the payment was declined: %s", result.Reason)) // nolint:wrapcheck
	}

	env.PaymentReference = env.Authorization.Reference
	env.State = draftModel.StateFinalizing
	s.persist(ctx, &env)

	booking, err := s.finalizer.Finalize(ctx, *env.User, env)
	if err != nil {
		// Payment is captured. The reconciliation failure propagates as-is
		// and must never trigger a fresh payment.
		return res, err
	}

	done := draftModel.Envelope{
		SessionID: sessionID,
		State:     draftModel.StateDone,
		Draft:     env.Draft,
		Pricing:   env.Pricing,
		User:      env.User,
		BookingID: booking.ID,
	}
	s.persist(ctx, &done)

	res.FromEnvelope(done)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, sessionID string) (res dto.StatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	env, err := s.store.Load(ctx, sessionID)
	if err != nil {
		if err == store.ErrNotFound {
			return res, failure.NotFound("checkout session not found") // nolint:wrapcheck
		}

		return res, fmt.Errorf("failed to load checkout session: %w", err)
	}

	if env.State == draftModel.StateFinalizing || env.State == draftModel.StateDone {
		return res, failure.Validation("this checkout can no longer be cancelled") // nolint:wrapcheck
	}

	// In-flight verification and authorization are dropped; the draft (and a
	// verified identity) are kept so the user can resume later.
	env.Verification = nil
	env.Authorization = nil
	env.State = draftModel.StateDrafting
	s.persist(ctx, &env)

	res.FromEnvelope(env)

	return res, nil
}

func (s *serviceImpl) Abandon(ctx context.Context, sessionID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Abandon")
	defer scope.End()
	defer scope.TraceIfError(err)

	env, err := s.store.Load(ctx, sessionID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil
		}

		return fmt.Errorf("failed to load checkout session: %w", err)
	}

	if env.Draft.Email != constant.Empty {
		if err := s.store.DropEmail(ctx, env.Draft.Email); err != nil {
			log.Error().Err(err).Str("session", sessionID).Msg("failed to drop email index")
		}
	}

	if err = s.store.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to clear checkout session: %w", err)
	}

	return nil
}

// bindUser attaches the authenticated identity to the session, upserts the
// profile once, and moves on to payment authorization. Callers must hold the
// authorize claim.
func (s *serviceImpl) bindUser(ctx context.Context, env *draftModel.Envelope, user draftModel.UserRef) error {
	env.User = &user
	env.Verification = nil

	fields := map[string]string{}
	if env.Draft.LeadName != constant.Empty {
		fields["name"] = env.Draft.LeadName
	}

	if env.Draft.Phone != constant.Empty {
		fields["phone"] = env.Draft.Phone
	}

	if env.Draft.Country != constant.Empty {
		fields["country"] = env.Draft.Country
	}

	if len(fields) > 0 {
		if err := s.identity.UpsertProfile(ctx, user.ID, fields); err != nil {
			log.Error().Err(err).Str("session", env.SessionID).Msg("failed to upsert profile")
		}
	}

	return s.advanceToAuthorization(ctx, env)
}

// advanceToAuthorization reprices the draft and requests a fresh gateway
// authorization for the amount due. Verification must already have happened;
// calling this without a bound user is a programming error.
func (s *serviceImpl) advanceToAuthorization(ctx context.Context, env *draftModel.Envelope) error {
	if !env.Verified() {
		return fmt.Errorf("authorization requested before verification for session %s", env.SessionID)
	}

	env.State = draftModel.StateAuthorizing

	breakdown, err := s.reprice(ctx, env.Draft)
	if err != nil {
		s.persist(ctx, env)

		return err
	}

	env.Pricing = &breakdown

	auth, err := s.gateway.CreateAuthorization(ctx, breakdown.AmountDue(env.Draft.PaymentPlan), breakdown.Currency, paygate.PayerInfo{
		Email: env.Draft.Email,
		Name:  env.Draft.LeadName,
	})
	if err != nil {
		log.Error().Err(err).Str("session", env.SessionID).Msg("failed to create payment authorization")
		s.persist(ctx, env)

		return failure.Payment("could not start the payment, please try again") // nolint:wrapcheck
	}

	env.Authorization = &auth
	env.State = draftModel.StateConfirming
	s.persist(ctx, env)

	return nil
}

func (s *serviceImpl) reprice(ctx context.Context, draft draftModel.Draft) (pricing.Breakdown, error) {
	tour, addons, err := s.tours.Catalog(ctx, draft.TourID, draft.AddOnCodes)
	if err != nil {
		return pricing.Breakdown{}, err
	}

	surcharges := make([]int64, len(addons))
	for i, addon := range addons {
		surcharges[i] = addon.SurchargeCents
	}

	return pricing.Calculate(pricing.Input{
		TravelerCount:         draft.TravelerCount,
		PricePerTravelerCents: tour.PricePerTravelerCents,
		PermitFeePerPaxCents:  tour.PermitFeeCents,
		AddOnSurchargeCents:   surcharges,
		DiscountCents:         tour.DiscountCents,
		TaxRateBps:            s.cfg.Checkout.TaxRateBps,
		DepositBps:            s.cfg.Checkout.DepositBps,
		Currency:              s.cfg.Checkout.Currency,
	}), nil
}

// persist writes the whole envelope. Failure is an accepted degradation: the
// flow continues in memory and only resumability is lost.
func (s *serviceImpl) persist(ctx context.Context, env *draftModel.Envelope) {
	if err := s.store.Save(ctx, *env); err != nil {
		log.Warn().Err(err).Str("session", env.SessionID).Msg("envelope write failed, continuing without persistence")
	}
}

// resumable reports whether a status read should fast-forward the session to
// payment authorization.
func (s *serviceImpl) resumable(env draftModel.Envelope) bool {
	if !env.Verified() || env.Authorization != nil {
		return false
	}

	switch env.State {
	case draftModel.StateAuthorizing:
		return true
	case draftModel.StateDrafting, draftModel.StateSubmitting, draftModel.StateVerifying:
		return len(validateForSubmit(env.Draft, derefPricing(env.Pricing))) == 0
	default:
		return false
	}
}

func derefPricing(breakdown *pricing.Breakdown) pricing.Breakdown {
	if breakdown == nil {
		return pricing.Breakdown{}
	}

	return *breakdown
}

func validateForSubmit(draft draftModel.Draft, breakdown pricing.Breakdown) []failure.FieldError {
	var fields []failure.FieldError

	if draft.TourID == constant.Empty {
		fields = append(fields, failure.FieldError{Field: "tour_id", Message: "a tour must be selected"})
	}

	// The missing date gets its own field error so the client can open and
	// scroll to the date picker.
	if draft.StartDate == constant.Empty {
		fields = append(fields, failure.FieldError{Field: "start_date", Message: "a travel date must be chosen"})
	}

	if draft.TravelerCount < 1 {
		fields = append(fields, failure.FieldError{Field: "traveler_count", Message: "at least one traveler is required"})
	}

	if len(draft.Travelers) != draft.TravelerCount {
		fields = append(fields, failure.FieldError{Field: "travelers", Message: "details are required for every traveler"})
	}

	for i, traveler := range draft.Travelers {
		if traveler.FullName == constant.Empty {
			fields = append(fields, failure.FieldError{Field: fmt.Sprintf("travelers[%d].full_name", i), Message: "traveler name is required"})
		}
	}

	if draft.LeadName == constant.Empty {
		fields = append(fields, failure.FieldError{Field: "lead_name", Message: "the lead traveler name is required"})
	}

	if draft.Email == constant.Empty {
		fields = append(fields, failure.FieldError{Field: "email", Message: "an email address is required"})
	}

	if draft.Phone == constant.Empty {
		fields = append(fields, failure.FieldError{Field: "phone", Message: "a phone number is required"})
	}

	if !draft.TermsAccepted {
		fields = append(fields, failure.FieldError{Field: "terms_accepted", Message: "the terms and conditions must be accepted"})
	}

	if draft.PaymentPlan == pricing.PlanPartial {
		if breakdown.PartialCents <= 0 || breakdown.PartialCents > breakdown.TotalCents {
			fields = append(fields, failure.FieldError{Field: "payment_plan", Message: "the deposit amount is not available for this booking"})
		}
	}

	return fields
}
