package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"trek/config"
	"trek/infras/authgate"
	"trek/infras/jwt"
	"trek/infras/otel/mocks"
	"trek/infras/paygate"
	paygateMocks "trek/infras/paygate/mocks"
	bookingMocks "trek/internal/domains/booking/mocks"
	bookingModel "trek/internal/domains/booking/model"
	"trek/internal/domains/checkout/model/dto"
	"trek/internal/domains/checkout/service"
	draftModel "trek/internal/domains/draft/model"
	"trek/internal/domains/draft/store"
	identityMocks "trek/internal/domains/identity/mocks"
	identityModel "trek/internal/domains/identity/model"
	"trek/internal/domains/pricing"
	tourMocks "trek/internal/domains/tour/mocks"
	tourModel "trek/internal/domains/tour/model"
	busMocks "trek/shared/bus/mocks"
	"trek/shared/failure"
	"trek/shared/timezone"
)

type checkoutDeps struct {
	store     *store.MemoryStore
	tours     *tourMocks.MockTourService
	identity  *identityMocks.MockIdentity
	gateway   *paygateMocks.MockGateway
	finalizer *bookingMocks.MockFinalizer
	bus       *busMocks.MockBus
	svc       service.Checkout
}

func newCheckout(t *testing.T) checkoutDeps {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	cfg := &config.Config{}
	cfg.Checkout.Currency = "USD"
	cfg.Checkout.TaxRateBps = 1000
	cfg.Checkout.DepositBps = 2000
	cfg.Checkout.AuthenticatedChannel = "identity.authenticated"

	deps := checkoutDeps{
		store:     store.NewMemoryStore(),
		tours:     tourMocks.NewMockTourService(ctrl),
		identity:  identityMocks.NewMockIdentity(ctrl),
		gateway:   paygateMocks.NewMockGateway(ctrl),
		finalizer: bookingMocks.NewMockFinalizer(ctrl),
		bus:       busMocks.NewMockBus(ctrl),
	}

	deps.svc = service.New(deps.store, deps.tours, deps.identity, deps.gateway, deps.finalizer, deps.bus, cfg, mocks.NewOtel())

	return deps
}

// expectCatalog wires the tour lookup every reprice goes through: two
// travelers at $1200 plus a $350 private room, $50/pax permit fee and a $500
// promo, which prices to a $2585.00 total and $517.00 deposit.
func (d checkoutDeps) expectCatalog() {
	d.tours.EXPECT().
		Catalog(gomock.Any(), "tour-1", []string{"private-room"}).
		Return(
			tourModel.Tour{
				ID:                    "tour-1",
				Name:                  "Annapurna Circuit",
				DurationDays:          12,
				PricePerTravelerCents: 120000,
				PermitFeeCents:        5000,
				DiscountCents:         -50000,
			},
			[]tourModel.TourAddOn{{TourID: "tour-1", Code: "private-room", SurchargeCents: 35000}},
			nil,
		).
		AnyTimes()
}

func draftRequest() dto.UpsertDraftRequest {
	return dto.UpsertDraftRequest{
		TourID:        "tour-1",
		StartDate:     "2026-10-05",
		TravelerCount: 2,
		Travelers: []dto.TravelerRequest{
			{FullName: "Jane Doe", Gender: "female", DateOfBirth: "1990-04-12"},
			{FullName: "John Doe", Gender: "male", DateOfBirth: "1988-09-30"},
		},
		AddOnCodes:    []string{"private-room"},
		PaymentPlan:   pricing.PlanFull,
		LeadName:      "Jane Doe",
		Email:         "jane@example.com",
		Phone:         "+9779800000000",
		Country:       "Nepal",
		TermsAccepted: true,
	}
}

func TestCheckout_HappyPath(t *testing.T) {
	deps := newCheckout(t)
	deps.expectCatalog()
	ctx := context.Background()

	res, err := deps.svc.UpsertDraft(ctx, "sess-1", draftRequest())
	require.NoError(t, err)
	assert.Equal(t, draftModel.StateDrafting, res.State)
	require.NotNil(t, res.Pricing)
	assert.Equal(t, int64(258500), res.Pricing.TotalCents)

	attempt := draftModel.VerificationAttempt{
		Email:       "jane@example.com",
		Status:      draftModel.VerificationPending,
		Digits:      6,
		ResendAfter: timezone.Now(),
	}

	deps.identity.EXPECT().
		Classify(gomock.Any(), "jane@example.com", "Jane Doe").
		Return(identityModel.ClassificationNew)
	deps.identity.EXPECT().
		Issue(gomock.Any(), "jane@example.com", gomock.Any()).
		Return(attempt, nil)

	res, err = deps.svc.Submit(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, draftModel.StateVerifying, res.State)
	require.NotNil(t, res.Verification)
	assert.Equal(t, 6, res.Verification.Digits)

	sessionID, err := deps.store.SessionByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", sessionID)

	user := authgate.AuthenticatedUser{ID: "user-1", Email: "jane@example.com", Name: "Jane Doe"}
	tokens := &jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh"}

	deps.identity.EXPECT().
		Verify(gomock.Any(), gomock.Any(), "482913").
		Return(user, tokens, nil)
	deps.identity.EXPECT().
		UpsertProfile(gomock.Any(), "user-1", gomock.Any()).
		Return(nil)
	deps.gateway.EXPECT().
		CreateAuthorization(gomock.Any(), int64(258500), "USD", paygate.PayerInfo{Email: "jane@example.com", Name: "Jane Doe"}).
		Return(paygate.Authorization{Reference: "pay-ref-1", ClientSecret: "secret", AmountCents: 258500, Currency: "USD"}, nil).
		Times(1)

	verified, err := deps.svc.Verify(ctx, "sess-1", dto.VerifyRequest{Code: "482913"})
	require.NoError(t, err)
	assert.Equal(t, draftModel.StateConfirming, verified.State)
	assert.Equal(t, tokens, verified.Tokens)
	require.NotNil(t, verified.Payment)
	assert.Equal(t, "pay-ref-1", verified.Payment.Reference)
	assert.Equal(t, int64(258500), verified.Payment.AmountCents)

	deps.gateway.EXPECT().
		ConfirmAuthorization(gomock.Any(), gomock.Any(), paygate.Instrument{Method: "card", Token: "tok_visa"}).
		Return(paygate.ConfirmResult{Status: paygate.ConfirmStatusSucceeded}, nil)
	deps.finalizer.EXPECT().
		Finalize(gomock.Any(), draftModel.UserRef{ID: "user-1", Email: "jane@example.com", Name: "Jane Doe"}, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ draftModel.UserRef, env draftModel.Envelope) (bookingModel.Booking, error) {
			assert.Equal(t, draftModel.StateFinalizing, env.State)
			assert.Equal(t, "pay-ref-1", env.PaymentReference)

			return bookingModel.Booking{ID: "booking-1"}, nil
		})

	res, err = deps.svc.Confirm(ctx, "sess-1", dto.ConfirmRequest{Method: "card", Token: "tok_visa"})
	require.NoError(t, err)
	assert.Equal(t, draftModel.StateDone, res.State)
	assert.Equal(t, "booking-1", res.BookingID)

	env, err := deps.store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, draftModel.StateDone, env.State)
	assert.Nil(t, env.Authorization)
}

func TestCheckout_AmbientSignalAuthorizesOnce(t *testing.T) {
	deps := newCheckout(t)
	deps.expectCatalog()
	ctx := context.Background()

	env := draftModel.Envelope{
		SessionID: "sess-1",
		State:     draftModel.StateVerifying,
		Draft:     draftRequest().ToDraft(),
		Verification: &draftModel.VerificationAttempt{
			Email:  "jane@example.com",
			Status: draftModel.VerificationPending,
			Digits: 6,
		},
	}
	require.NoError(t, deps.store.Save(ctx, env))
	require.NoError(t, deps.store.IndexEmail(ctx, "jane@example.com", "sess-1"))

	deps.identity.EXPECT().
		UpsertProfile(gomock.Any(), "user-1", gomock.Any()).
		Return(nil).
		Times(1)
	deps.gateway.EXPECT().
		CreateAuthorization(gomock.Any(), int64(258500), "USD", gomock.Any()).
		Return(paygate.Authorization{Reference: "pay-ref-1", AmountCents: 258500, Currency: "USD"}, nil).
		Times(1)

	payload, err := json.Marshal(authgate.AuthenticatedEvent{UserID: "user-1", Email: "jane@example.com", Name: "Jane Doe"})
	require.NoError(t, err)

	deps.svc.HandleAuthenticated(ctx, payload)
	deps.svc.HandleAuthenticated(ctx, payload)

	got, err := deps.store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, draftModel.StateConfirming, got.State)
	require.NotNil(t, got.User)
	assert.Equal(t, "user-1", got.User.ID)
	assert.Nil(t, got.Verification)
}

func TestCheckout_StaleSignalAfterCancelIgnored(t *testing.T) {
	deps := newCheckout(t)
	ctx := context.Background()

	env := draftModel.Envelope{
		SessionID: "sess-1",
		State:     draftModel.StateDrafting,
		Draft:     draftRequest().ToDraft(),
	}
	require.NoError(t, deps.store.Save(ctx, env))
	require.NoError(t, deps.store.IndexEmail(ctx, "jane@example.com", "sess-1"))

	payload, err := json.Marshal(authgate.AuthenticatedEvent{UserID: "user-1", Email: "jane@example.com", Name: "Jane Doe"})
	require.NoError(t, err)

	deps.svc.HandleAuthenticated(ctx, payload)

	got, err := deps.store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, draftModel.StateDrafting, got.State)
	assert.Nil(t, got.User)
}

func TestCheckout_DeclineKeepsDraft(t *testing.T) {
	deps := newCheckout(t)
	ctx := context.Background()

	breakdown := pricing.Calculate(pricing.Input{
		TravelerCount:         2,
		PricePerTravelerCents: 120000,
		PermitFeePerPaxCents:  5000,
		AddOnSurchargeCents:   []int64{35000},
		DiscountCents:         -50000,
		TaxRateBps:            1000,
		DepositBps:            2000,
		Currency:              "USD",
	})

	env := draftModel.Envelope{
		SessionID:     "sess-1",
		State:         draftModel.StateConfirming,
		Draft:         draftRequest().ToDraft(),
		Pricing:       &breakdown,
		User:          &draftModel.UserRef{ID: "user-1", Email: "jane@example.com", Name: "Jane Doe"},
		Authorization: &paygate.Authorization{Reference: "pay-ref-1", AmountCents: 258500, Currency: "USD"},
	}
	require.NoError(t, deps.store.Save(ctx, env))

	deps.gateway.EXPECT().
		ConfirmAuthorization(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(paygate.ConfirmResult{Status: paygate.ConfirmStatusFailed, Reason: "card_declined"}, nil)

	_, err := deps.svc.Confirm(ctx, "sess-1", dto.ConfirmRequest{Method: "card", Token: "tok_declined"})
	require.Error(t, err)
	assert.True(t, failure.IsKind(err, failure.KindPayment))

	got, err := deps.store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, draftModel.StateConfirming, got.State)
	require.NotNil(t, got.Authorization)
	assert.Equal(t, "pay-ref-1", got.Authorization.Reference)
}

func TestCheckout_ReconcileFailurePropagates(t *testing.T) {
	deps := newCheckout(t)
	ctx := context.Background()

	env := draftModel.Envelope{
		SessionID:     "sess-1",
		State:         draftModel.StateConfirming,
		Draft:         draftRequest().ToDraft(),
		User:          &draftModel.UserRef{ID: "user-1", Email: "jane@example.com"},
		Authorization: &paygate.Authorization{Reference: "pay-ref-1", AmountCents: 258500, Currency: "USD"},
	}
	require.NoError(t, deps.store.Save(ctx, env))

	deps.gateway.EXPECT().
		ConfirmAuthorization(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(paygate.ConfirmResult{Status: paygate.ConfirmStatusSucceeded}, nil)
	deps.finalizer.EXPECT().
		Finalize(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(bookingModel.Booking{}, failure.Reconcile("booking write failed"))

	_, err := deps.svc.Confirm(ctx, "sess-1", dto.ConfirmRequest{Method: "card", Token: "tok_visa"})
	require.Error(t, err)
	assert.True(t, failure.IsKind(err, failure.KindReconcile))
}

func TestCheckout_EmailPinnedWhileCodePending(t *testing.T) {
	deps := newCheckout(t)
	ctx := context.Background()

	env := draftModel.Envelope{
		SessionID: "sess-1",
		State:     draftModel.StateVerifying,
		Draft:     draftRequest().ToDraft(),
		Verification: &draftModel.VerificationAttempt{
			Email:  "jane@example.com",
			Status: draftModel.VerificationPending,
		},
	}
	require.NoError(t, deps.store.Save(ctx, env))

	req := draftRequest()
	req.Email = "other@example.com"

	_, err := deps.svc.UpsertDraft(ctx, "sess-1", req)
	require.Error(t, err)
	assert.True(t, failure.IsKind(err, failure.KindValidation))
}

func TestCheckout_RepriceInvalidatesAuthorization(t *testing.T) {
	deps := newCheckout(t)
	ctx := context.Background()

	env := draftModel.Envelope{
		SessionID:     "sess-1",
		State:         draftModel.StateConfirming,
		Draft:         draftRequest().ToDraft(),
		User:          &draftModel.UserRef{ID: "user-1", Email: "jane@example.com"},
		Authorization: &paygate.Authorization{Reference: "pay-ref-1", AmountCents: 258500, Currency: "USD"},
	}
	require.NoError(t, deps.store.Save(ctx, env))

	req := draftRequest()
	req.TravelerCount = 3
	req.Travelers = append(req.Travelers, dto.TravelerRequest{FullName: "Baby Doe"})

	deps.tours.EXPECT().
		Catalog(gomock.Any(), "tour-1", []string{"private-room"}).
		Return(
			tourModel.Tour{ID: "tour-1", PricePerTravelerCents: 120000, PermitFeeCents: 5000, DiscountCents: -50000},
			[]tourModel.TourAddOn{{TourID: "tour-1", Code: "private-room", SurchargeCents: 35000}},
			nil,
		)

	res, err := deps.svc.UpsertDraft(ctx, "sess-1", req)
	require.NoError(t, err)
	assert.Equal(t, draftModel.StateDrafting, res.State)
	assert.Nil(t, res.Payment)

	got, err := deps.store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Nil(t, got.Authorization)
}

func TestCheckout_SubmitValidation(t *testing.T) {
	deps := newCheckout(t)
	deps.expectCatalog()
	ctx := context.Background()

	req := draftRequest()
	req.StartDate = ""
	req.TermsAccepted = false

	_, err := deps.svc.UpsertDraft(ctx, "sess-1", req)
	require.NoError(t, err)

	_, err = deps.svc.Submit(ctx, "sess-1")
	require.Error(t, err)
	assert.True(t, failure.IsKind(err, failure.KindValidation))

	var fail *failure.Failure
	require.ErrorAs(t, err, &fail)

	var fields []string
	for _, field := range fail.Fields {
		fields = append(fields, field.Field)
	}

	assert.Contains(t, fields, "start_date")
	assert.Contains(t, fields, "terms_accepted")

	got, err := deps.store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, draftModel.StateDrafting, got.State)
}

func TestCheckout_IdentityMismatchBlocks(t *testing.T) {
	deps := newCheckout(t)
	deps.expectCatalog()
	ctx := context.Background()

	_, err := deps.svc.UpsertDraft(ctx, "sess-1", draftRequest())
	require.NoError(t, err)

	deps.identity.EXPECT().
		Classify(gomock.Any(), "jane@example.com", "Jane Doe").
		Return(identityModel.ClassificationExistingMismatch)

	_, err = deps.svc.Submit(ctx, "sess-1")
	require.Error(t, err)
	assert.True(t, failure.IsKind(err, failure.KindIdentityMismatch))

	got, err := deps.store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, draftModel.StateIdentityBlocked, got.State)
}

func TestCheckout_ResendWithoutVerification(t *testing.T) {
	deps := newCheckout(t)
	ctx := context.Background()

	env := draftModel.Envelope{SessionID: "sess-1", State: draftModel.StateDrafting, Draft: draftRequest().ToDraft()}
	require.NoError(t, deps.store.Save(ctx, env))

	_, err := deps.svc.Resend(ctx, "sess-1")
	require.Error(t, err)
	assert.True(t, failure.IsKind(err, failure.KindVerification))
}

func TestCheckout_StatusResumesVerifiedSession(t *testing.T) {
	deps := newCheckout(t)
	deps.expectCatalog()
	ctx := context.Background()

	env := draftModel.Envelope{
		SessionID: "sess-1",
		State:     draftModel.StateAuthorizing,
		Draft:     draftRequest().ToDraft(),
		User:      &draftModel.UserRef{ID: "user-1", Email: "jane@example.com", Name: "Jane Doe"},
	}
	require.NoError(t, deps.store.Save(ctx, env))

	deps.gateway.EXPECT().
		CreateAuthorization(gomock.Any(), int64(258500), "USD", gomock.Any()).
		Return(paygate.Authorization{Reference: "pay-ref-2", AmountCents: 258500, Currency: "USD"}, nil).
		Times(1)

	res, err := deps.svc.Status(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, draftModel.StateConfirming, res.State)
	require.NotNil(t, res.Payment)
	assert.Equal(t, "pay-ref-2", res.Payment.Reference)
}

func TestCheckout_CancelKeepsDraftAndIdentity(t *testing.T) {
	deps := newCheckout(t)
	ctx := context.Background()

	env := draftModel.Envelope{
		SessionID:     "sess-1",
		State:         draftModel.StateConfirming,
		Draft:         draftRequest().ToDraft(),
		User:          &draftModel.UserRef{ID: "user-1", Email: "jane@example.com"},
		Authorization: &paygate.Authorization{Reference: "pay-ref-1", AmountCents: 258500},
	}
	require.NoError(t, deps.store.Save(ctx, env))

	res, err := deps.svc.Cancel(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, draftModel.StateDrafting, res.State)
	assert.Nil(t, res.Payment)

	got, err := deps.store.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Nil(t, got.Authorization)
	assert.Nil(t, got.Verification)
	require.NotNil(t, got.User)
	assert.Equal(t, "jane@example.com", got.Draft.Email)
}

func TestCheckout_AbandonClearsSlotAndIndex(t *testing.T) {
	deps := newCheckout(t)
	ctx := context.Background()

	env := draftModel.Envelope{SessionID: "sess-1", State: draftModel.StateDrafting, Draft: draftRequest().ToDraft()}
	require.NoError(t, deps.store.Save(ctx, env))
	require.NoError(t, deps.store.IndexEmail(ctx, "jane@example.com", "sess-1"))

	require.NoError(t, deps.svc.Abandon(ctx, "sess-1"))

	_, err := deps.store.Load(ctx, "sess-1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = deps.store.SessionByEmail(ctx, "jane@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCheckout_SaveFailureIsNonFatal(t *testing.T) {
	deps := newCheckout(t)
	deps.expectCatalog()
	ctx := context.Background()

	deps.store.SaveErr = errors.New("redis: connection refused")

	res, err := deps.svc.UpsertDraft(ctx, "sess-1", draftRequest())
	require.NoError(t, err)
	assert.Equal(t, draftModel.StateDrafting, res.State)
	require.NotNil(t, res.Pricing)
	assert.Equal(t, int64(258500), res.Pricing.TotalCents)
}
