package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"trek/config"
	"trek/infras/kafka"
	kafkaMocks "trek/infras/kafka/mocks"
	"trek/infras/otel/mocks"
	bookingMocks "trek/internal/domains/booking/mocks"
	"trek/internal/domains/booking/model"
	"trek/internal/domains/booking/service"
	draftModel "trek/internal/domains/draft/model"
	"trek/internal/domains/draft/store"
	"trek/internal/domains/pricing"
	tourMocks "trek/internal/domains/tour/mocks"
	tourModel "trek/internal/domains/tour/model"
	cacheMocks "trek/shared/cache/mocks"
	"trek/shared/constant"
	"trek/shared/failure"
	gModel "trek/shared/model"
)

func newEnvelope() draftModel.Envelope {
	return draftModel.Envelope{
		SessionID: "sess-1",
		State:     draftModel.StateFinalizing,
		Draft: draftModel.Draft{
			TourID:        "tour-1",
			StartDate:     "2026-10-01",
			TravelerCount: 2,
			Travelers: []draftModel.Traveler{
				{FullName: "Jane Doe"},
				{FullName: "John Doe"},
			},
			PaymentPlan: pricing.PlanFull,
			Email:       "jane@example.com",
		},
		Pricing: &pricing.Breakdown{
			SubtotalCents: 235000,
			TaxCents:      23500,
			TotalCents:    258500,
			PartialCents:  51700,
			Currency:      "USD",
		},
		PaymentReference: "pay-ref-1",
	}
}

func TestFinalize_MissingPaymentReference(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := service.New(
		bookingMocks.NewMockBooking(ctrl),
		bookingMocks.NewMockTraveler(ctrl),
		tourMocks.NewMockTour(ctrl),
		store.NewMemoryStore(),
		kafkaMocks.NewMockClient(ctrl),
		&config.Config{},
		cacheMocks.NewMockRedisCache(ctrl),
		mocks.NewOtel(),
	)

	env := newEnvelope()
	env.PaymentReference = ""

	_, err := svc.Finalize(context.Background(), draftModel.UserRef{ID: "user-1"}, env)

	assert.Error(t, err)
	assert.NotEqual(t, failure.KindReconcile, failure.GetKind(err))
}

func TestFinalize_WritesBookingAndClearsDraft(t *testing.T) {
	tests := []struct {
		name              string
		plan              string
		wantPaymentStatus string
		wantAmountPaid    int64
	}{
		{
			name:              "full plan is paid in full",
			plan:              pricing.PlanFull,
			wantPaymentStatus: model.PaymentStatusPaidInFull,
			wantAmountPaid:    258500,
		},
		{
			name:              "partial plan is deposit paid",
			plan:              pricing.PlanPartial,
			wantPaymentStatus: model.PaymentStatusDepositPaid,
			wantAmountPaid:    51700,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			sqlDB, dbMock, err := sqlmock.New()
			if err != nil {
				t.Fatalf("failed to open sqlmock: %v", err)
			}
			defer sqlDB.Close()

			dbMock.ExpectBegin()
			dbMock.ExpectCommit()

			tx, err := sqlx.NewDb(sqlDB, "postgres").Beginx()
			if err != nil {
				t.Fatalf("failed to begin transaction: %v", err)
			}

			mockRepo := bookingMocks.NewMockBooking(ctrl)
			mockTravelerRepo := bookingMocks.NewMockTraveler(ctrl)
			mockTourRepo := tourMocks.NewMockTour(ctrl)
			mockKafka := kafkaMocks.NewMockClient(ctrl)
			draftStore := store.NewMemoryStore()

			cfg := &config.Config{}
			cfg.Kafka.Topics.BookingEvents = "booking.events"

			svc := service.New(mockRepo, mockTravelerRepo, mockTourRepo, draftStore, mockKafka, cfg, cacheMocks.NewMockRedisCache(ctrl), mocks.NewOtel())

			env := newEnvelope()
			env.Draft.PaymentPlan = tt.plan

			if err := draftStore.Save(context.Background(), env); err != nil {
				t.Fatalf("failed to seed draft store: %v", err)
			}

			if err := draftStore.IndexEmail(context.Background(), env.Draft.Email, env.SessionID); err != nil {
				t.Fatalf("failed to index email: %v", err)
			}

			mockTourRepo.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				Return(tourModel.Tour{ID: "tour-1", DurationDays: 5}, nil)

			var inserted model.Booking
			mockRepo.EXPECT().
				BeginTx(gomock.Any()).
				Return(tx, nil)
			mockRepo.EXPECT().
				InsertTx(gomock.Any(), tx, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking model.Booking) error {
					inserted = booking

					return nil
				})

			var insertedTravelers []model.Traveler
			mockTravelerRepo.EXPECT().
				InsertBulkTx(gomock.Any(), tx, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, travelers []model.Traveler) error {
					insertedTravelers = travelers

					return nil
				})

			published := make(chan kafka.Message, 1)
			mockKafka.EXPECT().
				SendMessages(gomock.Any(), "booking.events", gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
					published <- messages[0]

					return nil
				}).
				Times(1)

			booking, err := svc.Finalize(context.Background(), draftModel.UserRef{ID: "user-1"}, env)

			assert.NoError(t, err)
			assert.Equal(t, booking.ID, inserted.ID)
			assert.Equal(t, model.StatusConfirmed, inserted.Status)
			assert.Equal(t, tt.wantPaymentStatus, inserted.PaymentStatus)
			assert.Equal(t, tt.wantAmountPaid, inserted.AmountPaidCents)
			assert.Equal(t, int64(258500), inserted.TotalCents)
			assert.Equal(t, "pay-ref-1", inserted.PaymentReference)
			assert.Equal(t, "user-1", inserted.UserID)
			assert.Equal(t, 5*24*time.Hour, inserted.EndDate.Sub(inserted.StartDate))

			assert.Len(t, insertedTravelers, 2)
			assert.Equal(t, 1, insertedTravelers[0].Position)
			assert.Equal(t, "Jane Doe", insertedTravelers[0].FullName)
			assert.Equal(t, 2, insertedTravelers[1].Position)
			assert.Equal(t, "John Doe", insertedTravelers[1].FullName)
			assert.Equal(t, inserted.ID, insertedTravelers[0].BookingID)

			select {
			case msg := <-published:
				assert.Equal(t, inserted.ID, msg.Key)
			case <-time.After(2 * time.Second):
				t.Fatal("finalized event was not published")
			}

			_, err = draftStore.Load(context.Background(), env.SessionID)
			assert.ErrorIs(t, err, store.ErrNotFound)

			_, err = draftStore.SessionByEmail(context.Background(), env.Draft.Email)
			assert.ErrorIs(t, err, store.ErrNotFound)

			assert.NoError(t, dbMock.ExpectationsWereMet())
		})
	}
}

func TestFinalize_WriteFailureEmitsReconciliation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockTravelerRepo := bookingMocks.NewMockTraveler(ctrl)
	mockTourRepo := tourMocks.NewMockTour(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	draftStore := store.NewMemoryStore()

	cfg := &config.Config{}
	cfg.Kafka.Topics.Reconciliation = "checkout.reconciliation"

	svc := service.New(mockRepo, mockTravelerRepo, mockTourRepo, draftStore, mockKafka, cfg, cacheMocks.NewMockRedisCache(ctrl), mocks.NewOtel())

	mockTourRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(tourModel.Tour{ID: "tour-1", DurationDays: 5}, nil)

	mockRepo.EXPECT().
		BeginTx(gomock.Any()).
		Return(nil, errors.New("connection reset"))

	mockKafka.EXPECT().
		SendMessages(gomock.Any(), "checkout.reconciliation", gomock.Any()).
		Return(nil).
		Times(1)

	_, err := svc.Finalize(context.Background(), draftModel.UserRef{ID: "user-1"}, newEnvelope())

	assert.Error(t, err)
	assert.True(t, failure.IsKind(err, failure.KindReconcile))
}

func TestFinalize_TourLookupFailureEmitsReconciliation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockTourRepo := tourMocks.NewMockTour(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.Topics.Reconciliation = "checkout.reconciliation"

	svc := service.New(mockRepo, bookingMocks.NewMockTraveler(ctrl), mockTourRepo, store.NewMemoryStore(), mockKafka, cfg, cacheMocks.NewMockRedisCache(ctrl), mocks.NewOtel())

	mockTourRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(tourModel.Tour{}, errors.New("query timeout"))

	mockKafka.EXPECT().
		SendMessages(gomock.Any(), "checkout.reconciliation", gomock.Any()).
		Return(nil).
		Times(1)

	_, err := svc.Finalize(context.Background(), draftModel.UserRef{ID: "user-1"}, newEnvelope())

	assert.Error(t, err)
	assert.True(t, failure.IsKind(err, failure.KindReconcile))
}

func TestGet_OwnerGuard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockTravelerRepo := bookingMocks.NewMockTraveler(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(mockRepo, mockTravelerRepo, tourMocks.NewMockTour(ctrl), store.NewMemoryStore(), kafkaMocks.NewMockClient(ctrl), &config.Config{}, mockCache, mocks.NewOtel())

	booking := model.Booking{
		ID:            "booking-1",
		UserID:        "user-1",
		TourID:        "tour-1",
		Status:        model.StatusConfirmed,
		PaymentStatus: model.PaymentStatusPaidInFull,
		Metadata:      gModel.Metadata{CreatedBy: "user-1"},
	}

	tests := []struct {
		name      string
		userID    string
		role      string
		setupMock func()
		wantCode  int
		wantErr   bool
	}{
		{
			name:   "owner reads their booking",
			userID: "user-1",
			role:   constant.RoleCustomer,
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
				mockTravelerRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Traveler{{FullName: "Jane Doe", Position: 1}}, nil)
				mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantErr: false,
		},
		{
			name:   "stranger is forbidden",
			userID: "user-2",
			role:   constant.RoleCustomer,
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
				mockTravelerRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantCode: 403,
			wantErr:  true,
		},
		{
			name:   "admin reads any booking",
			userID: "admin-1",
			role:   constant.RoleAdmin,
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
				mockTravelerRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantErr: false,
		},
		{
			name:   "missing booking is not found",
			userID: "user-1",
			role:   constant.RoleCustomer,
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantCode: 404,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, tt.userID)
			ctx = context.WithValue(ctx, constant.ContextKeyUserRole, tt.role)

			res, err := svc.Get(ctx, "booking-1")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "booking-1", res.ID)
		})
	}
}
