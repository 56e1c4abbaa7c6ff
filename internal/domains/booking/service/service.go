package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"
	"trek/config"
	"trek/infras/kafka"
	"trek/infras/otel"
	"trek/internal/domains/booking/model"
	"trek/internal/domains/booking/model/dto"
	"trek/internal/domains/booking/repository"
	draftModel "trek/internal/domains/draft/model"
	"trek/internal/domains/draft/store"
	"trek/internal/domains/pricing"
	tourModel "trek/internal/domains/tour/model"
	tourRepo "trek/internal/domains/tour/repository"
	"trek/shared"
	"trek/shared/cache"
	"trek/shared/constant"
	gDto "trek/shared/dto"
	"trek/shared/failure"
	gModel "trek/shared/model"
	"trek/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking = "booking:get"

	hoursPerDay = 24
)

// Finalizer finalizes confirmed checkouts and serves the confirmation
// read-back. Finalize is only ever called after the gateway captured the
// payment, so every failure inside it is a reconciliation case, never a
// retryable payment.
type Finalizer interface {
	Finalize(ctx context.Context, user draftModel.UserRef, env draftModel.Envelope) (model.Booking, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo         repository.Booking
	travelerRepo repository.Traveler
	tourRepo     tourRepo.Tour
	draftStore   store.Store
	kafka        kafka.Client
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	travelerRepo repository.Traveler,
	tourRepo tourRepo.Tour,
	draftStore store.Store,
	kafkaClient kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Finalizer {
	return &serviceImpl{
		repo:         repo,
		travelerRepo: travelerRepo,
		tourRepo:     tourRepo,
		draftStore:   draftStore,
		kafka:        kafkaClient,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Finalize(ctx context.Context, user draftModel.UserRef, env draftModel.Envelope) (booking model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Finalize")
	defer scope.End()
	defer scope.TraceIfError(err)

	if env.Pricing == nil || env.PaymentReference == constant.Empty {
		return booking, fmt.Errorf("finalize called without pricing or payment reference for session %s", env.SessionID)
	}

	booking, travelers, err := s.buildRecords(ctx, user, env)
	if err != nil {
		return booking, s.reconcile(ctx, user, env, err)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin booking transaction")

		return booking, s.reconcile(ctx, user, env, err)
	}

	if err = s.repo.InsertTx(ctx, tx, booking); err != nil {
		_ = tx.Rollback()

		return booking, s.reconcile(ctx, user, env, err)
	}

	if err = s.travelerRepo.InsertBulkTx(ctx, tx, travelers); err != nil {
		_ = tx.Rollback()

		return booking, s.reconcile(ctx, user, env, err)
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit booking transaction")

		return booking, s.reconcile(ctx, user, env, err)
	}

	if err := s.draftStore.Clear(ctx, env.SessionID); err != nil {
		log.Error().Err(err).Str("session", env.SessionID).Msg("failed to clear draft after finalize")
	}

	if err := s.draftStore.DropEmail(ctx, env.Draft.Email); err != nil {
		log.Error().Err(err).Str("session", env.SessionID).Msg("failed to drop email index after finalize")
	}

	go func() {
		c := context.WithoutCancel(ctx)

		event := model.FinalizedEvent{
			Type:             model.EventBookingFinalized,
			BookingID:        booking.ID,
			SessionID:        booking.SessionID,
			UserID:           booking.UserID,
			TourID:           booking.TourID,
			PaymentReference: booking.PaymentReference,
			AmountPaidCents:  booking.AmountPaidCents,
			Currency:         booking.Currency,
		}

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.BookingEvents, kafka.Message{Key: booking.ID, Value: event}); err != nil {
			log.Error().Err(err).Str("booking", booking.ID).Msg("failed to publish booking finalized event")
		}
	}()

	return booking, nil
}

func (s *serviceImpl) buildRecords(ctx context.Context, user draftModel.UserRef, env draftModel.Envelope) (model.Booking, []model.Traveler, error) {
	tour, err := s.tourRepo.Get(ctx, shared.FilterByID(env.Draft.TourID, tourModel.FieldID, tourModel.TableName))
	if err != nil {
		return model.Booking{}, nil, fmt.Errorf("failed to get tour for finalize: %w", err)
	}

	startDate, err := time.Parse(constant.DateOnlyFormat, env.Draft.StartDate)
	if err != nil {
		return model.Booking{}, nil, fmt.Errorf("failed to parse draft start date: %w", err)
	}

	paymentStatus := model.PaymentStatusPaidInFull
	if env.Draft.PaymentPlan == pricing.PlanPartial {
		paymentStatus = model.PaymentStatusDepositPaid
	}

	now := timezone.Now()
	metadata := gModel.Metadata{
		CreatedAt:  now,
		ModifiedAt: now,
		CreatedBy:  user.ID,
		ModifiedBy: user.ID,
	}

	booking := model.Booking{
		ID:               uuid.NewString(),
		UserID:           user.ID,
		TourID:           env.Draft.TourID,
		SessionID:        env.SessionID,
		StartDate:        startDate,
		EndDate:          startDate.Add(time.Duration(tour.DurationDays) * hoursPerDay * time.Hour),
		TravelerCount:    env.Draft.TravelerCount,
		PaymentPlan:      env.Draft.PaymentPlan,
		PaymentReference: env.PaymentReference,
		TotalCents:       env.Pricing.TotalCents,
		AmountPaidCents:  env.Pricing.AmountDue(env.Draft.PaymentPlan),
		Currency:         env.Pricing.Currency,
		Status:           model.StatusConfirmed,
		PaymentStatus:    paymentStatus,
		Metadata:         metadata,
	}

	travelers := make([]model.Traveler, len(env.Draft.Travelers))
	for i, traveler := range env.Draft.Travelers {
		travelers[i] = model.Traveler{
			ID:          uuid.NewString(),
			BookingID:   booking.ID,
			Position:    i + 1,
			FullName:    traveler.FullName,
			Gender:      traveler.Gender,
			DateOfBirth: traveler.DateOfBirth,
			Metadata:    metadata,
		}
	}

	return booking, travelers, nil
}

// reconcile records a captured payment whose booking write failed. The event
// goes out synchronously so the reference is on the wire before the error
// reaches the caller.
func (s *serviceImpl) reconcile(ctx context.Context, user draftModel.UserRef, env draftModel.Envelope, cause error) error {
	log.Error().Err(cause).
		Str("session", env.SessionID).
		Str("paymentReference", env.PaymentReference).
		Msg("payment captured but booking write failed")

	event := model.ReconciliationEvent{
		Type:             model.EventReconciliation,
		SessionID:        env.SessionID,
		UserID:           user.ID,
		TourID:           env.Draft.TourID,
		PaymentReference: env.PaymentReference,
		AmountPaidCents:  env.Pricing.AmountDue(env.Draft.PaymentPlan),
		Currency:         env.Pricing.Currency,
		Reason:           cause.Error(),
	}

	if err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.Reconciliation, kafka.Message{Key: env.PaymentReference, Value: event}); err != nil {
		log.Error().Err(err).Str("paymentReference", env.PaymentReference).Msg("failed to publish reconciliation event")
	}

	return failure.Reconcile("your payment was received but the booking could not be recorded, our team will reconcile it shortly") // nolint:wrapcheck
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return s.guardOwner(res, userID, role)
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.TravelerFieldBookingID,
				Table:    model.TravelerTableName,
				Value:    id,
				Operator: gDto.FilterOperatorEq,
			},
		},
	}

	travelers, err := s.travelerRepo.GetAll(ctx, gDto.QueryParams{SortBy: "position", SortDir: "ASC"}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get travelers")

		return res, fmt.Errorf("failed to get travelers: %w", err)
	}

	res.FromModel(booking, travelers)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return s.guardOwner(res, userID, role)
}

// guardOwner keeps the confirmation view readable only by the customer who
// owns the booking, or an admin.
func (s *serviceImpl) guardOwner(res dto.BookingResponse, userID, role string) (dto.BookingResponse, error) {
	if res.UserID != userID && role != constant.RoleAdmin {
		return dto.BookingResponse{}, failure.Forbidden("you do not have access to this booking") // nolint:wrapcheck
	}

	return res, nil
}
