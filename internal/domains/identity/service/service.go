package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"
	"trek/config"
	"trek/infras/authgate"
	"trek/infras/jwt"
	"trek/infras/otel"
	draftModel "trek/internal/domains/draft/model"
	"trek/internal/domains/identity/model"
	"trek/shared/constant"
	"trek/shared/failure"
	"trek/shared/timezone"

	"github.com/rs/zerolog/log"
)

// Identity resolves emails against the provider's profile store and drives
// the one-time credential flow. All provider errors are translated into the
// verification failure kind here; callers never see a raw transport error.
type Identity interface {
	Classify(ctx context.Context, email, providedName string) model.Classification
	Issue(ctx context.Context, email string, metadata map[string]string) (draftModel.VerificationAttempt, error)
	Resend(ctx context.Context, attempt draftModel.VerificationAttempt) (draftModel.VerificationAttempt, error)
	Verify(ctx context.Context, attempt draftModel.VerificationAttempt, code string) (authgate.AuthenticatedUser, *jwt.TokenPair, error)
	UpsertProfile(ctx context.Context, userID string, fields map[string]string) error
}

type serviceImpl struct {
	provider authgate.Provider
	jwt      jwt.JWT
	cfg      *config.Config
	otel     otel.Otel
}

func New(provider authgate.Provider, jwtSvc jwt.JWT, cfg *config.Config, otel otel.Otel) Identity {
	return &serviceImpl{
		provider: provider,
		jwt:      jwtSvc,
		cfg:      cfg,
		otel:     otel,
	}
}

// Classify is read-only and side-effect free. A failing lookup is tolerated
// as NEW rather than blocking checkout, since classification is UX guidance,
// not a security boundary.
func (s *serviceImpl) Classify(ctx context.Context, email, providedName string) model.Classification {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Classify")
	defer scope.End()

	profile, err := s.provider.LookupProfile(ctx, model.Normalize(email))
	if err != nil {
		if !errors.Is(err, authgate.ErrProfileNotFound) {
			log.Warn().Err(err).Msg("profile lookup failed, treating email as new")
		}

		return model.ClassificationNew
	}

	if providedName == constant.Empty {
		return model.ClassificationExistingMatch
	}

	if model.Normalize(profile.Name) == model.Normalize(providedName) {
		return model.ClassificationExistingMatch
	}

	return model.ClassificationExistingMismatch
}

func (s *serviceImpl) Issue(ctx context.Context, email string, metadata map[string]string) (attempt draftModel.VerificationAttempt, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Issue")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.provider.IssueCode(ctx, email, metadata); err != nil {
		log.Error().Err(err).Msg("failed to issue one-time credential")

		return attempt, failure.Verification("could not send a verification code, please try again") // nolint:wrapcheck
	}

	return draftModel.VerificationAttempt{
		Email:       email,
		Status:      draftModel.VerificationPending,
		Digits:      s.cfg.Checkout.OTPDigits,
		ResendAfter: timezone.Now().Add(time.Duration(s.cfg.Checkout.ResendCooldownSecs) * time.Second),
	}, nil
}

// Resend reissues the credential. It is rejected while the cooldown deadline
// lies in the future and permitted exactly when it has elapsed.
func (s *serviceImpl) Resend(ctx context.Context, attempt draftModel.VerificationAttempt) (out draftModel.VerificationAttempt, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Resend")
	defer scope.End()
	defer scope.TraceIfError(err)

	now := timezone.Now()
	if now.Before(attempt.ResendAfter) {
		wait := int(attempt.ResendAfter.Sub(now).Seconds()) + 1

		return attempt, failure.Verification(fmt.Sprintf("please wait %d seconds before requesting a new code", wait)) // nolint:wrapcheck
	}

	if err = s.provider.IssueCode(ctx, attempt.Email, nil); err != nil {
		log.Error().Err(err).Msg("failed to reissue one-time credential")

		return attempt, failure.Verification("could not send a verification code, please try again") // nolint:wrapcheck
	}

	attempt.ResendAfter = now.Add(time.Duration(s.cfg.Checkout.ResendCooldownSecs) * time.Second)

	return attempt, nil
}

func (s *serviceImpl) Verify(ctx context.Context, attempt draftModel.VerificationAttempt, code string) (user authgate.AuthenticatedUser, tokens *jwt.TokenPair, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Verify")
	defer scope.End()
	defer scope.TraceIfError(err)

	// Providers vary their code length, so the expected digit count comes
	// from the attempt, never a hardcoded constant.
	if len(code) < attempt.Digits {
		return user, nil, failure.Verification(fmt.Sprintf("the code must be %d digits", attempt.Digits)) // nolint:wrapcheck
	}

	user, err = s.provider.VerifyCode(ctx, attempt.Email, code)
	if err != nil {
		if errors.Is(err, authgate.ErrCodeRejected) {
			return user, nil, failure.Verification("the code is incorrect or has expired") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to verify one-time credential")

		return user, nil, failure.Verification("could not verify the code, please try again") // nolint:wrapcheck
	}

	tokens, err = s.jwt.GenerateTokenPair(user.ID, user.Email, constant.RoleCustomer)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token pair")

		return user, nil, fmt.Errorf("failed to generate token pair: %w", err)
	}

	return user, tokens, nil
}

func (s *serviceImpl) UpsertProfile(ctx context.Context, userID string, fields map[string]string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpsertProfile")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.provider.UpsertProfile(ctx, userID, fields); err != nil {
		log.Error().Err(err).Msg("failed to upsert profile")

		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}
