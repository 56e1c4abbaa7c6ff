package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"trek/config"
	"trek/infras/authgate"
	authgateMocks "trek/infras/authgate/mocks"
	"trek/infras/jwt"
	jwtMocks "trek/infras/jwt/mocks"
	"trek/infras/otel/mocks"
	draftModel "trek/internal/domains/draft/model"
	"trek/internal/domains/identity/model"
	"trek/internal/domains/identity/service"
	"trek/shared/failure"
	"trek/shared/timezone"
)

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Checkout.OTPDigits = 6
	cfg.Checkout.ResendCooldownSecs = 60

	return cfg
}

func TestIdentityService_Classify(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProvider := authgateMocks.NewMockProvider(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockProvider, mockJWT, newConfig(), mockOtel)

	tests := []struct {
		name      string
		email     string
		fullName  string
		setupMock func()
		want      model.Classification
	}{
		{
			name:     "no profile returns NEW",
			email:    "new@example.com",
			fullName: "Jane Doe",
			setupMock: func() {
				mockProvider.EXPECT().
					LookupProfile(gomock.Any(), "new@example.com").
					Return(authgate.Profile{}, authgate.ErrProfileNotFound)
			},
			want: model.ClassificationNew,
		},
		{
			name:     "lookup failure is tolerated as NEW",
			email:    "flaky@example.com",
			fullName: "Jane Doe",
			setupMock: func() {
				mockProvider.EXPECT().
					LookupProfile(gomock.Any(), "flaky@example.com").
					Return(authgate.Profile{}, errors.New("connection refused"))
			},
			want: model.ClassificationNew,
		},
		{
			name:     "case and whitespace insensitive match",
			email:    "jane@example.com",
			fullName: " jane doe ",
			setupMock: func() {
				mockProvider.EXPECT().
					LookupProfile(gomock.Any(), "jane@example.com").
					Return(authgate.Profile{ID: "user-1", Email: "jane@example.com", Name: "Jane Doe"}, nil)
			},
			want: model.ClassificationExistingMatch,
		},
		{
			name:     "different name is a mismatch",
			email:    "jane@example.com",
			fullName: "John Smith",
			setupMock: func() {
				mockProvider.EXPECT().
					LookupProfile(gomock.Any(), "jane@example.com").
					Return(authgate.Profile{ID: "user-1", Email: "jane@example.com", Name: "Jane Doe"}, nil)
			},
			want: model.ClassificationExistingMismatch,
		},
		{
			name:     "empty name is optimistically a match",
			email:    "jane@example.com",
			fullName: "",
			setupMock: func() {
				mockProvider.EXPECT().
					LookupProfile(gomock.Any(), "jane@example.com").
					Return(authgate.Profile{ID: "user-1", Email: "jane@example.com", Name: "Jane Doe"}, nil)
			},
			want: model.ClassificationExistingMatch,
		},
		{
			name:     "email is normalized before lookup",
			email:    " New@Example.Com ",
			fullName: "Jane Doe",
			setupMock: func() {
				mockProvider.EXPECT().
					LookupProfile(gomock.Any(), "new@example.com").
					Return(authgate.Profile{}, authgate.ErrProfileNotFound)
			},
			want: model.ClassificationNew,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			got := svc.Classify(context.Background(), tt.email, tt.fullName)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIdentityService_Issue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProvider := authgateMocks.NewMockProvider(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockProvider, mockJWT, newConfig(), mockOtel)

	t.Run("successful issue", func(t *testing.T) {
		mockProvider.EXPECT().
			IssueCode(gomock.Any(), "jane@example.com", gomock.Any()).
			Return(nil)

		attempt, err := svc.Issue(context.Background(), "jane@example.com", map[string]string{"session": "sess-1"})

		assert.NoError(t, err)
		assert.Equal(t, "jane@example.com", attempt.Email)
		assert.Equal(t, draftModel.VerificationPending, attempt.Status)
		assert.Equal(t, 6, attempt.Digits)
		assert.True(t, attempt.ResendAfter.After(timezone.Now()))
	})

	t.Run("provider failure surfaces as verification failure", func(t *testing.T) {
		mockProvider.EXPECT().
			IssueCode(gomock.Any(), "jane@example.com", gomock.Any()).
			Return(errors.New("smtp down"))

		_, err := svc.Issue(context.Background(), "jane@example.com", nil)

		assert.Error(t, err)
		assert.True(t, failure.IsKind(err, failure.KindVerification))
	})
}

func TestIdentityService_Resend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProvider := authgateMocks.NewMockProvider(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockProvider, mockJWT, newConfig(), mockOtel)

	t.Run("rejected while cooldown active", func(t *testing.T) {
		attempt := draftModel.VerificationAttempt{
			Email:       "jane@example.com",
			Status:      draftModel.VerificationPending,
			Digits:      6,
			ResendAfter: timezone.Now().Add(30 * time.Second),
		}

		_, err := svc.Resend(context.Background(), attempt)

		assert.Error(t, err)
		assert.True(t, failure.IsKind(err, failure.KindVerification))
	})

	t.Run("permitted once cooldown elapsed", func(t *testing.T) {
		mockProvider.EXPECT().
			IssueCode(gomock.Any(), "jane@example.com", gomock.Any()).
			Return(nil)

		attempt := draftModel.VerificationAttempt{
			Email:       "jane@example.com",
			Status:      draftModel.VerificationPending,
			Digits:      6,
			ResendAfter: timezone.Now().Add(-time.Second),
		}

		out, err := svc.Resend(context.Background(), attempt)

		assert.NoError(t, err)
		assert.True(t, out.ResendAfter.After(timezone.Now()))
	})
}

func TestIdentityService_Verify(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProvider := authgateMocks.NewMockProvider(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockProvider, mockJWT, newConfig(), mockOtel)

	attempt := draftModel.VerificationAttempt{
		Email:  "jane@example.com",
		Status: draftModel.VerificationPending,
		Digits: 6,
	}

	t.Run("short code rejected locally", func(t *testing.T) {
		_, _, err := svc.Verify(context.Background(), attempt, "123")

		assert.Error(t, err)
		assert.True(t, failure.IsKind(err, failure.KindVerification))
	})

	t.Run("provider rejection surfaces as verification failure", func(t *testing.T) {
		mockProvider.EXPECT().
			VerifyCode(gomock.Any(), "jane@example.com", "123456").
			Return(authgate.AuthenticatedUser{}, authgate.ErrCodeRejected)

		_, _, err := svc.Verify(context.Background(), attempt, "123456")

		assert.Error(t, err)
		assert.True(t, failure.IsKind(err, failure.KindVerification))
	})

	t.Run("successful verify yields user and tokens", func(t *testing.T) {
		user := authgate.AuthenticatedUser{ID: "user-1", Email: "jane@example.com", Name: "Jane Doe"}

		mockProvider.EXPECT().
			VerifyCode(gomock.Any(), "jane@example.com", "123456").
			Return(user, nil)

		mockJWT.EXPECT().
			GenerateTokenPair(user.ID, user.Email, gomock.Any()).
			Return(&jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil)

		got, tokens, err := svc.Verify(context.Background(), attempt, "123456")

		assert.NoError(t, err)
		assert.Equal(t, user, got)
		assert.Equal(t, "access", tokens.AccessToken)
	})
}
