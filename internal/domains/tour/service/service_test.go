package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"trek/config"
	"trek/infras/otel/mocks"
	tourMocks "trek/internal/domains/tour/mocks"
	"trek/internal/domains/tour/model"
	"trek/internal/domains/tour/service"
	cacheMocks "trek/shared/cache/mocks"
	"trek/shared/failure"
)

func TestTourService_Catalog(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := tourMocks.NewMockTour(ctrl)
	mockAddOnRepo := tourMocks.NewMockTourAddOn(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockAddOnRepo, &config.Config{}, mockCache, mockOtel)

	tour := model.Tour{
		ID:                    "tour-1",
		Name:                  "Annapurna Circuit",
		PricePerTravelerCents: 120000,
		PermitFeeCents:        5000,
	}
	addons := []model.TourAddOn{
		{TourID: "tour-1", Code: "private-room", SurchargeCents: 35000},
		{TourID: "tour-1", Code: "porter", SurchargeCents: 20000},
	}

	tests := []struct {
		name       string
		id         string
		addOnCodes []string
		setupMock  func()
		wantAddOns int
		wantErr    func(t *testing.T, err error)
	}{
		{
			name: "tour with all add-ons",
			id:   "tour-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(tour, nil)
				mockAddOnRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(addons, nil)
			},
			wantAddOns: 2,
		},
		{
			name:       "selected add-on codes",
			id:         "tour-1",
			addOnCodes: []string{"private-room"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(tour, nil)
				mockAddOnRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(addons[:1], nil)
			},
			wantAddOns: 1,
		},
		{
			name:       "unknown add-on code rejected",
			id:         "tour-1",
			addOnCodes: []string{"private-room", "helicopter"},
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(tour, nil)
				mockAddOnRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(addons[:1], nil)
			},
			wantErr: func(t *testing.T, err error) {
				assert.True(t, failure.IsKind(err, failure.KindValidation))

				var fail *failure.Failure
				require.ErrorAs(t, err, &fail)
				require.Len(t, fail.Fields, 1)
				assert.Equal(t, "add_ons", fail.Fields[0].Field)
			},
		},
		{
			name: "missing tour is not found",
			id:   "tour-404",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Tour{}, nil)
			},
			wantErr: func(t *testing.T, err error) {
				assert.Equal(t, 404, failure.GetCode(err))
			},
		},
		{
			name: "repository failure propagates",
			id:   "tour-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Tour{}, errors.New("connection refused"))
			},
			wantErr: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			gotTour, gotAddOns, err := svc.Catalog(context.Background(), tt.id, tt.addOnCodes)

			if tt.wantErr != nil {
				tt.wantErr(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tour.ID, gotTour.ID)
			assert.Len(t, gotAddOns, tt.wantAddOns)
		})
	}
}

func TestTourService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := tourMocks.NewMockTour(ctrl)
	mockAddOnRepo := tourMocks.NewMockTourAddOn(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	svc := service.New(mockRepo, mockAddOnRepo, &config.Config{}, mockCache, mockOtel)

	t.Run("cache miss loads from repository", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), "tour:get:tour-1", gomock.Any()).
			Return(errors.New("redis: nil"))
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Tour{ID: "tour-1", Name: "Annapurna Circuit"}, nil)
		mockAddOnRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)
		mockCache.EXPECT().
			Save(gomock.Any(), "tour:get:tour-1", gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Get(context.Background(), "tour-1")
		require.NoError(t, err)
		assert.Equal(t, "Annapurna Circuit", res.Name)
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), "tour:get:tour-1", gomock.Any()).
			Return(nil)

		_, err := svc.Get(context.Background(), "tour-1")
		require.NoError(t, err)
	})
}
