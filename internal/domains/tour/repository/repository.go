package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"trek/infras/otel"
	"trek/infras/postgres"
	"trek/internal/domains/tour/model"
	gDto "trek/shared/dto"
	gRepo "trek/shared/repository"
)

type Tour interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Tour, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Tour, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type TourAddOn interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.TourAddOn, error)
}

type tourImpl struct {
	gRepo.Repository[model.Tour]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Tour {
	return &tourImpl{
		Repository: gRepo.NewRepository[model.Tour](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

type addOnImpl struct {
	gRepo.Repository[model.TourAddOn]
	db   *postgres.Connection
	otel otel.Otel
}

func NewAddOn(db *postgres.Connection, otel otel.Otel) TourAddOn {
	return &addOnImpl{
		Repository: gRepo.NewRepository[model.TourAddOn](model.AddOnEntityName, model.AddOnTableName, model.AddOnFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
