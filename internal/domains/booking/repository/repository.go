package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"trek/infras/otel"
	"trek/infras/postgres"
	"trek/internal/domains/booking/model"
	gDto "trek/shared/dto"
	gRepo "trek/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Booking interface {
	BeginTx(ctx context.Context) (*sqlx.Tx, error)
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
}

type Traveler interface {
	InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []model.Traveler) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Traveler, error)
}

type bookingImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &bookingImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *bookingImpl) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	return tx, nil
}

type travelerImpl struct {
	gRepo.Repository[model.Traveler]
	db   *postgres.Connection
	otel otel.Otel
}

func NewTraveler(db *postgres.Connection, otel otel.Otel) Traveler {
	return &travelerImpl{
		Repository: gRepo.NewRepository[model.Traveler](model.TravelerEntityName, model.TravelerTableName, model.TravelerFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
