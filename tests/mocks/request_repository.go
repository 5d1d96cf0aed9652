package mocks

import (
	"context"

	"volunteer-hub/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

type RequestRepository struct {
	mock.Mock
}

func (m *RequestRepository) Create(ctx context.Context, req *domain.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *RequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *RequestRepository) GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*domain.Request, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *RequestRepository) Update(ctx context.Context, req *domain.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *RequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus) (*domain.Request, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Request), args.Error(1)
}

func (m *RequestRepository) UpdateStatusTx(ctx context.Context, q sqlx.ExtContext, id uuid.UUID, status domain.RequestStatus) error {
	args := m.Called(ctx, q, id, status)
	return args.Error(0)
}

func (m *RequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *RequestRepository) List(ctx context.Context, filter domain.RequestFilter, params domain.PaginationParams) ([]domain.RequestWithResponse, int64, error) {
	args := m.Called(ctx, filter, params)
	return args.Get(0).([]domain.RequestWithResponse), args.Get(1).(int64), args.Error(2)
}

func (m *RequestRepository) CountByStatus(ctx context.Context) (map[domain.RequestStatus]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[domain.RequestStatus]int64), args.Error(1)
}

func (m *RequestRepository) CountByCategory(ctx context.Context) (map[domain.Category]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[domain.Category]int64), args.Error(1)
}

func (m *RequestRepository) TopCities(ctx context.Context, limit int) ([]domain.CityCount, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.CityCount), args.Error(1)
}
