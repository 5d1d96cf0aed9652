package mocks

import (
	"context"

	"volunteer-hub/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"
)

type ResponseRepository struct {
	mock.Mock
}

func (m *ResponseRepository) GetByKey(ctx context.Context, requestID, volunteerID uuid.UUID) (*domain.Response, error) {
	args := m.Called(ctx, requestID, volunteerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Response), args.Error(1)
}

func (m *ResponseRepository) GetByKeyTx(ctx context.Context, q sqlx.ExtContext, requestID, volunteerID uuid.UUID) (*domain.Response, error) {
	args := m.Called(ctx, q, requestID, volunteerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Response), args.Error(1)
}

func (m *ResponseRepository) CountByRequestTx(ctx context.Context, q sqlx.ExtContext, requestID uuid.UUID) (int64, error) {
	args := m.Called(ctx, q, requestID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ResponseRepository) CreateTx(ctx context.Context, q sqlx.ExtContext, resp *domain.Response) error {
	args := m.Called(ctx, q, resp)
	return args.Error(0)
}

func (m *ResponseRepository) DeleteTx(ctx context.Context, q sqlx.ExtContext, requestID, volunteerID uuid.UUID) error {
	args := m.Called(ctx, q, requestID, volunteerID)
	return args.Error(0)
}

func (m *ResponseRepository) ListByRequest(ctx context.Context, requestID uuid.UUID, params domain.PaginationParams) ([]domain.ResponseVolunteer, int64, error) {
	args := m.Called(ctx, requestID, params)
	return args.Get(0).([]domain.ResponseVolunteer), args.Get(1).(int64), args.Error(2)
}

func (m *ResponseRepository) ListByVolunteer(ctx context.Context, volunteerID uuid.UUID, params domain.PaginationParams) ([]domain.VolunteerResponse, int64, error) {
	args := m.Called(ctx, volunteerID, params)
	return args.Get(0).([]domain.VolunteerResponse), args.Get(1).(int64), args.Error(2)
}
