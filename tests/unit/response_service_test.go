package unit_test

import (
	"context"
	"errors"
	"testing"

	"volunteer-hub/internal/domain"
	"volunteer-hub/internal/service/response"
	"volunteer-hub/tests/mocks"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newResponseService(requestRepo *mocks.RequestRepository, responseRepo *mocks.ResponseRepository, userRepo *mocks.UserRepository) response.Service {
	return response.NewService(&mocks.TxRunner{}, requestRepo, responseRepo, userRepo, nil)
}

func TestResponseService_Accept(t *testing.T) {
	ctx := context.Background()
	requestID := uuid.New()
	ownerID := uuid.New()
	volunteerID := uuid.New()

	activeRequest := func() *domain.Request {
		return &domain.Request{
			ID:     requestID,
			UserID: ownerID,
			Title:  "Need groceries delivered",
			Status: domain.StatusActive,
		}
	}

	t.Run("Success", func(t *testing.T) {
		mockRequestRepo := new(mocks.RequestRepository)
		mockResponseRepo := new(mocks.ResponseRepository)
		mockUserRepo := new(mocks.UserRepository)
		svc := newResponseService(mockRequestRepo, mockResponseRepo, mockUserRepo)

		mockRequestRepo.On("GetByIDForUpdate", ctx, mock.Anything, requestID).Return(activeRequest(), nil).Once()
		mockResponseRepo.On("CountByRequestTx", ctx, mock.Anything, requestID).Return(int64(0), nil).Once()
		mockResponseRepo.On("CreateTx", ctx, mock.Anything, mock.MatchedBy(func(r *domain.Response) bool {
			return r.RequestID == requestID && r.VolunteerID == volunteerID
		})).Return(nil).Once()
		mockRequestRepo.On("UpdateStatusTx", ctx, mock.Anything, requestID, domain.StatusInProgress).Return(nil).Once()

		inProgress := activeRequest()
		inProgress.Status = domain.StatusInProgress
		mockRequestRepo.On("GetByID", ctx, requestID).Return(inProgress, nil).Once()
		mockUserRepo.On("GetByID", ctx, volunteerID).Return(&domain.User{ID: volunteerID, Name: "Vera"}, nil).Once()

		result, err := svc.Accept(ctx, requestID, volunteerID)

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, requestID, result.Response.RequestID)
		assert.Equal(t, volunteerID, result.Response.VolunteerID)
		assert.Equal(t, domain.StatusInProgress, result.Request.Status)
		assert.Equal(t, "Vera", result.Volunteer.Name)

		mockRequestRepo.AssertExpectations(t)
		mockResponseRepo.AssertExpectations(t)
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("Request Not Found", func(t *testing.T) {
		mockRequestRepo := new(mocks.RequestRepository)
		mockResponseRepo := new(mocks.ResponseRepository)
		svc := newResponseService(mockRequestRepo, mockResponseRepo, new(mocks.UserRepository))

		mockRequestRepo.On("GetByIDForUpdate", ctx, mock.Anything, requestID).Return(nil, nil).Once()

		result, err := svc.Accept(ctx, requestID, volunteerID)

		assert.ErrorIs(t, err, response.ErrRequestNotFound)
		assert.Nil(t, result)
		mockResponseRepo.AssertNotCalled(t, "CreateTx", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Request Not Active", func(t *testing.T) {
		for _, status := range []domain.RequestStatus{domain.StatusInProgress, domain.StatusCompleted, domain.StatusCancelled} {
			mockRequestRepo := new(mocks.RequestRepository)
			mockResponseRepo := new(mocks.ResponseRepository)
			svc := newResponseService(mockRequestRepo, mockResponseRepo, new(mocks.UserRepository))

			req := activeRequest()
			req.Status = status
			mockRequestRepo.On("GetByIDForUpdate", ctx, mock.Anything, requestID).Return(req, nil).Once()

			result, err := svc.Accept(ctx, requestID, volunteerID)

			assert.ErrorIs(t, err, response.ErrRequestNotAvailable, "status %s", status)
			assert.Nil(t, result)
			mockResponseRepo.AssertNotCalled(t, "CreateTx", mock.Anything, mock.Anything, mock.Anything)
		}
	})

	t.Run("Own Request", func(t *testing.T) {
		mockRequestRepo := new(mocks.RequestRepository)
		mockResponseRepo := new(mocks.ResponseRepository)
		svc := newResponseService(mockRequestRepo, mockResponseRepo, new(mocks.UserRepository))

		mockRequestRepo.On("GetByIDForUpdate", ctx, mock.Anything, requestID).Return(activeRequest(), nil).Once()

		result, err := svc.Accept(ctx, requestID, ownerID)

		assert.ErrorIs(t, err, response.ErrOwnRequest)
		assert.Nil(t, result)
		mockResponseRepo.AssertNotCalled(t, "CountByRequestTx", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Already Accepted", func(t *testing.T) {
		mockRequestRepo := new(mocks.RequestRepository)
		mockResponseRepo := new(mocks.ResponseRepository)
		svc := newResponseService(mockRequestRepo, mockResponseRepo, new(mocks.UserRepository))

		mockRequestRepo.On("GetByIDForUpdate", ctx, mock.Anything, requestID).Return(activeRequest(), nil).Once()
		mockResponseRepo.On("CountByRequestTx", ctx, mock.Anything, requestID).Return(int64(1), nil).Once()

		result, err := svc.Accept(ctx, requestID, volunteerID)

		assert.ErrorIs(t, err, response.ErrAlreadyAccepted)
		assert.Nil(t, result)
		mockResponseRepo.AssertNotCalled(t, "CreateTx", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unique Violation Maps To Already Accepted", func(t *testing.T) {
		mockRequestRepo := new(mocks.RequestRepository)
		mockResponseRepo := new(mocks.ResponseRepository)
		svc := newResponseService(mockRequestRepo, mockResponseRepo, new(mocks.UserRepository))

		mockRequestRepo.On("GetByIDForUpdate", ctx, mock.Anything, requestID).Return(activeRequest(), nil).Once()
		mockResponseRepo.On("CountByRequestTx", ctx, mock.Anything, requestID).Return(int64(0), nil).Once()
		mockResponseRepo.On("CreateTx", ctx, mock.Anything, mock.Anything).Return(&pq.Error{Code: "23505"}).Once()

		result, err := svc.Accept(ctx, requestID, volunteerID)

		assert.ErrorIs(t, err, response.ErrAlreadyAccepted)
		assert.Nil(t, result)
		mockRequestRepo.AssertNotCalled(t, "UpdateStatusTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Repo Error", func(t *testing.T) {
		mockRequestRepo := new(mocks.RequestRepository)
		svc := newResponseService(mockRequestRepo, new(mocks.ResponseRepository), new(mocks.UserRepository))

		mockRequestRepo.On("GetByIDForUpdate", ctx, mock.Anything, requestID).Return(nil, errors.New("db error")).Once()

		result, err := svc.Accept(ctx, requestID, volunteerID)

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, "db error", err.Error())
	})
}

func TestResponseService_Withdraw(t *testing.T) {
	ctx := context.Background()
	requestID := uuid.New()
	volunteerID := uuid.New()

	t.Run("Success Resets Request To Active", func(t *testing.T) {
		mockRequestRepo := new(mocks.RequestRepository)
		mockResponseRepo := new(mocks.ResponseRepository)
		svc := newResponseService(mockRequestRepo, mockResponseRepo, new(mocks.UserRepository))

		existing := &domain.Response{RequestID: requestID, VolunteerID: volunteerID}
		mockResponseRepo.On("GetByKeyTx", ctx, mock.Anything, requestID, volunteerID).Return(existing, nil).Once()
		mockResponseRepo.On("DeleteTx", ctx, mock.Anything, requestID, volunteerID).Return(nil).Once()
		mockRequestRepo.On("UpdateStatusTx", ctx, mock.Anything, requestID, domain.StatusActive).Return(nil).Once()

		err := svc.Withdraw(ctx, requestID, volunteerID)

		assert.NoError(t, err)
		mockRequestRepo.AssertExpectations(t)
		mockResponseRepo.AssertExpectations(t)
	})

	t.Run("No Response", func(t *testing.T) {
		mockRequestRepo := new(mocks.RequestRepository)
		mockResponseRepo := new(mocks.ResponseRepository)
		svc := newResponseService(mockRequestRepo, mockResponseRepo, new(mocks.UserRepository))

		mockResponseRepo.On("GetByKeyTx", ctx, mock.Anything, requestID, volunteerID).Return(nil, nil).Once()

		err := svc.Withdraw(ctx, requestID, volunteerID)

		assert.ErrorIs(t, err, response.ErrResponseNotFound)
		mockResponseRepo.AssertNotCalled(t, "DeleteTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockRequestRepo.AssertNotCalled(t, "UpdateStatusTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Delete Error Keeps Status Untouched", func(t *testing.T) {
		mockRequestRepo := new(mocks.RequestRepository)
		mockResponseRepo := new(mocks.ResponseRepository)
		svc := newResponseService(mockRequestRepo, mockResponseRepo, new(mocks.UserRepository))

		existing := &domain.Response{RequestID: requestID, VolunteerID: volunteerID}
		mockResponseRepo.On("GetByKeyTx", ctx, mock.Anything, requestID, volunteerID).Return(existing, nil).Once()
		mockResponseRepo.On("DeleteTx", ctx, mock.Anything, requestID, volunteerID).Return(errors.New("db error")).Once()

		err := svc.Withdraw(ctx, requestID, volunteerID)

		assert.Error(t, err)
		mockRequestRepo.AssertNotCalled(t, "UpdateStatusTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

// A full accept-withdraw-accept cycle: the request frees up after a
// withdrawal and a different volunteer can take it.
func TestResponseService_AcceptAfterWithdraw(t *testing.T) {
	ctx := context.Background()
	requestID := uuid.New()
	ownerID := uuid.New()
	firstVolunteer := uuid.New()
	secondVolunteer := uuid.New()

	mockRequestRepo := new(mocks.RequestRepository)
	mockResponseRepo := new(mocks.ResponseRepository)
	mockUserRepo := new(mocks.UserRepository)
	svc := newResponseService(mockRequestRepo, mockResponseRepo, mockUserRepo)

	active := &domain.Request{ID: requestID, UserID: ownerID, Title: "Ride to the clinic", Status: domain.StatusActive}
	inProgress := &domain.Request{ID: requestID, UserID: ownerID, Title: "Ride to the clinic", Status: domain.StatusInProgress}

	// First volunteer accepts.
	mockRequestRepo.On("GetByIDForUpdate", ctx, mock.Anything, requestID).Return(active, nil).Once()
	mockResponseRepo.On("CountByRequestTx", ctx, mock.Anything, requestID).Return(int64(0), nil).Once()
	mockResponseRepo.On("CreateTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	mockRequestRepo.On("UpdateStatusTx", ctx, mock.Anything, requestID, domain.StatusInProgress).Return(nil).Once()
	mockRequestRepo.On("GetByID", ctx, requestID).Return(inProgress, nil).Once()
	mockUserRepo.On("GetByID", ctx, firstVolunteer).Return(&domain.User{ID: firstVolunteer, Name: "First"}, nil).Once()

	_, err := svc.Accept(ctx, requestID, firstVolunteer)
	assert.NoError(t, err)

	// Second volunteer is rejected while the first holds it.
	mockRequestRepo.On("GetByIDForUpdate", ctx, mock.Anything, requestID).Return(inProgress, nil).Once()

	_, err = svc.Accept(ctx, requestID, secondVolunteer)
	assert.ErrorIs(t, err, response.ErrRequestNotAvailable)

	// First volunteer withdraws, request goes back to ACTIVE.
	mockResponseRepo.On("GetByKeyTx", ctx, mock.Anything, requestID, firstVolunteer).
		Return(&domain.Response{RequestID: requestID, VolunteerID: firstVolunteer}, nil).Once()
	mockResponseRepo.On("DeleteTx", ctx, mock.Anything, requestID, firstVolunteer).Return(nil).Once()
	mockRequestRepo.On("UpdateStatusTx", ctx, mock.Anything, requestID, domain.StatusActive).Return(nil).Once()

	assert.NoError(t, svc.Withdraw(ctx, requestID, firstVolunteer))

	// Now the second volunteer succeeds.
	mockRequestRepo.On("GetByIDForUpdate", ctx, mock.Anything, requestID).Return(active, nil).Once()
	mockResponseRepo.On("CountByRequestTx", ctx, mock.Anything, requestID).Return(int64(0), nil).Once()
	mockResponseRepo.On("CreateTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	mockRequestRepo.On("UpdateStatusTx", ctx, mock.Anything, requestID, domain.StatusInProgress).Return(nil).Once()
	mockRequestRepo.On("GetByID", ctx, requestID).Return(inProgress, nil).Once()
	mockUserRepo.On("GetByID", ctx, secondVolunteer).Return(&domain.User{ID: secondVolunteer, Name: "Second"}, nil).Once()

	result, err := svc.Accept(ctx, requestID, secondVolunteer)
	assert.NoError(t, err)
	assert.Equal(t, secondVolunteer, result.Response.VolunteerID)

	mockRequestRepo.AssertExpectations(t)
	mockResponseRepo.AssertExpectations(t)
}

func TestResponseService_ListByRequest(t *testing.T) {
	ctx := context.Background()
	requestID := uuid.New()
	params := domain.PaginationParams{Page: 1, Limit: 20}

	t.Run("Request Not Found", func(t *testing.T) {
		mockRequestRepo := new(mocks.RequestRepository)
		svc := newResponseService(mockRequestRepo, new(mocks.ResponseRepository), new(mocks.UserRepository))

		mockRequestRepo.On("GetByID", ctx, requestID).Return(nil, nil).Once()

		_, err := svc.ListByRequest(ctx, requestID, params)
		assert.ErrorIs(t, err, response.ErrRequestNotFound)
	})

	t.Run("Success", func(t *testing.T) {
		mockRequestRepo := new(mocks.RequestRepository)
		mockResponseRepo := new(mocks.ResponseRepository)
		svc := newResponseService(mockRequestRepo, mockResponseRepo, new(mocks.UserRepository))

		mockRequestRepo.On("GetByID", ctx, requestID).Return(&domain.Request{ID: requestID}, nil).Once()
		mockResponseRepo.On("ListByRequest", ctx, requestID, params).
			Return([]domain.ResponseVolunteer{{Name: "Vera"}}, int64(1), nil).Once()

		page, err := svc.ListByRequest(ctx, requestID, params)

		assert.NoError(t, err)
		assert.Len(t, page.Data, 1)
		assert.Equal(t, int64(1), page.Meta.TotalItems)
		assert.Equal(t, 1, page.Meta.TotalPages)
	})
}
