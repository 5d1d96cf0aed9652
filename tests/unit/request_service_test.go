package unit_test

import (
	"context"
	"errors"
	"testing"

	"volunteer-hub/internal/domain"
	"volunteer-hub/internal/service/request"
	"volunteer-hub/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newRequestService(requestRepo *mocks.RequestRepository, responseRepo *mocks.ResponseRepository, userRepo *mocks.UserRepository) request.Service {
	return request.NewService(requestRepo, responseRepo, userRepo, nil)
}

func TestRequestService_Create(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	input := domain.CreateRequestInput{
		Title:       "Need a winter coat",
		Description: "Looking for a warm coat in size L for the cold season.",
		Category:    domain.CategoryClothing,
		City:        "Rotterdam",
	}

	t.Run("Success", func(t *testing.T) {
		mockRequestRepo := new(mocks.RequestRepository)
		svc := newRequestService(mockRequestRepo, new(mocks.ResponseRepository), new(mocks.UserRepository))

		mockRequestRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.Request) bool {
			return r.UserID == ownerID && r.Status == domain.StatusActive && r.Category == domain.CategoryClothing
		})).Return(nil).Once()

		req, err := svc.Create(ctx, ownerID, input)

		assert.NoError(t, err)
		assert.NotNil(t, req)
		assert.Equal(t, domain.StatusActive, req.Status)
		assert.NotEqual(t, uuid.Nil, req.ID)
		mockRequestRepo.AssertExpectations(t)
	})

	t.Run("Invalid Category", func(t *testing.T) {
		mockRequestRepo := new(mocks.RequestRepository)
		svc := newRequestService(mockRequestRepo, new(mocks.ResponseRepository), new(mocks.UserRepository))

		bad := input
		bad.Category = domain.Category("GADGETS")

		req, err := svc.Create(ctx, ownerID, bad)

		assert.ErrorIs(t, err, request.ErrInvalidCategory)
		assert.Nil(t, req)
		mockRequestRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestRequestService_ModifyGuard(t *testing.T) {
	ctx := context.Background()
	requestID := uuid.New()
	ownerID := uuid.New()

	stored := func() *domain.Request {
		return &domain.Request{ID: requestID, UserID: ownerID, Title: "Old title", Status: domain.StatusActive}
	}

	newTitle := "Updated request title"

	t.Run("Owner Can Update", func(t *testing.T) {
		mockRequestRepo := new(mocks.RequestRepository)
		svc := newRequestService(mockRequestRepo, new(mocks.ResponseRepository), new(mocks.UserRepository))

		mockRequestRepo.On("GetByID", ctx, requestID).Return(stored(), nil).Once()
		mockRequestRepo.On("Update", ctx, mock.MatchedBy(func(r *domain.Request) bool {
			return r.Title == newTitle
		})).Return(nil).Once()

		caller := domain.Identity{ID: ownerID, Role: domain.RoleUser}
		req, err := svc.Update(ctx, caller, requestID, domain.UpdateRequestInput{Title: &newTitle})

		assert.NoError(t, err)
		assert.Equal(t, newTitle, req.Title)
		mockRequestRepo.AssertExpectations(t)
	})

	t.Run("Admin Can Update Any Request", func(t *testing.T) {
		mockRequestRepo := new(mocks.RequestRepository)
		svc := newRequestService(mockRequestRepo, new(mocks.ResponseRepository), new(mocks.UserRepository))

		mockRequestRepo.On("GetByID", ctx, requestID).Return(stored(), nil).Once()
		mockRequestRepo.On("Update", ctx, mock.Anything).Return(nil).Once()

		caller := domain.Identity{ID: uuid.New(), Role: domain.RoleAdmin}
		_, err := svc.Update(ctx, caller, requestID, domain.UpdateRequestInput{Title: &newTitle})

		assert.NoError(t, err)
	})

	t.Run("Stranger Cannot Update", func(t *testing.T) {
		mockRequestRepo := new(mocks.RequestRepository)
		svc := newRequestService(mockRequestRepo, new(mocks.ResponseRepository), new(mocks.UserRepository))

		mockRequestRepo.On("GetByID", ctx, requestID).Return(stored(), nil).Once()

		caller := domain.Identity{ID: uuid.New(), Role: domain.RoleUser}
		req, err := svc.Update(ctx, caller, requestID, domain.UpdateRequestInput{Title: &newTitle})

		assert.ErrorIs(t, err, request.ErrNotRequestOwner)
		assert.Nil(t, req)
		mockRequestRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Volunteer Cannot Update Someone Elses Request", func(t *testing.T) {
		mockRequestRepo := new(mocks.RequestRepository)
		svc := newRequestService(mockRequestRepo, new(mocks.ResponseRepository), new(mocks.UserRepository))

		mockRequestRepo.On("GetByID", ctx, requestID).Return(stored(), nil).Once()

		caller := domain.Identity{ID: uuid.New(), Role: domain.RoleVolunteer}
		_, err := svc.Update(ctx, caller, requestID, domain.UpdateRequestInput{Title: &newTitle})

		assert.ErrorIs(t, err, request.ErrNotRequestOwner)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockRequestRepo := new(mocks.RequestRepository)
		svc := newRequestService(mockRequestRepo, new(mocks.ResponseRepository), new(mocks.UserRepository))

		mockRequestRepo.On("GetByID", ctx, requestID).Return(nil, nil).Once()

		caller := domain.Identity{ID: ownerID, Role: domain.RoleUser}
		_, err := svc.Update(ctx, caller, requestID, domain.UpdateRequestInput{Title: &newTitle})

		assert.ErrorIs(t, err, request.ErrRequestNotFound)
	})
}

func TestRequestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	requestID := uuid.New()
	ownerID := uuid.New()
	caller := domain.Identity{ID: ownerID, Role: domain.RoleUser}

	t.Run("Invalid Status", func(t *testing.T) {
		mockRequestRepo := new(mocks.RequestRepository)
		svc := newRequestService(mockRequestRepo, new(mocks.ResponseRepository), new(mocks.UserRepository))

		_, err := svc.UpdateStatus(ctx, caller, requestID, domain.RequestStatus("PAUSED"))

		assert.ErrorIs(t, err, request.ErrInvalidStatus)
		mockRequestRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Owner Completes In-Progress Request", func(t *testing.T) {
		mockRequestRepo := new(mocks.RequestRepository)
		svc := newRequestService(mockRequestRepo, new(mocks.ResponseRepository), new(mocks.UserRepository))

		held := &domain.Request{ID: requestID, UserID: ownerID, Status: domain.StatusInProgress}
		completed := &domain.Request{ID: requestID, UserID: ownerID, Status: domain.StatusCompleted}

		mockRequestRepo.On("GetByID", ctx, requestID).Return(held, nil).Once()
		mockRequestRepo.On("UpdateStatus", ctx, requestID, domain.StatusCompleted).Return(completed, nil).Once()

		req, err := svc.UpdateStatus(ctx, caller, requestID, domain.StatusCompleted)

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, req.Status)
		mockRequestRepo.AssertExpectations(t)
	})
}

func TestRequestService_Delete(t *testing.T) {
	ctx := context.Background()
	requestID := uuid.New()
	ownerID := uuid.New()

	t.Run("Owner Deletes", func(t *testing.T) {
		mockRequestRepo := new(mocks.RequestRepository)
		svc := newRequestService(mockRequestRepo, new(mocks.ResponseRepository), new(mocks.UserRepository))

		mockRequestRepo.On("GetByID", ctx, requestID).Return(&domain.Request{ID: requestID, UserID: ownerID}, nil).Once()
		mockRequestRepo.On("Delete", ctx, requestID).Return(nil).Once()

		err := svc.Delete(ctx, domain.Identity{ID: ownerID, Role: domain.RoleUser}, requestID)

		assert.NoError(t, err)
		mockRequestRepo.AssertExpectations(t)
	})

	t.Run("Repo Error Propagates", func(t *testing.T) {
		mockRequestRepo := new(mocks.RequestRepository)
		svc := newRequestService(mockRequestRepo, new(mocks.ResponseRepository), new(mocks.UserRepository))

		mockRequestRepo.On("GetByID", ctx, requestID).Return(nil, errors.New("db error")).Once()

		err := svc.Delete(ctx, domain.Identity{ID: ownerID, Role: domain.RoleUser}, requestID)

		assert.Error(t, err)
		assert.Equal(t, "db error", err.Error())
	})
}

func TestRequestService_GetWithResponses(t *testing.T) {
	ctx := context.Background()
	requestID := uuid.New()
	ownerID := uuid.New()

	mockRequestRepo := new(mocks.RequestRepository)
	mockResponseRepo := new(mocks.ResponseRepository)
	mockUserRepo := new(mocks.UserRepository)
	svc := newRequestService(mockRequestRepo, mockResponseRepo, mockUserRepo)

	stored := &domain.Request{ID: requestID, UserID: ownerID, Title: "Wheelchair transport", Status: domain.StatusInProgress}
	mockRequestRepo.On("GetByID", ctx, requestID).Return(stored, nil).Once()
	mockResponseRepo.On("ListByRequest", ctx, requestID, mock.Anything).
		Return([]domain.ResponseVolunteer{{Name: "Vera"}}, int64(1), nil).Once()
	mockUserRepo.On("GetByID", ctx, ownerID).Return(&domain.User{ID: ownerID, Name: "Omar", Email: "omar@example.com"}, nil).Once()

	detail, err := svc.GetWithResponses(ctx, requestID)

	assert.NoError(t, err)
	assert.Equal(t, 1, detail.ResponseCount)
	assert.Len(t, detail.Volunteers, 1)
	assert.Equal(t, "Omar", detail.Owner.Name)
}
