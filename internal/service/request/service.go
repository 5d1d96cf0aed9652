// Package request owns the help-request lifecycle outside the matching flow:
// creation, owner/admin edits, deletion and the filtered listings.
package request

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"volunteer-hub/internal/domain"
	"volunteer-hub/internal/repository"
)

var (
	ErrRequestNotFound = errors.New("request not found")
	ErrNotRequestOwner = errors.New("not allowed to modify this request")
	ErrInvalidStatus   = errors.New("invalid request status")
	ErrInvalidCategory = errors.New("invalid request category")
)

type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, input domain.CreateRequestInput) (*domain.Request, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Request, error)
	GetWithResponses(ctx context.Context, id uuid.UUID) (*domain.RequestDetail, error)
	Update(ctx context.Context, caller domain.Identity, id uuid.UUID, input domain.UpdateRequestInput) (*domain.Request, error)
	UpdateStatus(ctx context.Context, caller domain.Identity, id uuid.UUID, status domain.RequestStatus) (*domain.Request, error)
	Delete(ctx context.Context, caller domain.Identity, id uuid.UUID) error
	List(ctx context.Context, filter domain.RequestFilter, params domain.PaginationParams) (domain.Page[domain.RequestWithResponse], error)
}

type service struct {
	requestRepo  repository.RequestRepository
	responseRepo repository.ResponseRepository
	userRepo     repository.UserRepository
	redis        *redis.Client
}

func NewService(requestRepo repository.RequestRepository, responseRepo repository.ResponseRepository, userRepo repository.UserRepository, redis *redis.Client) Service {
	return &service{
		requestRepo:  requestRepo,
		responseRepo: responseRepo,
		userRepo:     userRepo,
		redis:        redis,
	}
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, input domain.CreateRequestInput) (*domain.Request, error) {
	if !input.Category.IsValid() {
		return nil, ErrInvalidCategory
	}

	req := &domain.Request{
		ID:          uuid.New(),
		UserID:      ownerID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		City:        input.City,
		Status:      domain.StatusActive,
	}

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	return req, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*domain.Request, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	return req, nil
}

func (s *service) GetWithResponses(ctx context.Context, id uuid.UUID) (*domain.RequestDetail, error) {
	req, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	responses, total, err := s.responseRepo.ListByRequest(ctx, id, domain.PaginationParams{Page: 1, Limit: 10})
	if err != nil {
		return nil, err
	}

	detail := &domain.RequestDetail{
		Request:       *req,
		ResponseCount: int(total),
		Volunteers:    responses,
	}

	owner, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if owner != nil {
		detail.Owner = &domain.UserSummary{
			ID:    owner.ID,
			Name:  owner.Name,
			Phone: owner.Phone,
			Email: &owner.Email,
		}
	}

	return detail, nil
}

// Update edits the non-status fields of a request. Only the owner or an
// admin may edit; the check is the pure guard in domain, not middleware.
func (s *service) Update(ctx context.Context, caller domain.Identity, id uuid.UUID, input domain.UpdateRequestInput) (*domain.Request, error) {
	req, err := s.guardModify(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		req.Title = *input.Title
	}
	if input.Description != nil {
		req.Description = *input.Description
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, ErrInvalidCategory
		}
		req.Category = *input.Category
	}
	if input.City != nil {
		req.City = *input.City
	}

	if err := s.requestRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)
	return req, nil
}

// UpdateStatus is the direct owner/admin status edit. It deliberately
// bypasses the matching engine: an owner can close out a request as
// COMPLETED or CANCELLED even while a response exists.
func (s *service) UpdateStatus(ctx context.Context, caller domain.Identity, id uuid.UUID, status domain.RequestStatus) (*domain.Request, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	if _, err := s.guardModify(ctx, caller, id); err != nil {
		return nil, err
	}

	req, err := s.requestRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}

	s.invalidateStats(ctx)
	return req, nil
}

// Delete removes a request entirely. The store cascades to any response and
// attachments.
func (s *service) Delete(ctx context.Context, caller domain.Identity, id uuid.UUID) error {
	if _, err := s.guardModify(ctx, caller, id); err != nil {
		return err
	}

	if err := s.requestRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateStats(ctx)
	return nil
}

func (s *service) List(ctx context.Context, filter domain.RequestFilter, params domain.PaginationParams) (domain.Page[domain.RequestWithResponse], error) {
	requests, total, err := s.requestRepo.List(ctx, filter, params)
	if err != nil {
		return domain.Page[domain.RequestWithResponse]{}, err
	}
	return domain.NewPage(requests, params, total), nil
}

func (s *service) guardModify(ctx context.Context, caller domain.Identity, id uuid.UUID) (*domain.Request, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}

	if !domain.CanModifyRequest(caller, req.UserID) {
		return nil, ErrNotRequestOwner
	}
	return req, nil
}

func (s *service) invalidateStats(ctx context.Context) {
	if s.redis != nil {
		_ = s.redis.Del(ctx, "platform:stats").Err()
	}
}
