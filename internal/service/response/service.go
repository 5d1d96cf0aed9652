// Package response implements the matching engine: the accept/withdraw state
// machine between requests and volunteers, and the one-responder rule.
package response

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"volunteer-hub/internal/domain"
	"volunteer-hub/internal/repository"
)

var (
	ErrRequestNotFound     = errors.New("request not found")
	ErrRequestNotAvailable = errors.New("request is no longer available for responses")
	ErrOwnRequest          = errors.New("cannot respond to own request")
	ErrAlreadyAccepted     = errors.New("request already accepted by another volunteer")
	ErrResponseNotFound    = errors.New("no response by this volunteer for this request")
)

type Service interface {
	Accept(ctx context.Context, requestID, volunteerID uuid.UUID) (*domain.AcceptResult, error)
	Withdraw(ctx context.Context, requestID, volunteerID uuid.UUID) error
	ListByRequest(ctx context.Context, requestID uuid.UUID, params domain.PaginationParams) (domain.Page[domain.ResponseVolunteer], error)
	ListByVolunteer(ctx context.Context, volunteerID uuid.UUID, params domain.PaginationParams) (domain.Page[domain.VolunteerResponse], error)
}

type service struct {
	tx           repository.TxRunner
	requestRepo  repository.RequestRepository
	responseRepo repository.ResponseRepository
	userRepo     repository.UserRepository
	redis        *redis.Client
}

func NewService(tx repository.TxRunner, requestRepo repository.RequestRepository, responseRepo repository.ResponseRepository, userRepo repository.UserRepository, redis *redis.Client) Service {
	return &service{
		tx:           tx,
		requestRepo:  requestRepo,
		responseRepo: responseRepo,
		userRepo:     userRepo,
		redis:        redis,
	}
}

// Accept records a volunteer's acceptance of a request. The whole
// read-validate-write sequence runs in one transaction: the request row is
// locked first, so two concurrent accepts on the same request serialize and
// the loser fails the live-response check. A racer that slips past the check
// anyway dies on the responses unique index, which maps to the same
// ErrAlreadyAccepted. Validation order: existence, status, self-response,
// exclusivity.
func (s *service) Accept(ctx context.Context, requestID, volunteerID uuid.UUID) (*domain.AcceptResult, error) {
	var resp domain.Response

	err := s.tx.WithinTx(ctx, func(tx *sqlx.Tx) error {
		req, err := s.requestRepo.GetByIDForUpdate(ctx, tx, requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return ErrRequestNotFound
		}

		if req.Status != domain.StatusActive {
			return ErrRequestNotAvailable
		}

		if req.UserID == volunteerID {
			return ErrOwnRequest
		}

		count, err := s.responseRepo.CountByRequestTx(ctx, tx, requestID)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyAccepted
		}

		resp = domain.Response{
			RequestID:   requestID,
			VolunteerID: volunteerID,
		}
		if err := s.responseRepo.CreateTx(ctx, tx, &resp); err != nil {
			if repository.IsUniqueViolation(err) {
				return ErrAlreadyAccepted
			}
			return err
		}

		return s.requestRepo.UpdateStatusTx(ctx, tx, requestID, domain.StatusInProgress)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateStats(ctx)

	return s.buildAcceptResult(ctx, resp)
}

// Withdraw reverses a previously recorded acceptance. The status reset to
// ACTIVE is unconditional: the one-responder rule guarantees no other
// volunteer holds the request.
func (s *service) Withdraw(ctx context.Context, requestID, volunteerID uuid.UUID) error {
	err := s.tx.WithinTx(ctx, func(tx *sqlx.Tx) error {
		resp, err := s.responseRepo.GetByKeyTx(ctx, tx, requestID, volunteerID)
		if err != nil {
			return err
		}
		if resp == nil {
			return ErrResponseNotFound
		}

		if err := s.responseRepo.DeleteTx(ctx, tx, requestID, volunteerID); err != nil {
			return err
		}

		return s.requestRepo.UpdateStatusTx(ctx, tx, requestID, domain.StatusActive)
	})
	if err != nil {
		return err
	}

	s.invalidateStats(ctx)
	return nil
}

func (s *service) buildAcceptResult(ctx context.Context, resp domain.Response) (*domain.AcceptResult, error) {
	result := &domain.AcceptResult{
		Response: resp,
		Message:  "Successfully accepted the request",
	}

	req, err := s.requestRepo.GetByID(ctx, resp.RequestID)
	if err != nil {
		return nil, err
	}
	if req != nil {
		result.Request = domain.RequestSummary{
			ID:     req.ID,
			Title:  req.Title,
			Status: req.Status,
		}
	}

	volunteer, err := s.userRepo.GetByID(ctx, resp.VolunteerID)
	if err != nil {
		return nil, err
	}
	if volunteer != nil {
		result.Volunteer = domain.UserSummary{
			ID:    volunteer.ID,
			Name:  volunteer.Name,
			Phone: volunteer.Phone,
		}
	}

	return result, nil
}

func (s *service) ListByRequest(ctx context.Context, requestID uuid.UUID, params domain.PaginationParams) (domain.Page[domain.ResponseVolunteer], error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return domain.Page[domain.ResponseVolunteer]{}, err
	}
	if req == nil {
		return domain.Page[domain.ResponseVolunteer]{}, ErrRequestNotFound
	}

	responses, total, err := s.responseRepo.ListByRequest(ctx, requestID, params)
	if err != nil {
		return domain.Page[domain.ResponseVolunteer]{}, err
	}
	return domain.NewPage(responses, params, total), nil
}

func (s *service) ListByVolunteer(ctx context.Context, volunteerID uuid.UUID, params domain.PaginationParams) (domain.Page[domain.VolunteerResponse], error) {
	responses, total, err := s.responseRepo.ListByVolunteer(ctx, volunteerID, params)
	if err != nil {
		return domain.Page[domain.VolunteerResponse]{}, err
	}
	return domain.NewPage(responses, params, total), nil
}

func (s *service) invalidateStats(ctx context.Context) {
	if s.redis != nil {
		_ = s.redis.Del(ctx, "platform:stats").Err()
	}
}
