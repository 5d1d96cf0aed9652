package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"volunteer-hub/internal/config"
	"volunteer-hub/internal/domain"
	"volunteer-hub/internal/middleware"
	"volunteer-hub/internal/service/request"
)

type RequestHandler struct {
	requestService request.Service
	cfg            *config.Config
}

func NewRequestHandler(requestService request.Service, cfg *config.Config) *RequestHandler {
	return &RequestHandler{requestService: requestService, cfg: cfg}
}

func (h *RequestHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateRequestInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	req, err := h.requestService.Create(c.Context(), middleware.CurrentUserID(c), input)
	if err != nil {
		if errors.Is(err, request.ErrInvalidCategory) {
			return middleware.BadRequest("Invalid category")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(req)
}

func (h *RequestHandler) List(c *fiber.Ctx) error {
	filter, err := parseRequestFilter(c)
	if err != nil {
		return err
	}

	result, err := h.requestService.List(c.Context(), filter, h.paginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// ListMine returns only the caller's own requests, any status.
func (h *RequestHandler) ListMine(c *fiber.Ctx) error {
	filter, err := parseRequestFilter(c)
	if err != nil {
		return err
	}

	ownerID := middleware.CurrentUserID(c)
	filter.OwnerID = &ownerID

	result, err := h.requestService.List(c.Context(), filter, h.paginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *RequestHandler) Get(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	detail, err := h.requestService.GetWithResponses(c.Context(), requestID)
	if err != nil {
		if errors.Is(err, request.ErrRequestNotFound) {
			return middleware.NotFound("Request not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(detail)
}

func (h *RequestHandler) Update(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	var input domain.UpdateRequestInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	req, err := h.requestService.Update(c.Context(), middleware.CurrentIdentity(c), requestID, input)
	if err != nil {
		if errors.Is(err, request.ErrRequestNotFound) {
			return middleware.NotFound("Request not found")
		}
		if errors.Is(err, request.ErrNotRequestOwner) {
			return middleware.Forbidden("You can only modify your own requests")
		}
		if errors.Is(err, request.ErrInvalidCategory) {
			return middleware.BadRequest("Invalid category")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(req)
}

func (h *RequestHandler) UpdateStatus(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	var input domain.UpdateRequestStatusInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	req, err := h.requestService.UpdateStatus(c.Context(), middleware.CurrentIdentity(c), requestID, input.Status)
	if err != nil {
		if errors.Is(err, request.ErrRequestNotFound) {
			return middleware.NotFound("Request not found")
		}
		if errors.Is(err, request.ErrNotRequestOwner) {
			return middleware.Forbidden("You can only modify your own requests")
		}
		if errors.Is(err, request.ErrInvalidStatus) {
			return middleware.BadRequest("Invalid status")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(req)
}

func (h *RequestHandler) Delete(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	if err := h.requestService.Delete(c.Context(), middleware.CurrentIdentity(c), requestID); err != nil {
		if errors.Is(err, request.ErrRequestNotFound) {
			return middleware.NotFound("Request not found")
		}
		if errors.Is(err, request.ErrNotRequestOwner) {
			return middleware.Forbidden("You can only delete your own requests")
		}
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

// parseRequestFilter decodes the tagged fields, then the date bounds which
// the query parser cannot handle on its own.
func parseRequestFilter(c *fiber.Ctx) (domain.RequestFilter, error) {
	var filter domain.RequestFilter
	if err := c.QueryParser(&filter); err != nil {
		return filter, middleware.BadRequest("Invalid query parameters")
	}

	if from := c.Query("created_at_from"); from != "" {
		parsed, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return filter, middleware.BadRequest("created_at_from must be RFC 3339")
		}
		filter.CreatedAtFrom = &parsed
	}
	if to := c.Query("created_at_to"); to != "" {
		parsed, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return filter, middleware.BadRequest("created_at_to must be RFC 3339")
		}
		filter.CreatedAtTo = &parsed
	}

	return filter, nil
}

func (h *RequestHandler) paginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.PaginationParams{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 0),
	}
	params.Validate(h.cfg.DefaultPageSize)
	return params
}
