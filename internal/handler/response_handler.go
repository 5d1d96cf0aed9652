package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"volunteer-hub/internal/config"
	"volunteer-hub/internal/domain"
	"volunteer-hub/internal/middleware"
	"volunteer-hub/internal/service/response"
)

type ResponseHandler struct {
	responseService response.Service
	cfg             *config.Config
}

func NewResponseHandler(responseService response.Service, cfg *config.Config) *ResponseHandler {
	return &ResponseHandler{responseService: responseService, cfg: cfg}
}

func (h *ResponseHandler) Accept(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	result, err := h.responseService.Accept(c.Context(), requestID, middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, response.ErrRequestNotFound) {
			return middleware.NotFound("Request not found")
		}
		if errors.Is(err, response.ErrRequestNotAvailable) {
			return middleware.Conflict("Request is no longer available for responses")
		}
		if errors.Is(err, response.ErrOwnRequest) {
			return middleware.BadRequest("You cannot respond to your own request")
		}
		if errors.Is(err, response.ErrAlreadyAccepted) {
			return middleware.Conflict("Request has already been accepted by another volunteer")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *ResponseHandler) Withdraw(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	if err := h.responseService.Withdraw(c.Context(), requestID, middleware.CurrentUserID(c)); err != nil {
		if errors.Is(err, response.ErrResponseNotFound) {
			return middleware.NotFound("You have no response on this request")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Response withdrawn. The request is open again.",
	})
}

func (h *ResponseHandler) ListByRequest(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	result, err := h.responseService.ListByRequest(c.Context(), requestID, h.paginationParams(c))
	if err != nil {
		if errors.Is(err, response.ErrRequestNotFound) {
			return middleware.NotFound("Request not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// ListMine returns all responses made by the calling volunteer.
func (h *ResponseHandler) ListMine(c *fiber.Ctx) error {
	result, err := h.responseService.ListByVolunteer(c.Context(), middleware.CurrentUserID(c), h.paginationParams(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ResponseHandler) paginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.PaginationParams{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 0),
	}
	params.Validate(h.cfg.DefaultPageSize)
	return params
}
