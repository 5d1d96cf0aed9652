package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"volunteer-hub/internal/middleware"
	"volunteer-hub/internal/service/attachment"
)

const maxAttachmentSize = 10 * 1024 * 1024

type AttachmentHandler struct {
	attachmentService attachment.Service
}

func NewAttachmentHandler(attachmentService attachment.Service) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

func (h *AttachmentHandler) Upload(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("File is required")
	}
	if file.Size > maxAttachmentSize {
		return middleware.BadRequest("File size must be less than 10MB")
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	fileReader, err := file.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read file")
	}
	defer fileReader.Close()

	att, err := h.attachmentService.Upload(c.Context(), middleware.CurrentIdentity(c), requestID, attachment.UploadInput{
		FileName:    file.Filename,
		ContentType: contentType,
		Size:        file.Size,
		Reader:      fileReader,
	})
	if err != nil {
		if errors.Is(err, attachment.ErrRequestNotFound) {
			return middleware.NotFound("Request not found")
		}
		if errors.Is(err, attachment.ErrNotAllowed) {
			return middleware.Forbidden("You can only attach files to your own requests")
		}
		if errors.Is(err, attachment.ErrStorageUnavailable) {
			return middleware.NewError(fiber.StatusServiceUnavailable, "Attachment storage is not available")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(att)
}

func (h *AttachmentHandler) ListByRequest(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	attachments, err := h.attachmentService.ListByRequest(c.Context(), requestID)
	if err != nil {
		if errors.Is(err, attachment.ErrRequestNotFound) {
			return middleware.NotFound("Request not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(attachments)
}

func (h *AttachmentHandler) Delete(c *fiber.Ctx) error {
	attachmentID, err := uuid.Parse(c.Params("attachmentId"))
	if err != nil {
		return middleware.BadRequest("Invalid attachment ID")
	}

	if err := h.attachmentService.Delete(c.Context(), middleware.CurrentIdentity(c), attachmentID); err != nil {
		if errors.Is(err, attachment.ErrAttachmentNotFound) {
			return middleware.NotFound("Attachment not found")
		}
		if errors.Is(err, attachment.ErrNotAllowed) {
			return middleware.Forbidden("You can only delete attachments on your own requests")
		}
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}
