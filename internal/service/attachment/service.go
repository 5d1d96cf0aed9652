package attachment

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"volunteer-hub/internal/config"
	"volunteer-hub/internal/domain"
	"volunteer-hub/internal/repository"
)

var (
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrRequestNotFound    = errors.New("request not found")
	ErrNotAllowed         = errors.New("not allowed to manage attachments on this request")
	ErrStorageUnavailable = errors.New("attachment storage is not available")
)

type UploadInput struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type Service interface {
	Upload(ctx context.Context, caller domain.Identity, requestID uuid.UUID, input UploadInput) (*domain.Attachment, error)
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.Attachment, error)
	Delete(ctx context.Context, caller domain.Identity, id uuid.UUID) error
}

type service struct {
	attachmentRepo repository.AttachmentRepository
	requestRepo    repository.RequestRepository
	minioClient    *minio.Client
	cfg            *config.Config
}

func NewService(attachmentRepo repository.AttachmentRepository, requestRepo repository.RequestRepository, minioClient *minio.Client, cfg *config.Config) Service {
	return &service{
		attachmentRepo: attachmentRepo,
		requestRepo:    requestRepo,
		minioClient:    minioClient,
		cfg:            cfg,
	}
}

func (s *service) Upload(ctx context.Context, caller domain.Identity, requestID uuid.UUID, input UploadInput) (*domain.Attachment, error) {
	if s.minioClient == nil {
		return nil, ErrStorageUnavailable
	}

	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	if !domain.CanModifyRequest(caller, req.UserID) {
		return nil, ErrNotAllowed
	}

	id := uuid.New()
	objectKey := fmt.Sprintf("requests/%s/%s-%s", requestID, id, input.FileName)

	_, err = s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, objectKey, input.Reader, input.Size, minio.PutObjectOptions{
		ContentType: input.ContentType,
	})
	if err != nil {
		return nil, err
	}

	att := &domain.Attachment{
		ID:          id,
		RequestID:   requestID,
		ObjectKey:   objectKey,
		FileName:    input.FileName,
		ContentType: input.ContentType,
		SizeBytes:   input.Size,
		UploadedBy:  caller.ID,
	}

	if err := s.attachmentRepo.Create(ctx, att); err != nil {
		// The object is orphaned without its record; best effort removal.
		_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, objectKey, minio.RemoveObjectOptions{})
		return nil, err
	}

	att.URL = s.publicURL(objectKey)
	return att, nil
}

func (s *service) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.Attachment, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}

	attachments, err := s.attachmentRepo.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	for i := range attachments {
		attachments[i].URL = s.publicURL(attachments[i].ObjectKey)
	}
	return attachments, nil
}

func (s *service) Delete(ctx context.Context, caller domain.Identity, id uuid.UUID) error {
	att, err := s.attachmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if att == nil {
		return ErrAttachmentNotFound
	}

	req, err := s.requestRepo.GetByID(ctx, att.RequestID)
	if err != nil {
		return err
	}
	if req != nil && !domain.CanModifyRequest(caller, req.UserID) {
		return ErrNotAllowed
	}

	if err := s.attachmentRepo.Delete(ctx, id); err != nil {
		return err
	}

	if s.minioClient != nil {
		_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, att.ObjectKey, minio.RemoveObjectOptions{})
	}
	return nil
}

func (s *service) publicURL(objectKey string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, objectKey)
}
