package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"volunteer-hub/internal/config"
	"volunteer-hub/internal/repository"
	"volunteer-hub/internal/service/attachment"
	"volunteer-hub/internal/service/auth"
	"volunteer-hub/internal/service/dashboard"
	"volunteer-hub/internal/service/email"
	"volunteer-hub/internal/service/request"
	"volunteer-hub/internal/service/response"
	"volunteer-hub/internal/service/user"
)

type Services struct {
	Auth       auth.Service
	User       user.Service
	Request    request.Service
	Response   response.Service
	Attachment attachment.Service
	Dashboard  dashboard.Service
	Email      email.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config) *Services {
	emailService := email.NewService(cfg)
	authService := auth.NewService(repos.User, repos.Session, emailService, cfg)
	userService := user.NewService(repos.User)
	requestService := request.NewService(repos.Request, repos.Response, repos.User, redis)
	responseService := response.NewService(repos, repos.Request, repos.Response, repos.User, redis)
	attachmentService := attachment.NewService(repos.Attachment, repos.Request, minioClient, cfg)
	dashboardService := dashboard.NewService(repos.Request, redis)

	return &Services{
		Auth:       authService,
		User:       userService,
		Request:    requestService,
		Response:   responseService,
		Attachment: attachmentService,
		Dashboard:  dashboardService,
		Email:      emailService,
	}
}
