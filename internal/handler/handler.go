package handler

import (
	"volunteer-hub/internal/config"
	"volunteer-hub/internal/service"
)

type Handlers struct {
	Auth       *AuthHandler
	User       *UserHandler
	Request    *RequestHandler
	Response   *ResponseHandler
	Attachment *AttachmentHandler
	Dashboard  *DashboardHandler
}

func NewHandlers(services *service.Services, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:       NewAuthHandler(services.Auth),
		User:       NewUserHandler(services.User),
		Request:    NewRequestHandler(services.Request, cfg),
		Response:   NewResponseHandler(services.Response, cfg),
		Attachment: NewAttachmentHandler(services.Attachment),
		Dashboard:  NewDashboardHandler(services.Dashboard),
	}
}
