package handlers

import "creatordna_backend/internal/services"

// AppHandlers groups every HTTP handler for route registration.
type AppHandlers struct {
	Auth         *AuthHandler
	Creator      *CreatorHandler
	Project      *ProjectHandler
	Collab       *CollabHandler
	Notification *NotificationHandler
}

func NewAppHandlers(svc *services.ServiceContainer) *AppHandlers {
	return &AppHandlers{
		Auth:         NewAuthHandler(svc.Auth),
		Creator:      NewCreatorHandler(svc.Creator),
		Project:      NewProjectHandler(svc.Project),
		Collab:       NewCollabHandler(svc.Collab),
		Notification: NewNotificationHandler(svc.Notification, svc.Creator),
	}
}
