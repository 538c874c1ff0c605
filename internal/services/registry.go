package services

import (
	"creatordna_backend/internal/fairness"
	"creatordna_backend/internal/repositories"

	"gorm.io/gorm"
)

// ServiceContainer wires every service with its repositories. Handlers
// receive this and pick the services they need.
type ServiceContainer struct {
	Auth         AuthService
	Creator      CreatorService
	Project      ProjectService
	Collab       *CollabServiceImpl
	Matching     MatchingService
	Notification NotificationService

	// CollabRequests is exposed for the matching worker's sweep.
	CollabRequests repositories.CollabRequestRepository
}

// NewServiceContainer builds the full service graph on top of a gorm
// connection. emailSender may be nil; fairnessWindow must not be.
func NewServiceContainer(db *gorm.DB, fairnessWindow fairness.Window, emailSender EmailSender) *ServiceContainer {
	userRepo := repositories.NewUserRepository(db)
	creatorRepo := repositories.NewCreatorRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	requestRepo := repositories.NewCollabRequestRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	rewardRepo := repositories.NewRewardRepository(db)

	notificationSvc := NewNotificationService(notificationRepo, userRepo, creatorRepo, emailSender)
	matchingSvc := NewMatchingService(requestRepo, creatorRepo, notificationSvc, fairnessWindow)
	collabSvc := NewCollabService(requestRepo, creatorRepo, projectRepo, rewardRepo, notificationSvc, matchingSvc)

	return &ServiceContainer{
		Auth:           NewAuthService(userRepo, creatorRepo),
		Creator:        NewCreatorService(creatorRepo, rewardRepo),
		Project:        NewProjectService(projectRepo, creatorRepo),
		Collab:         collabSvc,
		Matching:       matchingSvc,
		Notification:   notificationSvc,
		CollabRequests: requestRepo,
	}
}
