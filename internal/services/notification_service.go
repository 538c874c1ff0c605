package services

import (
	"context"
	"encoding/json"

	"creatordna_backend/internal/logger"
	"creatordna_backend/internal/models"
	"creatordna_backend/internal/repositories"
	"creatordna_backend/internal/services/dto"

	"gorm.io/datatypes"
)

// EmailSender delivers a notification over email as a best-effort side
// channel. The inbox row is the durable record.
type EmailSender interface {
	Send(to, subject, body string) error
}

type NotificationService interface {
	// Emit persists a notification before the triggering operation
	// returns. Duplicate emissions for the same (recipient, kind,
	// payloadRef) are silently dropped.
	Emit(ctx context.Context, recipientID string, kind models.NotificationKind, payloadRef, title, message string, data map[string]interface{}) error
	List(ctx context.Context, recipientID string, unreadOnly bool, limit, offset int) (*dto.NotificationListResponse, error)
	MarkAsRead(ctx context.Context, recipientID, notificationID string) error
	MarkAllAsRead(ctx context.Context, recipientID string) error
	Archive(ctx context.Context, recipientID, notificationID string) error
}

type NotificationServiceImpl struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	creatorRepo      repositories.CreatorRepository
	emailSender      EmailSender // nil when email is disabled
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	creatorRepo repositories.CreatorRepository,
	emailSender EmailSender,
) NotificationService {
	return &NotificationServiceImpl{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		creatorRepo:      creatorRepo,
		emailSender:      emailSender,
	}
}

func (s *NotificationServiceImpl) Emit(ctx context.Context, recipientID string, kind models.NotificationKind, payloadRef, title, message string, data map[string]interface{}) error {
	if !models.ValidNotificationKind(kind) {
		logger.CtxWarn(ctx, "dropping notification with unknown kind", "kind", string(kind))
		return nil
	}

	notification := &models.Notification{
		RecipientID: recipientID,
		Kind:        kind,
		PayloadRef:  payloadRef,
		Title:       title,
		Message:     message,
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err == nil {
			notification.Data = datatypes.JSON(raw)
		}
	}

	created, err := s.notificationRepo.Create(notification)
	if err != nil {
		return translateRepoError(err)
	}
	if !created {
		logger.CtxDebug(ctx, "duplicate notification suppressed",
			"recipient_id", recipientID, "kind", string(kind), "payload_ref", payloadRef)
		return nil
	}

	logger.CtxInfo(ctx, "notification emitted",
		"recipient_id", recipientID, "kind", string(kind), "payload_ref", payloadRef)

	if s.emailSender != nil {
		s.sendEmail(ctx, recipientID, title, message)
	}
	return nil
}

// sendEmail is fire and forget: a mail failure never fails the emit.
func (s *NotificationServiceImpl) sendEmail(ctx context.Context, recipientID, subject, body string) {
	profile, err := s.creatorRepo.FindByID(recipientID)
	if err != nil {
		return
	}
	user, err := s.userRepo.FindByID(profile.UserID)
	if err != nil {
		return
	}
	if err := s.emailSender.Send(user.Email, subject, body); err != nil {
		logger.CtxWarn(ctx, "notification email failed", "recipient_id", recipientID, "error", err)
	}
}

func (s *NotificationServiceImpl) List(ctx context.Context, recipientID string, unreadOnly bool, limit, offset int) (*dto.NotificationListResponse, error) {
	notifications, err := s.notificationRepo.FindByRecipient(repositories.NotificationCriteria{
		RecipientID: recipientID,
		UnreadOnly:  unreadOnly,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return nil, translateRepoError(err)
	}

	unread, err := s.notificationRepo.GetUnreadCount(recipientID)
	if err != nil {
		return nil, translateRepoError(err)
	}

	resp := &dto.NotificationListResponse{
		Notifications: make([]dto.NotificationResponse, 0, len(notifications)),
		UnreadCount:   unread,
	}
	for _, n := range notifications {
		resp.Notifications = append(resp.Notifications, toNotificationResponse(n))
	}
	return resp, nil
}

func (s *NotificationServiceImpl) MarkAsRead(ctx context.Context, recipientID, notificationID string) error {
	return translateRepoError(s.notificationRepo.MarkAsRead(notificationID, recipientID))
}

func (s *NotificationServiceImpl) MarkAllAsRead(ctx context.Context, recipientID string) error {
	return translateRepoError(s.notificationRepo.MarkAllAsRead(recipientID))
}

func (s *NotificationServiceImpl) Archive(ctx context.Context, recipientID, notificationID string) error {
	return translateRepoError(s.notificationRepo.Archive(notificationID, recipientID))
}

func toNotificationResponse(n models.Notification) dto.NotificationResponse {
	resp := dto.NotificationResponse{
		ID:        n.ID,
		Kind:      string(n.Kind),
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
	if len(n.Data) > 0 {
		var data map[string]interface{}
		if err := json.Unmarshal(n.Data, &data); err == nil {
			resp.Data = data
		}
	}
	return resp
}
