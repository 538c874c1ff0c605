package repositories

import (
	"errors"
	"time"

	"creatordna_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NotificationCriteria filters a recipient's notification feed.
type NotificationCriteria struct {
	RecipientID string
	UnreadOnly  bool
	Kind        *models.NotificationKind
	Limit       int
	Offset      int
}

type NotificationRepository interface {
	// Create inserts a notification. A duplicate of the
	// (recipient, kind, payload_ref) dedup key is silently dropped;
	// created reports whether a row was actually inserted.
	Create(notification *models.Notification) (created bool, err error)
	FindByID(id string) (*models.Notification, error)
	// FindByRecipient returns notifications in delivery order (oldest
	// first) for the given recipient, excluding archived ones.
	FindByRecipient(criteria NotificationCriteria) ([]models.Notification, error)
	GetUnreadCount(recipientID string) (int64, error)
	MarkAsRead(id, recipientID string) error
	MarkAllAsRead(recipientID string) error
	Archive(id, recipientID string) error
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) Create(notification *models.Notification) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "recipient_id"}, {Name: "kind"}, {Name: "payload_ref"}},
		DoNothing: true,
	}).Create(notification)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *NotificationRepositoryImpl) FindByID(id string) (*models.Notification, error) {
	var n models.Notification
	err := r.db.First(&n, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotificationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepositoryImpl) FindByRecipient(criteria NotificationCriteria) ([]models.Notification, error) {
	query := r.db.Where("recipient_id = ? AND is_archived = ?", criteria.RecipientID, false)
	if criteria.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if criteria.Kind != nil {
		query = query.Where("kind = ?", *criteria.Kind)
	}
	if criteria.Limit > 0 {
		query = query.Limit(criteria.Limit)
	}
	if criteria.Offset > 0 {
		query = query.Offset(criteria.Offset)
	}

	var notifications []models.Notification
	// Tie-break on id so rows created in the same instant keep a
	// stable order.
	err := query.Order("created_at ASC, id ASC").Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepositoryImpl) GetUnreadCount(recipientID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ? AND is_archived = ?", recipientID, false, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) MarkAsRead(id, recipientID string) error {
	now := time.Now()
	result := r.db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Updates(map[string]interface{}{"is_read": true, "read_at": &now})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(recipientID string) error {
	now := time.Now()
	return r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": &now}).Error
}

// Archive hides a notification from the feed. Rows are never deleted,
// the dedup key must keep working after a recipient clears their feed.
func (r *NotificationRepositoryImpl) Archive(id, recipientID string) error {
	result := r.db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("is_archived", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
