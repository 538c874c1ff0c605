package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification is an inbox entry for a recipient. Emission is at least
// once; (recipient_id, kind, payload_ref) is the dedup key, enforced by
// a unique index so a retried emit is a no-op. Notifications are never
// deleted, only archived.
type Notification struct {
	BaseModel
	RecipientID string           `gorm:"not null;index;uniqueIndex:idx_notification_dedup" json:"recipient_id"`
	Kind        NotificationKind `gorm:"not null;uniqueIndex:idx_notification_dedup" json:"kind"`
	PayloadRef  string           `gorm:"not null;uniqueIndex:idx_notification_dedup" json:"payload_ref"`
	Title       string           `gorm:"not null" json:"title"`
	Message     string           `json:"message"`
	Data        datatypes.JSON   `gorm:"type:jsonb" json:"data,omitempty"`
	IsRead      bool             `gorm:"default:false" json:"is_read"`
	ReadAt      *time.Time       `json:"read_at,omitempty"`
	IsArchived  bool             `gorm:"default:false" json:"is_archived"`
}
