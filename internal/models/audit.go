package models

import "time"

// CollabAuditEntry records a single lifecycle transition inside a
// request aggregate: on the request itself (MatchID nil) or on one of
// its matches. Entries are append-only: no update or delete path
// exists.
type CollabAuditEntry struct {
	ID         string        `gorm:"type:uuid;primaryKey" json:"id"`
	RequestID  string        `gorm:"not null;index" json:"request_id"`
	MatchID    *string       `json:"match_id,omitempty"`
	FromStatus string        `gorm:"not null" json:"from_status"`
	ToStatus   string        `gorm:"not null" json:"to_status"`
	ActorID    string        `gorm:"not null" json:"actor_id"`
	CreatedAt  time.Time     `gorm:"default:now()" json:"created_at"`
}
