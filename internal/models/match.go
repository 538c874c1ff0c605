package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// CollabMatch is a proposed pairing between a request and a candidate
// collaborator. At most one match per request may be accepted; the
// storage layer enforces this with a partial unique index on
// (request_id) WHERE status = 'accepted'.
type CollabMatch struct {
	BaseModel
	RequestID   string         `gorm:"not null;uniqueIndex:idx_request_candidate" json:"request_id"`
	CandidateID string         `gorm:"not null;uniqueIndex:idx_request_candidate;index" json:"candidate_id"`
	Score       float64        `gorm:"not null" json:"score"` // compatibility, [0,1]
	Reasons     datatypes.JSON `gorm:"type:jsonb" json:"reasons"`
	Status      MatchStatus    `gorm:"not null;default:'proposed';index" json:"status"`
}

func (m *CollabMatch) GetReasons() []string {
	var reasons []string
	if len(m.Reasons) > 0 {
		_ = json.Unmarshal(m.Reasons, &reasons)
	}
	return reasons
}

func (m *CollabMatch) SetReasons(reasons []string) {
	data, _ := json.Marshal(reasons)
	m.Reasons = datatypes.JSON(data)
}
