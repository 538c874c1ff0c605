package models

// Reward is a gamification points grant for a creator.
type Reward struct {
	BaseModel
	CreatorID string `gorm:"not null;index" json:"creator_id"`
	Reason    string `gorm:"not null" json:"reason"`
	Points    int    `gorm:"not null" json:"points"`
}
