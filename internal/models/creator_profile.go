package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

type CreatorProfile struct {
	BaseModel
	UserID       string         `gorm:"uniqueIndex;not null" json:"user_id"`
	DisplayName  string         `gorm:"not null" json:"display_name"`
	Role         string         `json:"role"` // primary craft: "Editor", "Sound Designer", ...
	Skills       datatypes.JSON `gorm:"type:jsonb" json:"skills"`
	Location     string         `json:"location"`
	Availability string         `json:"availability"`
	Bio          string         `json:"bio"`
	Points       int            `gorm:"default:0" json:"points"`
	// RegSeq is a monotonically increasing registration key used for
	// deterministic tie-breaking: earliest-registered creator wins.
	RegSeq int64 `gorm:"autoIncrement;uniqueIndex" json:"-"`
}

func (p *CreatorProfile) GetSkills() []string {
	var skills []string
	if len(p.Skills) > 0 {
		_ = json.Unmarshal(p.Skills, &skills)
	}
	return skills
}

func (p *CreatorProfile) SetSkills(skills []string) {
	data, _ := json.Marshal(skills)
	p.Skills = datatypes.JSON(data)
}
