package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// CollabRequest is a creator's open call for collaborators on a project.
// The request and its matches form one consistency boundary: all state
// transitions go through CollabRequestRepository under a row lock on the
// request.
type CollabRequest struct {
	BaseModel
	RequesterID  string         `gorm:"not null;index" json:"requester_id"`
	ProjectID    string         `gorm:"not null;index" json:"project_id"`
	NeededRoles  datatypes.JSON `gorm:"type:jsonb" json:"needed_roles"`
	LocationPref *string        `json:"location_pref,omitempty"`
	Availability *string        `json:"availability,omitempty"`
	Budget       *string        `json:"budget,omitempty"` // compensation model, e.g. "Revenue share"
	Status       RequestStatus  `gorm:"not null;default:'open';index" json:"status"`
}

func (r *CollabRequest) GetNeededRoles() []string {
	var roles []string
	if len(r.NeededRoles) > 0 {
		_ = json.Unmarshal(r.NeededRoles, &roles)
	}
	return roles
}

func (r *CollabRequest) SetNeededRoles(roles []string) {
	data, _ := json.Marshal(roles)
	r.NeededRoles = datatypes.JSON(data)
}
