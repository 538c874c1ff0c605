package dto

import "time"

type CreateCollabRequestRequest struct {
	ProjectID    string   `json:"project_id" binding:"required,uuid"`
	NeededRoles  []string `json:"needed_roles" binding:"required,min=1,dive,roletag"`
	LocationPref *string  `json:"location_pref" binding:"omitempty,max=120"`
	Availability *string  `json:"availability" binding:"omitempty,max=60"`
	Budget       *string  `json:"budget" binding:"omitempty,max=120"`
}

type CollabRequestResponse struct {
	ID           string    `json:"id"`
	RequesterID  string    `json:"requester_id"`
	ProjectID    string    `json:"project_id"`
	NeededRoles  []string  `json:"needed_roles"`
	LocationPref *string   `json:"location_pref,omitempty"`
	Availability *string   `json:"availability,omitempty"`
	Budget       *string   `json:"budget,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type MatchResponse struct {
	ID          string    `json:"id"`
	RequestID   string    `json:"request_id"`
	CandidateID string    `json:"candidate_id"`
	// Candidate is populated on listing endpoints so clients can render
	// a match card without extra round trips.
	Candidate *CreatorSummary `json:"candidate,omitempty"`
	Score     float64         `json:"score"`
	Reasons   []string        `json:"reasons"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

type CreatorSummary struct {
	ID           string   `json:"id"`
	DisplayName  string   `json:"display_name"`
	Role         string   `json:"role"`
	Skills       []string `json:"skills"`
	Location     string   `json:"location,omitempty"`
	Availability string   `json:"availability,omitempty"`
}

type AcceptMatchResponse struct {
	Match   MatchResponse         `json:"match"`
	Request CollabRequestResponse `json:"request"`
}

type AuditEntryResponse struct {
	ID         string    `json:"id"`
	RequestID  string    `json:"request_id"`
	MatchID    *string   `json:"match_id,omitempty"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ActorID    string    `json:"actor_id"`
	CreatedAt  time.Time `json:"created_at"`
}
