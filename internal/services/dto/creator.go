package dto

import "time"

type UpdateCreatorProfileRequest struct {
	DisplayName  *string  `json:"display_name" binding:"omitempty,min=2,max=100"`
	Role         *string  `json:"role" binding:"omitempty,roletag"`
	Skills       []string `json:"skills" binding:"omitempty,dive,roletag"`
	Location     *string  `json:"location" binding:"omitempty,max=120"`
	Availability *string  `json:"availability" binding:"omitempty,max=60"`
	Bio          *string  `json:"bio" binding:"omitempty,max=2000"`
}

type CreatorProfileResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	DisplayName  string    `json:"display_name"`
	Role         string    `json:"role"`
	Skills       []string  `json:"skills"`
	Location     string    `json:"location,omitempty"`
	Availability string    `json:"availability,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	Points       int       `json:"points"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required,min=2,max=200"`
	Description string `json:"description" binding:"omitempty,max=5000"`
	Genre       string `json:"genre" binding:"omitempty,max=60"`
}

type ProjectResponse struct {
	ID          string    `json:"id"`
	CreatorID   string    `json:"creator_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Genre       string    `json:"genre,omitempty"`
	Impressions int       `json:"impressions"`
	CreatedAt   time.Time `json:"created_at"`
}

type RewardResponse struct {
	ID        string    `json:"id"`
	CreatorID string    `json:"creator_id"`
	Reason    string    `json:"reason"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"created_at"`
}
