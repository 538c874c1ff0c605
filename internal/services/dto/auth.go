package dto

type RegisterRequest struct {
	Email        string   `json:"email" binding:"required,email"`
	Password     string   `json:"password" binding:"required,min=8"`
	DisplayName  string   `json:"display_name" binding:"required,min=2,max=100"`
	Role         string   `json:"role" binding:"required,roletag"`
	Skills       []string `json:"skills" binding:"omitempty,dive,roletag"`
	Location     string   `json:"location" binding:"omitempty,max=120"`
	Availability string   `json:"availability" binding:"omitempty,max=60"`
	Bio          string   `json:"bio" binding:"omitempty,max=2000"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	CreatorID string `json:"creator_id"`
}
