package models

type User struct {
	BaseModel
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Role         UserRole   `gorm:"not null;default:'creator'" json:"role"`
	Status       UserStatus `gorm:"not null;default:'active'" json:"status"`
}
