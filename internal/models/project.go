package models

type Project struct {
	BaseModel
	CreatorID   string `gorm:"not null;index" json:"creator_id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	Genre       string `json:"genre"`
	Impressions int    `gorm:"default:0" json:"impressions"`
}
