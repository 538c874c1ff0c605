package repositories

import (
	"creatordna_backend/internal/models"

	"gorm.io/gorm"
)

type RewardRepository interface {
	Create(reward *models.Reward) error
	ListByCreator(creatorID string) ([]models.Reward, error)
}

type RewardRepositoryImpl struct {
	db *gorm.DB
}

func NewRewardRepository(db *gorm.DB) RewardRepository {
	return &RewardRepositoryImpl{db: db}
}

func (r *RewardRepositoryImpl) Create(reward *models.Reward) error {
	return r.db.Create(reward).Error
}

func (r *RewardRepositoryImpl) ListByCreator(creatorID string) ([]models.Reward, error) {
	var rewards []models.Reward
	err := r.db.Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Find(&rewards).Error
	return rewards, err
}
