package repositories

import (
	"errors"

	"creatordna_backend/internal/models"

	"gorm.io/gorm"
)

type CreatorRepository interface {
	Create(profile *models.CreatorProfile) error
	Update(profile *models.CreatorProfile) error
	FindByID(id string) (*models.CreatorProfile, error)
	FindByUserID(userID string) (*models.CreatorProfile, error)
	// FindAll returns profiles ordered by registration sequence so the
	// matcher sees candidates in a stable order.
	FindAll() ([]models.CreatorProfile, error)
	AddPoints(creatorID string, points int) error
}

type CreatorRepositoryImpl struct {
	db *gorm.DB
}

func NewCreatorRepository(db *gorm.DB) CreatorRepository {
	return &CreatorRepositoryImpl{db: db}
}

func (r *CreatorRepositoryImpl) Create(profile *models.CreatorProfile) error {
	return r.db.Create(profile).Error
}

func (r *CreatorRepositoryImpl) Update(profile *models.CreatorProfile) error {
	return r.db.Save(profile).Error
}

func (r *CreatorRepositoryImpl) FindByID(id string) (*models.CreatorProfile, error) {
	var profile models.CreatorProfile
	err := r.db.First(&profile, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCreatorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *CreatorRepositoryImpl) FindByUserID(userID string) (*models.CreatorProfile, error) {
	var profile models.CreatorProfile
	err := r.db.First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCreatorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *CreatorRepositoryImpl) FindAll() ([]models.CreatorProfile, error) {
	var profiles []models.CreatorProfile
	err := r.db.Order("reg_seq ASC").Find(&profiles).Error
	return profiles, err
}

func (r *CreatorRepositoryImpl) AddPoints(creatorID string, points int) error {
	result := r.db.Model(&models.CreatorProfile{}).
		Where("id = ?", creatorID).
		UpdateColumn("points", gorm.Expr("points + ?", points))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCreatorNotFound
	}
	return nil
}
