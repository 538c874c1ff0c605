package services

import (
	"context"

	"creatordna_backend/internal/models"
	"creatordna_backend/internal/repositories"
	"creatordna_backend/internal/services/dto"
)

type CreatorService interface {
	GetProfile(ctx context.Context, creatorID string) (*dto.CreatorProfileResponse, error)
	GetMyProfile(ctx context.Context, userID string) (*dto.CreatorProfileResponse, error)
	UpdateMyProfile(ctx context.Context, userID string, req *dto.UpdateCreatorProfileRequest) (*dto.CreatorProfileResponse, error)
	ListCreators(ctx context.Context) ([]dto.CreatorProfileResponse, error)
	ListMyRewards(ctx context.Context, userID string) ([]dto.RewardResponse, error)
}

type CreatorServiceImpl struct {
	creatorRepo repositories.CreatorRepository
	rewardRepo  repositories.RewardRepository
}

func NewCreatorService(creatorRepo repositories.CreatorRepository, rewardRepo repositories.RewardRepository) CreatorService {
	return &CreatorServiceImpl{creatorRepo: creatorRepo, rewardRepo: rewardRepo}
}

func (s *CreatorServiceImpl) GetProfile(ctx context.Context, creatorID string) (*dto.CreatorProfileResponse, error) {
	profile, err := s.creatorRepo.FindByID(creatorID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	resp := toCreatorProfileResponse(profile)
	return &resp, nil
}

func (s *CreatorServiceImpl) GetMyProfile(ctx context.Context, userID string) (*dto.CreatorProfileResponse, error) {
	profile, err := s.creatorRepo.FindByUserID(userID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	resp := toCreatorProfileResponse(profile)
	return &resp, nil
}

func (s *CreatorServiceImpl) UpdateMyProfile(ctx context.Context, userID string, req *dto.UpdateCreatorProfileRequest) (*dto.CreatorProfileResponse, error) {
	profile, err := s.creatorRepo.FindByUserID(userID)
	if err != nil {
		return nil, translateRepoError(err)
	}

	if req.DisplayName != nil {
		profile.DisplayName = *req.DisplayName
	}
	if req.Role != nil {
		profile.Role = *req.Role
	}
	if req.Skills != nil {
		profile.SetSkills(req.Skills)
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.Availability != nil {
		profile.Availability = *req.Availability
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}

	if err := s.creatorRepo.Update(profile); err != nil {
		return nil, translateRepoError(err)
	}
	resp := toCreatorProfileResponse(profile)
	return &resp, nil
}

func (s *CreatorServiceImpl) ListCreators(ctx context.Context) ([]dto.CreatorProfileResponse, error) {
	profiles, err := s.creatorRepo.FindAll()
	if err != nil {
		return nil, translateRepoError(err)
	}
	resp := make([]dto.CreatorProfileResponse, 0, len(profiles))
	for i := range profiles {
		resp = append(resp, toCreatorProfileResponse(&profiles[i]))
	}
	return resp, nil
}

func (s *CreatorServiceImpl) ListMyRewards(ctx context.Context, userID string) ([]dto.RewardResponse, error) {
	profile, err := s.creatorRepo.FindByUserID(userID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	rewards, err := s.rewardRepo.ListByCreator(profile.ID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	resp := make([]dto.RewardResponse, 0, len(rewards))
	for _, r := range rewards {
		resp = append(resp, dto.RewardResponse{
			ID:        r.ID,
			CreatorID: r.CreatorID,
			Reason:    r.Reason,
			Points:    r.Points,
			CreatedAt: r.CreatedAt,
		})
	}
	return resp, nil
}

func toCreatorProfileResponse(p *models.CreatorProfile) dto.CreatorProfileResponse {
	return dto.CreatorProfileResponse{
		ID:           p.ID,
		UserID:       p.UserID,
		DisplayName:  p.DisplayName,
		Role:         p.Role,
		Skills:       p.GetSkills(),
		Location:     p.Location,
		Availability: p.Availability,
		Bio:          p.Bio,
		Points:       p.Points,
		CreatedAt:    p.CreatedAt,
	}
}
