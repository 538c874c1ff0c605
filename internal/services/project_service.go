package services

import (
	"context"

	"creatordna_backend/internal/models"
	"creatordna_backend/internal/repositories"
	"creatordna_backend/internal/services/dto"
)

type ProjectService interface {
	CreateProject(ctx context.Context, userID string, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	GetProject(ctx context.Context, projectID string) (*dto.ProjectResponse, error)
	ListMyProjects(ctx context.Context, userID string) ([]dto.ProjectResponse, error)
}

type ProjectServiceImpl struct {
	projectRepo repositories.ProjectRepository
	creatorRepo repositories.CreatorRepository
}

func NewProjectService(projectRepo repositories.ProjectRepository, creatorRepo repositories.CreatorRepository) ProjectService {
	return &ProjectServiceImpl{projectRepo: projectRepo, creatorRepo: creatorRepo}
}

func (s *ProjectServiceImpl) CreateProject(ctx context.Context, userID string, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	profile, err := s.creatorRepo.FindByUserID(userID)
	if err != nil {
		return nil, translateRepoError(err)
	}

	project := &models.Project{
		CreatorID:   profile.ID,
		Title:       req.Title,
		Description: req.Description,
		Genre:       req.Genre,
	}
	if err := s.projectRepo.Create(project); err != nil {
		return nil, translateRepoError(err)
	}
	resp := toProjectResponse(project)
	return &resp, nil
}

func (s *ProjectServiceImpl) GetProject(ctx context.Context, projectID string) (*dto.ProjectResponse, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	resp := toProjectResponse(project)
	return &resp, nil
}

func (s *ProjectServiceImpl) ListMyProjects(ctx context.Context, userID string) ([]dto.ProjectResponse, error) {
	profile, err := s.creatorRepo.FindByUserID(userID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	projects, err := s.projectRepo.ListByCreator(profile.ID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	resp := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		resp = append(resp, toProjectResponse(&projects[i]))
	}
	return resp, nil
}

func toProjectResponse(p *models.Project) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:          p.ID,
		CreatorID:   p.CreatorID,
		Title:       p.Title,
		Description: p.Description,
		Genre:       p.Genre,
		Impressions: p.Impressions,
		CreatedAt:   p.CreatedAt,
	}
}
