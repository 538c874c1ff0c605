package services

import (
	"context"
	"errors"

	"creatordna_backend/internal/auth"
	"creatordna_backend/internal/logger"
	"creatordna_backend/internal/models"
	"creatordna_backend/internal/repositories"
	"creatordna_backend/internal/services/dto"
	"creatordna_backend/pkg/apperrors"
)

// Password policy lives here, next to the registration flow that
// enforces it; the auth package only hashes and compares.
const minPasswordLen = 8

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
}

type AuthServiceImpl struct {
	userRepo    repositories.UserRepository
	creatorRepo repositories.CreatorRepository
}

func NewAuthService(userRepo repositories.UserRepository, creatorRepo repositories.CreatorRepository) AuthService {
	return &AuthServiceImpl{userRepo: userRepo, creatorRepo: creatorRepo}
}

func (s *AuthServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	if len(req.Password) < minPasswordLen {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.UserRoleCreator,
		Status:       models.UserStatusActive,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	profile := &models.CreatorProfile{
		UserID:       user.ID,
		DisplayName:  req.DisplayName,
		Role:         req.Role,
		Location:     req.Location,
		Availability: req.Availability,
		Bio:          req.Bio,
	}
	profile.SetSkills(req.Skills)
	if err := s.creatorRepo.Create(profile); err != nil {
		return nil, apperrors.InternalError(err)
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "creator registered", "user_id", user.ID, "creator_id", profile.ID)

	return &dto.AuthResponse{Token: token, UserID: user.ID, CreatorID: profile.ID}, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if auth.ComparePassword(user.PasswordHash, req.Password) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.AuthResponse{Token: token, UserID: user.ID}
	if profile, err := s.creatorRepo.FindByUserID(user.ID); err == nil {
		resp.CreatorID = profile.ID
	}
	return resp, nil
}
