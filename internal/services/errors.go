package services

import (
	"errors"

	"creatordna_backend/internal/repositories"
	"creatordna_backend/pkg/apperrors"
)

// translateRepoError maps repository sentinels to API errors. Anything
// unrecognized is treated as an internal failure.
func translateRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrRequestNotFound):
		return apperrors.ErrRequestNotFound
	case errors.Is(err, repositories.ErrMatchNotFound):
		return apperrors.ErrMatchNotFound
	case errors.Is(err, repositories.ErrAlreadyAccepted):
		return apperrors.ErrAlreadyAccepted
	case errors.Is(err, repositories.ErrInvalidStatus):
		return apperrors.ErrInvalidRequestStatus
	case errors.Is(err, repositories.ErrProjectNotFound):
		return apperrors.ErrProjectNotFound
	case errors.Is(err, repositories.ErrCreatorNotFound):
		return apperrors.ErrCreatorNotFound
	case errors.Is(err, repositories.ErrNotificationNotFound):
		return apperrors.ErrNotificationNotFound
	case errors.Is(err, repositories.ErrUserNotFound):
		return apperrors.ErrCreatorNotFound
	default:
		return apperrors.InternalError(err)
	}
}
