package repositories

import "errors"

// Sentinel errors returned by repositories. Services translate these
// into API-level errors.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrCreatorNotFound      = errors.New("creator profile not found")
	ErrProjectNotFound      = errors.New("project not found")
	ErrRequestNotFound      = errors.New("collab request not found")
	ErrMatchNotFound        = errors.New("match not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrAlreadyAccepted      = errors.New("request already has an accepted match")
	ErrInvalidStatus        = errors.New("operation not allowed in current status")
)
