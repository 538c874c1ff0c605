package apperrors

import (
	"net/http"
)

// Predefined errors for the collaboration lifecycle. Repositories return
// their own sentinel errors; services translate them to these.

// ErrRequestNotFound - unknown collaboration request id.
var ErrRequestNotFound = New(
	CodeNotFound,
	"collab",
	"Collaboration request not found",
	http.StatusNotFound,
)

// ErrMatchNotFound - unknown match id for the given request.
var ErrMatchNotFound = New(
	CodeNotFound,
	"collab",
	"Match not found",
	http.StatusNotFound,
)

// ErrAlreadyAccepted - the accept race was lost: this request already has
// an accepted match. Intentionally non-idempotent so the caller can tell
// it lost the race and must re-read state.
var ErrAlreadyAccepted = New(
	CodeAlreadyAccepted,
	"collab",
	"Request already has an accepted match",
	http.StatusConflict,
)

// ErrInvalidRequestStatus - the operation is not legal in the request's
// current lifecycle state.
var ErrInvalidRequestStatus = New(
	CodeInvalidStatus,
	"collab",
	"Operation not allowed for the current request status",
	http.StatusConflict,
)

// ErrNotRequestOwner - the actor does not own the request.
var ErrNotRequestOwner = New(
	CodeForbidden,
	"collab",
	"Only the requester may perform this operation",
	http.StatusForbidden,
)

// ErrNotMatchParticipant - the actor is neither the requester nor the
// matched candidate.
var ErrNotMatchParticipant = New(
	CodeForbidden,
	"collab",
	"Only the requester or the matched candidate may perform this operation",
	http.StatusForbidden,
)

// ErrProjectNotFound - the referenced project does not exist.
var ErrProjectNotFound = New(
	CodeNotFound,
	"project",
	"Project not found",
	http.StatusNotFound,
)

// ErrCreatorNotFound - unknown creator profile.
var ErrCreatorNotFound = New(
	CodeNotFound,
	"creator",
	"Creator profile not found",
	http.StatusNotFound,
)

// ErrNotificationNotFound - unknown notification id for the recipient.
var ErrNotificationNotFound = New(
	CodeNotFound,
	"notification",
	"Notification not found",
	http.StatusNotFound,
)

// ErrEmailAlreadyExists - email already registered.
var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

// ErrInvalidCredentials - wrong email or password.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// ErrWeakPassword - password below the minimum length.
var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 8 characters required.",
	http.StatusBadRequest,
)
