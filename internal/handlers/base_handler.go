package handlers

import (
	"errors"
	"strconv"

	"creatordna_backend/pkg/apperrors"
	"creatordna_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// BaseHandler carries the helpers every handler shares: binding,
// validation error shaping, error responses and identity extraction.
type BaseHandler struct{}

// BindAndValidate_JSON binds the JSON body and converts validation
// failures into a field-keyed error response.
func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			details := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				details[fe.Field()] = validationMessage(fe)
			}
			apperrors.HandleError(c, apperrors.ValidationError(details))
			return false
		}
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body"))
		return false
	}
	return true
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		return "Value is too short, minimum is " + fe.Param()
	case "max":
		return "Value is too long, maximum is " + fe.Param()
	case "uuid":
		return "Must be a valid UUID"
	case "roletag":
		return "Unknown role tag, use a known tag or the custom: prefix"
	default:
		return "Invalid value"
	}
}

// HandleServiceError writes the service error to the response.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	apperrors.HandleError(c, err)
}

// GetAndAuthorizeUserID extracts the authenticated user id set by the
// auth middleware. A missing id means the route was wired without it.
func (h *BaseHandler) GetAndAuthorizeUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(string(contextkeys.UserIDKey))
	if userID == "" {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentication required"))
		return "", false
	}
	return userID, true
}

// ParsePagination reads limit/offset query params with sane bounds.
func (h *BaseHandler) ParsePagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
