package handlers

import (
	"net/http"

	"creatordna_backend/internal/middleware"
	"creatordna_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	BaseHandler
	notificationService services.NotificationService
	creatorService      services.CreatorService
}

func NewNotificationHandler(notificationService services.NotificationService, creatorService services.CreatorService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		creatorService:      creatorService,
	}
}

func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notifications := rg.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", h.List)
		notifications.POST("/read-all", h.MarkAllAsRead)
		notifications.POST("/:notificationId/read", h.MarkAsRead)
		notifications.POST("/:notificationId/archive", h.Archive)
	}
}

// recipientID resolves the caller's creator profile id; notifications
// are addressed to creators, not auth users.
func (h *NotificationHandler) recipientID(c *gin.Context) (string, bool) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return "", false
	}
	profile, err := h.creatorService.GetMyProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return "", false
	}
	return profile.ID, true
}

func (h *NotificationHandler) List(c *gin.Context) {
	recipientID, ok := h.recipientID(c)
	if !ok {
		return
	}

	limit, offset := h.ParsePagination(c)
	unreadOnly := c.Query("unread") == "true"

	resp, err := h.notificationService.List(c.Request.Context(), recipientID, unreadOnly, limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	recipientID, ok := h.recipientID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAsRead(c.Request.Context(), recipientID, c.Param("notificationId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	recipientID, ok := h.recipientID(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAllAsRead(c.Request.Context(), recipientID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *NotificationHandler) Archive(c *gin.Context) {
	recipientID, ok := h.recipientID(c)
	if !ok {
		return
	}

	if err := h.notificationService.Archive(c.Request.Context(), recipientID, c.Param("notificationId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
