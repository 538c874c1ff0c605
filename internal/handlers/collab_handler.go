package handlers

import (
	"net/http"

	"creatordna_backend/internal/middleware"
	"creatordna_backend/internal/services"
	"creatordna_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CollabHandler struct {
	BaseHandler
	collabService services.CollabService
}

func NewCollabHandler(collabService services.CollabService) *CollabHandler {
	return &CollabHandler{collabService: collabService}
}

func (h *CollabHandler) RegisterRoutes(rg *gin.RouterGroup) {
	collab := rg.Group("/collab")
	collab.Use(middleware.AuthMiddleware())
	{
		collab.POST("/requests", h.CreateRequest)
		collab.GET("/requests/my", h.ListMyRequests)
		collab.GET("/requests/:requestId", h.GetRequest)
		collab.POST("/requests/:requestId/cancel", h.CancelRequest)
		collab.GET("/requests/:requestId/matches", h.ListMatches)
		collab.GET("/requests/:requestId/audit", h.GetAudit)
		collab.POST("/requests/:requestId/matches/:matchId/accept", h.AcceptMatch)
		collab.POST("/requests/:requestId/matches/:matchId/decline", h.DeclineMatch)
	}
}

func (h *CollabHandler) CreateRequest(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCollabRequestRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.collabService.CreateRequest(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CollabHandler) ListMyRequests(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.collabService.ListMyRequests(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": resp})
}

func (h *CollabHandler) GetRequest(c *gin.Context) {
	resp, err := h.collabService.GetRequest(c.Request.Context(), c.Param("requestId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CollabHandler) CancelRequest(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.collabService.CancelRequest(c.Request.Context(), userID, c.Param("requestId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CollabHandler) ListMatches(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.collabService.ListMatches(c.Request.Context(), userID, c.Param("requestId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": resp})
}

func (h *CollabHandler) GetAudit(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.collabService.GetAudit(c.Request.Context(), userID, c.Param("requestId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": resp})
}

func (h *CollabHandler) AcceptMatch(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.collabService.AcceptMatch(c.Request.Context(), userID, c.Param("requestId"), c.Param("matchId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CollabHandler) DeclineMatch(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.collabService.DeclineMatch(c.Request.Context(), userID, c.Param("requestId"), c.Param("matchId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
