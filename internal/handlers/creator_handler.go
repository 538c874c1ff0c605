package handlers

import (
	"net/http"

	"creatordna_backend/internal/middleware"
	"creatordna_backend/internal/services"
	"creatordna_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CreatorHandler struct {
	BaseHandler
	creatorService services.CreatorService
}

func NewCreatorHandler(creatorService services.CreatorService) *CreatorHandler {
	return &CreatorHandler{creatorService: creatorService}
}

func (h *CreatorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	creators := rg.Group("/creators")
	creators.Use(middleware.AuthMiddleware())
	{
		creators.GET("", h.ListCreators)
		creators.GET("/me", h.GetMyProfile)
		creators.PUT("/me", h.UpdateMyProfile)
		creators.GET("/me/rewards", h.ListMyRewards)
		creators.GET("/:creatorId", h.GetProfile)
	}
}

func (h *CreatorHandler) ListCreators(c *gin.Context) {
	resp, err := h.creatorService.ListCreators(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"creators": resp})
}

func (h *CreatorHandler) GetProfile(c *gin.Context) {
	resp, err := h.creatorService.GetProfile(c.Request.Context(), c.Param("creatorId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CreatorHandler) GetMyProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.creatorService.GetMyProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CreatorHandler) UpdateMyProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCreatorProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.creatorService.UpdateMyProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CreatorHandler) ListMyRewards(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.creatorService.ListMyRewards(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rewards": resp})
}
