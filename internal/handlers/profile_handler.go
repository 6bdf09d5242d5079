package handlers

import (
	"net/http"

	"flatmates_backend/internal/middleware"
	"flatmates_backend/internal/services"
	"flatmates_backend/internal/services/dto"
	"flatmates_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/profiles")
	{
		public.GET("/:userId", h.GetProfile)
	}

	protected := r.Group("/profiles")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/me", h.GetMyProfile)
		protected.PUT("/me", h.UpdateMyProfile)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing user id"))
		return
	}

	profile, err := h.profileService.GetProfile(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpdateProfile(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
