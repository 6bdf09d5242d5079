package handlers

import (
	"net/http"

	"flatmates_backend/internal/middleware"
	"flatmates_backend/internal/services"
	"flatmates_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	*BaseHandler
	favoriteService services.FavoriteService
}

func NewFavoriteHandler(base *BaseHandler, favoriteService services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		BaseHandler:     base,
		favoriteService: favoriteService,
	}
}

func (h *FavoriteHandler) RegisterRoutes(r *gin.RouterGroup) {
	favorites := r.Group("/favorites")
	favorites.Use(middleware.AuthMiddleware())
	{
		favorites.GET("", h.List)
		favorites.PUT("/:listingId", h.Add)
		favorites.DELETE("/:listingId", h.Remove)
	}
}

func (h *FavoriteHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	limit, offset := ParsePagination(c)

	resp, err := h.favoriteService.GetFavorites(h.GetDB(c), userID, limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FavoriteHandler) Add(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	listingID := c.Param("listingId")
	if listingID == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing listing id"))
		return
	}

	if err := h.favoriteService.AddFavorite(h.GetDB(c), userID, listingID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "listing saved"})
}

func (h *FavoriteHandler) Remove(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	listingID := c.Param("listingId")
	if listingID == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing listing id"))
		return
	}

	if err := h.favoriteService.RemoveFavorite(h.GetDB(c), userID, listingID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "listing removed from favorites"})
}
