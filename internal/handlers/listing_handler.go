package handlers

import (
	"net/http"

	"flatmates_backend/internal/middleware"
	"flatmates_backend/internal/services"
	"flatmates_backend/internal/services/dto"
	"flatmates_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ListingHandler struct {
	*BaseHandler
	listingService services.ListingService
}

func NewListingHandler(base *BaseHandler, listingService services.ListingService) *ListingHandler {
	return &ListingHandler{
		BaseHandler:    base,
		listingService: listingService,
	}
}

func (h *ListingHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/listings")
	{
		public.GET("", h.ListActive)
		public.GET("/search", h.Search)
		public.GET("/featured", h.Featured)
		public.GET("/:id", h.GetByID)
	}

	protected := r.Group("/listings")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("", h.Create)
		protected.GET("/my", h.MyListings)
		protected.PUT("/:id", h.Update)
		protected.PATCH("/:id/status", h.UpdateStatus)
		protected.DELETE("/:id", h.Delete)
	}
}

func (h *ListingHandler) ListActive(c *gin.Context) {
	limit, offset := ParsePagination(c)

	resp, err := h.listingService.GetActiveListings(h.GetDB(c), limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ListingHandler) Search(c *gin.Context) {
	var req dto.SearchListingsRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}

	resp, err := h.listingService.SearchListings(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ListingHandler) Featured(c *gin.Context) {
	limit := ParseQueryInt(c, "limit", 10)
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	listings, err := h.listingService.GetFeaturedListings(h.GetDB(c), limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": listings})
}

func (h *ListingHandler) GetByID(c *gin.Context) {
	listingID := c.Param("id")
	if listingID == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing listing id"))
		return
	}

	listing, err := h.listingService.GetListing(h.GetDB(c), listingID, true)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (h *ListingHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateListingRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	listing, err := h.listingService.CreateListing(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, listing)
}

func (h *ListingHandler) MyListings(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	limit, offset := ParsePagination(c)

	resp, err := h.listingService.GetMyListings(h.GetDB(c), userID, limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ListingHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateListingRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	listing, err := h.listingService.UpdateListing(h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (h *ListingHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateListingStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.listingService.UpdateListingStatus(h.GetDB(c), userID, c.Param("id"), req.Status); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}

func (h *ListingHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.listingService.DeleteListing(h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "listing deleted"})
}
