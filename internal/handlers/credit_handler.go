package handlers

import (
	"net/http"

	"flatmates_backend/internal/middleware"
	"flatmates_backend/internal/services"
	"flatmates_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// CreditHandler exposes the credits economy: balance, transaction
// history, and the contact unlock gate.
type CreditHandler struct {
	*BaseHandler
	creditService services.CreditService
	accessService services.ContactAccessService
}

func NewCreditHandler(base *BaseHandler, creditService services.CreditService, accessService services.ContactAccessService) *CreditHandler {
	return &CreditHandler{
		BaseHandler:   base,
		creditService: creditService,
		accessService: accessService,
	}
}

func (h *CreditHandler) RegisterRoutes(r *gin.RouterGroup) {
	credits := r.Group("/credits")
	credits.Use(middleware.AuthMiddleware())
	{
		credits.GET("/balance", h.GetBalance)
		credits.GET("/transactions", h.GetTransactions)
	}

	listings := r.Group("/listings")
	listings.Use(middleware.AuthMiddleware())
	{
		listings.POST("/:id/unlock-contact", h.UnlockContact)
		listings.GET("/:id/access", h.GetAccessStatus)
	}
}

func (h *CreditHandler) GetBalance(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	balance, err := h.creditService.GetBalance(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, balance)
}

func (h *CreditHandler) GetTransactions(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	limit, offset := ParsePagination(c)

	resp, err := h.creditService.GetTransactions(h.GetDB(c), userID, limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UnlockContact charges one unlock and returns the owner's contact
// details. Calling it again for the same listing is free.
func (h *CreditHandler) UnlockContact(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	listingID := c.Param("id")
	if listingID == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing listing id"))
		return
	}

	resp, err := h.accessService.UnlockContact(h.GetDB(c), userID, listingID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CreditHandler) GetAccessStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	listingID := c.Param("id")
	if listingID == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing listing id"))
		return
	}

	resp, err := h.accessService.GetAccessStatus(h.GetDB(c), userID, listingID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
