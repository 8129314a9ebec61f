package controllers

import (
	"net/http"

	"jewels-backend/middleware"
	apperrors "jewels-backend/pkg/errors"
	"jewels-backend/services"

	"github.com/gin-gonic/gin"
)

type WishlistController struct {
	wishlist *services.WishlistService
}

func NewWishlistController(wishlist *services.WishlistService) *WishlistController {
	return &WishlistController{wishlist: wishlist}
}

type addToWishlistInput struct {
	ProductID string `json:"product_id" binding:"required"`
}

// GetWishlist handles GET /api/wishlist.
func (wc *WishlistController) GetWishlist(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return
	}

	entries, err := wc.wishlist.GetUserWishlist(c.Request.Context(), identity.UserID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// AddToWishlist handles POST /api/wishlist/add.
func (wc *WishlistController) AddToWishlist(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return
	}

	var input addToWishlistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.Respond(c, apperrors.Validation("Invalid request body"))
		return
	}

	if err := wc.wishlist.AddToWishlist(c.Request.Context(), identity.UserID, input.ProductID); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item added to wishlist"})
}

// RemoveFromWishlist handles DELETE /api/wishlist/remove/:productId.
func (wc *WishlistController) RemoveFromWishlist(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return
	}

	if err := wc.wishlist.RemoveFromWishlist(c.Request.Context(), identity.UserID, c.Param("productId")); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from wishlist"})
}
