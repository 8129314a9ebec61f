package controllers

import (
	"net/http"

	"jewels-backend/middleware"
	apperrors "jewels-backend/pkg/errors"
	"jewels-backend/services"

	"github.com/gin-gonic/gin"
)

// CartController serves the caller-scoped cart routes. The user is always
// taken from the authenticated identity, never from the request.
type CartController struct {
	cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{cart: cart}
}

type addToCartInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type updateCartInput struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// GetCart handles GET /api/cart.
func (cc *CartController) GetCart(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return
	}

	lines, err := cc.cart.GetUserCart(c.Request.Context(), identity.UserID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, lines)
}

// AddToCart handles POST /api/cart/add.
func (cc *CartController) AddToCart(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return
	}

	var input addToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.Respond(c, apperrors.Validation("Invalid request body"))
		return
	}

	if err := cc.cart.AddToCart(c.Request.Context(), identity.UserID, input.ProductID, input.Quantity); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item added to cart"})
}

// UpdateCartItem handles PUT /api/cart/update/:productId.
func (cc *CartController) UpdateCartItem(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return
	}

	var input updateCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.Respond(c, apperrors.Validation("Invalid request body"))
		return
	}

	if err := cc.cart.UpdateCartItem(c.Request.Context(), identity.UserID, c.Param("productId"), input.Quantity); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
}

// RemoveFromCart handles DELETE /api/cart/remove/:productId.
func (cc *CartController) RemoveFromCart(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
		return
	}

	if err := cc.cart.RemoveFromCart(c.Request.Context(), identity.UserID, c.Param("productId")); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed"})
}
