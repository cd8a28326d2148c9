package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/artigianatoshop/artigianato-backend/internal/app/model"
	"github.com/artigianatoshop/artigianato-backend/internal/app/service"
	apperrors "github.com/artigianatoshop/artigianato-backend/internal/errors"
	"github.com/artigianatoshop/artigianato-backend/internal/middleware"
	"github.com/artigianatoshop/artigianato-backend/pkg/util"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type AddCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,gt=0"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

// cartTotal sums the effective price of each line at current catalog prices.
// The authoritative total is still computed at checkout.
func cartTotal(cart *model.Cart) float64 {
	var total float64
	for _, item := range cart.Items {
		total += item.Product.EffectivePrice() * float64(item.Quantity)
	}
	return util.RoundPrice(total)
}

// CreateCart returns the user's cart id, creating the cart on first use.
// Responds 201 when the cart was just created, 200 when it already existed.
// POST /api/v1/cart
func (ctrl *CartController) CreateCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	cart, created, err := ctrl.cartService.EnsureCart(userID)
	if err != nil {
		log.Error("Failed to ensure cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"cart_id": cart.ID,
	})
}

// GetCart returns the user's cart
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	cart, err := ctrl.cartService.GetCart(userID)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Cart fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(cart.Items),
	})

	c.JSON(http.StatusOK, gin.H{
		"cart":  cart,
		"count": len(cart.Items),
		"total": cartTotal(cart),
	})
}

// AddItem adds a product to the cart. Re-adding a product already in
// the cart replaces its quantity.
// POST /api/v1/cart/items
func (ctrl *CartController) AddItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid cart item data")
		return
	}

	log.Debug("Adding item to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": req.ProductID,
		"quantity":   req.Quantity,
	})

	item, err := ctrl.cartService.AddItem(userID, req.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found for cart", map[string]interface{}{
				"user_id":    userID,
				"product_id": req.ProductID,
			})
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		if errors.Is(err, service.ErrCartNotFound) {
			log.Warn("No cart for user", map[string]interface{}{
				"user_id": userID,
			})
			apperrors.NotFound(c, apperrors.CartNotFound, "Create a cart first")
			return
		}
		log.Error("Failed to add item to cart", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": req.ProductID,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Item added to cart successfully", map[string]interface{}{
		"user_id":    userID,
		"product_id": req.ProductID,
		"quantity":   item.Quantity,
	})

	c.JSON(http.StatusOK, gin.H{
		"item": item,
	})
}

// UpdateItem updates a cart item's quantity
// PUT /api/v1/cart/items/:id
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid cart item ID format", map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": idStr,
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid cart item ID")
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid update cart request", map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": id,
			"error":        err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid cart item data")
		return
	}

	item, err := ctrl.cartService.UpdateItemQuantity(userID, uint(id), req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			log.Warn("Cart item not found", map[string]interface{}{
				"user_id":      userID,
				"cart_item_id": id,
			})
			apperrors.NotFound(c, apperrors.CartItemNotFound, "Cart item not found")
			return
		}
		log.Error("Failed to update cart item", err, map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Cart item updated successfully", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": id,
		"quantity":     item.Quantity,
	})

	c.JSON(http.StatusOK, gin.H{
		"item": item,
	})
}

// RemoveItem removes an item from the cart
// DELETE /api/v1/cart/items/:id
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid cart item ID format", map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": idStr,
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid cart item ID")
		return
	}

	err = ctrl.cartService.RemoveItem(userID, uint(id))
	if err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			log.Warn("Cart item not found for removal", map[string]interface{}{
				"user_id":      userID,
				"cart_item_id": id,
			})
			apperrors.NotFound(c, apperrors.CartItemNotFound, "Cart item not found")
			return
		}
		log.Error("Failed to remove cart item", err, map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Cart item removed successfully", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item removed successfully",
	})
}

// ClearCart removes every item from the cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	if err := ctrl.cartService.ClearCart(userID); err != nil {
		log.Error("Failed to clear cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Cart cleared successfully", map[string]interface{}{
		"user_id": userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
	})
}
