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
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

type CheckoutRequest struct {
	PaymentIntentID string `json:"payment_intent_id"`
	ShippingAddress string `json:"shipping_address"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Checkout converts the authenticated user's cart into an order.
// The order always belongs to the caller, regardless of any IDs in the body.
// POST /api/v1/orders/checkout
func (ctrl *OrderController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid checkout request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid checkout data")
		return
	}

	log.Debug("Starting checkout", map[string]interface{}{
		"user_id":           userID,
		"payment_intent_id": req.PaymentIntentID,
	})

	order, err := ctrl.orderService.Checkout(c.Request.Context(), userID, service.CheckoutInput{
		PaymentIntentID: req.PaymentIntentID,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			log.Warn("Checkout with empty cart", map[string]interface{}{
				"user_id": userID,
			})
			apperrors.BadRequest(c, apperrors.CartEmpty, "Cannot checkout an empty cart")
		case errors.Is(err, service.ErrPaymentNotCompleted):
			log.Warn("Checkout with incomplete payment", map[string]interface{}{
				"user_id":           userID,
				"payment_intent_id": req.PaymentIntentID,
			})
			apperrors.RespondWithError(c, http.StatusPaymentRequired, apperrors.OrderPaymentRequired, "Payment has not been completed")
		case errors.Is(err, service.ErrPaymentAmountMismatch):
			log.Warn("Checkout payment amount mismatch", map[string]interface{}{
				"user_id":           userID,
				"payment_intent_id": req.PaymentIntentID,
			})
			apperrors.BadRequest(c, apperrors.OrderPaymentFailed, "Payment amount does not match the order total")
		default:
			log.Error("Checkout failed", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.RespondWithParsedError(c, err, "checkout")
		}
		return
	}

	log.Info("Checkout completed successfully", map[string]interface{}{
		"user_id":     userID,
		"order_id":    order.ID,
		"total_price": order.TotalPrice,
	})

	c.JSON(http.StatusCreated, gin.H{
		"order_id": order.ID,
		"total":    order.TotalPrice,
		"order":    order,
	})
}

// GetOrders lists orders for the authenticated user. Clients see their
// own orders; artisans see orders containing their products.
// GET /api/v1/orders
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}
	role, _ := middleware.GetUserRole(c)

	var (
		orders []model.Order
		err    error
	)

	if role == model.RoleArtisan {
		orders, err = ctrl.orderService.GetArtisanOrders(userID, c.Query("status"))
	} else {
		orders, err = ctrl.orderService.GetClientOrders(userID)
	}
	if err != nil {
		log.Error("Failed to fetch orders", err, map[string]interface{}{
			"user_id": userID,
			"role":    role,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Orders fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(orders),
	})

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrder returns a single order if the caller participates in it
// GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}
	role, _ := middleware.GetUserRole(c)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	order, err := ctrl.orderService.GetOrderByID(uint(id), userID, role)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		if errors.Is(err, service.ErrNotOrderParticipant) {
			log.Warn("Access denied to order", map[string]interface{}{
				"user_id":  userID,
				"order_id": id,
			})
			apperrors.Forbidden(c, "You do not participate in this order")
			return
		}
		log.Error("Failed to fetch order", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// UpdateStatus advances an order through its lifecycle
// PUT /api/v1/orders/:id
func (ctrl *OrderController) UpdateStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}
	role, _ := middleware.GetUserRole(c)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid order ID")
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid status update request", map[string]interface{}{
			"user_id":  userID,
			"order_id": id,
			"error":    err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid status data")
		return
	}

	next, err := model.ParseOrderStatus(req.Status)
	if err != nil {
		log.Warn("Unknown order status", map[string]interface{}{
			"user_id":  userID,
			"order_id": id,
			"status":   req.Status,
		})
		apperrors.BadRequest(c, apperrors.OrderInvalidTransition, "Unknown order status")
		return
	}

	order, err := ctrl.orderService.UpdateStatus(uint(id), next, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrNotOrderParticipant):
			log.Warn("Status change by non-participant", map[string]interface{}{
				"user_id":  userID,
				"order_id": id,
			})
			apperrors.Forbidden(c, "You do not participate in this order")
		case errors.Is(err, model.ErrInvalidTransition):
			log.Warn("Invalid order status transition", map[string]interface{}{
				"user_id":  userID,
				"order_id": id,
				"status":   req.Status,
			})
			apperrors.BadRequest(c, apperrors.OrderInvalidTransition, err.Error())
		default:
			log.Error("Failed to update order status", err, map[string]interface{}{
				"user_id":  userID,
				"order_id": id,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	log.Info("Order status updated successfully", map[string]interface{}{
		"user_id":  userID,
		"order_id": order.ID,
		"status":   order.Status,
	})

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}
