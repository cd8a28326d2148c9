package service

import (
	"context"
	"errors"
	"math"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/artigianatoshop/artigianato-backend/internal/app/model"
	"github.com/artigianatoshop/artigianato-backend/internal/app/repository"
	"github.com/artigianatoshop/artigianato-backend/pkg/logger"
	"github.com/artigianatoshop/artigianato-backend/pkg/payment/stripe"
	"github.com/artigianatoshop/artigianato-backend/pkg/util"
)

var (
	ErrOrderNotFound         = errors.New("order not found")
	ErrEmptyCart             = errors.New("cart is empty")
	ErrPaymentNotCompleted   = errors.New("payment has not been completed")
	ErrPaymentAmountMismatch = errors.New("payment amount does not match order total")
	ErrNotOrderParticipant   = errors.New("not a participant of this order")
)

// PaymentIntentRetriever is the slice of the payment provider the order
// service needs to verify a checkout.
type PaymentIntentRetriever interface {
	RetrieveIntent(ctx context.Context, intentID string) (*stripe.PaymentIntent, error)
}

// OrderNotifier pushes order lifecycle events to interested listeners.
// Implementations must not block.
type OrderNotifier interface {
	NotifyOrderCreated(order *model.Order)
	NotifyOrderStatusChanged(order *model.Order, from model.OrderStatus)
}

// CheckoutInput carries the client-supplied checkout fields
type CheckoutInput struct {
	PaymentIntentID string
	ShippingAddress string
}

type OrderService interface {
	Checkout(ctx context.Context, clientID uint, input CheckoutInput) (*model.Order, error)
	GetClientOrders(clientID uint) ([]model.Order, error)
	GetArtisanOrders(artisanID uint, status string) ([]model.Order, error)
	GetOrderByID(orderID, actorID uint, actorRole model.UserRole) (*model.Order, error)
	UpdateStatus(orderID uint, next model.OrderStatus, actorID uint, actorRole model.UserRole) (*model.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	payments  PaymentIntentRetriever
	notifier  OrderNotifier
	db        *gorm.DB
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	payments PaymentIntentRetriever,
	notifier OrderNotifier,
	db *gorm.DB,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		payments:  payments,
		notifier:  notifier,
		db:        db,
	}
}

// Checkout converts the caller's cart into an order. The whole
// conversion runs in one transaction: the cart row is locked, the lines
// are re-read and priced inside the transaction, the order is created
// with frozen unit prices and the cart is emptied. Either everything
// happens or nothing does, so a concurrent double checkout leaves one
// order and one empty cart.
func (s *orderService) Checkout(ctx context.Context, clientID uint, input CheckoutInput) (*model.Order, error) {
	logger.Info("Starting checkout", map[string]interface{}{
		"client_id":         clientID,
		"payment_intent_id": input.PaymentIntentID,
	})

	// Payment verification only happens when a confirmation id is
	// supplied; without one the order is created unpaid
	var intent *stripe.PaymentIntent
	if input.PaymentIntentID != "" {
		var err error
		intent, err = s.payments.RetrieveIntent(ctx, input.PaymentIntentID)
		if err != nil {
			logger.Error("Failed to retrieve payment intent", err, map[string]interface{}{
				"client_id":         clientID,
				"payment_intent_id": input.PaymentIntentID,
			})
			return nil, err
		}
		if !intent.Succeeded() {
			logger.Warn("Checkout rejected: payment not completed", map[string]interface{}{
				"client_id":         clientID,
				"payment_intent_id": intent.ID,
				"payment_status":    intent.Status,
			})
			return nil, ErrPaymentNotCompleted
		}
	}

	var order *model.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Lock the cart row so concurrent checkouts serialize on it
		var cart model.Cart
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", clientID).
			First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmptyCart
			}
			return err
		}

		// Re-read the lines inside the transaction; anything read before
		// the lock could be stale
		var items []model.CartItem
		if err := tx.Where("cart_id = ?", cart.ID).
			Order("created_at ASC").
			Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		var (
			total      float64
			orderItems []model.OrderItem
		)
		for _, item := range items {
			var product model.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotFound
				}
				return err
			}

			// Freeze the discounted unit price; later catalog edits must
			// never change this order
			unitPrice := util.RoundPrice(product.EffectivePrice())
			total += unitPrice * float64(item.Quantity)

			orderItems = append(orderItems, model.OrderItem{
				ProductID: product.ID,
				ArtisanID: product.ArtisanID,
				Quantity:  item.Quantity,
				UnitPrice: unitPrice,
			})
		}
		total = util.RoundPrice(total)

		if intent != nil && intent.Amount != int64(math.Round(total*100)) {
			logger.Warn("Checkout rejected: payment amount mismatch", map[string]interface{}{
				"client_id":      clientID,
				"order_total":    total,
				"paid_cents":     intent.Amount,
				"payment_intent": intent.ID,
			})
			return ErrPaymentAmountMismatch
		}

		order = &model.Order{
			ClientID:        clientID,
			TotalPrice:      total,
			Status:          model.OrderStatusPending,
			ShippingAddress: input.ShippingAddress,
			OrderItems:      orderItems,
		}
		if intent != nil {
			now := time.Now()
			order.PaymentProvider = "stripe"
			order.PaymentIntentID = intent.ID
			order.PaidAt = &now
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		// Empty the cart; a second checkout of the same cart finds no lines
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		logger.Error("Checkout failed", err, map[string]interface{}{
			"client_id": clientID,
		})
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyOrderCreated(order)
	}

	logger.Info("Checkout completed", map[string]interface{}{
		"client_id":   clientID,
		"order_id":    order.ID,
		"total_price": order.TotalPrice,
		"item_count":  len(order.OrderItems),
	})
	return order, nil
}

func (s *orderService) GetClientOrders(clientID uint) ([]model.Order, error) {
	logger.Debug("Fetching client orders", map[string]interface{}{
		"client_id": clientID,
	})

	orders, err := s.orderRepo.FindByClientID(clientID)
	if err != nil {
		logger.Error("Failed to fetch client orders", err, map[string]interface{}{
			"client_id": clientID,
		})
		return nil, err
	}

	return orders, nil
}

func (s *orderService) GetArtisanOrders(artisanID uint, status string) ([]model.Order, error) {
	logger.Debug("Fetching artisan orders", map[string]interface{}{
		"artisan_id": artisanID,
		"status":     status,
	})

	orders, err := s.orderRepo.FindByArtisanID(artisanID, status)
	if err != nil {
		logger.Error("Failed to fetch artisan orders", err, map[string]interface{}{
			"artisan_id": artisanID,
		})
		return nil, err
	}

	return orders, nil
}

// GetOrderByID returns an order if the actor is allowed to see it: the
// ordering client, an artisan with a line in it, or an admin.
func (s *orderService) GetOrderByID(orderID, actorID uint, actorRole model.UserRole) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if !s.canAccessOrder(order, actorID, actorRole) {
		logger.Warn("Order access rejected", map[string]interface{}{
			"order_id":   orderID,
			"actor_id":   actorID,
			"actor_role": actorRole,
		})
		return nil, ErrNotOrderParticipant
	}

	return order, nil
}

func (s *orderService) canAccessOrder(order *model.Order, actorID uint, actorRole model.UserRole) bool {
	if actorRole == model.RoleAdmin {
		return true
	}
	if order.ClientID == actorID {
		return true
	}
	return actorRole == model.RoleArtisan && order.ContainsArtisan(actorID)
}

// UpdateStatus moves an order through its lifecycle. Non-admin callers
// must be a participant (the ordering client or an artisan with a line
// in the order) and are bound by the transition table. Admins may force
// the order to any known status, bypassing the table.
func (s *orderService) UpdateStatus(orderID uint, next model.OrderStatus, actorID uint, actorRole model.UserRole) (*model.Order, error) {
	logger.Info("Updating order status", map[string]interface{}{
		"order_id":   orderID,
		"status":     next,
		"actor_id":   actorID,
		"actor_role": actorRole,
	})

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if !s.canAccessOrder(order, actorID, actorRole) {
		logger.Warn("Status change rejected: not a participant", map[string]interface{}{
			"order_id": orderID,
			"actor_id": actorID,
		})
		return nil, ErrNotOrderParticipant
	}

	from := order.Status
	if actorRole == model.RoleAdmin {
		// Admin override: any known status, no lifecycle check
		if _, err := model.ParseOrderStatus(string(next)); err != nil {
			return nil, err
		}
		order.Status = next
	} else if err := order.TransitionTo(next); err != nil {
		logger.Warn("Status change rejected: invalid transition", map[string]interface{}{
			"order_id": orderID,
			"from":     from,
			"to":       next,
		})
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(order.ID, order.Status); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyOrderStatusChanged(order, from)
	}

	logger.Info("Order status updated", map[string]interface{}{
		"order_id": order.ID,
		"from":     from,
		"to":       order.Status,
	})
	return order, nil
}
