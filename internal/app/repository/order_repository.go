package repository

import (
	"gorm.io/gorm"

	"github.com/artigianatoshop/artigianato-backend/internal/app/model"
	"github.com/artigianatoshop/artigianato-backend/pkg/logger"
)

type OrderRepository interface {
	Create(order *model.Order) error
	FindByID(id uint) (*model.Order, error)
	FindByClientID(clientID uint) ([]model.Order, error)
	FindByArtisanID(artisanID uint, status string) ([]model.Order, error)
	Update(order *model.Order) error
	UpdateStatus(id uint, status model.OrderStatus) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) preloadOrder() *gorm.DB {
	return r.db.Preload("OrderItems", func(db *gorm.DB) *gorm.DB {
		return db.Preload("Product")
	}).Preload("Client")
}

func (r *orderRepository) Create(order *model.Order) error {
	logger.Debug("Creating order in database", map[string]interface{}{
		"client_id":   order.ClientID,
		"total_price": order.TotalPrice,
		"item_count":  len(order.OrderItems),
	})

	if err := r.db.Create(order).Error; err != nil {
		logger.Error("Failed to create order in database", err, map[string]interface{}{
			"client_id":   order.ClientID,
			"total_price": order.TotalPrice,
		})
		return err
	}

	logger.Debug("Order created in database", map[string]interface{}{
		"order_id":    order.ID,
		"client_id":   order.ClientID,
		"total_price": order.TotalPrice,
	})
	return nil
}

func (r *orderRepository) FindByID(id uint) (*model.Order, error) {
	logger.Debug("Finding order by ID in database", map[string]interface{}{
		"order_id": id,
	})

	var order model.Order
	if err := r.preloadOrder().First(&order, id).Error; err != nil {
		logger.Error("Failed to find order by ID in database", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}

	logger.Debug("Order found by ID in database", map[string]interface{}{
		"order_id":  order.ID,
		"client_id": order.ClientID,
		"status":    order.Status,
	})
	return &order, nil
}

func (r *orderRepository) FindByClientID(clientID uint) ([]model.Order, error) {
	logger.Debug("Finding orders by client ID in database", map[string]interface{}{
		"client_id": clientID,
	})

	var orders []model.Order
	if err := r.preloadOrder().Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		logger.Error("Failed to find orders by client ID in database", err, map[string]interface{}{
			"client_id": clientID,
		})
		return nil, err
	}

	logger.Debug("Orders found by client ID in database", map[string]interface{}{
		"client_id": clientID,
		"count":     len(orders),
	})
	return orders, nil
}

// FindByArtisanID returns orders containing at least one line of the
// artisan. An optional status filters the result.
func (r *orderRepository) FindByArtisanID(artisanID uint, status string) ([]model.Order, error) {
	logger.Debug("Finding orders by artisan ID in database", map[string]interface{}{
		"artisan_id": artisanID,
		"status":     status,
	})

	query := r.db.Model(&model.Order{}).
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Where("order_items.artisan_id = ?", artisanID).
		Group("orders.id")

	if status != "" {
		query = query.Where("orders.status = ?", status)
	}

	var orderIDs []uint
	if err := query.Pluck("orders.id", &orderIDs).Error; err != nil {
		logger.Error("Failed to find order IDs by artisan ID in database", err, map[string]interface{}{
			"artisan_id": artisanID,
		})
		return nil, err
	}

	if len(orderIDs) == 0 {
		logger.Debug("No orders found for artisan", map[string]interface{}{
			"artisan_id": artisanID,
		})
		return []model.Order{}, nil
	}

	var orders []model.Order
	if err := r.preloadOrder().Where("id IN ?", orderIDs).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		logger.Error("Failed to find orders by artisan ID in database", err, map[string]interface{}{
			"artisan_id": artisanID,
		})
		return nil, err
	}

	logger.Debug("Orders found by artisan ID in database", map[string]interface{}{
		"artisan_id": artisanID,
		"count":      len(orders),
	})
	return orders, nil
}

func (r *orderRepository) Update(order *model.Order) error {
	logger.Debug("Updating order in database", map[string]interface{}{
		"order_id":  order.ID,
		"client_id": order.ClientID,
		"status":    order.Status,
	})

	if err := r.db.Save(order).Error; err != nil {
		logger.Error("Failed to update order in database", err, map[string]interface{}{
			"order_id": order.ID,
		})
		return err
	}

	logger.Debug("Order updated in database", map[string]interface{}{
		"order_id": order.ID,
		"status":   order.Status,
	})
	return nil
}

func (r *orderRepository) UpdateStatus(id uint, status model.OrderStatus) error {
	logger.Debug("Updating order status in database", map[string]interface{}{
		"order_id": id,
		"status":   status,
	})

	if err := r.db.Model(&model.Order{}).Where("id = ?", id).
		Update("status", status).Error; err != nil {
		logger.Error("Failed to update order status in database", err, map[string]interface{}{
			"order_id": id,
			"status":   status,
		})
		return err
	}

	logger.Debug("Order status updated in database", map[string]interface{}{
		"order_id": id,
		"status":   status,
	})
	return nil
}
