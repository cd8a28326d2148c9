package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/artigianatoshop/artigianato-backend/internal/app/model"
	"github.com/artigianatoshop/artigianato-backend/pkg/logger"
)

type CartRepository interface {
	CreateCart(cart *model.Cart) error
	FindCartByUserID(userID uint) (*model.Cart, error)
	TouchCart(cartID uint) error
	CreateItem(item *model.CartItem) error
	FindItemByCartAndProduct(cartID, productID uint) (*model.CartItem, error)
	FindItemByIDForUser(itemID, userID uint) (*model.CartItem, error)
	UpdateItem(item *model.CartItem) error
	DeleteItem(id uint) error
	DeleteItemsByCartID(cartID uint) error
	DeleteStaleItems(olderThan time.Time) (int64, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) CreateCart(cart *model.Cart) error {
	logger.Debug("Creating cart in database", map[string]interface{}{
		"user_id": cart.UserID,
	})

	if err := r.db.Create(cart).Error; err != nil {
		logger.Error("Failed to create cart in database", err, map[string]interface{}{
			"user_id": cart.UserID,
		})
		return err
	}

	logger.Debug("Cart created in database", map[string]interface{}{
		"cart_id": cart.ID,
		"user_id": cart.UserID,
	})
	return nil
}

func (r *cartRepository) FindCartByUserID(userID uint) (*model.Cart, error) {
	logger.Debug("Finding cart by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var cart model.Cart
	err := r.db.Where("user_id = ?", userID).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.created_at ASC").Preload("Product")
		}).
		First(&cart).Error
	if err != nil {
		logger.Error("Failed to find cart by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Cart found by user ID in database", map[string]interface{}{
		"cart_id":    cart.ID,
		"user_id":    userID,
		"item_count": len(cart.Items),
	})
	return &cart, nil
}

func (r *cartRepository) TouchCart(cartID uint) error {
	if err := r.db.Model(&model.Cart{}).Where("id = ?", cartID).
		Update("updated_at", time.Now()).Error; err != nil {
		logger.Error("Failed to touch cart in database", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) CreateItem(item *model.CartItem) error {
	logger.Debug("Creating cart item in database", map[string]interface{}{
		"cart_id":    item.CartID,
		"product_id": item.ProductID,
		"quantity":   item.Quantity,
	})

	if err := r.db.Create(item).Error; err != nil {
		logger.Error("Failed to create cart item in database", err, map[string]interface{}{
			"cart_id":    item.CartID,
			"product_id": item.ProductID,
		})
		return err
	}

	logger.Debug("Cart item created in database", map[string]interface{}{
		"cart_item_id": item.ID,
		"cart_id":      item.CartID,
		"product_id":   item.ProductID,
	})
	return nil
}

func (r *cartRepository) FindItemByCartAndProduct(cartID, productID uint) (*model.CartItem, error) {
	logger.Debug("Finding cart item by cart and product in database", map[string]interface{}{
		"cart_id":    cartID,
		"product_id": productID,
	})

	var item model.CartItem
	err := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error
	if err != nil {
		logger.Error("Failed to find cart item by cart and product in database", err, map[string]interface{}{
			"cart_id":    cartID,
			"product_id": productID,
		})
		return nil, err
	}

	return &item, nil
}

// FindItemByIDForUser resolves a cart item only when it belongs to the
// given user's cart, so callers cannot touch someone else's lines.
func (r *cartRepository) FindItemByIDForUser(itemID, userID uint) (*model.CartItem, error) {
	logger.Debug("Finding cart item by ID for user in database", map[string]interface{}{
		"cart_item_id": itemID,
		"user_id":      userID,
	})

	var item model.CartItem
	err := r.db.Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", itemID, userID).
		Preload("Product").
		First(&item).Error
	if err != nil {
		logger.Error("Failed to find cart item by ID for user in database", err, map[string]interface{}{
			"cart_item_id": itemID,
			"user_id":      userID,
		})
		return nil, err
	}

	return &item, nil
}

func (r *cartRepository) UpdateItem(item *model.CartItem) error {
	logger.Debug("Updating cart item in database", map[string]interface{}{
		"cart_item_id": item.ID,
		"cart_id":      item.CartID,
		"quantity":     item.Quantity,
	})

	if err := r.db.Save(item).Error; err != nil {
		logger.Error("Failed to update cart item in database", err, map[string]interface{}{
			"cart_item_id": item.ID,
		})
		return err
	}

	logger.Debug("Cart item updated in database", map[string]interface{}{
		"cart_item_id": item.ID,
		"quantity":     item.Quantity,
	})
	return nil
}

func (r *cartRepository) DeleteItem(id uint) error {
	logger.Debug("Deleting cart item from database", map[string]interface{}{
		"cart_item_id": id,
	})

	if err := r.db.Delete(&model.CartItem{}, id).Error; err != nil {
		logger.Error("Failed to delete cart item from database", err, map[string]interface{}{
			"cart_item_id": id,
		})
		return err
	}

	logger.Debug("Cart item deleted from database", map[string]interface{}{
		"cart_item_id": id,
	})
	return nil
}

func (r *cartRepository) DeleteItemsByCartID(cartID uint) error {
	logger.Debug("Deleting cart items by cart ID from database", map[string]interface{}{
		"cart_id": cartID,
	})

	if err := r.db.Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error; err != nil {
		logger.Error("Failed to delete cart items by cart ID from database", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return err
	}

	logger.Debug("Cart items deleted by cart ID from database", map[string]interface{}{
		"cart_id": cartID,
	})
	return nil
}

// DeleteStaleItems removes items from carts that have not been touched
// since olderThan. Used by the abandoned cart cleanup job.
func (r *cartRepository) DeleteStaleItems(olderThan time.Time) (int64, error) {
	logger.Debug("Deleting stale cart items from database", map[string]interface{}{
		"older_than": olderThan,
	})

	result := r.db.Where(
		"cart_id IN (?)",
		r.db.Model(&model.Cart{}).Select("id").Where("updated_at < ?", olderThan),
	).Delete(&model.CartItem{})
	if result.Error != nil {
		logger.Error("Failed to delete stale cart items from database", result.Error, map[string]interface{}{
			"older_than": olderThan,
		})
		return 0, result.Error
	}

	logger.Debug("Stale cart items deleted from database", map[string]interface{}{
		"older_than": olderThan,
		"deleted":    result.RowsAffected,
	})
	return result.RowsAffected, nil
}
