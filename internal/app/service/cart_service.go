package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/artigianatoshop/artigianato-backend/internal/app/model"
	"github.com/artigianatoshop/artigianato-backend/internal/app/repository"
	"github.com/artigianatoshop/artigianato-backend/pkg/logger"
)

var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("cart item not found")
)

type CartService interface {
	EnsureCart(userID uint) (*model.Cart, bool, error)
	GetCart(userID uint) (*model.Cart, error)
	AddItem(userID, productID uint, quantity int) (*model.CartItem, error)
	UpdateItemQuantity(userID, itemID uint, quantity int) (*model.CartItem, error)
	RemoveItem(userID, itemID uint) error
	ClearCart(userID uint) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// EnsureCart returns the user's cart, creating an empty one on first use.
// The second return value reports whether the cart was just created.
// A concurrent first use loses the insert race and refetches the winner's row.
func (s *cartService) EnsureCart(userID uint) (*model.Cart, bool, error) {
	logger.Debug("Ensuring cart exists", map[string]interface{}{
		"user_id": userID,
	})

	cart, err := s.cartRepo.FindCartByUserID(userID)
	if err == nil {
		return cart, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to look up cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, false, err
	}

	newCart := &model.Cart{UserID: userID}
	if err := s.cartRepo.CreateCart(newCart); err != nil {
		// Lost the race against a concurrent create; the row exists now
		cart, findErr := s.cartRepo.FindCartByUserID(userID)
		if findErr == nil {
			return cart, false, nil
		}
		logger.Error("Failed to create cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, false, err
	}

	logger.Info("Cart created", map[string]interface{}{
		"user_id": userID,
		"cart_id": newCart.ID,
	})
	return newCart, true, nil
}

// GetCart returns the user's cart. Reading never creates one: a user
// without a cart gets an empty value back.
func (s *cartService) GetCart(userID uint) (*model.Cart, error) {
	logger.Debug("Fetching user cart", map[string]interface{}{
		"user_id": userID,
	})

	cart, err := s.cartRepo.FindCartByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.Cart{UserID: userID}, nil
		}
		logger.Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("User cart fetched successfully", map[string]interface{}{
		"user_id":    userID,
		"cart_id":    cart.ID,
		"item_count": len(cart.Items),
	})
	return cart, nil
}

// AddItem puts a product line into the cart. The cart must already
// exist. Adding a product that is already in the cart overwrites the
// stored quantity instead of adding to it.
func (s *cartService) AddItem(userID, productID uint, quantity int) (*model.CartItem, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}

	cart, err := s.cartRepo.FindCartByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to cart: no cart for user", map[string]interface{}{
				"user_id": userID,
			})
			return nil, ErrCartNotFound
		}
		logger.Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	existing, err := s.cartRepo.FindItemByCartAndProduct(cart.ID, product.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing cart item", err, map[string]interface{}{
			"cart_id":    cart.ID,
			"product_id": productID,
		})
		return nil, err
	}

	var item *model.CartItem
	if existing != nil {
		existing.Quantity = quantity
		if err := s.cartRepo.UpdateItem(existing); err != nil {
			return nil, err
		}
		item = existing
	} else {
		item = &model.CartItem{
			CartID:    cart.ID,
			ProductID: product.ID,
			Quantity:  quantity,
		}
		if err := s.cartRepo.CreateItem(item); err != nil {
			return nil, err
		}
	}

	if err := s.cartRepo.TouchCart(cart.ID); err != nil {
		return nil, err
	}

	item.Product = *product

	logger.Info("Item added to cart", map[string]interface{}{
		"user_id":      userID,
		"cart_id":      cart.ID,
		"cart_item_id": item.ID,
		"quantity":     item.Quantity,
	})
	return item, nil
}

func (s *cartService) UpdateItemQuantity(userID, itemID uint, quantity int) (*model.CartItem, error) {
	logger.Info("Updating cart item quantity", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": itemID,
		"quantity":     quantity,
	})

	item, err := s.cartRepo.FindItemByIDForUser(itemID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cart item not found for user", map[string]interface{}{
				"user_id":      userID,
				"cart_item_id": itemID,
			})
			return nil, ErrCartItemNotFound
		}
		logger.Error("Failed to fetch cart item", err, map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": itemID,
		})
		return nil, err
	}

	item.Quantity = quantity
	if err := s.cartRepo.UpdateItem(item); err != nil {
		return nil, err
	}

	if err := s.cartRepo.TouchCart(item.CartID); err != nil {
		return nil, err
	}

	logger.Info("Cart item quantity updated", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": item.ID,
		"quantity":     item.Quantity,
	})
	return item, nil
}

func (s *cartService) RemoveItem(userID, itemID uint) error {
	logger.Info("Removing item from cart", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": itemID,
	})

	item, err := s.cartRepo.FindItemByIDForUser(itemID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cart item not found for user", map[string]interface{}{
				"user_id":      userID,
				"cart_item_id": itemID,
			})
			return ErrCartItemNotFound
		}
		logger.Error("Failed to fetch cart item", err, map[string]interface{}{
			"user_id":      userID,
			"cart_item_id": itemID,
		})
		return err
	}

	if err := s.cartRepo.DeleteItem(item.ID); err != nil {
		return err
	}

	if err := s.cartRepo.TouchCart(item.CartID); err != nil {
		return err
	}

	logger.Info("Item removed from cart", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": itemID,
	})
	return nil
}

func (s *cartService) ClearCart(userID uint) error {
	logger.Info("Clearing cart", map[string]interface{}{
		"user_id": userID,
	})

	cart, err := s.cartRepo.FindCartByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Nothing to clear
			return nil
		}
		logger.Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}

	if err := s.cartRepo.DeleteItemsByCartID(cart.ID); err != nil {
		return err
	}

	if err := s.cartRepo.TouchCart(cart.ID); err != nil {
		return err
	}

	logger.Info("Cart cleared", map[string]interface{}{
		"user_id": userID,
		"cart_id": cart.ID,
	})
	return nil
}
