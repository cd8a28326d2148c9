package repository

import (
	"gorm.io/gorm"

	"github.com/artigianatoshop/artigianato-backend/internal/app/model"
	"github.com/artigianatoshop/artigianato-backend/pkg/logger"
)

// ProductFilter narrows product listings. Zero values are ignored.
type ProductFilter struct {
	CategoryIDs []uint  // match any of these categories
	ArtisanID   uint    // products of a single artisan
	MinPrice    float64 // inclusive lower bound on base price
	MaxPrice    float64 // inclusive upper bound on base price
	Search      string  // case-insensitive name match
	Limit       int
	Offset      int
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindByID(id uint) (*model.Product, error)
	FindByIDs(ids []uint) ([]model.Product, error)
	FindAll(filter ProductFilter) ([]model.Product, int64, error)
	Update(product *model.Product) error
	Delete(id uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name":        product.Name,
		"price":       product.Price,
		"category_id": product.CategoryID,
		"artisan_id":  product.ArtisanID,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	logger.Debug("Finding product by ID in database", map[string]interface{}{
		"product_id": id,
	})

	var product model.Product
	err := r.db.Preload("Category").Preload("Artisan").First(&product, id).Error
	if err != nil {
		logger.Error("Failed to find product by ID in database", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	logger.Debug("Product found by ID in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return &product, nil
}

func (r *productRepository) FindByIDs(ids []uint) ([]model.Product, error) {
	logger.Debug("Finding products by IDs in database", map[string]interface{}{
		"count": len(ids),
	})

	var products []model.Product
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		logger.Error("Failed to find products by IDs in database", err, map[string]interface{}{
			"count": len(ids),
		})
		return nil, err
	}

	return products, nil
}

func (r *productRepository) FindAll(filter ProductFilter) ([]model.Product, int64, error) {
	logger.Debug("Finding products in database", map[string]interface{}{
		"category_ids": filter.CategoryIDs,
		"artisan_id":   filter.ArtisanID,
		"search":       filter.Search,
	})

	query := r.db.Model(&model.Product{})

	if len(filter.CategoryIDs) > 0 {
		query = query.Where("category_id IN ?", filter.CategoryIDs)
	}
	if filter.ArtisanID != 0 {
		query = query.Where("artisan_id = ?", filter.ArtisanID)
	}
	if filter.MinPrice > 0 {
		query = query.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		query = query.Where("price <= ?", filter.MaxPrice)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count products in database", err)
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []model.Product
	err := query.Preload("Category").Preload("Artisan").
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		logger.Error("Failed to find products in database", err)
		return nil, 0, err
	}

	logger.Debug("Products found in database", map[string]interface{}{
		"count": len(products),
		"total": total,
	})
	return products, total, nil
}

func (r *productRepository) Update(product *model.Product) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
		"price":      product.Price,
	})

	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}

	logger.Debug("Product updated in database", map[string]interface{}{
		"product_id": product.ID,
	})
	return nil
}

func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	if err := r.db.Delete(&model.Product{}, id).Error; err != nil {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	logger.Debug("Product deleted from database", map[string]interface{}{
		"product_id": id,
	})
	return nil
}
