package repository

import (
	"gorm.io/gorm"

	"github.com/artigianatoshop/artigianato-backend/internal/app/model"
	"github.com/artigianatoshop/artigianato-backend/pkg/logger"
)

// CategoryProductCount is the number of products directly attached to a category
type CategoryProductCount struct {
	CategoryID uint
	Count      int64
}

type CategoryRepository interface {
	Create(category *model.Category) error
	FindByID(id uint) (*model.Category, error)
	FindAll() ([]model.Category, error)
	Update(category *model.Category) error
	Delete(id uint) error
	CountChildren(id uint) (int64, error)
	CountProducts(id uint) (int64, error)
	ProductCounts() ([]CategoryProductCount, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *model.Category) error {
	logger.Debug("Creating category in database", map[string]interface{}{
		"name":   category.Name,
		"dad_id": category.DadID,
	})

	if err := r.db.Create(category).Error; err != nil {
		logger.Error("Failed to create category in database", err, map[string]interface{}{
			"name": category.Name,
		})
		return err
	}

	logger.Debug("Category created in database", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})
	return nil
}

func (r *categoryRepository) FindByID(id uint) (*model.Category, error) {
	logger.Debug("Finding category by ID in database", map[string]interface{}{
		"category_id": id,
	})

	var category model.Category
	if err := r.db.First(&category, id).Error; err != nil {
		logger.Error("Failed to find category by ID in database", err, map[string]interface{}{
			"category_id": id,
		})
		return nil, err
	}

	logger.Debug("Category found by ID in database", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})
	return &category, nil
}

func (r *categoryRepository) FindAll() ([]model.Category, error) {
	logger.Debug("Finding all categories in database")

	var categories []model.Category
	if err := r.db.Order("name ASC").Find(&categories).Error; err != nil {
		logger.Error("Failed to find all categories in database", err)
		return nil, err
	}

	logger.Debug("Categories found in database", map[string]interface{}{
		"count": len(categories),
	})
	return categories, nil
}

func (r *categoryRepository) Update(category *model.Category) error {
	logger.Debug("Updating category in database", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
		"dad_id":      category.DadID,
	})

	if err := r.db.Save(category).Error; err != nil {
		logger.Error("Failed to update category in database", err, map[string]interface{}{
			"category_id": category.ID,
		})
		return err
	}

	logger.Debug("Category updated in database", map[string]interface{}{
		"category_id": category.ID,
	})
	return nil
}

func (r *categoryRepository) Delete(id uint) error {
	logger.Debug("Deleting category from database", map[string]interface{}{
		"category_id": id,
	})

	if err := r.db.Delete(&model.Category{}, id).Error; err != nil {
		logger.Error("Failed to delete category from database", err, map[string]interface{}{
			"category_id": id,
		})
		return err
	}

	logger.Debug("Category deleted from database", map[string]interface{}{
		"category_id": id,
	})
	return nil
}

func (r *categoryRepository) CountChildren(id uint) (int64, error) {
	logger.Debug("Counting category children in database", map[string]interface{}{
		"category_id": id,
	})

	var count int64
	if err := r.db.Model(&model.Category{}).Where("dad_id = ?", id).Count(&count).Error; err != nil {
		logger.Error("Failed to count category children in database", err, map[string]interface{}{
			"category_id": id,
		})
		return 0, err
	}

	return count, nil
}

func (r *categoryRepository) CountProducts(id uint) (int64, error) {
	logger.Debug("Counting category products in database", map[string]interface{}{
		"category_id": id,
	})

	var count int64
	if err := r.db.Model(&model.Product{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		logger.Error("Failed to count category products in database", err, map[string]interface{}{
			"category_id": id,
		})
		return 0, err
	}

	return count, nil
}

func (r *categoryRepository) ProductCounts() ([]CategoryProductCount, error) {
	logger.Debug("Counting products per category in database")

	var counts []CategoryProductCount
	err := r.db.Model(&model.Product{}).
		Select("category_id, COUNT(*) as count").
		Group("category_id").
		Scan(&counts).Error
	if err != nil {
		logger.Error("Failed to count products per category in database", err)
		return nil, err
	}

	logger.Debug("Product counts per category retrieved", map[string]interface{}{
		"categories": len(counts),
	})
	return counts, nil
}
