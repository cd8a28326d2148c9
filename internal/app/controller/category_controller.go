package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/artigianatoshop/artigianato-backend/internal/app/service"
	apperrors "github.com/artigianatoshop/artigianato-backend/internal/errors"
	"github.com/artigianatoshop/artigianato-backend/internal/middleware"
)

type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
	}
}

type CategoryRequest struct {
	Name  string `json:"name" binding:"required"`
	DadID *uint  `json:"dad_id"`
}

// GetTree returns the whole category hierarchy with rolled-up
// product counts
// GET /api/v1/categories/tree
func (ctrl *CategoryController) GetTree(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	tree, err := ctrl.categoryService.GetTree()
	if err != nil {
		log.Error("Failed to build category tree", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": tree,
	})
}

// GetCategory returns a single category
// GET /api/v1/categories/:id
func (ctrl *CategoryController) GetCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category ID")
		return
	}

	category, err := ctrl.categoryService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
			return
		}
		log.Error("Failed to fetch category", err, map[string]interface{}{
			"category_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category,
	})
}

// CreateCategory creates a category (admin only)
// POST /api/v1/categories
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid category request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid category data")
		return
	}

	category, err := ctrl.categoryService.Create(req.Name, req.DadID)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Parent category not found")
			return
		}
		log.Error("Failed to create category", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.RespondWithParsedError(c, err, "category create")
		return
	}

	log.Info("Category created successfully", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})

	c.JSON(http.StatusCreated, gin.H{
		"category": category,
	})
}

// UpdateCategory renames or re-parents a category (admin only)
// PUT /api/v1/categories/:id
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category ID")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid category update request", map[string]interface{}{
			"category_id": id,
			"error":       err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid category data")
		return
	}

	category, err := ctrl.categoryService.Update(uint(id), req.Name, req.DadID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
		case errors.Is(err, service.ErrCategoryCycle):
			log.Warn("Category update would create a cycle", map[string]interface{}{
				"category_id": id,
				"dad_id":      req.DadID,
			})
			apperrors.BadRequest(c, apperrors.CategoryCycle, "This parent would create a cycle in the category tree")
		default:
			log.Error("Failed to update category", err, map[string]interface{}{
				"category_id": id,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	log.Info("Category updated successfully", map[string]interface{}{
		"category_id": category.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"category": category,
	})
}

// DeleteCategory removes a leaf category (admin only)
// DELETE /api/v1/categories/:id
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category ID")
		return
	}

	err = ctrl.categoryService.Delete(uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
		case errors.Is(err, service.ErrCategoryHasChildren):
			apperrors.Conflict(c, apperrors.CategoryHasChildren, "Move or delete the subcategories first")
		case errors.Is(err, service.ErrCategoryHasProducts):
			apperrors.Conflict(c, apperrors.CategoryHasProducts, "Move or delete the category's products first")
		default:
			log.Error("Failed to delete category", err, map[string]interface{}{
				"category_id": id,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	log.Info("Category deleted successfully", map[string]interface{}{
		"category_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Category deleted successfully",
	})
}
