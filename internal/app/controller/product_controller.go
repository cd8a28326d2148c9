package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/artigianatoshop/artigianato-backend/internal/app/repository"
	"github.com/artigianatoshop/artigianato-backend/internal/app/service"
	apperrors "github.com/artigianatoshop/artigianato-backend/internal/errors"
	"github.com/artigianatoshop/artigianato-backend/internal/middleware"
)

type ProductController struct {
	productService  service.ProductService
	categoryService service.CategoryService
}

func NewProductController(productService service.ProductService, categoryService service.CategoryService) *ProductController {
	return &ProductController{
		productService:  productService,
		categoryService: categoryService,
	}
}

type ProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Discount    *float64 `json:"discount"`
	CategoryID  uint     `json:"category_id" binding:"required"`
	ImageURL    string   `json:"image_url"`
}

// ListProducts returns products matching the query filters. Filtering
// by category includes the category's whole subtree.
// GET /api/v1/products
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.ProductFilter{
		Search: c.Query("search"),
		Limit:  20,
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= 100 {
			filter.Limit = limit
		}
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}
	if artisanStr := c.Query("artisan_id"); artisanStr != "" {
		if artisanID, err := strconv.ParseUint(artisanStr, 10, 32); err == nil {
			filter.ArtisanID = uint(artisanID)
		}
	}
	if minStr := c.Query("min_price"); minStr != "" {
		if min, err := strconv.ParseFloat(minStr, 64); err == nil {
			filter.MinPrice = min
		}
	}
	if maxStr := c.Query("max_price"); maxStr != "" {
		if max, err := strconv.ParseFloat(maxStr, 64); err == nil {
			filter.MaxPrice = max
		}
	}

	if categoryStr := c.Query("category_id"); categoryStr != "" {
		categoryID, err := strconv.ParseUint(categoryStr, 10, 32)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid category ID")
			return
		}
		ids, err := ctrl.categoryService.Descendants(uint(categoryID))
		if err != nil {
			if errors.Is(err, service.ErrCategoryNotFound) {
				apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
				return
			}
			log.Error("Failed to resolve category subtree", err, map[string]interface{}{
				"category_id": categoryID,
			})
			apperrors.InternalError(c, "")
			return
		}
		filter.CategoryIDs = ids
	}

	products, total, err := ctrl.productService.List(filter)
	if err != nil {
		log.Error("Failed to fetch products", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	log.Info("Products fetched successfully", map[string]interface{}{
		"count": len(products),
		"total": total,
	})

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    total,
	})
}

// GetProduct returns a single product
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	product, err := ctrl.productService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// CreateProduct creates a product owned by the authenticated artisan
// POST /api/v1/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product data")
		return
	}

	product, err := ctrl.productService.Create(userID, service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Discount:    req.Discount,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
		case errors.Is(err, service.ErrInvalidDiscount):
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Discount must be between 0 and 100")
		default:
			log.Error("Failed to create product", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.RespondWithParsedError(c, err, "product create")
		}
		return
	}

	log.Info("Product created successfully", map[string]interface{}{
		"user_id":    userID,
		"product_id": product.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"product": product,
	})
}

// UpdateProduct updates a product (owner or admin)
// PUT /api/v1/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
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
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product update request", map[string]interface{}{
			"user_id":    userID,
			"product_id": id,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product data")
		return
	}

	product, err := ctrl.productService.Update(uint(id), userID, role, service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Discount:    req.Discount,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrNotProductOwner):
			log.Warn("Product update by non-owner", map[string]interface{}{
				"user_id":    userID,
				"product_id": id,
			})
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, "Only the product owner can modify it")
		case errors.Is(err, service.ErrCategoryNotFound):
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
		case errors.Is(err, service.ErrInvalidDiscount):
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Discount must be between 0 and 100")
		default:
			log.Error("Failed to update product", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": id,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	log.Info("Product updated successfully", map[string]interface{}{
		"user_id":    userID,
		"product_id": product.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// DeleteProduct removes a product (owner or admin)
// DELETE /api/v1/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
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
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	err = ctrl.productService.Delete(uint(id), userID, role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrNotProductOwner):
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzOwnerOnly, "Only the product owner can delete it")
		default:
			log.Error("Failed to delete product", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": id,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	log.Info("Product deleted successfully", map[string]interface{}{
		"user_id":    userID,
		"product_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully",
	})
}

// ExportProducts streams the catalog as an XLSX workbook (admin only)
// GET /api/v1/products/export
func (ctrl *ProductController) ExportProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	data, err := ctrl.productService.ExportXLSX()
	if err != nil {
		log.Error("Failed to export products", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	filename := fmt.Sprintf("products-%s.xlsx", time.Now().Format("20060102"))

	log.Info("Product export generated", map[string]interface{}{
		"bytes": len(data),
	})

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
