package service

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/artigianatoshop/artigianato-backend/internal/app/model"
	"github.com/artigianatoshop/artigianato-backend/internal/app/repository"
	"github.com/artigianatoshop/artigianato-backend/pkg/logger"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNotProductOwner = errors.New("not the owner of this product")
	ErrInvalidDiscount = errors.New("discount must be between 0 and 100")
)

// ProductInput carries the writable fields of a product
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Discount    *float64
	CategoryID  uint
	ImageURL    string
}

type ProductService interface {
	Create(artisanID uint, input ProductInput) (*model.Product, error)
	GetByID(id uint) (*model.Product, error)
	List(filter repository.ProductFilter) ([]model.Product, int64, error)
	Update(productID, actorID uint, actorRole model.UserRole, input ProductInput) (*model.Product, error)
	Delete(productID, actorID uint, actorRole model.UserRole) error
	ExportXLSX() ([]byte, error)
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func validateDiscount(discount *float64) error {
	if discount == nil {
		return nil
	}
	if *discount < 0 || *discount >= 100 {
		return ErrInvalidDiscount
	}
	return nil
}

func (s *productService) Create(artisanID uint, input ProductInput) (*model.Product, error) {
	logger.Info("Creating product", map[string]interface{}{
		"artisan_id":  artisanID,
		"name":        input.Name,
		"category_id": input.CategoryID,
	})

	if err := validateDiscount(input.Discount); err != nil {
		return nil, err
	}

	if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot create product: category not found", map[string]interface{}{
				"category_id": input.CategoryID,
			})
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	product := &model.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Discount:    input.Discount,
		CategoryID:  input.CategoryID,
		ArtisanID:   artisanID,
		ImageURL:    input.ImageURL,
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	logger.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"artisan_id": artisanID,
	})
	return product, nil
}

func (s *productService) GetByID(id uint) (*model.Product, error) {
	logger.Debug("Fetching product", map[string]interface{}{
		"product_id": id,
	})

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	return product, nil
}

func (s *productService) List(filter repository.ProductFilter) ([]model.Product, int64, error) {
	logger.Debug("Listing products", map[string]interface{}{
		"category_ids": filter.CategoryIDs,
		"artisan_id":   filter.ArtisanID,
		"search":       filter.Search,
	})

	products, total, err := s.productRepo.FindAll(filter)
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, 0, err
	}

	logger.Info("Products listed successfully", map[string]interface{}{
		"count": len(products),
		"total": total,
	})
	return products, total, nil
}

// Update modifies a product. Only the owning artisan or an admin may
// edit; ownership never moves.
func (s *productService) Update(productID, actorID uint, actorRole model.UserRole, input ProductInput) (*model.Product, error) {
	logger.Info("Updating product", map[string]interface{}{
		"product_id": productID,
		"actor_id":   actorID,
		"actor_role": actorRole,
	})

	if err := validateDiscount(input.Discount); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if actorRole != model.RoleAdmin && product.ArtisanID != actorID {
		logger.Warn("Product update rejected: not the owner", map[string]interface{}{
			"product_id": productID,
			"artisan_id": product.ArtisanID,
			"actor_id":   actorID,
		})
		return nil, ErrNotProductOwner
	}

	if input.CategoryID != 0 && input.CategoryID != product.CategoryID {
		if _, err := s.categoryRepo.FindByID(input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		product.CategoryID = input.CategoryID
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Discount = input.Discount
	product.ImageURL = input.ImageURL

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	logger.Info("Product updated", map[string]interface{}{
		"product_id": product.ID,
	})
	return product, nil
}

func (s *productService) Delete(productID, actorID uint, actorRole model.UserRole) error {
	logger.Info("Deleting product", map[string]interface{}{
		"product_id": productID,
		"actor_id":   actorID,
		"actor_role": actorRole,
	})

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if actorRole != model.RoleAdmin && product.ArtisanID != actorID {
		logger.Warn("Product deletion rejected: not the owner", map[string]interface{}{
			"product_id": productID,
			"artisan_id": product.ArtisanID,
			"actor_id":   actorID,
		})
		return ErrNotProductOwner
	}

	if err := s.productRepo.Delete(productID); err != nil {
		return err
	}

	logger.Info("Product deleted", map[string]interface{}{
		"product_id": productID,
	})
	return nil
}

// ExportXLSX renders the full catalog as a spreadsheet for admin export
func (s *productService) ExportXLSX() ([]byte, error) {
	logger.Info("Exporting product catalog to XLSX")

	products, _, err := s.productRepo.FindAll(repository.ProductFilter{})
	if err != nil {
		logger.Error("Failed to load products for export", err)
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Products"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"ID", "Name", "Description", "Price", "Discount %", "Effective Price", "Category", "Artisan", "Created At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, p := range products {
		discount := 0.0
		if p.Discount != nil {
			discount = *p.Discount
		}
		values := []interface{}{
			p.ID,
			p.Name,
			p.Description,
			p.Price,
			discount,
			p.EffectivePrice(),
			p.Category.Name,
			fmt.Sprintf("%s %s", p.Artisan.Name, p.Artisan.Surname),
			p.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		logger.Error("Failed to write XLSX export", err)
		return nil, err
	}

	logger.Info("Product catalog exported", map[string]interface{}{
		"product_count": len(products),
		"bytes":         buf.Len(),
	})
	return buf.Bytes(), nil
}
