package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/artigianatoshop/artigianato-backend/internal/app/model"
	"github.com/artigianatoshop/artigianato-backend/internal/app/repository"
	"github.com/artigianatoshop/artigianato-backend/pkg/logger"
)

var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryCycle       = errors.New("category parent link would create a cycle")
	ErrCategoryHasChildren = errors.New("category still has children")
	ErrCategoryHasProducts = errors.New("category still has products")
)

type CategoryService interface {
	Create(name string, dadID *uint) (*model.Category, error)
	GetByID(id uint) (*model.Category, error)
	GetTree() ([]*model.CategoryNode, error)
	Descendants(id uint) ([]uint, error)
	Update(id uint, name string, dadID *uint) (*model.Category, error)
	Delete(id uint) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) Create(name string, dadID *uint) (*model.Category, error) {
	logger.Info("Creating category", map[string]interface{}{
		"name":   name,
		"dad_id": dadID,
	})

	if dadID != nil {
		if _, err := s.categoryRepo.FindByID(*dadID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Cannot create category: parent not found", map[string]interface{}{
					"dad_id": *dadID,
				})
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}

	category := &model.Category{Name: name, DadID: dadID}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}

	logger.Info("Category created", map[string]interface{}{
		"category_id": category.ID,
		"name":        category.Name,
	})
	return category, nil
}

func (s *categoryService) GetByID(id uint) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// GetTree returns all root categories with their subtrees. Each node
// carries the number of products in the node and all its descendants.
func (s *categoryService) GetTree() ([]*model.CategoryNode, error) {
	logger.Debug("Building category tree")

	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		return nil, err
	}

	counts, err := s.categoryRepo.ProductCounts()
	if err != nil {
		return nil, err
	}
	directCounts := make(map[uint]int64, len(counts))
	for _, c := range counts {
		directCounts[c.CategoryID] = c.Count
	}

	nodes := make(map[uint]*model.CategoryNode, len(categories))
	for _, c := range categories {
		nodes[c.ID] = &model.CategoryNode{
			ID:           c.ID,
			Name:         c.Name,
			DadID:        c.DadID,
			ProductCount: directCounts[c.ID],
			Children:     []*model.CategoryNode{},
		}
	}

	var roots []*model.CategoryNode
	for _, c := range categories {
		node := nodes[c.ID]
		if c.DadID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*c.DadID]
		if !ok {
			// Orphaned by a missing parent; surface it as a root
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	// Roll product counts up the tree
	var rollUp func(n *model.CategoryNode) int64
	rollUp = func(n *model.CategoryNode) int64 {
		for _, child := range n.Children {
			n.ProductCount += rollUp(child)
		}
		return n.ProductCount
	}
	for _, root := range roots {
		rollUp(root)
	}

	logger.Debug("Category tree built", map[string]interface{}{
		"categories": len(categories),
		"roots":      len(roots),
	})
	return roots, nil
}

// Descendants returns the IDs of the category and every category below
// it. Product listings use it to filter by a whole subtree.
func (s *categoryService) Descendants(id uint) ([]uint, error) {
	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}

	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		return nil, err
	}

	childrenOf := make(map[uint][]uint)
	for _, c := range categories {
		if c.DadID != nil {
			childrenOf[*c.DadID] = append(childrenOf[*c.DadID], c.ID)
		}
	}

	ids := []uint{id}
	for i := 0; i < len(ids); i++ {
		ids = append(ids, childrenOf[ids[i]]...)
	}
	return ids, nil
}

// Update renames or re-parents a category. Re-parenting is validated at
// write time: a category can never be its own parent and the new parent
// must not be one of its descendants.
func (s *categoryService) Update(id uint, name string, dadID *uint) (*model.Category, error) {
	logger.Info("Updating category", map[string]interface{}{
		"category_id": id,
		"name":        name,
		"dad_id":      dadID,
	})

	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if dadID != nil {
		if *dadID == id {
			logger.Warn("Category update rejected: self parent", map[string]interface{}{
				"category_id": id,
			})
			return nil, ErrCategoryCycle
		}
		if err := s.checkCycle(id, *dadID); err != nil {
			return nil, err
		}
	}

	category.Name = name
	category.DadID = dadID

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}

	logger.Info("Category updated", map[string]interface{}{
		"category_id": category.ID,
	})
	return category, nil
}

// checkCycle walks up from newDadID; reaching id means the new parent
// sits inside id's own subtree.
func (s *categoryService) checkCycle(id, newDadID uint) error {
	seen := make(map[uint]bool)
	current := newDadID
	for {
		if current == id {
			logger.Warn("Category update rejected: cycle detected", map[string]interface{}{
				"category_id": id,
				"dad_id":      newDadID,
			})
			return ErrCategoryCycle
		}
		if seen[current] {
			// Pre-existing cycle in the data; refuse to extend it
			return ErrCategoryCycle
		}
		seen[current] = true

		parent, err := s.categoryRepo.FindByID(current)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
		if parent.DadID == nil {
			return nil
		}
		current = *parent.DadID
	}
}

func (s *categoryService) Delete(id uint) error {
	logger.Info("Deleting category", map[string]interface{}{
		"category_id": id,
	})

	if _, err := s.GetByID(id); err != nil {
		return err
	}

	children, err := s.categoryRepo.CountChildren(id)
	if err != nil {
		return err
	}
	if children > 0 {
		logger.Warn("Category deletion rejected: has children", map[string]interface{}{
			"category_id": id,
			"children":    children,
		})
		return ErrCategoryHasChildren
	}

	products, err := s.categoryRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if products > 0 {
		logger.Warn("Category deletion rejected: has products", map[string]interface{}{
			"category_id": id,
			"products":    products,
		})
		return ErrCategoryHasProducts
	}

	if err := s.categoryRepo.Delete(id); err != nil {
		return err
	}

	logger.Info("Category deleted", map[string]interface{}{
		"category_id": id,
	})
	return nil
}
