package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/artigianatoshop/artigianato-backend/internal/app/model"
	"github.com/artigianatoshop/artigianato-backend/internal/app/repository"
	"github.com/artigianatoshop/artigianato-backend/internal/db"
)

func setupCategoryServiceTest(t *testing.T) (CategoryService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	return NewCategoryService(repository.NewCategoryRepository(testDB)), testDB
}

func TestCategoryService_Create(t *testing.T) {
	categoryService, _ := setupCategoryServiceTest(t)

	root, err := categoryService.Create("Ceramics", nil)
	require.NoError(t, err)
	assert.NotZero(t, root.ID)

	child, err := categoryService.Create("Vases", &root.ID)
	require.NoError(t, err)
	require.NotNil(t, child.DadID)
	assert.Equal(t, root.ID, *child.DadID)

	// Parent must exist
	missing := uint(99999)
	_, err = categoryService.Create("Orphan", &missing)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryService_GetTree(t *testing.T) {
	categoryService, testDB := setupCategoryServiceTest(t)

	ceramics, err := categoryService.Create("Ceramics", nil)
	require.NoError(t, err)
	vases, err := categoryService.Create("Vases", &ceramics.ID)
	require.NoError(t, err)
	_, err = categoryService.Create("Woodwork", nil)
	require.NoError(t, err)

	artisan := &model.User{
		Email:        "artisan@example.com",
		PasswordHash: "hash",
		Name:         "Test",
		Surname:      "Artisan",
		Role:         model.RoleArtisan,
	}
	testDB.Create(artisan)

	// One product on the root, two on the child
	testDB.Create(&model.Product{Name: "Amphora", Price: 90, CategoryID: ceramics.ID, ArtisanID: artisan.ID})
	testDB.Create(&model.Product{Name: "Tall Vase", Price: 60, CategoryID: vases.ID, ArtisanID: artisan.ID})
	testDB.Create(&model.Product{Name: "Small Vase", Price: 35, CategoryID: vases.ID, ArtisanID: artisan.ID})

	tree, err := categoryService.GetTree()
	require.NoError(t, err)
	require.Len(t, tree, 2)

	var ceramicsNode *model.CategoryNode
	for _, node := range tree {
		if node.ID == ceramics.ID {
			ceramicsNode = node
		}
	}
	require.NotNil(t, ceramicsNode)

	// Counts roll up from children
	assert.Equal(t, int64(3), ceramicsNode.ProductCount)
	require.Len(t, ceramicsNode.Children, 1)
	assert.Equal(t, int64(2), ceramicsNode.Children[0].ProductCount)
}

func TestCategoryService_Descendants(t *testing.T) {
	categoryService, _ := setupCategoryServiceTest(t)

	root, err := categoryService.Create("Textiles", nil)
	require.NoError(t, err)
	child, err := categoryService.Create("Scarves", &root.ID)
	require.NoError(t, err)
	grandchild, err := categoryService.Create("Silk Scarves", &child.ID)
	require.NoError(t, err)
	_, err = categoryService.Create("Woodwork", nil)
	require.NoError(t, err)

	ids, err := categoryService.Descendants(root.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{root.ID, child.ID, grandchild.ID}, ids)

	ids, err = categoryService.Descendants(grandchild.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{grandchild.ID}, ids)
}

func TestCategoryService_Update_RejectsSelfParent(t *testing.T) {
	categoryService, _ := setupCategoryServiceTest(t)

	category, err := categoryService.Create("Ceramics", nil)
	require.NoError(t, err)

	_, err = categoryService.Update(category.ID, "Ceramics", &category.ID)
	assert.ErrorIs(t, err, ErrCategoryCycle)
}

func TestCategoryService_Update_RejectsCycle(t *testing.T) {
	categoryService, _ := setupCategoryServiceTest(t)

	root, err := categoryService.Create("Ceramics", nil)
	require.NoError(t, err)
	child, err := categoryService.Create("Vases", &root.ID)
	require.NoError(t, err)
	grandchild, err := categoryService.Create("Tall Vases", &child.ID)
	require.NoError(t, err)

	// Re-parenting the root under its own grandchild closes a loop
	_, err = categoryService.Update(root.ID, "Ceramics", &grandchild.ID)
	assert.ErrorIs(t, err, ErrCategoryCycle)

	// A legal re-parent still works
	updated, err := categoryService.Update(grandchild.ID, "Tall Vases", &root.ID)
	require.NoError(t, err)
	assert.Equal(t, root.ID, *updated.DadID)
}

func TestCategoryService_Delete(t *testing.T) {
	categoryService, testDB := setupCategoryServiceTest(t)

	root, err := categoryService.Create("Ceramics", nil)
	require.NoError(t, err)
	child, err := categoryService.Create("Vases", &root.ID)
	require.NoError(t, err)

	// A category with children cannot be removed
	err = categoryService.Delete(root.ID)
	assert.ErrorIs(t, err, ErrCategoryHasChildren)

	// Neither can one with products attached
	artisan := &model.User{
		Email:        "artisan@example.com",
		PasswordHash: "hash",
		Name:         "Test",
		Surname:      "Artisan",
		Role:         model.RoleArtisan,
	}
	testDB.Create(artisan)
	product := &model.Product{
		Name:       "Handmade Vase",
		Price:      100,
		CategoryID: child.ID,
		ArtisanID:  artisan.ID,
	}
	testDB.Create(product)

	err = categoryService.Delete(child.ID)
	assert.ErrorIs(t, err, ErrCategoryHasProducts)

	testDB.Delete(product)

	require.NoError(t, categoryService.Delete(child.ID))
	require.NoError(t, categoryService.Delete(root.ID))

	_, err = categoryService.GetByID(root.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
