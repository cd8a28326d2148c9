package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/artigianatoshop/artigianato-backend/internal/app/model"
	"github.com/artigianatoshop/artigianato-backend/internal/db"
)

func setupCategoryTest(t *testing.T) (*gorm.DB, CategoryRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	return testDB, NewCategoryRepository(testDB)
}

func TestCategoryRepository_Create(t *testing.T) {
	testDB, repo := setupCategoryTest(t)
	defer db.CleanupTestDB(testDB)

	root := &model.Category{Name: "Ceramics"}
	require.NoError(t, repo.Create(root))
	assert.NotZero(t, root.ID)

	child := &model.Category{Name: "Vases", DadID: &root.ID}
	require.NoError(t, repo.Create(child))

	found, err := repo.FindByID(child.ID)
	require.NoError(t, err)
	require.NotNil(t, found.DadID)
	assert.Equal(t, root.ID, *found.DadID)
}

func TestCategoryRepository_FindAll(t *testing.T) {
	testDB, repo := setupCategoryTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.Create(&model.Category{Name: "Woodwork"}))
	require.NoError(t, repo.Create(&model.Category{Name: "Ceramics"}))

	categories, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, categories, 2)
	// Ordered by name
	assert.Equal(t, "Ceramics", categories[0].Name)
	assert.Equal(t, "Woodwork", categories[1].Name)
}

func TestCategoryRepository_CountChildren(t *testing.T) {
	testDB, repo := setupCategoryTest(t)
	defer db.CleanupTestDB(testDB)

	root := &model.Category{Name: "Textiles"}
	require.NoError(t, repo.Create(root))
	require.NoError(t, repo.Create(&model.Category{Name: "Scarves", DadID: &root.ID}))
	require.NoError(t, repo.Create(&model.Category{Name: "Rugs", DadID: &root.ID}))

	count, err := repo.CountChildren(root.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestCategoryRepository_ProductCounts(t *testing.T) {
	testDB, repo := setupCategoryTest(t)
	defer db.CleanupTestDB(testDB)

	artisan := &model.User{
		Email:        "artisan@example.com",
		PasswordHash: "hash",
		Name:         "Test",
		Surname:      "Artisan",
		Role:         model.RoleArtisan,
	}
	testDB.Create(artisan)

	ceramics := &model.Category{Name: "Ceramics"}
	woodwork := &model.Category{Name: "Woodwork"}
	require.NoError(t, repo.Create(ceramics))
	require.NoError(t, repo.Create(woodwork))

	testDB.Create(&model.Product{Name: "Vase", Price: 40, CategoryID: ceramics.ID, ArtisanID: artisan.ID})
	testDB.Create(&model.Product{Name: "Plate", Price: 25, CategoryID: ceramics.ID, ArtisanID: artisan.ID})
	testDB.Create(&model.Product{Name: "Bowl", Price: 30, CategoryID: woodwork.ID, ArtisanID: artisan.ID})

	counts, err := repo.ProductCounts()
	require.NoError(t, err)

	byCategory := make(map[uint]int64)
	for _, c := range counts {
		byCategory[c.CategoryID] = c.Count
	}
	assert.Equal(t, int64(2), byCategory[ceramics.ID])
	assert.Equal(t, int64(1), byCategory[woodwork.ID])
}

func TestCategoryRepository_Delete(t *testing.T) {
	testDB, repo := setupCategoryTest(t)
	defer db.CleanupTestDB(testDB)

	category := &model.Category{Name: "Glasswork"}
	require.NoError(t, repo.Create(category))
	require.NoError(t, repo.Delete(category.ID))

	_, err := repo.FindByID(category.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
