package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/artigianatoshop/artigianato-backend/internal/app/model"
	"github.com/artigianatoshop/artigianato-backend/internal/db"
)

func setupCartTest(t *testing.T) (*gorm.DB, CartRepository, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewCartRepository(testDB)

	// Create test users
	client := &model.User{
		Email:        "client@example.com",
		PasswordHash: "hash",
		Name:         "Test",
		Surname:      "Client",
		Role:         model.RoleClient,
	}
	testDB.Create(client)

	artisan := &model.User{
		Email:        "artisan@example.com",
		PasswordHash: "hash",
		Name:         "Test",
		Surname:      "Artisan",
		Role:         model.RoleArtisan,
	}
	testDB.Create(artisan)

	// Create test category and product
	category := &model.Category{Name: "Ceramics"}
	testDB.Create(category)

	product := &model.Product{
		Name:       "Handmade Vase",
		Price:      100,
		CategoryID: category.ID,
		ArtisanID:  artisan.ID,
	}
	testDB.Create(product)

	return testDB, repo, client, product
}

func TestCartRepository_CreateCart(t *testing.T) {
	testDB, repo, client, _ := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart := &model.Cart{UserID: client.ID}
	err := repo.CreateCart(cart)
	assert.NoError(t, err)
	assert.NotZero(t, cart.ID)

	// One cart per user
	duplicate := &model.Cart{UserID: client.ID}
	err = repo.CreateCart(duplicate)
	assert.Error(t, err)
}

func TestCartRepository_FindCartByUserID(t *testing.T) {
	testDB, repo, client, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart := &model.Cart{UserID: client.ID}
	require.NoError(t, repo.CreateCart(cart))

	item := &model.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 2}
	require.NoError(t, repo.CreateItem(item))

	found, err := repo.FindCartByUserID(client.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, found.ID)
	require.Len(t, found.Items, 1)
	assert.Equal(t, product.ID, found.Items[0].ProductID)
	assert.Equal(t, "Handmade Vase", found.Items[0].Product.Name)

	_, err = repo.FindCartByUserID(99999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCartRepository_FindItemByCartAndProduct(t *testing.T) {
	testDB, repo, client, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart := &model.Cart{UserID: client.ID}
	require.NoError(t, repo.CreateCart(cart))

	item := &model.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 2}
	require.NoError(t, repo.CreateItem(item))

	found, err := repo.FindItemByCartAndProduct(cart.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, found.ID)
	assert.Equal(t, 2, found.Quantity)

	_, err = repo.FindItemByCartAndProduct(cart.ID, 99999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCartRepository_FindItemByIDForUser(t *testing.T) {
	testDB, repo, client, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart := &model.Cart{UserID: client.ID}
	require.NoError(t, repo.CreateCart(cart))

	item := &model.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, repo.CreateItem(item))

	found, err := repo.FindItemByIDForUser(item.ID, client.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, found.ID)

	// Another user cannot see the item
	other := &model.User{
		Email:        "other@example.com",
		PasswordHash: "hash",
		Name:         "Other",
		Surname:      "User",
		Role:         model.RoleClient,
	}
	testDB.Create(other)

	_, err = repo.FindItemByIDForUser(item.ID, other.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCartRepository_UpdateItem(t *testing.T) {
	testDB, repo, client, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart := &model.Cart{UserID: client.ID}
	require.NoError(t, repo.CreateCart(cart))

	item := &model.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 2}
	require.NoError(t, repo.CreateItem(item))

	item.Quantity = 5
	require.NoError(t, repo.UpdateItem(item))

	found, err := repo.FindItemByCartAndProduct(cart.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, found.Quantity)
}

func TestCartRepository_DeleteItemsByCartID(t *testing.T) {
	testDB, repo, client, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart := &model.Cart{UserID: client.ID}
	require.NoError(t, repo.CreateCart(cart))

	item := &model.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 2}
	require.NoError(t, repo.CreateItem(item))

	require.NoError(t, repo.DeleteItemsByCartID(cart.ID))

	found, err := repo.FindCartByUserID(client.ID)
	require.NoError(t, err)
	assert.Empty(t, found.Items)
}

func TestCartRepository_DeleteStaleItems(t *testing.T) {
	testDB, repo, client, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart := &model.Cart{UserID: client.ID}
	require.NoError(t, repo.CreateCart(cart))

	item := &model.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 2}
	require.NoError(t, repo.CreateItem(item))

	// Carts touched after the cutoff survive
	deleted, err := repo.DeleteStaleItems(time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, deleted)

	// Carts untouched since the cutoff are emptied
	deleted, err = repo.DeleteStaleItems(time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	found, err := repo.FindCartByUserID(client.ID)
	require.NoError(t, err)
	assert.Empty(t, found.Items)
}
